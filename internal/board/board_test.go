package board

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTriangle builds three points, a midpoint of AB, a segment from the
// midpoint to C and a triangle polygon.
func newTestTriangle(t *testing.T) (*Board, []*Point, *Point, *Segment, *Polygon) {
	t.Helper()
	b := New("test")
	a := b.AddPoint("A", 0, 0)
	bb := b.AddPoint("B", 4, 0)
	c := b.AddPoint("C", 0, 3)

	m, err := b.AddMidpoint("M", a.ID(), bb.ID())
	require.NoError(t, err)
	s, err := b.AddSegment("MC", m.ID(), c.ID())
	require.NoError(t, err)
	poly, err := b.AddPolygon("ABC", a.ID(), bb.ID(), c.ID())
	require.NoError(t, err)

	return b, []*Point{a, bb, c}, m, s, poly
}

// =============================================================================
// Construction
// =============================================================================

func TestBoard_DerivedValuesOnCreate(t *testing.T) {
	_, _, m, s, poly := newTestTriangle(t)

	assert.Equal(t, mgl64.Vec2{2, 0}, m.Coords())
	assert.InDelta(t, 3.605551275, s.Length, 1e-9)
	assert.InDelta(t, 6.0, poly.Area, 1e-12)
}

func TestBoard_AddWithUnknownParent(t *testing.T) {
	b := New("test")
	a := b.AddPoint("A", 0, 0)

	_, err := b.AddSegment("bad", a.ID(), "pt_missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, b.Len())
}

func TestBoard_ParentMustBePoint(t *testing.T) {
	b := New("test")
	a := b.AddPoint("A", 0, 0)
	c := b.AddPoint("C", 1, 0)
	s, err := b.AddSegment("AC", a.ID(), c.ID())
	require.NoError(t, err)

	_, err = b.AddMidpoint("bad", s.ID(), a.ID())
	assert.ErrorIs(t, err, ErrWrongKind)
}

func TestBoard_PolygonNeedsThreeVertices(t *testing.T) {
	b := New("test")
	a := b.AddPoint("A", 0, 0)
	c := b.AddPoint("C", 1, 0)

	_, err := b.AddPolygon("bad", a.ID(), c.ID())
	assert.Error(t, err)
}

// =============================================================================
// Coordinates and observers
// =============================================================================

func TestBoard_SetPositionSnaps(t *testing.T) {
	b := New("test")
	b.SnapSizeX, b.SnapSizeY = 0.5, 0.5
	p := b.AddPoint("P", 0, 0)
	p.SnapToGrid = true

	require.NoError(t, b.SetPosition(p.ID(), mgl64.Vec2{1.26, 0.74}))
	assert.Equal(t, mgl64.Vec2{1.5, 0.5}, p.Coords())

	require.NoError(t, b.SetPositionDirectly(p.ID(), mgl64.Vec2{1.26, 0.74}))
	assert.Equal(t, mgl64.Vec2{1.26, 0.74}, p.Coords())
}

func TestBoard_DerivedPointCannotMove(t *testing.T) {
	b, _, m, _, _ := newTestTriangle(t)

	err := b.SetPosition(m.ID(), mgl64.Vec2{9, 9})
	assert.ErrorIs(t, err, ErrDerivedPoint)
	err = b.SetPositionDirectly(m.ID(), mgl64.Vec2{9, 9})
	assert.ErrorIs(t, err, ErrDerivedPoint)
}

func TestBoard_SetPositionUnknown(t *testing.T) {
	b := New("test")
	assert.ErrorIs(t, b.SetPosition("pt_missing", mgl64.Vec2{}), ErrNotFound)
}

func TestPoint_Observers(t *testing.T) {
	b := New("test")
	p := b.AddPoint("P", 0, 0)

	calls := 0
	unsubscribe := p.OnCoordsChanged(func(*Point) { calls++ })

	require.NoError(t, b.SetPositionDirectly(p.ID(), mgl64.Vec2{1, 0}))
	// Same coordinates: no notification.
	require.NoError(t, b.SetPositionDirectly(p.ID(), mgl64.Vec2{1, 0}))
	assert.Equal(t, 1, calls)

	unsubscribe()
	require.NoError(t, b.SetPositionDirectly(p.ID(), mgl64.Vec2{2, 0}))
	assert.Equal(t, 1, calls)
}

func TestPoint_GroupMembership(t *testing.T) {
	b := New("test")
	p := b.AddPoint("P", 0, 0)

	p.JoinGroup("grp_a")
	p.JoinGroup("grp_a")
	p.JoinGroup("grp_b")
	assert.Equal(t, []string{"grp_a", "grp_b"}, p.Groups())

	p.LeaveGroup("grp_a")
	assert.Equal(t, []string{"grp_b"}, p.Groups())
}

// =============================================================================
// Scheduler
// =============================================================================

func TestBoard_UpdateCascadesInDependencyOrder(t *testing.T) {
	b, pts, m, s, poly := newTestTriangle(t)

	// Moving B shifts the midpoint, which in turn changes the segment.
	require.NoError(t, b.SetPosition(pts[1].ID(), mgl64.Vec2{8, 0}))
	b.Update()

	assert.Equal(t, mgl64.Vec2{4, 0}, m.Coords())
	assert.InDelta(t, 5.0, s.Length, 1e-12)
	assert.InDelta(t, 12.0, poly.Area, 1e-12)
}

func TestBoard_NeedsRegularUpdatePolicy(t *testing.T) {
	b, pts, _, _, poly := newTestTriangle(t)
	poly.SetNeedsRegularUpdate(false)

	require.NoError(t, b.SetPosition(pts[1].ID(), mgl64.Vec2{8, 0}))
	b.Update()
	assert.InDelta(t, 6.0, poly.Area, 1e-12, "polygon should keep its stale area")

	b.ForceAllUpdates = true
	b.MarkDependents(pts[1].ID())
	b.UpdateElements()
	assert.InDelta(t, 12.0, poly.Area, 1e-12)
}

func TestBoard_DirectAssignmentDoesNotFlag(t *testing.T) {
	b, pts, m, _, _ := newTestTriangle(t)

	require.NoError(t, b.SetPositionDirectly(pts[1].ID(), mgl64.Vec2{8, 0}))
	b.UpdateElements()
	assert.Equal(t, mgl64.Vec2{2, 0}, m.Coords())

	b.MarkDependents(pts[1].ID())
	b.UpdateElements()
	assert.Equal(t, mgl64.Vec2{4, 0}, m.Coords())
}

func TestBoard_Updaters(t *testing.T) {
	b := New("test")
	var calls []string

	b.RegisterUpdater("one", func() { calls = append(calls, "one") })
	b.RegisterUpdater("two", func() { calls = append(calls, "two") })
	b.RegisterUpdater("one", func() { calls = append(calls, "one'") })
	b.Update()
	assert.Equal(t, []string{"one'", "two"}, calls)

	b.UnregisterUpdater("one")
	calls = nil
	b.Update()
	assert.Equal(t, []string{"two"}, calls)
}

// =============================================================================
// Removal
// =============================================================================

func TestBoard_RemoveCascades(t *testing.T) {
	b, pts, m, s, poly := newTestTriangle(t)

	removed, err := b.Remove(pts[0].ID())
	require.NoError(t, err)

	assert.Equal(t, pts[0].ID(), removed[0])
	assert.ElementsMatch(t, []string{pts[0].ID(), m.ID(), s.ID(), poly.ID()}, removed)
	assert.Equal(t, 2, b.Len())

	_, ok := b.Point(pts[0].ID())
	assert.False(t, ok)
	assert.Empty(t, b.Dependents(pts[2].ID()))

	// The remaining graph still updates.
	require.NoError(t, b.SetPosition(pts[1].ID(), mgl64.Vec2{1, 1}))
	b.Update()
}

func TestBoard_RemoveUnknown(t *testing.T) {
	b := New("test")
	_, err := b.Remove("pt_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
