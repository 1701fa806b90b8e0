package engine

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/rigidgroup/internal/board"
	"github.com/inamate/rigidgroup/internal/document"
)

const delta = 1e-9

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine()
	require.NoError(t, e.LoadSampleDocument())
	return e
}

func pointAt(t *testing.T, e *Engine, name string) (float64, float64) {
	t.Helper()
	ps, ok := e.Point(name)
	require.True(t, ok, "point %q", name)
	return ps.X, ps.Y
}

func TestLoadSample(t *testing.T) {
	e := newTestEngine(t)

	st := e.State()
	assert.Equal(t, document.SampleName, st.Name)
	assert.Len(t, st.Points, 8)
	assert.Len(t, st.Elements, 4)
	require.Len(t, st.Groups, 1)

	g := st.Groups[0]
	assert.Equal(t, "square", g.Name)
	assert.Equal(t, []string{"A", "B", "C", "D", "turn", "stretch"}, g.Members)
	assert.Equal(t, []string{"turn"}, g.RotationPoints)
	assert.Equal(t, []string{"stretch"}, g.ScalePoints)
	assert.Equal(t, "centroid", g.RotationCenter)
	assert.Equal(t, "(3, 3)", g.ScaleCenter)

	// Points are sorted by name.
	assert.Equal(t, "A", st.Points[0].Name)
	assert.Equal(t, []string{"square"}, st.Points[0].Groups)
}

func TestMovePoint_TranslatesGroup(t *testing.T) {
	e := newTestEngine(t)

	// Snaps to the 0.5 grid.
	require.NoError(t, e.MovePoint("A", 1.1, 0.9))

	x, y := pointAt(t, e, "A")
	assert.InDelta(t, 1.0, x, delta)
	assert.InDelta(t, 1.0, y, delta)
	x, y = pointAt(t, e, "C")
	assert.InDelta(t, 5.0, x, delta)
	assert.InDelta(t, 5.0, y, delta)

	// The midpoint and its tether follow.
	x, y = pointAt(t, e, "AB")
	assert.InDelta(t, 3.0, x, delta)
	assert.InDelta(t, 1.0, y, delta)

	g, ok := e.Group("square")
	require.True(t, ok)
	assert.Equal(t, "translation", g.LastAction().String())
}

func TestMovePoint_RotatesGroup(t *testing.T) {
	e := newTestEngine(t)

	before := e.State().Elements
	// The members' centroid is (3, 3); the handle at (3, 7) makes a quarter
	// turn counter-clockwise.
	require.NoError(t, e.MovePoint("turn", -1, 3))

	g, _ := e.Group("square")
	assert.Equal(t, "rotation", g.LastAction().String())
	assert.InDelta(t, math.Pi/2, g.LastTransform().Angle, delta)

	x, y := pointAt(t, e, "A")
	assert.InDelta(t, 6.0, x, delta)
	assert.InDelta(t, 0.0, y, delta)

	// Rigid motion keeps the square's area and diagonal.
	after := e.State().Elements
	for i := range before {
		assert.InDelta(t, before[i].Area, after[i].Area, 1e-9, before[i].Name)
		if before[i].Kind == string(board.KindSegment) && before[i].Name == "diagonal" {
			assert.InDelta(t, before[i].Length, after[i].Length, 1e-9)
		}
	}
}

func TestMovePoint_ScalesGroup(t *testing.T) {
	e := newTestEngine(t)

	// Twice as far from the scale center (3, 3).
	require.NoError(t, e.MovePoint("stretch", 11, 3))

	g, _ := e.Group("square")
	assert.Equal(t, "scaling", g.LastAction().String())

	x, y := pointAt(t, e, "C")
	assert.InDelta(t, 5.0, x, delta)
	assert.InDelta(t, 5.0, y, delta)
	x, y = pointAt(t, e, "A")
	assert.InDelta(t, -3.0, x, delta)
	assert.InDelta(t, -3.0, y, delta)
}

func TestMovePointDirectly_SkipsSnapping(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.MovePointDirectly("A", 0.3, 0.1))
	x, y := pointAt(t, e, "A")
	assert.InDelta(t, 0.3, x, delta)
	assert.InDelta(t, 0.1, y, delta)
	x, y = pointAt(t, e, "B")
	assert.InDelta(t, 4.3, x, delta)
	assert.InDelta(t, 0.1, y, delta)
}

func TestMovePoint_Errors(t *testing.T) {
	e := newTestEngine(t)

	assert.ErrorIs(t, e.MovePoint("nope", 0, 0), ErrUnknownElement)
	assert.ErrorIs(t, e.MovePoint("AB", 0, 0), board.ErrDerivedPoint)
	assert.ErrorIs(t, e.MovePoint("square", 0, 0), board.ErrWrongKind)

	assert.ErrorIs(t, NewEngine().MovePoint("A", 0, 0), ErrNoBoard)
}

func TestRemoveElement(t *testing.T) {
	e := newTestEngine(t)

	removed, err := e.RemoveElement("D")
	require.NoError(t, err)
	assert.Equal(t, "D", removed[0])
	assert.ElementsMatch(t, []string{"D", "square"}, removed)

	st := e.State()
	assert.Len(t, st.Points, 7)
	assert.NotContains(t, st.Groups[0].Members, "D")

	// The group drops the stale member on its next update.
	require.NoError(t, e.MovePoint("A", 1, 0))
	g, _ := e.Group("square")
	assert.Equal(t, 5, g.Len())

	_, err = e.RemoveElement("D")
	assert.ErrorIs(t, err, ErrUnknownElement)
}

func TestRunScript(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.RunScript())

	g, _ := e.Group("square")
	assert.Equal(t, "scaling", g.LastAction().String())

	// The square stays a square through translation, rotation and scaling.
	var square ElementState
	for _, el := range e.Elements() {
		if el.Name == "square" {
			square = el
		}
	}
	ax, ay := pointAt(t, e, "A")
	bx, by := pointAt(t, e, "B")
	side := math.Hypot(bx-ax, by-ay)
	assert.InDelta(t, side*side, square.Area, 1e-6)
}

func TestApply(t *testing.T) {
	e := newTestEngine(t)

	cmd, err := ParseCommand([]byte(`{"op":"point.move","target":"A","x":1,"y":1}`))
	require.NoError(t, err)
	require.NoError(t, e.Apply(cmd))
	x, _ := pointAt(t, e, "B")
	assert.InDelta(t, 5.0, x, delta)

	require.NoError(t, e.Apply(Command{Op: OpElementRemove, Target: "orbit"}))
	assert.Len(t, e.Elements(), 3)

	assert.ErrorIs(t, e.Apply(Command{Op: "point.spin", Target: "A"}), ErrUnknownOp)

	_, err = ParseCommand([]byte(`{"op":"point.move"}`))
	assert.Error(t, err)
}

func TestStateJSON(t *testing.T) {
	e := newTestEngine(t)

	var st State
	require.NoError(t, json.Unmarshal([]byte(e.StateJSON()), &st))
	assert.Equal(t, e.Board().ID, st.Board)
	assert.Len(t, st.Points, 8)
}

func TestHitTest(t *testing.T) {
	e := newTestEngine(t)

	assert.Equal(t, "C", e.HitTest(4.1, 3.9, 0.5))
	assert.Equal(t, "", e.HitTest(10, 10, 0.5))
	// Derived points are never hit.
	assert.Equal(t, "", e.HitTest(2, 0, 0.1))
}

func TestLoad_Centers(t *testing.T) {
	doc := &document.Document{
		Board:  document.BoardSettings{Name: "centers"},
		Points: []document.PointDef{{Name: "P", X: 1}, {Name: "Q", X: 2}, {Name: "O"}},
		Groups: []document.GroupDef{
			{Name: "by-point", Points: []string{"P", "Q"}, RotationCenter: "O", ScaleCenter: []any{int64(1), 2.5}},
			{Name: "invalid", Points: []string{"P"}, RotationCenter: "nowhere"},
		},
	}
	e := NewEngine()
	require.NoError(t, e.Load(doc))

	gs := e.Groups()
	assert.Equal(t, "point:O", gs[0].RotationCenter)
	assert.Equal(t, "(1, 2.5)", gs[0].ScaleCenter)
	assert.Equal(t, "none", gs[1].ScaleCenter)
	assert.Contains(t, gs[1].RotationCenter, "invalid")
}

func TestGroups_RemovedCenterPointShownByName(t *testing.T) {
	doc := &document.Document{
		Board:  document.BoardSettings{Name: "centers"},
		Points: []document.PointDef{{Name: "P", X: 1}, {Name: "Q", X: -1}, {Name: "O"}},
		Groups: []document.GroupDef{{Name: "pivot", Points: []string{"P", "Q"}, RotationCenter: "O"}},
	}
	e := NewEngine()
	require.NoError(t, e.Load(doc))
	_, err := e.RemoveElement("O")
	require.NoError(t, err)

	assert.Equal(t, "invalid(point:O)", e.Groups()[0].RotationCenter)
}

func TestSettings(t *testing.T) {
	e := NewEngine()
	e.SetSnapSize(2)
	e.SetForceAllUpdates(true)

	doc := document.NewSampleDocument()
	doc.Board.SnapSize = 0
	require.NoError(t, e.Load(doc))

	assert.InDelta(t, 2.0, e.Board().SnapSizeX, delta)
	assert.True(t, e.Board().ForceAllUpdates)
}
