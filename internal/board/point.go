package board

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/inamate/rigidgroup/internal/geom"
)

// Rule computes a derived point's coordinates from its parents.
type Rule func(parents []mgl64.Vec2) mgl64.Vec2

// MidpointRule places a point halfway between its two parents.
func MidpointRule(parents []mgl64.Vec2) mgl64.Vec2 {
	return parents[0].Add(parents[1]).Mul(0.5)
}

// Point is a free or derived point on the board.
type Point struct {
	element

	// SnapToGrid rounds user moves to the board's snap size.
	SnapToGrid bool

	coords mgl64.Vec2
	rule   Rule

	// groups holds the ids of the groups this point belongs to.
	groups []string

	observers []observer
	nextObs   int
}

type observer struct {
	id int
	fn func(p *Point)
}

func (p *Point) Kind() ElementKind { return KindPoint }

// Coords returns the live coordinates.
func (p *Point) Coords() mgl64.Vec2 { return p.coords }

func (p *Point) X() float64 { return p.coords.X() }
func (p *Point) Y() float64 { return p.coords.Y() }

// IsDerived reports whether the point is computed from other elements and
// therefore cannot be moved.
func (p *Point) IsDerived() bool { return p.rule != nil }

// Groups returns the ids of the groups the point is a member of.
func (p *Point) Groups() []string {
	return append([]string(nil), p.groups...)
}

// JoinGroup records membership in groupID. Duplicates are ignored.
func (p *Point) JoinGroup(groupID string) {
	if !slices.Contains(p.groups, groupID) {
		p.groups = append(p.groups, groupID)
	}
}

// LeaveGroup removes groupID from the point's memberships.
func (p *Point) LeaveGroup(groupID string) {
	p.groups = slices.DeleteFunc(p.groups, func(id string) bool { return id == groupID })
}

// OnCoordsChanged registers fn to run after every coordinate change. The
// returned func removes the registration.
func (p *Point) OnCoordsChanged(fn func(p *Point)) (unsubscribe func()) {
	id := p.nextObs
	p.nextObs++
	p.observers = append(p.observers, observer{id: id, fn: fn})

	return func() {
		p.observers = slices.DeleteFunc(p.observers, func(o observer) bool { return o.id == id })
	}
}

// setCoords stores c and notifies observers when it differs from the
// current value.
func (p *Point) setCoords(c mgl64.Vec2) {
	if c == p.coords {
		return
	}
	p.coords = c

	// Observers may unsubscribe while being notified.
	for _, o := range slices.Clone(p.observers) {
		o.fn(p)
	}
}

func (p *Point) recompute(b *Board) error {
	if p.rule == nil {
		return nil
	}
	coords, err := b.parentCoords(p.parents)
	if err != nil {
		return err
	}
	p.setCoords(p.rule(coords))
	return nil
}

func (b *Board) snap(p *Point, c mgl64.Vec2) mgl64.Vec2 {
	if !p.SnapToGrid {
		return c
	}
	return geom.Snap(c, b.SnapSizeX, b.SnapSizeY)
}
