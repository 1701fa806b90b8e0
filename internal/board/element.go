package board

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/inamate/rigidgroup/internal/geom"
)

// ElementKind names the kind of a board element.
type ElementKind string

const (
	KindPoint   ElementKind = "point"
	KindSegment ElementKind = "segment"
	KindPolygon ElementKind = "polygon"
	KindCircle  ElementKind = "circle"
)

// Element is anything living in the board's object table. Elements other
// than free points are computed from their parents.
type Element interface {
	ID() string
	Name() string
	Kind() ElementKind
	Parents() []string

	// NeedsRegularUpdate reports whether the element recomputes whenever
	// one of its parents changes. Elements with this turned off only
	// recompute when the board forces all updates.
	NeedsRegularUpdate() bool
	SetNeedsRegularUpdate(v bool)

	base() *element
	recompute(b *Board) error
}

type element struct {
	id      string
	name    string
	parents []string
	regular bool
	// needsUpdate is set by the scheduler and cleared after recompute.
	needsUpdate bool
}

func newElement(id, name string, parents ...string) element {
	return element{id: id, name: name, parents: parents, regular: true}
}

func (e *element) ID() string                   { return e.id }
func (e *element) Name() string                 { return e.name }
func (e *element) Parents() []string            { return append([]string(nil), e.parents...) }
func (e *element) NeedsRegularUpdate() bool     { return e.regular }
func (e *element) SetNeedsRegularUpdate(v bool) { e.regular = v }
func (e *element) base() *element               { return e }

// NeedsUpdate reports whether the element is flagged for the next
// recompute pass.
func (e *element) NeedsUpdate() bool { return e.needsUpdate }

// Segment joins two points.
type Segment struct {
	element
	Length float64
}

func (s *Segment) Kind() ElementKind { return KindSegment }

func (s *Segment) recompute(b *Board) error {
	coords, err := b.parentCoords(s.parents)
	if err != nil {
		return err
	}
	s.Length = geom.Distance(coords[0], coords[1])
	return nil
}

// Polygon is a closed ring of points.
type Polygon struct {
	element
	Area     float64
	Centroid mgl64.Vec2
}

func (p *Polygon) Kind() ElementKind { return KindPolygon }

func (p *Polygon) recompute(b *Board) error {
	coords, err := b.parentCoords(p.parents)
	if err != nil {
		return err
	}

	// Shoelace formula.
	var sum float64
	for i := range coords {
		j := (i + 1) % len(coords)
		sum += coords[i].X()*coords[j].Y() - coords[j].X()*coords[i].Y()
	}
	p.Area = math.Abs(sum) / 2
	p.Centroid = geom.Centroid(coords)
	return nil
}

// Circle is given by its center and a point on the circumference.
type Circle struct {
	element
	Center mgl64.Vec2
	Radius float64
}

func (c *Circle) Kind() ElementKind { return KindCircle }

func (c *Circle) recompute(b *Board) error {
	coords, err := b.parentCoords(c.parents)
	if err != nil {
		return err
	}
	c.Center = coords[0]
	c.Radius = geom.Distance(coords[0], coords[1])
	return nil
}
