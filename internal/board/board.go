// Package board is the scene graph the group engine drives: an object table
// of points and the elements computed from them, a dependency graph, and
// the scheduler that recomputes flagged dependents in dependency order.
package board

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"ocm.software/open-component-model/bindings/go/dag"

	"github.com/inamate/rigidgroup/internal/typeid"
)

var (
	ErrNotFound     = errors.New("element not found")
	ErrDuplicateID  = errors.New("duplicate element id")
	ErrDerivedPoint = errors.New("derived point cannot be moved")
	ErrWrongKind    = errors.New("element has the wrong kind")
)

// Board owns every element and the dependencies between them.
// A Board is not safe for concurrent use.
type Board struct {
	ID string

	// SnapSizeX and SnapSizeY are the grid used by points with SnapToGrid.
	SnapSizeX float64
	SnapSizeY float64

	// ForceAllUpdates makes every flagged dependent recompute regardless of
	// its own NeedsRegularUpdate policy.
	ForceAllUpdates bool

	elements map[string]Element
	order    []string // insertion order
	// dependents maps an element id to the ids of elements computed from it.
	dependents map[string][]string

	graph     *dag.DirectedAcyclicGraph[string]
	topo      []string
	topoValid bool

	updaters []updater
}

type updater struct {
	id string
	fn func()
}

// New creates an empty board.
func New(id string) *Board {
	if id == "" {
		id = typeid.NewBoardID()
	}
	return &Board{
		ID:         id,
		SnapSizeX:  1,
		SnapSizeY:  1,
		elements:   make(map[string]Element),
		dependents: make(map[string][]string),
		graph:      dag.NewDirectedAcyclicGraph[string](),
	}
}

// --- Construction ---

// AddPoint creates a free point.
func (b *Board) AddPoint(name string, x, y float64) *Point {
	p := &Point{
		element: newElement(typeid.NewPointID(), name),
		coords:  mgl64.Vec2{x, y},
	}
	// A fresh typeid cannot collide.
	_ = b.add(p)
	return p
}

// AddDerivedPoint creates a point whose coordinates follow rule.
func (b *Board) AddDerivedPoint(name string, rule Rule, parents ...string) (*Point, error) {
	p := &Point{
		element: newElement(typeid.NewPointID(), name, parents...),
		rule:    rule,
	}
	if err := b.add(p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddMidpoint creates the midpoint of two points.
func (b *Board) AddMidpoint(name, a, c string) (*Point, error) {
	return b.AddDerivedPoint(name, MidpointRule, a, c)
}

// AddSegment creates a segment between two points.
func (b *Board) AddSegment(name, a, c string) (*Segment, error) {
	s := &Segment{element: newElement(typeid.NewSegmentID(), name, a, c)}
	if err := b.add(s); err != nil {
		return nil, err
	}
	return s, nil
}

// AddPolygon creates a polygon through the given vertices.
func (b *Board) AddPolygon(name string, vertices ...string) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("polygon %q needs at least 3 vertices, got %d", name, len(vertices))
	}
	p := &Polygon{element: newElement(typeid.NewPolygonID(), name, vertices...)}
	if err := b.add(p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddCircle creates a circle from its center and a point on it.
func (b *Board) AddCircle(name, center, through string) (*Circle, error) {
	c := &Circle{element: newElement(typeid.NewCircleID(), name, center, through)}
	if err := b.add(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (b *Board) add(el Element) error {
	id := el.ID()
	if _, exists := b.elements[id]; exists {
		return fmt.Errorf("add %s %q: %w", el.Kind(), id, ErrDuplicateID)
	}
	for _, parent := range el.Parents() {
		pe, ok := b.elements[parent]
		if !ok {
			return fmt.Errorf("add %s %q: parent %q: %w", el.Kind(), el.Name(), parent, ErrNotFound)
		}
		if pe.Kind() != KindPoint {
			return fmt.Errorf("add %s %q: parent %q: %w", el.Kind(), el.Name(), parent, ErrWrongKind)
		}
	}

	if err := b.graph.AddVertex(id); err != nil {
		return fmt.Errorf("add %s %q: %w", el.Kind(), id, err)
	}
	for _, parent := range el.Parents() {
		// Edges point from the dependent to what it depends on, so a
		// topological sort yields parents first.
		if err := b.graph.AddEdge(id, parent); err != nil {
			_ = b.graph.DeleteVertex(id)
			return fmt.Errorf("add %s %q: %w", el.Kind(), id, err)
		}
	}

	b.elements[id] = el
	b.order = append(b.order, id)
	for _, parent := range el.Parents() {
		if !slices.Contains(b.dependents[parent], id) {
			b.dependents[parent] = append(b.dependents[parent], id)
		}
	}
	b.topoValid = false

	if err := el.recompute(b); err != nil {
		slog.Warn("initial recompute failed", "element", id, "error", err)
	}
	return nil
}

// --- Lookup ---

// Element returns the element with the given id.
func (b *Board) Element(id string) (Element, bool) {
	el, ok := b.elements[id]
	return el, ok
}

// Point returns the point with the given id.
func (b *Board) Point(id string) (*Point, bool) {
	p, ok := b.elements[id].(*Point)
	return p, ok
}

// Elements returns all elements in insertion order.
func (b *Board) Elements() []Element {
	out := make([]Element, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.elements[id])
	}
	return out
}

// Points returns all points in insertion order.
func (b *Board) Points() []*Point {
	var out []*Point
	for _, id := range b.order {
		if p, ok := b.elements[id].(*Point); ok {
			out = append(out, p)
		}
	}
	return out
}

// Dependents returns the ids of elements directly computed from id.
func (b *Board) Dependents(id string) []string {
	return append([]string(nil), b.dependents[id]...)
}

// Len returns the number of elements.
func (b *Board) Len() int { return len(b.elements) }

func (b *Board) parentCoords(ids []string) ([]mgl64.Vec2, error) {
	out := make([]mgl64.Vec2, 0, len(ids))
	for _, id := range ids {
		p, ok := b.Point(id)
		if !ok {
			return nil, fmt.Errorf("parent %q: %w", id, ErrNotFound)
		}
		out = append(out, p.coords)
	}
	return out, nil
}

// --- Coordinates ---

// SetPosition moves a free point as a user would: snapping applies, the
// point's direct dependents are flagged and observers are notified.
func (b *Board) SetPosition(id string, c mgl64.Vec2) error {
	p, err := b.movable(id)
	if err != nil {
		return err
	}
	p.setCoords(b.snap(p, c))
	b.MarkDependents(id)
	return nil
}

// SetPositionDirectly assigns coordinates without snapping and without
// flagging dependents. Observers are still notified.
func (b *Board) SetPositionDirectly(id string, c mgl64.Vec2) error {
	p, err := b.movable(id)
	if err != nil {
		return err
	}
	p.setCoords(c)
	return nil
}

func (b *Board) movable(id string) (*Point, error) {
	el, ok := b.elements[id]
	if !ok {
		return nil, fmt.Errorf("move %q: %w", id, ErrNotFound)
	}
	p, ok := el.(*Point)
	if !ok {
		return nil, fmt.Errorf("move %q: %w", id, ErrWrongKind)
	}
	if p.IsDerived() {
		return nil, fmt.Errorf("move %q: %w", id, ErrDerivedPoint)
	}
	return p, nil
}

// --- Removal ---

// Remove deletes the element and, recursively, everything computed from it.
// It returns the ids removed, the element itself first.
func (b *Board) Remove(id string) ([]string, error) {
	if _, ok := b.elements[id]; !ok {
		return nil, fmt.Errorf("remove %q: %w", id, ErrNotFound)
	}

	var removed []string
	var remove func(id string)
	remove = func(id string) {
		el, ok := b.elements[id]
		if !ok {
			return
		}
		for _, dep := range b.Dependents(id) {
			remove(dep)
		}
		for _, parent := range el.Parents() {
			b.dependents[parent] = slices.DeleteFunc(b.dependents[parent], func(d string) bool { return d == id })
		}
		if err := b.graph.DeleteVertex(id); err != nil {
			slog.Warn("delete vertex", "element", id, "error", err)
		}
		delete(b.elements, id)
		delete(b.dependents, id)
		b.order = slices.DeleteFunc(b.order, func(o string) bool { return o == id })
		removed = append(removed, id)
	}
	remove(id)

	// Report the requested element first, then its dependents.
	slices.Reverse(removed)
	b.topoValid = false
	return removed, nil
}
