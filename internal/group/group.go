// Package group moves several board points as one rigid or affine unit.
//
// A Group watches its members. When one of them moves, the next Update
// classifies the change as a translation, rotation or scaling, builds the
// matching affine transform from the cached snapshot coordinates, applies
// it to every member and flags the members' dependents for recompute.
package group

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/inamate/rigidgroup/internal/board"
	"github.com/inamate/rigidgroup/internal/typeid"
)

// State is the position of a group in its update cycle.
type State int

const (
	StateIdle State = iota
	StateClassifying
	StateApplying
)

func (s State) String() string {
	switch s {
	case StateClassifying:
		return "classifying"
	case StateApplying:
		return "applying"
	default:
		return "idle"
	}
}

// Group holds ids of points owned by a board. It never owns the points.
type Group struct {
	Name string

	id    string
	board *board.Board

	members  []string // insertion order
	snapshot map[string]mgl64.Vec2
	unsub    map[string]func()

	rotationPoints    pointSet
	translationPoints pointSet
	scalePoints       pointSet
	scaleDirections   map[string]ScaleDirection

	rotationCenter Center
	scaleCenter    Center

	// attached is set while the group is registered as a board updater.
	attached bool

	dirty         bool
	state         State
	lastAction    Action
	lastTransform Transform
}

// New creates a group on b with the given initial members, all of which
// get the translation role. The group registers itself as an updater so
// the board's update pass drives it.
func New(b *board.Board, pointIDs ...string) (*Group, error) {
	g := &Group{
		id:              typeid.NewGroupID(),
		board:           b,
		snapshot:        make(map[string]mgl64.Vec2),
		unsub:           make(map[string]func()),
		scaleDirections: make(map[string]ScaleDirection),
		rotationCenter:  CentroidCenter(),
	}
	g.attach()
	if err := g.AddPoints(pointIDs...); err != nil {
		g.Ungroup()
		return nil, err
	}
	return g, nil
}

// attach registers the group in the board's update pass.
func (g *Group) attach() {
	if g.attached {
		return
	}
	g.board.RegisterUpdater(g.id, func() { g.Update() })
	g.attached = true
}

func (g *Group) ID() string { return g.id }

// Members returns member ids in insertion order. A member removed from
// the board stays listed until the next applied cycle drops it; see
// LiveLen.
func (g *Group) Members() []string { return slices.Clone(g.members) }

// Len counts members, including removed ones not yet dropped.
func (g *Group) Len() int { return len(g.members) }

// LiveLen counts members that still exist on the board.
func (g *Group) LiveLen() int {
	n := 0
	for _, id := range g.members {
		if _, ok := g.board.Point(id); ok {
			n++
		}
	}
	return n
}

func (g *Group) Has(pointID string) bool { return slices.Contains(g.members, pointID) }

func (g *Group) Dirty() bool        { return g.dirty }
func (g *Group) State() State       { return g.state }
func (g *Group) LastAction() Action { return g.lastAction }

// LastTransform returns the transform applied by the last successful
// cycle.
func (g *Group) LastTransform() Transform { return g.lastTransform }

// MarkDirty forces the next Update to compare members with the snapshot.
func (g *Group) MarkDirty() { g.dirty = true }

// --- Membership ---

// AddPoint makes pointID a member with the translation role. Adding an
// existing member is a no-op.
func (g *Group) AddPoint(pointID string) error {
	p, ok := g.board.Point(pointID)
	if !ok {
		return fmt.Errorf("add point %q to group: %w", pointID, board.ErrNotFound)
	}
	if p.IsDerived() {
		return fmt.Errorf("add point %q to group: %w", pointID, board.ErrDerivedPoint)
	}
	if g.Has(pointID) {
		return nil
	}
	g.attach()

	g.members = append(g.members, pointID)
	g.refresh(pointID)
	g.translationPoints.add(pointID)
	p.JoinGroup(g.id)
	g.unsub[pointID] = p.OnCoordsChanged(g.coordsChanged)
	return nil
}

// AddPoints adds every point, continuing past failures.
func (g *Group) AddPoints(pointIDs ...string) error {
	var errs []error
	for _, id := range pointIDs {
		if err := g.AddPoint(id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AddGroup merges the members of other into g.
func (g *Group) AddGroup(other *Group) error {
	return g.AddPoints(other.members...)
}

// RemovePoint drops a member and purges it from every role set.
func (g *Group) RemovePoint(pointID string) error {
	if !g.Has(pointID) {
		return fmt.Errorf("remove point %q: %w", pointID, ErrNotMember)
	}
	if p, ok := g.board.Point(pointID); ok {
		p.LeaveGroup(g.id)
	}
	g.forget(pointID)
	return nil
}

// Ungroup releases every member and detaches the group from the board's
// update pass. Adding a point afterwards attaches it again.
func (g *Group) Ungroup() {
	for _, id := range g.members {
		if p, ok := g.board.Point(id); ok {
			p.LeaveGroup(g.id)
		}
		if unsub, ok := g.unsub[id]; ok {
			unsub()
		}
	}
	g.members = nil
	clear(g.unsub)
	g.board.UnregisterUpdater(g.id)
	g.attached = false
}

func (g *Group) forget(pointID string) {
	if unsub, ok := g.unsub[pointID]; ok {
		unsub()
		delete(g.unsub, pointID)
	}
	g.members = slices.DeleteFunc(g.members, func(id string) bool { return id == pointID })
	delete(g.snapshot, pointID)
	g.rotationPoints.remove(pointID)
	g.translationPoints.remove(pointID)
	g.scalePoints.remove(pointID)
	delete(g.scaleDirections, pointID)
}

func (g *Group) coordsChanged(*board.Point) {
	// Our own writes during apply must not re-arm the cycle.
	if g.state == StateApplying {
		return
	}
	g.dirty = true
}

// --- Update cycle ---

// Update runs one cycle: classify, build, apply, flag dependents and
// refresh the snapshot. It returns the action applied. Unsupported centers
// and degenerate scale pivots abort the cycle with no coordinate changed.
func (g *Group) Update() Action {
	if !g.dirty || g.state != StateIdle {
		return ActionNone
	}
	g.state = StateClassifying
	defer func() { g.state = StateIdle }()

	c := g.classify()
	if c.Action == ActionNone {
		for _, id := range c.Changed {
			g.refresh(id)
		}
		g.dirty = false
		g.lastAction = ActionNone
		return ActionNone
	}

	t, err := g.build(c)
	if err != nil {
		slog.Debug("group update aborted", "group", g.id, "action", c.Action, "source", c.DragSource, "error", err)
		g.dirty = false
		g.lastAction = ActionNone
		return ActionNone
	}

	// Cleared before anything is written so notifications raised by the
	// applier and by dependent recompute find the group clean.
	g.dirty = false
	g.state = StateApplying
	g.apply(c, t)

	g.board.MarkDependents(g.members...)
	g.refreshAll()

	g.lastAction = c.Action
	g.lastTransform = t
	slog.Debug("group updated", "group", g.id, "action", c.Action, "source", c.DragSource, "members", len(g.members))
	return c.Action
}
