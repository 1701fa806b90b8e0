package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/inamate/rigidgroup/internal/board"
	"github.com/inamate/rigidgroup/internal/document"
	"github.com/inamate/rigidgroup/internal/group"
)

var (
	ErrNoBoard        = errors.New("no board loaded")
	ErrUnknownElement = errors.New("unknown element")
)

// Engine owns one board built from a document, the groups on it, and the
// mapping between document names and element ids. It processes commands
// and answers queries. An Engine is not safe for concurrent use.
type Engine struct {
	doc    *document.Document
	board  *board.Board
	groups []*group.Group

	ids   map[string]string // name -> id
	names map[string]string // id -> name
	// gone keeps the names of removed elements so references to them,
	// such as a group center, can still be reported and exported.
	gone map[string]string

	// Overrides applied on load when set.
	snapSize        float64
	forceAllUpdates bool
}

// NewEngine creates an engine with no board loaded.
func NewEngine() *Engine {
	return &Engine{
		ids:   make(map[string]string),
		names: make(map[string]string),
		gone:  make(map[string]string),
	}
}

// --- Settings ---

// SetSnapSize sets the grid used when a document does not specify one.
func (e *Engine) SetSnapSize(size float64) {
	e.snapSize = size
	if e.board != nil && e.doc != nil && e.doc.Board.SnapSize <= 0 && size > 0 {
		e.board.SnapSizeX, e.board.SnapSizeY = size, size
	}
}

// SetForceAllUpdates makes every dependent recompute regardless of its own
// policy.
func (e *Engine) SetForceAllUpdates(v bool) {
	e.forceAllUpdates = v
	if e.board != nil {
		e.board.ForceAllUpdates = v
	}
}

// --- Commands ---

// LoadDocument parses a document and loads it.
func (e *Engine) LoadDocument(data []byte, format document.Format) error {
	doc, err := document.Parse(data, format)
	if err != nil {
		return err
	}
	return e.Load(doc)
}

// LoadSampleDocument loads the built-in sample board.
func (e *Engine) LoadSampleDocument() error {
	return e.Load(document.NewSampleDocument())
}

// MovePoint moves a free point the way a user drag does, then runs the
// board's update pass so groups and dependents follow.
func (e *Engine) MovePoint(ref string, x, y float64) error {
	id, err := e.resolve(ref)
	if err != nil {
		return err
	}
	if err := e.board.SetPosition(id, mgl64.Vec2{x, y}); err != nil {
		return err
	}
	e.board.Update()
	return nil
}

// MovePointDirectly places a free point exactly at (x, y), ignoring its
// grid, then runs the board's update pass.
func (e *Engine) MovePointDirectly(ref string, x, y float64) error {
	id, err := e.resolve(ref)
	if err != nil {
		return err
	}
	if err := e.board.SetPositionDirectly(id, mgl64.Vec2{x, y}); err != nil {
		return err
	}
	e.board.MarkDependents(id)
	e.board.Update()
	return nil
}

// RemoveElement deletes an element and everything computed from it. It
// returns the names removed.
func (e *Engine) RemoveElement(ref string) ([]string, error) {
	id, err := e.resolve(ref)
	if err != nil {
		return nil, err
	}
	ids, err := e.board.Remove(id)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(ids))
	for _, rid := range ids {
		name := e.names[rid]
		removed = append(removed, name)
		delete(e.names, rid)
		e.gone[rid] = name
		delete(e.ids, name)
	}
	slog.Debug("elements removed", "board", e.board.ID, "removed", removed)
	return removed, nil
}

// RunScript replays the loaded document's script, stopping at the first
// failing step.
func (e *Engine) RunScript() error {
	if e.doc == nil {
		return ErrNoBoard
	}
	for i, step := range e.doc.Script {
		if err := e.Step(step); err != nil {
			return fmt.Errorf("script step %d: %w", i, err)
		}
	}
	return nil
}

// Step performs a single scripted action.
func (e *Engine) Step(s document.Step) error {
	switch {
	case s.Remove != "":
		_, err := e.RemoveElement(s.Remove)
		return err
	case s.Move != "" && len(s.To) == 2:
		if s.Direct {
			return e.MovePointDirectly(s.Move, s.To[0], s.To[1])
		}
		return e.MovePoint(s.Move, s.To[0], s.To[1])
	}
	return fmt.Errorf("empty step: %w", document.ErrInvalidDocument)
}

// --- Queries ---

// Board returns the loaded board, or nil.
func (e *Engine) Board() *board.Board { return e.board }

// Document returns the loaded document, or nil.
func (e *Engine) Document() *document.Document { return e.doc }

// Group returns the group with the given name or id.
func (e *Engine) Group(ref string) (*group.Group, bool) {
	for _, g := range e.groups {
		if g.Name == ref || g.ID() == ref {
			return g, true
		}
	}
	return nil, false
}

// Name returns the document name of an element id.
func (e *Engine) Name(id string) string { return e.names[id] }

// StateJSON returns the full board state as JSON.
func (e *Engine) StateJSON() string {
	data, err := json.Marshal(e.State())
	if err != nil {
		return "{}"
	}
	return string(data)
}

// resolve maps a name or id to a live element id.
func (e *Engine) resolve(ref string) (string, error) {
	if e.board == nil {
		return "", ErrNoBoard
	}
	if id, ok := e.ids[ref]; ok {
		return id, nil
	}
	if _, ok := e.board.Element(ref); ok {
		return ref, nil
	}
	return "", fmt.Errorf("%q: %w", ref, ErrUnknownElement)
}
