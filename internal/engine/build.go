package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/inamate/rigidgroup/internal/board"
	"github.com/inamate/rigidgroup/internal/document"
	"github.com/inamate/rigidgroup/internal/group"
)

// Load replaces the current board with one built from doc. The document
// must already be valid; see document.Validate.
func (e *Engine) Load(doc *document.Document) error {
	for _, g := range e.groups {
		g.Ungroup()
	}
	e.groups = nil
	e.board = nil
	clear(e.ids)
	clear(e.names)
	clear(e.gone)

	b := board.New("")
	switch {
	case doc.Board.SnapSize > 0:
		b.SnapSizeX, b.SnapSizeY = doc.Board.SnapSize, doc.Board.SnapSize
	case e.snapSize > 0:
		b.SnapSizeX, b.SnapSizeY = e.snapSize, e.snapSize
	}
	b.ForceAllUpdates = doc.Board.ForceAllUpdates || e.forceAllUpdates
	e.board = b
	e.doc = doc

	if err := e.build(doc); err != nil {
		e.board = nil
		e.doc = nil
		return fmt.Errorf("load board %q: %w", doc.Board.Name, err)
	}

	slog.Info("board loaded",
		"board", b.ID,
		"name", doc.Board.Name,
		"elements", b.Len(),
		"groups", len(e.groups),
	)
	return nil
}

func (e *Engine) build(doc *document.Document) error {
	b := e.board

	for _, p := range doc.Points {
		pt := b.AddPoint(p.Name, p.X, p.Y)
		pt.SnapToGrid = p.Snap
		e.register(p.Name, pt.ID())
	}

	for _, m := range doc.Midpoints {
		pt, err := b.AddMidpoint(m.Name, e.ids[m.A], e.ids[m.B])
		if err != nil {
			return fmt.Errorf("midpoint %q: %w", m.Name, err)
		}
		e.register(m.Name, pt.ID())
	}

	for _, s := range doc.Segments {
		seg, err := b.AddSegment(s.Name, e.ids[s.A], e.ids[s.B])
		if err != nil {
			return fmt.Errorf("segment %q: %w", s.Name, err)
		}
		e.register(s.Name, seg.ID())
	}

	for _, p := range doc.Polygons {
		poly, err := b.AddPolygon(p.Name, e.lookup(p.Vertices)...)
		if err != nil {
			return fmt.Errorf("polygon %q: %w", p.Name, err)
		}
		e.register(p.Name, poly.ID())
	}

	for _, c := range doc.Circles {
		circ, err := b.AddCircle(c.Name, e.ids[c.Center], e.ids[c.Through])
		if err != nil {
			return fmt.Errorf("circle %q: %w", c.Name, err)
		}
		e.register(c.Name, circ.ID())
	}

	var errs []error
	for _, def := range doc.Groups {
		if err := e.buildGroup(def); err != nil {
			errs = append(errs, fmt.Errorf("group %q: %w", def.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (e *Engine) buildGroup(def document.GroupDef) error {
	g, err := group.New(e.board, e.lookup(def.Points)...)
	if err != nil {
		return err
	}
	g.Name = def.Name

	if def.TranslationPoints != nil {
		g.SetTranslationPoints(e.lookup(def.TranslationPoints)...)
	}
	g.SetRotationPoints(e.lookup(def.RotationPoints)...)
	for _, sp := range def.ScalePoints {
		dir, err := group.ParseScaleDirection(sp.Direction)
		if err != nil {
			g.Ungroup()
			return err
		}
		g.AddScalePoint(e.ids[sp.Point], dir)
	}

	if def.RotationCenter != nil {
		g.SetRotationCenter(e.center(def.RotationCenter))
	}
	g.SetScaleCenter(e.center(def.ScaleCenter))

	e.groups = append(e.groups, g)
	return nil
}

// center converts a document center into a group.Center. Point names are
// resolved here; anything unrecognised stays an invalid center, which
// disables that transform kind.
func (e *Engine) center(v any) group.Center {
	switch c := v.(type) {
	case string:
		if id, ok := e.ids[c]; ok && c != "centroid" {
			return group.PointCenter(id)
		}
	case []any:
		if len(c) != 2 {
			break
		}
		x, okX := toFloat(c[0])
		y, okY := toFloat(c[1])
		if okX && okY {
			return group.CoordsCenter(x, y)
		}
	}
	return group.ParseCenter(v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

func (e *Engine) register(name, id string) {
	e.ids[name] = id
	e.names[id] = name
}

// lookup maps names to ids. Unknown names pass through so the board
// reports them.
func (e *Engine) lookup(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if id, ok := e.ids[n]; ok {
			out = append(out, id)
			continue
		}
		out = append(out, n)
	}
	return out
}
