package engine

import (
	"slices"

	"github.com/inamate/rigidgroup/internal/board"
	"github.com/inamate/rigidgroup/internal/document"
	"github.com/inamate/rigidgroup/internal/group"
)

// Export captures the live board as a document: free points carry their
// current coordinates, removed elements are left out and each group is
// written with its current roles. The script is not carried over.
func (e *Engine) Export() (*document.Document, error) {
	if e.board == nil || e.doc == nil {
		return nil, ErrNoBoard
	}
	src := e.doc
	out := &document.Document{Board: src.Board}

	for _, p := range src.Points {
		pt, ok := e.livePoint(p.Name)
		if !ok {
			continue
		}
		p.X, p.Y = pt.X(), pt.Y()
		p.Snap = pt.SnapToGrid
		out.Points = append(out.Points, p)
	}
	for _, m := range src.Midpoints {
		if e.alive(m.Name) {
			out.Midpoints = append(out.Midpoints, m)
		}
	}
	for _, s := range src.Segments {
		if e.alive(s.Name) {
			out.Segments = append(out.Segments, s)
		}
	}
	for _, p := range src.Polygons {
		if e.alive(p.Name) {
			out.Polygons = append(out.Polygons, p)
		}
	}
	for _, c := range src.Circles {
		if e.alive(c.Name) {
			out.Circles = append(out.Circles, c)
		}
	}

	for _, g := range e.groups {
		out.Groups = append(out.Groups, e.groupDef(g))
	}
	return out, nil
}

func (e *Engine) groupDef(g *group.Group) document.GroupDef {
	def := document.GroupDef{
		Name:              g.Name,
		Points:            e.nameList(g.Members()),
		TranslationPoints: e.nameList(g.TranslationPoints()),
		RotationPoints:    e.nameList(g.RotationPoints()),
		RotationCenter:    e.centerDef(g.RotationCenter()),
		ScaleCenter:       e.centerDef(g.ScaleCenter()),
	}
	for _, id := range g.ScalePoints() {
		name, ok := e.names[id]
		if !ok {
			continue
		}
		def.ScalePoints = append(def.ScalePoints, document.ScalePointDef{
			Point:     name,
			Direction: string(g.ScaleDirection(id)),
		})
	}
	// Every member translating is the document default.
	if slices.Equal(def.TranslationPoints, def.Points) {
		def.TranslationPoints = nil
	}
	return def
}

// invalidCenter is written for an invalid center with no raw value. It
// names no point, so it loads back as invalid.
const invalidCenter = "invalid"

// centerDef is the inverse of center. A center that no longer resolves is
// written so that it loads as invalid again, keeping its transform kind
// disabled: a removed point keeps its old name and an invalid center its
// raw value. Func centers have no document form and are dropped.
func (e *Engine) centerDef(c group.Center) any {
	switch c.Kind() {
	case group.CenterPoint:
		if name, ok := e.names[c.PointID()]; ok {
			return name
		}
		if name, ok := e.gone[c.PointID()]; ok {
			return name
		}
		return invalidCenter
	case group.CenterCoords:
		v := c.Coords()
		return []any{v.X(), v.Y()}
	case group.CenterCentroid:
		return "centroid"
	case group.CenterInvalid:
		switch raw := c.Raw(); raw.(type) {
		case string, bool, int64, float64, []any, map[string]any:
			return raw
		case nil:
			return invalidCenter
		default:
			// Not encodable as a document value.
			return c.String()
		}
	}
	return nil
}

func (e *Engine) alive(name string) bool {
	id, ok := e.ids[name]
	if !ok {
		return false
	}
	_, ok = e.board.Element(id)
	return ok
}

func (e *Engine) livePoint(name string) (*board.Point, bool) {
	id, ok := e.ids[name]
	if !ok {
		return nil, false
	}
	return e.board.Point(id)
}
