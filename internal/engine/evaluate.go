package engine

import (
	"cmp"
	"slices"

	"github.com/inamate/rigidgroup/internal/board"
	"github.com/inamate/rigidgroup/internal/group"
)

// PointState is the resolved state of one point.
type PointState struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Derived bool     `json:"derived,omitempty"`
	Snap    bool     `json:"snap,omitempty"`
	Groups  []string `json:"groups,omitempty"`
}

// ElementState is the resolved state of a segment, polygon or circle.
type ElementState struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Kind     string    `json:"kind"`
	Parents  []string  `json:"parents"`
	Length   float64   `json:"length,omitempty"`
	Area     float64   `json:"area,omitempty"`
	Centroid []float64 `json:"centroid,omitempty"`
	Center   []float64 `json:"center,omitempty"`
	Radius   float64   `json:"radius,omitempty"`
}

// GroupState describes a group's membership, roles and last outcome.
type GroupState struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Members           []string `json:"members"`
	TranslationPoints []string `json:"translationPoints"`
	RotationPoints    []string `json:"rotationPoints"`
	ScalePoints       []string `json:"scalePoints"`
	RotationCenter    string   `json:"rotationCenter"`
	ScaleCenter       string   `json:"scaleCenter"`
	LastAction        string   `json:"lastAction"`
	Bounds            Rect     `json:"bounds"`
}

// State is everything a client needs to draw the board.
type State struct {
	Board    string         `json:"board"`
	Name     string         `json:"name"`
	Points   []PointState   `json:"points"`
	Elements []ElementState `json:"elements"`
	Groups   []GroupState   `json:"groups"`
}

// State evaluates the whole board.
func (e *Engine) State() State {
	if e.board == nil {
		return State{}
	}
	return State{
		Board:    e.board.ID,
		Name:     e.doc.Board.Name,
		Points:   e.Points(),
		Elements: e.Elements(),
		Groups:   e.Groups(),
	}
}

// Points returns every point sorted by name.
func (e *Engine) Points() []PointState {
	if e.board == nil {
		return nil
	}

	var out []PointState
	for _, p := range e.board.Points() {
		ps := PointState{
			ID:      p.ID(),
			Name:    e.names[p.ID()],
			X:       p.X(),
			Y:       p.Y(),
			Derived: p.IsDerived(),
			Snap:    p.SnapToGrid,
		}
		for _, gid := range p.Groups() {
			if g, ok := e.Group(gid); ok {
				ps.Groups = append(ps.Groups, g.Name)
			}
		}
		out = append(out, ps)
	}
	slices.SortFunc(out, func(a, b PointState) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

// Point returns the state of one point by name or id.
func (e *Engine) Point(ref string) (PointState, bool) {
	id, err := e.resolve(ref)
	if err != nil {
		return PointState{}, false
	}
	for _, ps := range e.Points() {
		if ps.ID == id {
			return ps, true
		}
	}
	return PointState{}, false
}

// Elements returns every non-point element in insertion order.
func (e *Engine) Elements() []ElementState {
	if e.board == nil {
		return nil
	}

	var out []ElementState
	for _, el := range e.board.Elements() {
		es := ElementState{
			ID:      el.ID(),
			Name:    e.names[el.ID()],
			Kind:    string(el.Kind()),
			Parents: e.nameList(el.Parents()),
		}
		switch v := el.(type) {
		case *board.Point:
			continue
		case *board.Segment:
			es.Length = v.Length
		case *board.Polygon:
			es.Area = v.Area
			es.Centroid = []float64{v.Centroid.X(), v.Centroid.Y()}
		case *board.Circle:
			es.Center = []float64{v.Center.X(), v.Center.Y()}
			es.Radius = v.Radius
		}
		out = append(out, es)
	}
	return out
}

// Groups returns every group in creation order.
func (e *Engine) Groups() []GroupState {
	out := make([]GroupState, 0, len(e.groups))
	for _, g := range e.groups {
		out = append(out, e.groupState(g))
	}
	return out
}

func (e *Engine) groupState(g *group.Group) GroupState {
	var live []string
	for _, id := range g.Members() {
		if _, ok := e.board.Point(id); ok {
			live = append(live, id)
		}
	}

	return GroupState{
		ID:                g.ID(),
		Name:              g.Name,
		Members:           e.nameList(live),
		TranslationPoints: e.nameList(g.TranslationPoints()),
		RotationPoints:    e.nameList(g.RotationPoints()),
		ScalePoints:       e.nameList(g.ScalePoints()),
		RotationCenter:    e.centerLabel(g.RotationCenter()),
		ScaleCenter:       e.centerLabel(g.ScaleCenter()),
		LastAction:        g.LastAction().String(),
		Bounds:            e.bounds(live),
	}
}

func (e *Engine) centerLabel(c group.Center) string {
	if c.Kind() == group.CenterPoint {
		if name, ok := e.names[c.PointID()]; ok {
			return "point:" + name
		}
		if name, ok := e.gone[c.PointID()]; ok {
			return "invalid(point:" + name + ")"
		}
		return "invalid(" + c.String() + ")"
	}
	return c.String()
}

// nameList maps ids to names, skipping ids no longer on the board.
func (e *Engine) nameList(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := e.names[id]; ok {
			out = append(out, name)
		}
	}
	return out
}
