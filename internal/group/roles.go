package group

import "slices"

// pointSet is an insertion-ordered set of point ids.
type pointSet struct {
	ids []string
}

func (s *pointSet) has(id string) bool { return slices.Contains(s.ids, id) }

func (s *pointSet) add(id string) {
	if !s.has(id) {
		s.ids = append(s.ids, id)
	}
}

func (s *pointSet) remove(id string) {
	s.ids = slices.DeleteFunc(s.ids, func(v string) bool { return v == id })
}

func (s *pointSet) set(ids []string) {
	s.ids = nil
	for _, id := range ids {
		s.add(id)
	}
}

func (s *pointSet) list() []string { return slices.Clone(s.ids) }

// --- Centers ---

// SetRotationCenter sets the rotation pivot. Use ParseCenter for loosely
// typed input.
func (g *Group) SetRotationCenter(c Center) { g.rotationCenter = c }

// SetScaleCenter sets the scaling pivot. Scaling is disabled until one is
// set.
func (g *Group) SetScaleCenter(c Center) { g.scaleCenter = c }

func (g *Group) RotationCenter() Center { return g.rotationCenter }
func (g *Group) ScaleCenter() Center    { return g.scaleCenter }

// --- Rotation role ---

func (g *Group) SetRotationPoints(ids ...string) { g.rotationPoints.set(ids) }
func (g *Group) AddRotationPoint(id string)       { g.rotationPoints.add(id) }
func (g *Group) RemoveRotationPoint(id string)    { g.rotationPoints.remove(id) }
func (g *Group) RotationPoints() []string         { return g.rotationPoints.list() }

// --- Translation role ---

func (g *Group) SetTranslationPoints(ids ...string) { g.translationPoints.set(ids) }
func (g *Group) AddTranslationPoint(id string)       { g.translationPoints.add(id) }
func (g *Group) RemoveTranslationPoint(id string)    { g.translationPoints.remove(id) }
func (g *Group) TranslationPoints() []string         { return g.translationPoints.list() }

// --- Scale role ---

// SetScalePoints replaces the scale role set. Every point scales along dir.
func (g *Group) SetScalePoints(ids []string, dir ScaleDirection) {
	g.scalePoints.set(ids)
	clear(g.scaleDirections)
	for _, id := range ids {
		g.scaleDirections[id] = dir
	}
}

// AddScalePoint grants id the scale role along dir.
func (g *Group) AddScalePoint(id string, dir ScaleDirection) {
	g.scalePoints.add(id)
	g.scaleDirections[id] = dir
}

func (g *Group) RemoveScalePoint(id string) {
	g.scalePoints.remove(id)
	delete(g.scaleDirections, id)
}

func (g *Group) ScalePoints() []string { return g.scalePoints.list() }

// ScaleDirection returns the axes id scales along, "xy" when unset.
func (g *Group) ScaleDirection(id string) ScaleDirection {
	if dir, ok := g.scaleDirections[id]; ok && dir != "" {
		return dir
	}
	return ScaleXY
}
