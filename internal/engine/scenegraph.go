package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/inamate/rigidgroup/internal/geom"
)

// Rect represents an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}

	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Center returns the center point of the rect.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// bounds is the box around the given points. A single point gives a
// zero-sized box at its position.
func (e *Engine) bounds(ids []string) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	found := false
	for _, id := range ids {
		p, ok := e.board.Point(id)
		if !ok {
			continue
		}
		found = true
		minX, maxX = min(minX, p.X()), max(maxX, p.X())
		minY, maxY = min(minY, p.Y()), max(maxY, p.Y())
	}
	if !found {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// HitTest returns the name of the nearest free point within radius of
// (x, y), or "" when none is that close.
func (e *Engine) HitTest(x, y, radius float64) string {
	if e.board == nil {
		return ""
	}

	at := mgl64.Vec2{x, y}
	best, bestDist := "", radius
	for _, p := range e.board.Points() {
		if p.IsDerived() {
			continue
		}
		if d := geom.Distance(at, p.Coords()); d <= bestDist {
			best, bestDist = e.names[p.ID()], d
		}
	}
	return best
}
