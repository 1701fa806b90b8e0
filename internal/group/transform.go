package group

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/inamate/rigidgroup/internal/geom"
)

// ScaleDirection restricts which axes a scale point's drag scales.
type ScaleDirection string

const (
	ScaleX  ScaleDirection = "x"
	ScaleY  ScaleDirection = "y"
	ScaleXY ScaleDirection = "xy"
)

// ParseScaleDirection accepts "x", "y" or "xy"; empty means "xy".
func ParseScaleDirection(s string) (ScaleDirection, error) {
	switch ScaleDirection(s) {
	case "", ScaleXY:
		return ScaleXY, nil
	case ScaleX, ScaleY:
		return ScaleDirection(s), nil
	}
	return "", fmt.Errorf("unknown scale direction %q", s)
}

func (d ScaleDirection) scalesX() bool { return d == ScaleX || d == ScaleXY }
func (d ScaleDirection) scalesY() bool { return d == ScaleY || d == ScaleXY }

// Transform is the concrete affine map built for one update cycle.
type Transform struct {
	Action Action

	// Translation is the drag source's delta for ActionTranslation.
	Translation mgl64.Vec2

	Center mgl64.Vec2
	Angle  float64 // radians, ActionRotation
	ScaleX float64 // ActionScaling
	ScaleY float64

	Matrix geom.Matrix2D
}

// build resolves the pivot and parameters for c. Errors abort the cycle.
func (g *Group) build(c Classification) (Transform, error) {
	src, ok := g.board.Point(c.DragSource)
	if !ok {
		return Transform{}, fmt.Errorf("drag source %q: %w", c.DragSource, ErrStaleMemberReference)
	}
	live := src.Coords()
	before := g.snapshot[c.DragSource]

	switch c.Action {
	case ActionTranslation:
		t := live.Sub(before)
		return Transform{
			Action:      ActionTranslation,
			Translation: t,
			Matrix:      geom.Translate(t.X(), t.Y()),
		}, nil

	case ActionRotation:
		center, err := g.ResolveCenter(g.rotationCenter)
		if err != nil {
			return Transform{}, err
		}
		angle := geom.OrientedAngle(before, center, live)
		return Transform{
			Action: ActionRotation,
			Center: center,
			Angle:  angle,
			Matrix: geom.RotateAbout(angle, center),
		}, nil

	case ActionScaling:
		center, err := g.ResolveCenter(g.scaleCenter)
		if err != nil {
			return Transform{}, err
		}
		d0 := geom.Distance(before, center)
		if math.Abs(d0) < geom.Eps {
			return Transform{}, ErrDegenerateScalePivot
		}
		factor := geom.Distance(live, center) / d0

		dir := g.ScaleDirection(c.DragSource)
		sx, sy := 1.0, 1.0
		if dir.scalesX() {
			sx = factor
		}
		if dir.scalesY() {
			sy = factor
		}
		return Transform{
			Action: ActionScaling,
			Center: center,
			ScaleX: sx,
			ScaleY: sy,
			Matrix: geom.ScaleAbout(sx, sy, center),
		}, nil
	}
	return Transform{}, fmt.Errorf("no transform for action %s", c.Action)
}
