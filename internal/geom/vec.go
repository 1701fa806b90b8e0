// Package geom holds the 2D vector and affine helpers the board and group
// engine share. Vectors are mgl64.Vec2; matrices are homogeneous mgl64.Mat3.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Eps is the tolerance used to decide whether a coordinate changed.
const Eps = 1e-6

// Distance returns the Euclidean distance between a and b.
func Distance(a, b mgl64.Vec2) float64 {
	return b.Sub(a).Len()
}

// OrientedAngle returns the counter-clockwise angle about center that takes
// from onto to, normalized to [0, 2π). A degenerate arm yields 0.
func OrientedAngle(from, center, to mgl64.Vec2) float64 {
	u := from.Sub(center)
	v := to.Sub(center)
	if u.Len() < Eps || v.Len() < Eps {
		return 0
	}

	angle := math.Atan2(u.X()*v.Y()-u.Y()*v.X(), u.Dot(v))
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// Centroid returns the arithmetic mean of points, or the origin for none.
func Centroid(points []mgl64.Vec2) mgl64.Vec2 {
	if len(points) == 0 {
		return mgl64.Vec2{0, 0}
	}

	var sum mgl64.Vec2
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(points)))
}

// Snap rounds p to the nearest multiple of (sx, sy). Non-positive sizes
// leave that axis unchanged.
func Snap(p mgl64.Vec2, sx, sy float64) mgl64.Vec2 {
	x, y := p.X(), p.Y()
	if sx > 0 {
		x = math.Round(x/sx) * sx
	}
	if sy > 0 {
		y = math.Round(y/sy) * sy
	}
	return mgl64.Vec2{x, y}
}
