package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func vec2AlmostEqual(a, b mgl64.Vec2, eps float64) bool {
	return math.Abs(a.X()-b.X()) < eps && math.Abs(a.Y()-b.Y()) < eps
}

// =============================================================================
// Vector helpers
// =============================================================================

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(mgl64.Vec2{0, 0}, mgl64.Vec2{3, 4}), 1e-12)
	assert.InDelta(t, 0.0, Distance(mgl64.Vec2{1, 1}, mgl64.Vec2{1, 1}), 1e-12)
}

func TestOrientedAngle(t *testing.T) {
	tests := []struct {
		name     string
		from     mgl64.Vec2
		center   mgl64.Vec2
		to       mgl64.Vec2
		expected float64
	}{
		{"quarter turn", mgl64.Vec2{1, 0}, mgl64.Vec2{0, 0}, mgl64.Vec2{0, 1}, math.Pi / 2},
		{"clockwise quarter", mgl64.Vec2{0, 1}, mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, 3 * math.Pi / 2},
		{"half turn", mgl64.Vec2{2, 1}, mgl64.Vec2{1, 1}, mgl64.Vec2{0, 1}, math.Pi},
		{"no turn", mgl64.Vec2{1, 0}, mgl64.Vec2{0, 0}, mgl64.Vec2{5, 0}, 0},
		{"degenerate arm", mgl64.Vec2{0, 0}, mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, OrientedAngle(tt.from, tt.center, tt.to), 1e-12)
		})
	}
}

func TestCentroid(t *testing.T) {
	square := []mgl64.Vec2{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	assert.True(t, vec2AlmostEqual(Centroid(square), mgl64.Vec2{1, 1}, 1e-12))
	assert.Equal(t, mgl64.Vec2{0, 0}, Centroid(nil))
}

func TestSnap(t *testing.T) {
	assert.Equal(t, mgl64.Vec2{2, 0.5}, Snap(mgl64.Vec2{2.3, 0.6}, 1, 0.5))
	assert.Equal(t, mgl64.Vec2{2.3, 0.6}, Snap(mgl64.Vec2{2.3, 0.6}, 0, 0))
}

// =============================================================================
// Matrix2D
// =============================================================================

func TestMatrix2D_Translate(t *testing.T) {
	p := Translate(3, -2).TransformPoint(mgl64.Vec2{1, 1})
	assert.True(t, vec2AlmostEqual(p, mgl64.Vec2{4, -1}, 1e-12), "got %v", p)
}

func TestMatrix2D_RotateAbout(t *testing.T) {
	m := RotateAbout(math.Pi/2, mgl64.Vec2{1, 1})

	p := m.TransformPoint(mgl64.Vec2{2, 1})
	assert.True(t, vec2AlmostEqual(p, mgl64.Vec2{1, 2}, 1e-12), "got %v", p)

	center := m.TransformPoint(mgl64.Vec2{1, 1})
	assert.True(t, vec2AlmostEqual(center, mgl64.Vec2{1, 1}, 1e-12), "center moved to %v", center)
}

func TestMatrix2D_ScaleAbout(t *testing.T) {
	m := ScaleAbout(2, 1, mgl64.Vec2{1, 1})

	p := m.TransformPoint(mgl64.Vec2{3, 3})
	assert.True(t, vec2AlmostEqual(p, mgl64.Vec2{5, 3}, 1e-12), "got %v", p)
}

func TestMatrix2D_MultiplyOrder(t *testing.T) {
	// Scale first, then translate.
	m := Translate(10, 0).Multiply(Scale(2, 2))
	p := m.TransformPoint(mgl64.Vec2{1, 1})
	assert.True(t, vec2AlmostEqual(p, mgl64.Vec2{12, 2}, 1e-12), "got %v", p)
}

func TestMatrix2D_Invert(t *testing.T) {
	m := RotateAbout(0.7, mgl64.Vec2{3, -1}).Multiply(Scale(2, 3))
	assert.True(t, m.Multiply(m.Invert()).IsIdentity())

	singular := Scale(0, 1)
	assert.True(t, singular.Invert().IsIdentity())
}

func TestMatrix2D_ToSlice(t *testing.T) {
	m := Translate(5, 6).Multiply(RotateDegrees(90))
	got := m.ToSlice()
	want := []float64{0, 1, -1, 0, 5, 6}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12, "index %d", i)
	}
}
