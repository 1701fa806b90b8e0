package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Matrix2D is a homogeneous 2D affine transformation stored column-major.
// Layout (as an mgl64.Mat3):
// | m0  m3  m6 |
// | m1  m4  m7 |
// | 0   0   1  |
//
// Where:
// - m0, m4 = scale
// - m1, m3 = skew/rotation
// - m6, m7 = translation
type Matrix2D mgl64.Mat3

// Identity returns the identity matrix.
func Identity() Matrix2D {
	return Matrix2D(mgl64.Ident3())
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix2D {
	return Matrix2D(mgl64.Translate2D(tx, ty))
}

// Scale returns a scale matrix.
func Scale(sx, sy float64) Matrix2D {
	return Matrix2D(mgl64.Scale2D(sx, sy))
}

// Rotate returns a counter-clockwise rotation matrix (angle in radians).
func Rotate(radians float64) Matrix2D {
	return Matrix2D(mgl64.HomogRotate2D(radians))
}

// RotateDegrees returns a rotation matrix (angle in degrees).
func RotateDegrees(degrees float64) Matrix2D {
	return Rotate(mgl64.DegToRad(degrees))
}

// RotateAbout returns the rigid rotation by radians around center.
func RotateAbout(radians float64, center mgl64.Vec2) Matrix2D {
	return Translate(center.X(), center.Y()).
		Multiply(Rotate(radians)).
		Multiply(Translate(-center.X(), -center.Y()))
}

// ScaleAbout returns the anisotropic scale by (sx, sy) around center:
// translate by -center, scale, translate back.
func ScaleAbout(sx, sy float64, center mgl64.Vec2) Matrix2D {
	return Translate(center.X(), center.Y()).
		Multiply(Scale(sx, sy)).
		Multiply(Translate(-center.X(), -center.Y()))
}

// Multiply multiplies this matrix by another: result = m * other
// This applies 'other' first, then 'm'.
func (m Matrix2D) Multiply(other Matrix2D) Matrix2D {
	return Matrix2D(mgl64.Mat3(m).Mul3(mgl64.Mat3(other)))
}

// TransformPoint applies the matrix to a point.
func (m Matrix2D) TransformPoint(p mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Mat3(m).Mul3x1(p.Vec3(1)).Vec2()
}

// Determinant returns the determinant of the linear part.
func (m Matrix2D) Determinant() float64 {
	return m[0]*m[4] - m[1]*m[3]
}

// Invert returns the inverse of the matrix, or Identity if not invertible.
func (m Matrix2D) Invert() Matrix2D {
	if m.Determinant() == 0 {
		return Identity()
	}
	return Matrix2D(mgl64.Mat3(m).Inv())
}

// ToSlice returns the matrix as [a, b, c, d, e, f] in canvas order:
// x' = a*x + c*y + e, y' = b*x + d*y + f.
func (m Matrix2D) ToSlice() []float64 {
	return []float64{m[0], m[1], m[3], m[4], m[6], m[7]}
}

// IsIdentity checks if this is the identity matrix (within epsilon).
func (m Matrix2D) IsIdentity() bool {
	return m.ApproxEqual(Identity(), 1e-10)
}

// ApproxEqual compares both matrices element-wise within eps.
func (m Matrix2D) ApproxEqual(other Matrix2D, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) > eps {
			return false
		}
	}
	return true
}
