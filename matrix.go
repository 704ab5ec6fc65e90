package osd

import "math"

// Matrix is a 2D affine transformation with components (a, b, c, d, tx, ty)
// in the convention
//
//	x' = a*x + c*y + tx
//	y' = b*x + d*y + ty
//
// Matrices are plain values; composition and inversion return new values.
type Matrix struct {
	A, B, C, D, TX, TY float64
}

// Identity returns the identity transformation.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Translation returns a translation by (tx, ty).
func Translation(tx, ty float64) Matrix {
	return Matrix{A: 1, D: 1, TX: tx, TY: ty}
}

// Scaling returns a scale by (sx, sy).
func Scaling(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// Rotation returns a rotation by the given angle in radians.
func Rotation(radians float64) Matrix {
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	return Matrix{A: cos, B: sin, C: -sin, D: cos}
}

// Concat composes two transforms: the result applies other first, then m.
func (m Matrix) Concat(other Matrix) Matrix {
	return Matrix{
		A:  m.A*other.A + m.C*other.B,
		B:  m.B*other.A + m.D*other.B,
		C:  m.A*other.C + m.C*other.D,
		D:  m.B*other.C + m.D*other.D,
		TX: m.A*other.TX + m.C*other.TY + m.TX,
		TY: m.B*other.TX + m.D*other.TY + m.TY,
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.TX, m.B*x + m.D*y + m.TY
}

// Invert returns the inverse transform. The second result is false when the
// matrix is singular (|det| < 1e-10); the first is then undefined.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.A*m.D - m.B*m.C
	if math.Abs(det) < 1e-10 {
		return Matrix{}, false
	}
	inv := 1.0 / det
	return Matrix{
		A:  m.D * inv,
		B:  -m.B * inv,
		C:  -m.C * inv,
		D:  m.A * inv,
		TX: (m.C*m.TY - m.D*m.TX) * inv,
		TY: (m.B*m.TX - m.A*m.TY) * inv,
	}, true
}

// IsIdentity reports whether m is exactly the identity transform.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 1 && m.TX == 0 && m.TY == 0
}
