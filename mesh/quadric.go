package mesh

// Quadric is a symmetric 4x4 error matrix, stored as its 10 unique
// scalars, accumulating the sum of squared point-to-plane distances
// for QEM mesh decimation.
type Quadric struct {
	A00, A01, A02, A03 float64
	A11, A12, A13      float64
	A22, A23           float64
	A33                float64
}

// PlaneQuadric builds the quadric for a single plane a*x+b*y+c*z+d=0,
// the outer product of (a,b,c,d) with itself.
func PlaneQuadric(a, b, c, d float64) Quadric {
	return Quadric{
		A00: a * a, A01: a * b, A02: a * c, A03: a * d,
		A11: b * b, A12: b * c, A13: b * d,
		A22: c * c, A23: c * d,
		A33: d * d,
	}
}

// Add returns q+o pointwise.
func (q Quadric) Add(o Quadric) Quadric {
	return Quadric{
		A00: q.A00 + o.A00, A01: q.A01 + o.A01, A02: q.A02 + o.A02, A03: q.A03 + o.A03,
		A11: q.A11 + o.A11, A12: q.A12 + o.A12, A13: q.A13 + o.A13,
		A22: q.A22 + o.A22, A23: q.A23 + o.A23,
		A33: q.A33 + o.A33,
	}
}

// Evaluate returns v^T Q v for v=(x,y,z,1).
func (q Quadric) Evaluate(x, y, z float64) float64 {
	return x*x*q.A00 + 2*x*y*q.A01 + 2*x*z*q.A02 + 2*x*q.A03 +
		y*y*q.A11 + 2*y*z*q.A12 + 2*y*q.A13 +
		z*z*q.A22 + 2*z*q.A23 +
		q.A33
}

// upperLeft3x3 returns the quadric's upper-left 3x3 block, the normal
// matrix of the optimal-position linear system.
func (q Quadric) upperLeft3x3() [3][3]float64 {
	return [3][3]float64{
		{q.A00, q.A01, q.A02},
		{q.A01, q.A11, q.A12},
		{q.A02, q.A12, q.A22},
	}
}

func (q Quadric) rhs() [3]float64 {
	return [3]float64{-q.A03, -q.A13, -q.A23}
}

// det3 returns the determinant of a 3x3 matrix given row-major.
func det3(m [3][3]float64) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// solve3 solves m*x=b via Cramer's rule, returning ok=false if the
// system is (near-)singular.
func solve3(m [3][3]float64, b [3]float64) (x [3]float64, ok bool) {
	det := det3(m)
	if det < 1e-10 && det > -1e-10 {
		return x, false
	}
	col := func(mm [3][3]float64, c int, v [3]float64) [3][3]float64 {
		out := mm
		for r := 0; r < 3; r++ {
			out[r][c] = v[r]
		}
		return out
	}
	x[0] = det3(col(m, 0, b)) / det
	x[1] = det3(col(m, 1, b)) / det
	x[2] = det3(col(m, 2, b)) / det
	return x, true
}
