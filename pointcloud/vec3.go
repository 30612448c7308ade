// Package pointcloud defines oriented point clouds and the spatial
// index, filtering, normal-estimation, and registration kernels that
// operate on them. Its implementation favors clarity over micro
// efficiency; point counts at target scale are in the low millions.
package pointcloud

import (
	"math"

	"github.com/golang/geo/r3"
)

// Vec3 is a three-dimensional vector of 32-bit floats. It is a value
// type: methods never mutate the receiver.
type Vec3 struct {
	X, Y, Z float32
}

// NewVec3 convenience constructor.
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v+w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v-w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Mul returns v scaled by s.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float32 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product v x w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Length returns the Euclidean norm of v.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Normalize returns a unit vector in the direction of v, or the zero
// vector if v is shorter than 1e-8.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < 1e-8 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// Distance returns the Euclidean distance between v and w.
func (v Vec3) Distance(w Vec3) float32 {
	return v.Sub(w).Length()
}

// ToR3 promotes v to a float64 r3.Vector for use by the numerical
// kernels (eigendecomposition, SVD) that need double precision.
func (v Vec3) ToR3() r3.Vector {
	return r3.Vector{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// Vec3FromR3 demotes a float64 r3.Vector back to the spec's 32-bit
// storage type.
func Vec3FromR3(v r3.Vector) Vec3 {
	return Vec3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
