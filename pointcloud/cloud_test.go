package pointcloud

import (
	"testing"

	"go.viam.com/test"
)

func TestPointCloudBasic(t *testing.T) {
	pc := NewPointCloud()
	test.That(t, pc.Size(), test.ShouldEqual, 0)

	pc.Append(NewVec3(1, 2, 3))
	pc.Append(NewVec3(-1, 5, 0))
	test.That(t, pc.Size(), test.ShouldEqual, 2)
	test.That(t, pc.At(0), test.ShouldResemble, NewVec3(1, 2, 3))
	test.That(t, pc.At(1), test.ShouldResemble, NewVec3(-1, 5, 0))

	meta := pc.MetaData()
	test.That(t, meta.MinX, test.ShouldEqual, float32(-1))
	test.That(t, meta.MaxX, test.ShouldEqual, float32(1))
	test.That(t, meta.MinY, test.ShouldEqual, float32(2))
	test.That(t, meta.MaxY, test.ShouldEqual, float32(5))
}

func TestPointCloudClone(t *testing.T) {
	pc := NewPointCloudFromPoints([]Vec3{NewVec3(0, 0, 0), NewVec3(1, 1, 1)})
	clone := pc.Clone()
	test.That(t, clone.Size(), test.ShouldEqual, pc.Size())
	clone.Append(NewVec3(9, 9, 9))
	test.That(t, pc.Size(), test.ShouldEqual, 2)
	test.That(t, clone.Size(), test.ShouldEqual, 3)
}

func TestBoundingBoxDiagonal(t *testing.T) {
	empty := NewPointCloud()
	test.That(t, empty.BoundingBoxDiagonal(), test.ShouldEqual, float32(0))

	pc := NewPointCloudFromPoints([]Vec3{NewVec3(0, 0, 0), NewVec3(3, 4, 0)})
	test.That(t, pc.BoundingBoxDiagonal(), test.ShouldEqual, float32(5))
}

func TestVec3Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)
	test.That(t, a.Add(b), test.ShouldResemble, NewVec3(5, 7, 9))
	test.That(t, b.Sub(a), test.ShouldResemble, NewVec3(3, 3, 3))
	test.That(t, a.Dot(b), test.ShouldEqual, float32(32))
	test.That(t, a.Mul(2), test.ShouldResemble, NewVec3(2, 4, 6))

	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	test.That(t, x.Cross(y), test.ShouldResemble, NewVec3(0, 0, 1))

	zero := Vec3{}
	test.That(t, zero.Normalize(), test.ShouldResemble, Vec3{})

	unit := NewVec3(5, 0, 0).Normalize()
	test.That(t, unit.X, test.ShouldEqual, float32(1))
}
