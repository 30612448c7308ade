package pointcloud

import (
	"math/rand"
	"testing"

	"go.viam.com/test"

	"github.com/AdevelopD/3D-Scanning-App/corelog"
)

func TestEstimateNormalsOnPlane(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	pts := make([]Vec3, 100)
	for i := range pts {
		pts[i] = NewVec3(rng.Float32()*10-5, rng.Float32()*10-5, 0)
	}
	pc := NewPointCloudFromPoints(pts)

	normals := EstimateNormals(pc, 10, corelog.NewTestLogger(t))
	test.That(t, len(normals), test.ShouldEqual, pc.Size())

	for _, n := range normals {
		test.That(t, n.X, test.ShouldAlmostEqual, float32(0), 1e-3)
		test.That(t, n.Y, test.ShouldAlmostEqual, float32(0), 1e-3)
		absZ := n.Z
		if absZ < 0 {
			absZ = -absZ
		}
		test.That(t, absZ, test.ShouldAlmostEqual, float32(1), 1e-3)
	}

	// After orientation all normals must agree in sign.
	sign := normals[0].Z
	for _, n := range normals {
		test.That(t, n.Z*sign, test.ShouldBeGreaterThan, float32(0))
	}
}

func TestEstimateNormalsUnitLengthOrFallback(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pts := make([]Vec3, 60)
	for i := range pts {
		pts[i] = NewVec3(rng.Float32()*4-2, rng.Float32()*4-2, rng.Float32()*4-2)
	}
	pc := NewPointCloudFromPoints(pts)
	normals := EstimateNormals(pc, 8, corelog.NewTestLogger(t))
	for _, n := range normals {
		l := n.Length()
		isUnit := l > 1-1e-4 && l < 1+1e-4
		isFallback := n == fallbackNormal
		test.That(t, isUnit || isFallback, test.ShouldBeTrue)
	}
}

func TestEstimateNormalsUnderdetermined(t *testing.T) {
	pc := NewPointCloudFromPoints([]Vec3{NewVec3(0, 0, 0), NewVec3(1, 0, 0)})
	normals := EstimateNormals(pc, 5, corelog.NewTestLogger(t))
	test.That(t, len(normals), test.ShouldEqual, 2)
	test.That(t, normals[0], test.ShouldResemble, fallbackNormal)
}
