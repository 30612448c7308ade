package mesh

import (
	"testing"

	"go.viam.com/test"
)

func TestPlaneQuadricEvaluatesZeroOnPlane(t *testing.T) {
	// Plane z=0: a=0,b=0,c=1,d=0.
	q := PlaneQuadric(0, 0, 1, 0)
	test.That(t, q.Evaluate(3, -2, 0), test.ShouldAlmostEqual, 0.0, 1e-9)
	test.That(t, q.Evaluate(3, -2, 5), test.ShouldAlmostEqual, 25.0, 1e-9)
}

func TestQuadricAdd(t *testing.T) {
	a := PlaneQuadric(1, 0, 0, 0)
	b := PlaneQuadric(0, 1, 0, 0)
	sum := a.Add(b)
	test.That(t, sum.A00, test.ShouldEqual, 1.0)
	test.That(t, sum.A11, test.ShouldEqual, 1.0)
}

func TestSolve3Identity(t *testing.T) {
	m := [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	b := [3]float64{2, 3, 4}
	x, ok := solve3(m, b)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, x, test.ShouldResemble, b)
}

func TestSolve3Singular(t *testing.T) {
	m := [3][3]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	_, ok := solve3(m, [3]float64{1, 1, 1})
	test.That(t, ok, test.ShouldBeFalse)
}
