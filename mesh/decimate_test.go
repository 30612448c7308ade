package mesh

import (
	"testing"

	"go.viam.com/test"

	"github.com/AdevelopD/3D-Scanning-App/corelog"
)

func TestDecimateClosedSolidToTarget(t *testing.T) {
	m := hexagonalBipyramid()
	test.That(t, len(m.Triangles), test.ShouldEqual, 12)

	out := Decimate(m, 8, corelog.NewTestLogger(t))
	tolerance := 0.05 * 8
	test.That(t, len(out.Triangles), test.ShouldBeLessThanOrEqualTo, 8+int(tolerance))

	for _, tri := range out.Triangles {
		test.That(t, tri.degenerate(), test.ShouldBeFalse)
		for _, idx := range tri.indices() {
			test.That(t, idx, test.ShouldBeGreaterThanOrEqualTo, int32(0))
			test.That(t, idx, test.ShouldBeLessThan, int32(len(out.Vertices)))
		}
	}
}

func TestDecimateAlreadyAtTargetReturnsUnchanged(t *testing.T) {
	m := hexagonalBipyramid()
	out := Decimate(m, 20, corelog.NewTestLogger(t))
	test.That(t, len(out.Triangles), test.ShouldEqual, len(m.Triangles))
}

func TestDecimateCompactsIndices(t *testing.T) {
	m := hexagonalBipyramid()
	out := Decimate(m, 4, corelog.NewTestLogger(t))
	seen := make(map[int32]bool)
	for _, tri := range out.Triangles {
		for _, idx := range tri.indices() {
			seen[idx] = true
		}
	}
	test.That(t, len(seen), test.ShouldEqual, len(out.Vertices))
}
