package mesh

import (
	"testing"

	"go.viam.com/test"

	"github.com/AdevelopD/3D-Scanning-App/corelog"
)

func TestRemoveDegenerate(t *testing.T) {
	// Non-collinear vertices: only the repeated-index triangle is degenerate.
	m := NewTriangleMeshFrom(
		[]Vec3{{X: 0}, {X: 1}, {Y: 1}},
		[]Triangle{{A: 0, B: 1, C: 2}, {A: 0, B: 0, C: 1}},
	)
	out, removed := RemoveDegenerate(m)
	test.That(t, removed, test.ShouldEqual, 1)
	test.That(t, len(out.Triangles), test.ShouldEqual, 1)

	again, removedAgain := RemoveDegenerate(out)
	test.That(t, removedAgain, test.ShouldEqual, 0)
	test.That(t, len(again.Triangles), test.ShouldEqual, 1)
}

func TestVertexWeldMergesNearDuplicates(t *testing.T) {
	m := NewTriangleMeshFrom(
		[]Vec3{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}},
		[]Triangle{{A: 0, B: 1, C: 2}},
	)
	out, welded := VertexWeld(m)
	test.That(t, welded, test.ShouldEqual, 1)
	test.That(t, len(out.Vertices), test.ShouldEqual, 2)
	// The welded triangle is degenerate (two indices now coincide) and dropped.
	test.That(t, len(out.Triangles), test.ShouldEqual, 0)
}

func TestMakeManifoldTruncatesOverusedEdge(t *testing.T) {
	// Three triangles all sharing edge (0,1).
	m := NewTriangleMeshFrom(
		[]Vec3{{X: 0}, {X: 1}, {X: 2}, {X: 3}, {X: 4}},
		[]Triangle{
			{A: 0, B: 1, C: 2},
			{A: 0, B: 1, C: 3},
			{A: 0, B: 1, C: 4},
		},
	)
	out, fixed := MakeManifold(m)
	test.That(t, fixed, test.ShouldEqual, 1)
	test.That(t, len(out.Triangles), test.ShouldEqual, 2)

	usage := make(map[edgeKey]int)
	for _, tri := range out.Triangles {
		usage[makeEdgeKey(tri.A, tri.B)]++
		usage[makeEdgeKey(tri.B, tri.C)]++
		usage[makeEdgeKey(tri.A, tri.C)]++
	}
	for _, count := range usage {
		test.That(t, count, test.ShouldBeLessThanOrEqualTo, 2)
	}
}

func TestFillHolesOnSphereMissingOneFace(t *testing.T) {
	full := hexagonalBipyramid()
	withHole := NewTriangleMeshFrom(full.Vertices, full.Triangles[1:])

	repaired, holes := FillHoles(withHole)
	test.That(t, holes, test.ShouldEqual, 1)

	edgeUse := make(map[edgeKey]int)
	for _, tri := range repaired.Triangles {
		edgeUse[makeEdgeKey(tri.A, tri.B)]++
		edgeUse[makeEdgeKey(tri.B, tri.C)]++
		edgeUse[makeEdgeKey(tri.A, tri.C)]++
	}
	for _, count := range edgeUse {
		test.That(t, count, test.ShouldEqual, 2)
	}
}

func TestOrientNormalsMajorityOutward(t *testing.T) {
	m := hexagonalBipyramid()
	// Flip every triangle so the mesh starts inward-facing.
	for i, tri := range m.Triangles {
		m.Triangles[i] = Triangle{A: tri.A, B: tri.C, C: tri.B}
	}
	out, _, globalFlip := OrientNormals(m)
	test.That(t, globalFlip, test.ShouldBeTrue)

	centroid := out.Centroid()
	for _, tri := range out.Triangles {
		n := out.UnitNormal(tri)
		toCentroid := centroid.Sub(out.Vertices[tri.A])
		test.That(t, n.Dot(toCentroid), test.ShouldBeLessThanOrEqualTo, float32(0))
	}
}

func TestRepairAllPasses(t *testing.T) {
	m := hexagonalBipyramid()
	repaired, stats := Repair(m, corelog.NewTestLogger(t))
	test.That(t, stats.DegenerateRemoved, test.ShouldEqual, 0)
	test.That(t, len(repaired.Triangles), test.ShouldBeGreaterThan, 0)
}
