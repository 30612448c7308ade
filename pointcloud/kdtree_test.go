package pointcloud

import (
	"math/rand"
	"sort"
	"testing"

	"go.viam.com/test"
)

func TestKDTreeEmpty(t *testing.T) {
	tree := BuildKDTree(NewPointCloud())
	test.That(t, tree.FindNearest(NewVec3(0, 0, 0)), test.ShouldEqual, -1)
	test.That(t, tree.FindKNearest(NewVec3(0, 0, 0), 3), test.ShouldBeNil)
}

func TestKDTreeFindNearestScenario(t *testing.T) {
	pc := NewPointCloudFromPoints([]Vec3{
		NewVec3(0, 0, 0),
		NewVec3(1, 0, 0),
		NewVec3(0, 1, 0),
		NewVec3(0, 0, 1),
	})
	tree := BuildKDTree(pc)
	idx := tree.FindNearest(NewVec3(0.9, 0.1, 0.1))
	test.That(t, idx, test.ShouldEqual, 1)
}

func bruteForceNearest(pc *PointCloud, q Vec3) int {
	best := -1
	var bestDist float32 = maxFloat32
	for i := 0; i < pc.Size(); i++ {
		d := pc.At(i).Distance(q)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func bruteForceKNearest(pc *PointCloud, q Vec3, k int) []int {
	type pair struct {
		idx  int
		dist float32
	}
	pairs := make([]pair, pc.Size())
	for i := 0; i < pc.Size(); i++ {
		pairs[i] = pair{i, pc.At(i).Distance(q)}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].dist < pairs[j].dist })
	if k > len(pairs) {
		k = len(pairs)
	}
	out := make([]int, k)
	for i := 0; i < k; i++ {
		out[i] = pairs[i].idx
	}
	return out
}

func TestKDTreeMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pts := make([]Vec3, 300)
	for i := range pts {
		pts[i] = NewVec3(rng.Float32()*10-5, rng.Float32()*10-5, rng.Float32()*10-5)
	}
	pc := NewPointCloudFromPoints(pts)
	tree := BuildKDTree(pc)

	for q := 0; q < 20; q++ {
		query := NewVec3(rng.Float32()*10-5, rng.Float32()*10-5, rng.Float32()*10-5)

		gotNearest := tree.FindNearest(query)
		wantNearest := bruteForceNearest(pc, query)
		test.That(t, pc.At(gotNearest).Distance(query), test.ShouldAlmostEqual, pc.At(wantNearest).Distance(query), 1e-4)

		gotK := tree.FindKNearest(query, 8)
		wantK := bruteForceKNearest(pc, query, 8)
		test.That(t, len(gotK), test.ShouldEqual, len(wantK))
		for i := range gotK {
			gd := pc.At(gotK[i]).Distance(query)
			wd := pc.At(wantK[i]).Distance(query)
			test.That(t, gd, test.ShouldAlmostEqual, wd, 1e-4)
		}
	}
}

func TestKDTreeKNearestSortedAscending(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pts := make([]Vec3, 50)
	for i := range pts {
		pts[i] = NewVec3(rng.Float32()*5, rng.Float32()*5, rng.Float32()*5)
	}
	pc := NewPointCloudFromPoints(pts)
	tree := BuildKDTree(pc)

	result := tree.FindKNearest(NewVec3(2.5, 2.5, 2.5), 10)
	for i := 1; i < len(result); i++ {
		prev := pc.At(result[i-1]).Distance(NewVec3(2.5, 2.5, 2.5))
		cur := pc.At(result[i]).Distance(NewVec3(2.5, 2.5, 2.5))
		test.That(t, cur, test.ShouldBeGreaterThanOrEqualTo, prev)
	}
}
