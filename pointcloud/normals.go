package pointcloud

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// fallbackNormal is returned for points whose local neighborhood is
// too sparse to fit a plane.
var fallbackNormal = Vec3{0, 1, 0}

// EstimateNormals computes a per-point unit normal via PCA over each
// point's k nearest neighbors (including itself), then propagates a
// globally-seeded, locally-consistent orientation over the k-NN
// graph. Every returned normal has unit length or equals
// fallbackNormal.
//
// TODO: BFS-over-kNN orientation is known-incorrect on thin sheets
// and handles (spec §9); a Riemannian-MST upgrade is not implemented.
func EstimateNormals(cloud *PointCloud, k int, logger *zap.SugaredLogger) []Vec3 {
	n := cloud.Size()
	normals := make([]Vec3, n)
	for i := range normals {
		normals[i] = fallbackNormal
	}
	if n < 3 {
		if logger != nil {
			logger.Debugw("normal estimation: underdetermined, using fallback normals", "points", n)
		}
		return normals
	}

	tree := BuildKDTree(cloud)
	kk := k
	if kk > n {
		kk = n
	}

	for i := 0; i < n; i++ {
		neighbors := tree.FindKNearest(cloud.At(i), kk)
		if len(neighbors) < 3 {
			continue
		}

		centroid := Vec3{}
		for _, ni := range neighbors {
			centroid = centroid.Add(cloud.At(ni))
		}
		centroid = centroid.Mul(1 / float32(len(neighbors)))

		var sxx, sxy, sxz, syy, syz, szz float64
		for _, ni := range neighbors {
			d := cloud.At(ni).Sub(centroid)
			x, y, z := float64(d.X), float64(d.Y), float64(d.Z)
			sxx += x * x
			sxy += x * y
			sxz += x * z
			syy += y * y
			syz += y * z
			szz += z * z
		}

		scatter := mat.NewSymDense(3, []float64{
			sxx, sxy, sxz,
			sxy, syy, syz,
			sxz, syz, szz,
		})

		var eig mat.EigenSym
		if !eig.Factorize(scatter, true) {
			continue
		}
		values := eig.Values(nil)
		var vectors mat.Dense
		eig.VectorsTo(&vectors)

		// gonum returns eigenvalues ascending already, but don't rely
		// on it: pick the column of the smallest explicitly.
		minIdx := 0
		for j := 1; j < 3; j++ {
			if values[j] < values[minIdx] {
				minIdx = j
			}
		}

		normal := Vec3{
			float32(vectors.At(0, minIdx)),
			float32(vectors.At(1, minIdx)),
			float32(vectors.At(2, minIdx)),
		}.Normalize()
		if normal == (Vec3{}) {
			continue
		}
		normals[i] = normal
	}

	orientNormals(cloud, normals, kk, tree)

	return normals
}

// orientNormals flips each normal to point away from the cloud
// centroid, then propagates local consistency with a BFS over the
// k-NN graph starting from the point farthest from the centroid.
func orientNormals(cloud *PointCloud, normals []Vec3, k int, tree *KDTree) {
	n := cloud.Size()
	if n == 0 {
		return
	}

	centroid := Vec3{}
	for _, p := range cloud.Points() {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Mul(1 / float32(n))

	for i := 0; i < n; i++ {
		toPoint := cloud.At(i).Sub(centroid)
		if normals[i].Dot(toPoint) < 0 {
			normals[i] = normals[i].Mul(-1)
		}
	}

	seed := 0
	var maxDist float32
	for i := 0; i < n; i++ {
		d := cloud.At(i).Distance(centroid)
		if d > maxDist {
			maxDist = d
			seed = i
		}
	}

	visited := make([]bool, n)
	queue := make([]int, 0, n)
	visited[seed] = true
	queue = append(queue, seed)

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]

		neighbors := tree.FindKNearest(cloud.At(idx), k)
		for _, ni := range neighbors {
			if visited[ni] {
				continue
			}
			visited[ni] = true
			if normals[ni].Dot(normals[idx]) < 0 {
				normals[ni] = normals[ni].Mul(-1)
			}
			queue = append(queue, ni)
		}
	}
}
