package mesh

// Laplacian smooths m's vertex positions by iters steps of
// p' = p + lambda*(mean(neighbors) - p), building the vertex adjacency
// once and applying every iteration's new positions atomically.
func Laplacian(m *TriangleMesh, iters int, lambda float32) *TriangleMesh {
	out := m.Clone()
	if len(out.Vertices) == 0 {
		return out
	}
	adj := out.VertexAdjacency()
	laplacianStep(out, adj, lambda, iters)
	return out
}

// Taubin applies iters steps of a lambda (shrink) Laplacian pass
// immediately followed by a mu (expand, mu < 0) Laplacian pass, which
// smooths high-frequency noise while resisting the shrinkage a plain
// Laplacian pass accumulates.
func Taubin(m *TriangleMesh, iters int, lambda, mu float32) *TriangleMesh {
	out := m.Clone()
	if len(out.Vertices) == 0 {
		return out
	}
	adj := out.VertexAdjacency()
	for i := 0; i < iters; i++ {
		laplacianStep(out, adj, lambda, 1)
		laplacianStep(out, adj, mu, 1)
	}
	return out
}

// DefaultTaubinLambda and DefaultTaubinMu are the spec's defaults.
const (
	DefaultTaubinLambda float32 = 0.5
	DefaultTaubinMu     float32 = -0.53
)

func laplacianStep(m *TriangleMesh, adj []map[int32]struct{}, lambda float32, iters int) {
	for iter := 0; iter < iters; iter++ {
		next := make([]Vec3, len(m.Vertices))
		for vi, neighbors := range adj {
			p := m.Vertices[vi]
			if len(neighbors) == 0 {
				next[vi] = p
				continue
			}
			var mean Vec3
			for ni := range neighbors {
				mean = mean.Add(m.Vertices[ni])
			}
			mean = mean.Mul(1 / float32(len(neighbors)))
			next[vi] = p.Add(mean.Sub(p).Mul(lambda))
		}
		m.Vertices = next
	}
}
