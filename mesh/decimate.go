package mesh

import (
	"container/heap"

	"go.uber.org/zap"
)

type edgeKey struct {
	u, v int32
}

func makeEdgeKey(a, b int32) edgeKey {
	if a < b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

// collapseCandidate is one heap entry for an edge collapse. version is
// the sum of the two endpoints' versions at insertion time; a pop
// whose version no longer matches the live sum is stale and discarded.
type collapseCandidate struct {
	u, v     int32
	cost     float64
	target   [3]float64
	version  int
}

type collapseHeap []collapseCandidate

func (h collapseHeap) Len() int            { return len(h) }
func (h collapseHeap) Less(i, j int) bool  { return h[i].cost < h[j].cost }
func (h collapseHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *collapseHeap) Push(x interface{}) { *h = append(*h, x.(collapseCandidate)) }
func (h *collapseHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Decimate simplifies m via quadric-error-metric edge collapse until
// at most targetTriangles triangles remain (or the heap is exhausted).
// If m already has targetTriangles or fewer triangles it is returned
// unchanged.
func Decimate(m *TriangleMesh, targetTriangles int, logger *zap.SugaredLogger) *TriangleMesh {
	if len(m.Triangles) <= targetTriangles {
		if logger != nil {
			logger.Debugw("decimate: already at or below target", "triangles", len(m.Triangles), "target", targetTriangles)
		}
		return m.Clone()
	}

	nv := len(m.Vertices)
	quadrics := make([]Quadric, nv)
	vertTris := make([]map[int]struct{}, nv)
	for i := range vertTris {
		vertTris[i] = make(map[int]struct{})
	}
	valid := make([]bool, len(m.Triangles))
	version := make([]int, nv)
	vertices := make([][3]float64, nv)
	for i, v := range m.Vertices {
		vertices[i] = [3]float64{float64(v.X), float64(v.Y), float64(v.Z)}
	}
	invalidVertex := make([]bool, nv)

	for ti, t := range m.Triangles {
		if t.degenerate() {
			continue
		}
		valid[ti] = true
		n := m.Normal(t).Normalize()
		a, b, c := float64(n.X), float64(n.Y), float64(n.Z)
		va := m.Vertices[t.A]
		d := -(a*float64(va.X) + b*float64(va.Y) + c*float64(va.Z))
		pq := PlaneQuadric(a, b, c, d)
		for _, vi := range t.indices() {
			quadrics[vi] = quadrics[vi].Add(pq)
			vertTris[vi][ti] = struct{}{}
		}
	}

	activeTriangles := 0
	for _, v := range valid {
		if v {
			activeTriangles++
		}
	}

	h := &collapseHeap{}
	heap.Init(h)

	pushEdgesOf := func(vi int32) {
		seen := make(map[int32]struct{})
		for ti := range vertTris[vi] {
			if !valid[ti] {
				continue
			}
			for _, other := range m.Triangles[ti].indices() {
				if other == vi {
					continue
				}
				if _, dup := seen[other]; dup {
					continue
				}
				seen[other] = struct{}{}
				pushEdge(h, vi, other, quadrics, vertices, version)
			}
		}
	}

	for vi := int32(0); vi < int32(nv); vi++ {
		pushEdgesOf(vi)
	}

	for activeTriangles > targetTriangles && h.Len() > 0 {
		cand := heap.Pop(h).(collapseCandidate)
		u, v := cand.u, cand.v
		if invalidVertex[u] || invalidVertex[v] {
			continue
		}
		if cand.version != version[u]+version[v] {
			continue
		}

		quadrics[u] = quadrics[u].Add(quadrics[v])
		vertices[u] = cand.target
		version[u]++
		invalidVertex[v] = true

		for ti := range vertTris[v] {
			if !valid[ti] {
				continue
			}
			t := &m.Triangles[ti]
			if t.A == v {
				t.A = u
			}
			if t.B == v {
				t.B = u
			}
			if t.C == v {
				t.C = u
			}
			if t.degenerate() {
				valid[ti] = false
				activeTriangles--
				delete(vertTris[t.A], ti)
				delete(vertTris[t.B], ti)
				delete(vertTris[t.C], ti)
				continue
			}
			vertTris[u][ti] = struct{}{}
		}
		vertTris[v] = nil

		pushEdgesOf(u)
	}

	out := NewTriangleMesh()
	newIndex := make([]int32, nv)
	for i := range newIndex {
		newIndex[i] = -1
	}
	for ti, t := range m.Triangles {
		if !valid[ti] {
			continue
		}
		for _, vi := range t.indices() {
			if newIndex[vi] == -1 {
				newIndex[vi] = int32(len(out.Vertices))
				p := vertices[vi]
				out.Vertices = append(out.Vertices, Vec3{X: float32(p[0]), Y: float32(p[1]), Z: float32(p[2])})
			}
		}
		out.Triangles = append(out.Triangles, Triangle{A: newIndex[t.A], B: newIndex[t.B], C: newIndex[t.C]})
	}

	if logger != nil {
		logger.Debugw("decimate: complete", "inputTriangles", len(m.Triangles), "outputTriangles", len(out.Triangles), "target", targetTriangles)
	}
	return out
}

// pushEdge computes the optimal collapse position and cost for edge
// (u,v) and pushes it onto the heap, keyed by the endpoints' current
// version sum.
func pushEdge(h *collapseHeap, u, v int32, quadrics []Quadric, vertices [][3]float64, version []int) {
	q := quadrics[u].Add(quadrics[v])
	mid := [3]float64{
		(vertices[u][0] + vertices[v][0]) / 2,
		(vertices[u][1] + vertices[v][1]) / 2,
		(vertices[u][2] + vertices[v][2]) / 2,
	}

	target := mid
	if sol, ok := solve3(q.upperLeft3x3(), q.rhs()); ok {
		edgeLen := dist3(vertices[u], vertices[v])
		if dist3(sol, mid) <= 9*edgeLen || edgeLen == 0 {
			target = sol
		}
	}

	cost := q.Evaluate(target[0], target[1], target[2])
	heap.Push(h, collapseCandidate{
		u: u, v: v,
		cost:    cost,
		target:  target,
		version: version[u] + version[v],
	})
}

func dist3(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return dx*dx + dy*dy + dz*dz
}
