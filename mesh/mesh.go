// Package mesh defines triangle-mesh containers and the surface
// reconstruction, simplification, repair, and smoothing kernels that
// operate on them.
package mesh

import (
	"github.com/AdevelopD/3D-Scanning-App/pointcloud"
)

// Vec3 is an alias for the pointcloud package's vector type: meshes
// and point clouds share one vector representation throughout the
// pipeline.
type Vec3 = pointcloud.Vec3

// Triangle is three vertex indices into an enclosing TriangleMesh's
// vertex list. The order (a,b,c) encodes winding: the outward normal
// is (Vb-Va) x (Vc-Va) normalized.
type Triangle struct {
	A, B, C int32
}

// degenerate reports whether the triangle repeats a vertex index.
func (t Triangle) degenerate() bool {
	return t.A == t.B || t.B == t.C || t.A == t.C
}

// indices returns the triangle's three indices as a fixed array, for
// callers that want to iterate without a switch.
func (t Triangle) indices() [3]int32 {
	return [3]int32{t.A, t.B, t.C}
}

// TriangleMesh is a mutable vertex list and triangle-index list.
// Indices are not guaranteed dense or compact; callers that need a
// compacted result (e.g. Decimate) re-index as part of their own
// output construction.
type TriangleMesh struct {
	Vertices  []Vec3
	Triangles []Triangle
}

// NewTriangleMesh returns an empty mesh.
func NewTriangleMesh() *TriangleMesh {
	return &TriangleMesh{}
}

// NewTriangleMeshFrom builds a mesh from caller-owned slices, copying
// them so the caller's slices may be reused.
func NewTriangleMeshFrom(vertices []Vec3, triangles []Triangle) *TriangleMesh {
	m := &TriangleMesh{
		Vertices:  append([]Vec3(nil), vertices...),
		Triangles: append([]Triangle(nil), triangles...),
	}
	return m
}

// Clone returns a deep copy of the mesh.
func (m *TriangleMesh) Clone() *TriangleMesh {
	return NewTriangleMeshFrom(m.Vertices, m.Triangles)
}

// Normal returns the triangle's unnormalized face normal.
func (m *TriangleMesh) Normal(t Triangle) Vec3 {
	va, vb, vc := m.Vertices[t.A], m.Vertices[t.B], m.Vertices[t.C]
	return vb.Sub(va).Cross(vc.Sub(va))
}

// UnitNormal returns the triangle's unit face normal, or the zero
// vector for a degenerate triangle.
func (m *TriangleMesh) UnitNormal(t Triangle) Vec3 {
	return m.Normal(t).Normalize()
}

// Area returns the triangle's area.
func (m *TriangleMesh) Area(t Triangle) float32 {
	return m.Normal(t).Length() * 0.5
}

// BoundingBoxDiagonal returns the length of the mesh's vertex
// bounding-box diagonal, or 0 if the mesh has no vertices.
func (m *TriangleMesh) BoundingBoxDiagonal() float32 {
	if len(m.Vertices) == 0 {
		return 0
	}
	min, max := m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		min = Vec3{X: minf(min.X, v.X), Y: minf(min.Y, v.Y), Z: minf(min.Z, v.Z)}
		max = Vec3{X: maxf(max.X, v.X), Y: maxf(max.Y, v.Y), Z: maxf(max.Z, v.Z)}
	}
	return max.Sub(min).Length()
}

// Centroid returns the mean of the mesh's vertices, or the zero vector
// for an empty mesh.
func (m *TriangleMesh) Centroid() Vec3 {
	if len(m.Vertices) == 0 {
		return Vec3{}
	}
	var sum Vec3
	for _, v := range m.Vertices {
		sum = sum.Add(v)
	}
	return sum.Mul(1 / float32(len(m.Vertices)))
}

// VertexAdjacency builds, for each vertex, the set of distinct
// vertices sharing a triangle with it.
func (m *TriangleMesh) VertexAdjacency() []map[int32]struct{} {
	adj := make([]map[int32]struct{}, len(m.Vertices))
	for i := range adj {
		adj[i] = make(map[int32]struct{})
	}
	link := func(a, b int32) {
		adj[a][b] = struct{}{}
		adj[b][a] = struct{}{}
	}
	for _, t := range m.Triangles {
		link(t.A, t.B)
		link(t.B, t.C)
		link(t.A, t.C)
	}
	return adj
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
