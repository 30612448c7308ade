package export

import (
	"bufio"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/AdevelopD/3D-Scanning-App/mesh"
)

// OBJ writes m to path in Wavefront OBJ format: one "v" line per
// vertex, one "vn" line per vertex holding the average of its
// incident face normals, and one "f a//a b//b c//c" line per triangle
// with 1-based indices.
func OBJ(m *mesh.TriangleMesh, path string, logger *zap.SugaredLogger) bool {
	f, err := os.Create(path)
	if err != nil {
		if logger != nil {
			logger.Errorw("obj: open failed", "path", path, "error", err)
		}
		return false
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	vertexNormals := averageVertexNormals(m)

	for _, v := range m.Vertices {
		fmt.Fprintf(w, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, n := range vertexNormals {
		fmt.Fprintf(w, "vn %g %g %g\n", n.X, n.Y, n.Z)
	}
	for _, t := range m.Triangles {
		a, b, c := t.A+1, t.B+1, t.C+1
		fmt.Fprintf(w, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}

	if err := w.Flush(); err != nil {
		if logger != nil {
			logger.Errorw("obj: flush failed", "path", path, "error", err)
		}
		return false
	}
	return true
}

// averageVertexNormals sums each triangle's unit face normal into the
// normal of its three vertices, then normalizes.
func averageVertexNormals(m *mesh.TriangleMesh) []mesh.Vec3 {
	sums := make([]mesh.Vec3, len(m.Vertices))
	for _, t := range m.Triangles {
		n := m.UnitNormal(t)
		sums[t.A] = sums[t.A].Add(n)
		sums[t.B] = sums[t.B].Add(n)
		sums[t.C] = sums[t.C].Add(n)
	}
	for i, s := range sums {
		sums[i] = s.Normalize()
	}
	return sums
}
