package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"github.com/AdevelopD/3D-Scanning-App/corelog"
)

func TestOBJWritesVerticesNormalsAndFaces(t *testing.T) {
	m := oneTriangleMesh()
	path := filepath.Join(t.TempDir(), "one.obj")

	ok := OBJ(m, path, corelog.NewTestLogger(t))
	test.That(t, ok, test.ShouldBeTrue)

	data, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	var vCount, vnCount, fCount int
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "v "):
			vCount++
		case strings.HasPrefix(line, "vn "):
			vnCount++
		case strings.HasPrefix(line, "f "):
			fCount++
			test.That(t, line, test.ShouldEqual, "f 1//1 2//2 3//3")
		}
	}
	test.That(t, vCount, test.ShouldEqual, 3)
	test.That(t, vnCount, test.ShouldEqual, 3)
	test.That(t, fCount, test.ShouldEqual, 1)
}

func TestAverageVertexNormalsAreUnitLength(t *testing.T) {
	m := oneTriangleMesh()
	normals := averageVertexNormals(m)
	test.That(t, len(normals), test.ShouldEqual, 3)
	for _, n := range normals {
		l := n.Length()
		test.That(t, l, test.ShouldBeGreaterThan, float32(0.99))
		test.That(t, l, test.ShouldBeLessThan, float32(1.01))
	}
}
