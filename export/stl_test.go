package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"github.com/AdevelopD/3D-Scanning-App/corelog"
	"github.com/AdevelopD/3D-Scanning-App/mesh"
)

func oneTriangleMesh() *mesh.TriangleMesh {
	return mesh.NewTriangleMeshFrom(
		[]mesh.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		[]mesh.Triangle{{A: 0, B: 1, C: 2}},
	)
}

func TestSTLBinaryOneTriangleIsExactly134Bytes(t *testing.T) {
	m := oneTriangleMesh()
	path := filepath.Join(t.TempDir(), "one.stl")

	ok := STLBinary(m, path, corelog.NewTestLogger(t))
	test.That(t, ok, test.ShouldBeTrue)

	info, err := os.Stat(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.Size(), test.ShouldEqual, int64(80+4+50))
}

func TestSTLBinaryTriangleCountScalesFileSize(t *testing.T) {
	v := []mesh.Vec3{{X: 0}, {X: 1}, {X: 2}, {X: 3}}
	tris := []mesh.Triangle{{A: 0, B: 1, C: 2}, {A: 0, B: 2, C: 3}}
	m := mesh.NewTriangleMeshFrom(v, tris)
	path := filepath.Join(t.TempDir(), "two.stl")

	ok := STLBinary(m, path, corelog.NewTestLogger(t))
	test.That(t, ok, test.ShouldBeTrue)

	info, err := os.Stat(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.Size(), test.ShouldEqual, int64(80+4+2*50))
}

func TestSTLBinaryOpenFailureReturnsFalse(t *testing.T) {
	m := oneTriangleMesh()
	ok := STLBinary(m, filepath.Join(t.TempDir(), "missing-dir", "x.stl"), nil)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestSTLASCIIContainsSolidWrapper(t *testing.T) {
	m := oneTriangleMesh()
	path := filepath.Join(t.TempDir(), "one.stl.txt")

	ok := STLASCII(m, path, corelog.NewTestLogger(t))
	test.That(t, ok, test.ShouldBeTrue)

	data, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	content := string(data)
	test.That(t, strings.HasPrefix(content, "solid mesh\n"), test.ShouldBeTrue)
	test.That(t, strings.Contains(content, "endsolid mesh\n"), test.ShouldBeTrue)
	test.That(t, strings.Count(content, "facet normal"), test.ShouldEqual, 1)
}
