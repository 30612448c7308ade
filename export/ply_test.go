package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"github.com/AdevelopD/3D-Scanning-App/corelog"
)

func TestPLYBinaryHeaderDeclaresCounts(t *testing.T) {
	m := oneTriangleMesh()
	path := filepath.Join(t.TempDir(), "one.ply")

	ok := PLYBinary(m, path, corelog.NewTestLogger(t))
	test.That(t, ok, test.ShouldBeTrue)

	data, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)

	idx := strings.Index(string(data), "end_header\n")
	test.That(t, idx, test.ShouldBeGreaterThan, 0)
	header := string(data[:idx])
	test.That(t, strings.Contains(header, "element vertex 3\n"), test.ShouldBeTrue)
	test.That(t, strings.Contains(header, "element face 1\n"), test.ShouldBeTrue)
	test.That(t, strings.Contains(header, "format binary_little_endian 1.0\n"), test.ShouldBeTrue)

	payload := data[idx+len("end_header\n"):]
	test.That(t, len(payload), test.ShouldEqual, 3*12+1*13)
}

func TestPLYBinaryOpenFailureReturnsFalse(t *testing.T) {
	m := oneTriangleMesh()
	ok := PLYBinary(m, filepath.Join(t.TempDir(), "missing-dir", "x.ply"), nil)
	test.That(t, ok, test.ShouldBeFalse)
}
