// Package export writes TriangleMesh geometry to the three external
// file formats the host runtime consumes: STL (binary/ASCII), OBJ,
// and PLY binary. Every writer returns a bool per the spec's
// sentinel-value error model: false on any open/write failure, no
// panics cross this boundary.
package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"go.uber.org/zap"

	"github.com/AdevelopD/3D-Scanning-App/mesh"
)

func putVec3(b []byte, v mesh.Vec3) {
	binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(b[8:12], math.Float32bits(v.Z))
}

// STLBinary writes m to path as a binary STL file: an 80-byte header,
// a uint32 triangle count, then per triangle {normal, 3 vertices,
// zero attribute byte count}, all little-endian.
func STLBinary(m *mesh.TriangleMesh, path string, logger *zap.SugaredLogger) bool {
	f, err := os.Create(path)
	if err != nil {
		if logger != nil {
			logger.Errorw("stl binary: open failed", "path", path, "error", err)
		}
		return false
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	var header [80]byte
	copy(header[:], "binary STL export")
	if _, err := w.Write(header[:]); err != nil {
		return false
	}

	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(len(m.Triangles)))
	if _, err := w.Write(countBuf[:]); err != nil {
		return false
	}

	var rec [50]byte
	for _, t := range m.Triangles {
		n := m.UnitNormal(t)
		putVec3(rec[0:12], n)
		putVec3(rec[12:24], m.Vertices[t.A])
		putVec3(rec[24:36], m.Vertices[t.B])
		putVec3(rec[36:48], m.Vertices[t.C])
		binary.LittleEndian.PutUint16(rec[48:50], 0)
		if _, err := w.Write(rec[:]); err != nil {
			if logger != nil {
				logger.Errorw("stl binary: write failed", "path", path, "error", err)
			}
			return false
		}
	}

	if err := w.Flush(); err != nil {
		if logger != nil {
			logger.Errorw("stl binary: flush failed", "path", path, "error", err)
		}
		return false
	}
	return true
}

// STLASCII writes m to path as an ASCII STL file: solid/endsolid
// wrapping one facet block per triangle.
func STLASCII(m *mesh.TriangleMesh, path string, logger *zap.SugaredLogger) bool {
	f, err := os.Create(path)
	if err != nil {
		if logger != nil {
			logger.Errorw("stl ascii: open failed", "path", path, "error", err)
		}
		return false
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "solid mesh\n")
	for _, t := range m.Triangles {
		n := m.UnitNormal(t)
		a, b, c := m.Vertices[t.A], m.Vertices[t.B], m.Vertices[t.C]
		fmt.Fprintf(w, "  facet normal %g %g %g\n", n.X, n.Y, n.Z)
		fmt.Fprintf(w, "    outer loop\n")
		fmt.Fprintf(w, "      vertex %g %g %g\n", a.X, a.Y, a.Z)
		fmt.Fprintf(w, "      vertex %g %g %g\n", b.X, b.Y, b.Z)
		fmt.Fprintf(w, "      vertex %g %g %g\n", c.X, c.Y, c.Z)
		fmt.Fprintf(w, "    endloop\n")
		fmt.Fprintf(w, "  endfacet\n")
	}
	fmt.Fprintf(w, "endsolid mesh\n")

	if err := w.Flush(); err != nil {
		if logger != nil {
			logger.Errorw("stl ascii: flush failed", "path", path, "error", err)
		}
		return false
	}
	return true
}
