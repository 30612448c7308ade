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

// PLYBinary writes m to path as a binary-little-endian PLY file: an
// ASCII header declaring float x/y/z vertex properties and a
// "list uchar int vertex_indices" face property, followed by the raw
// little-endian vertex and face payloads.
func PLYBinary(m *mesh.TriangleMesh, path string, logger *zap.SugaredLogger) bool {
	f, err := os.Create(path)
	if err != nil {
		if logger != nil {
			logger.Errorw("ply: open failed", "path", path, "error", err)
		}
		return false
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	header := fmt.Sprintf(
		"ply\n"+
			"format binary_little_endian 1.0\n"+
			"element vertex %d\n"+
			"property float x\n"+
			"property float y\n"+
			"property float z\n"+
			"element face %d\n"+
			"property list uchar int vertex_indices\n"+
			"end_header\n",
		len(m.Vertices), len(m.Triangles))
	if _, err := w.WriteString(header); err != nil {
		return false
	}

	var vbuf [12]byte
	for _, v := range m.Vertices {
		binary.LittleEndian.PutUint32(vbuf[0:4], math.Float32bits(v.X))
		binary.LittleEndian.PutUint32(vbuf[4:8], math.Float32bits(v.Y))
		binary.LittleEndian.PutUint32(vbuf[8:12], math.Float32bits(v.Z))
		if _, err := w.Write(vbuf[:]); err != nil {
			if logger != nil {
				logger.Errorw("ply: vertex write failed", "path", path, "error", err)
			}
			return false
		}
	}

	var fbuf [13]byte
	fbuf[0] = 3
	for _, t := range m.Triangles {
		binary.LittleEndian.PutUint32(fbuf[1:5], uint32(t.A))
		binary.LittleEndian.PutUint32(fbuf[5:9], uint32(t.B))
		binary.LittleEndian.PutUint32(fbuf[9:13], uint32(t.C))
		if _, err := w.Write(fbuf[:]); err != nil {
			if logger != nil {
				logger.Errorw("ply: face write failed", "path", path, "error", err)
			}
			return false
		}
	}

	if err := w.Flush(); err != nil {
		if logger != nil {
			logger.Errorw("ply: flush failed", "path", path, "error", err)
		}
		return false
	}
	return true
}
