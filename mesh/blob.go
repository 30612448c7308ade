package mesh

// EncodeBlob serializes m into the flat-float "mesh blob" wire format
// that crosses the host-runtime boundary:
// [vcount, tcount, v0.x, v0.y, v0.z, ..., t0.a, t0.b, t0.c, ...].
// Triangle indices are encoded as floats; callers must keep vertex
// counts <= 2^24 to avoid precision loss on round-trip.
func EncodeBlob(m *TriangleMesh) []float32 {
	out := make([]float32, 2, 2+3*len(m.Vertices)+3*len(m.Triangles))
	out[0] = float32(len(m.Vertices))
	out[1] = float32(len(m.Triangles))
	for _, v := range m.Vertices {
		out = append(out, v.X, v.Y, v.Z)
	}
	for _, t := range m.Triangles {
		out = append(out, float32(t.A), float32(t.B), float32(t.C))
	}
	return out
}

// DecodeBlob parses the flat-float mesh blob format back into a
// TriangleMesh. Returns an empty mesh if blob is too short to hold its
// declared vertex/triangle counts, or if any triangle index lies
// outside [0, vcount).
func DecodeBlob(blob []float32) *TriangleMesh {
	out := NewTriangleMesh()
	if len(blob) < 2 {
		return out
	}
	vcount := int(blob[0])
	tcount := int(blob[1])
	if vcount < 0 || tcount < 0 {
		return out
	}
	need := 2 + 3*vcount + 3*tcount
	if len(blob) < need {
		return out
	}

	off := 2
	out.Vertices = make([]Vec3, vcount)
	for i := 0; i < vcount; i++ {
		out.Vertices[i] = Vec3{X: blob[off], Y: blob[off+1], Z: blob[off+2]}
		off += 3
	}

	out.Triangles = make([]Triangle, tcount)
	for i := 0; i < tcount; i++ {
		t := Triangle{
			A: int32(blob[off]),
			B: int32(blob[off+1]),
			C: int32(blob[off+2]),
		}
		for _, vi := range t.indices() {
			if vi < 0 || int(vi) >= vcount {
				return NewTriangleMesh()
			}
		}
		out.Triangles[i] = t
		off += 3
	}
	return out
}
