package pointcloud

import "math"

// PointCloudMetaData tracks the running bounding box of a PointCloud.
// Mirrors the teacher's PointCloudMetaData shape (min/max per axis),
// trimmed to this spec's plain positional cloud (no color/value
// channels).
type PointCloudMetaData struct {
	MinX, MaxX float32
	MinY, MaxY float32
	MinZ, MaxZ float32

	inited bool
}

// NewMetaData returns an empty metadata record ready for Merge.
func NewMetaData() PointCloudMetaData {
	return PointCloudMetaData{
		MinX: math.MaxFloat32,
		MinY: math.MaxFloat32,
		MinZ: math.MaxFloat32,
		MaxX: -math.MaxFloat32,
		MaxY: -math.MaxFloat32,
		MaxZ: -math.MaxFloat32,
	}
}

// Merge folds p into the running bounding box.
func (m *PointCloudMetaData) Merge(p Vec3) {
	if !m.inited {
		*m = NewMetaData()
	}
	m.inited = true
	if p.X > m.MaxX {
		m.MaxX = p.X
	}
	if p.Y > m.MaxY {
		m.MaxY = p.Y
	}
	if p.Z > m.MaxZ {
		m.MaxZ = p.Z
	}
	if p.X < m.MinX {
		m.MinX = p.X
	}
	if p.Y < m.MinY {
		m.MinY = p.Y
	}
	if p.Z < m.MinZ {
		m.MinZ = p.Z
	}
}

// PointCloud is an ordered, append-only sequence of Vec3 samples.
// Indices are stable for the lifetime of the cloud.
type PointCloud struct {
	points []Vec3
	meta   PointCloudMetaData
}

// NewPointCloud returns an empty point cloud.
func NewPointCloud() *PointCloud {
	return &PointCloud{meta: NewMetaData()}
}

// NewPointCloudFromPoints builds a cloud from an existing slice,
// copying it so the caller's slice may be reused.
func NewPointCloudFromPoints(pts []Vec3) *PointCloud {
	pc := NewPointCloud()
	pc.AppendAll(pts)
	return pc
}

// Size returns the number of points in the cloud.
func (pc *PointCloud) Size() int {
	return len(pc.points)
}

// At returns the point at index i.
func (pc *PointCloud) At(i int) Vec3 {
	return pc.points[i]
}

// Points returns the underlying point slice. Callers must not mutate
// it; it is shared with the cloud.
func (pc *PointCloud) Points() []Vec3 {
	return pc.points
}

// Append adds a single point to the cloud.
func (pc *PointCloud) Append(p Vec3) {
	pc.points = append(pc.points, p)
	pc.meta.Merge(p)
}

// AppendAll adds a batch of points to the cloud.
func (pc *PointCloud) AppendAll(pts []Vec3) {
	for _, p := range pts {
		pc.Append(p)
	}
}

// MetaData returns the cloud's current bounding-box metadata.
func (pc *PointCloud) MetaData() PointCloudMetaData {
	return pc.meta
}

// BoundingBoxDiagonal returns the length of the bounding box diagonal,
// or 0 for an empty or single-point cloud.
func (pc *PointCloud) BoundingBoxDiagonal() float32 {
	if len(pc.points) == 0 {
		return 0
	}
	m := pc.meta
	dx := m.MaxX - m.MinX
	dy := m.MaxY - m.MinY
	dz := m.MaxZ - m.MinZ
	return Vec3{dx, dy, dz}.Length()
}

// Clone returns a deep copy of the cloud.
func (pc *PointCloud) Clone() *PointCloud {
	out := NewPointCloud()
	out.AppendAll(pc.points)
	return out
}
