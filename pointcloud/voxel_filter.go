package pointcloud

import "math"

// voxelCoords identifies a cell of an implicit hash grid, keyed on
// the floored (x,y,z)/voxelSize coordinate. Mirrors the teacher's
// VoxelCoords (pointcloud/voxel.go), generalized to a plain
// downsampling key.
type voxelCoords struct {
	I, J, K int64
}

func voxelKey(p Vec3, voxelSize float32) voxelCoords {
	return voxelCoords{
		I: int64(math.Floor(float64(p.X / voxelSize))),
		J: int64(math.Floor(float64(p.Y / voxelSize))),
		K: int64(math.Floor(float64(p.Z / voxelSize))),
	}
}

type voxelAccumulator struct {
	sum   Vec3
	count int
}

// VoxelFilter downsamples cloud by accumulating a centroid per
// occupied voxel of side voxelSize. Output ordering is not
// meaningful. An empty cloud or non-positive voxel size returns the
// input unchanged.
func VoxelFilter(cloud *PointCloud, voxelSize float32) *PointCloud {
	if cloud.Size() == 0 || voxelSize <= 0 {
		return cloud.Clone()
	}

	cells := make(map[voxelCoords]*voxelAccumulator)
	for _, p := range cloud.Points() {
		key := voxelKey(p, voxelSize)
		acc, ok := cells[key]
		if !ok {
			acc = &voxelAccumulator{}
			cells[key] = acc
		}
		acc.sum = acc.sum.Add(p)
		acc.count++
	}

	out := NewPointCloud()
	for _, acc := range cells {
		out.Append(acc.sum.Mul(1 / float32(acc.count)))
	}
	return out
}
