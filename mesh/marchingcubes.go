package mesh

import (
	"math"

	"go.uber.org/zap"

	"github.com/AdevelopD/3D-Scanning-App/pointcloud"
)

// SDFMode selects how the signed distance field is derived from
// oriented input points.
type SDFMode int

const (
	// SDFModeGaussian blends the signed plane distance to every one of
	// a grid vertex's k nearest oriented points, weighted by a
	// Gaussian falling off with distance. This is the default: it
	// degrades gracefully in sparse regions.
	SDFModeGaussian SDFMode = iota
	// SDFModeNearest uses only the single nearest oriented point's
	// signed plane distance. Cheaper, more sensitive to noise.
	SDFModeNearest
)

var cubeCornerOffset = [8]Vec3{
	{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
}

var cubeEdgeCorners = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// clampOctreeDepth restricts depth to the spec's [4,12] range.
func clampOctreeDepth(depth int) int {
	if depth < 4 {
		return 4
	}
	if depth > 12 {
		return 12
	}
	return depth
}

// voxelSizeForDepth derives the reconstruction grid's voxel size from
// the requested octree depth and the cloud's bounding box, clamped so
// the largest dimension never spans more than 200 voxels.
func voxelSizeForDepth(diag, maxDim float32, depth int) float32 {
	res := float32(int(1) << uint(clampOctreeDepth(depth)))
	voxelSize := diag / res
	if voxelSize <= 0 {
		voxelSize = 1
	}
	if maxDim/voxelSize > 200 {
		voxelSize = maxDim / 200
	}
	return voxelSize
}

// Reconstruct extracts an isosurface from an oriented point cloud via
// marching cubes over a padded voxel grid. normals must be
// parallel to points (normals[i] corresponds to points.At(i)). k is
// the neighborhood size used to evaluate the SDF at each grid vertex.
func Reconstruct(points *pointcloud.PointCloud, normals []Vec3, depth int, k int, mode SDFMode, logger *zap.SugaredLogger) *TriangleMesh {
	out := NewTriangleMesh()
	n := points.Size()
	if n == 0 {
		if logger != nil {
			logger.Debugw("reconstruct: empty point cloud")
		}
		return out
	}

	meta := points.MetaData()
	dx := meta.MaxX - meta.MinX
	dy := meta.MaxY - meta.MinY
	dz := meta.MaxZ - meta.MinZ
	if dx <= 0 && dy <= 0 && dz <= 0 {
		if logger != nil {
			logger.Debugw("reconstruct: zero-extent bounding box")
		}
		return out
	}

	diag := points.BoundingBoxDiagonal()
	maxDim := dx
	if dy > maxDim {
		maxDim = dy
	}
	if dz > maxDim {
		maxDim = dz
	}
	voxelSize := voxelSizeForDepth(diag, maxDim, depth)

	const pad = 2
	nx := int(dx/voxelSize) + 1 + 2*pad
	ny := int(dy/voxelSize) + 1 + 2*pad
	nz := int(dz/voxelSize) + 1 + 2*pad
	if nx < 2 {
		nx = 2
	}
	if ny < 2 {
		ny = 2
	}
	if nz < 2 {
		nz = 2
	}

	origin := Vec3{
		X: meta.MinX - float32(pad)*voxelSize,
		Y: meta.MinY - float32(pad)*voxelSize,
		Z: meta.MinZ - float32(pad)*voxelSize,
	}

	tree := pointcloud.BuildKDTree(points)
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}
	sigma := voxelSize * 2

	idx := func(i, j, kk int) int { return (kk*ny+j)*nx + i }
	sdf := make([]float32, nx*ny*nz)
	for kk := 0; kk < nz; kk++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				g := Vec3{
					X: origin.X + float32(i)*voxelSize,
					Y: origin.Y + float32(j)*voxelSize,
					Z: origin.Z + float32(kk)*voxelSize,
				}
				sdf[idx(i, j, kk)] = computeSDF(g, points, normals, tree, k, sigma, mode)
			}
		}
	}

	cornerValue := func(i, j, kk int, c int) float32 {
		off := cubeCornerOffset[c]
		return sdf[idx(i+int(off.X), j+int(off.Y), kk+int(off.Z))]
	}
	cornerPos := func(i, j, kk int, c int) Vec3 {
		off := cubeCornerOffset[c]
		return Vec3{
			X: origin.X + (float32(i)+off.X)*voxelSize,
			Y: origin.Y + (float32(j)+off.Y)*voxelSize,
			Z: origin.Z + (float32(kk)+off.Z)*voxelSize,
		}
	}

	for kk := 0; kk < nz-1; kk++ {
		for j := 0; j < ny-1; j++ {
			for i := 0; i < nx-1; i++ {
				var config int
				var values [8]float32
				for c := 0; c < 8; c++ {
					v := cornerValue(i, j, kk, c)
					values[c] = v
					if v < 0 {
						config |= 1 << uint(c)
					}
				}
				edgeMask := cubeEdgeTable[config]
				if edgeMask == 0 {
					continue
				}

				var edgeVertex [12]Vec3
				for e := 0; e < 12; e++ {
					if edgeMask&(1<<uint(e)) == 0 {
						continue
					}
					c0, c1 := cubeEdgeCorners[e][0], cubeEdgeCorners[e][1]
					v0, v1 := values[c0], values[c1]
					p0, p1 := cornerPos(i, j, kk, c0), cornerPos(i, j, kk, c1)
					t := v0 / (v0 - v1)
					edgeVertex[e] = p0.Add(p1.Sub(p0).Mul(t))
				}

				tri := cubeTriTable[config]
				for t := 0; t+2 < len(tri) && tri[t] != -1; t += 3 {
					base := int32(len(out.Vertices))
					out.Vertices = append(out.Vertices, edgeVertex[tri[t]], edgeVertex[tri[t+1]], edgeVertex[tri[t+2]])
					out.Triangles = append(out.Triangles, Triangle{A: base, B: base + 1, C: base + 2})
				}
			}
		}
	}

	if logger != nil {
		logger.Debugw("reconstruct: marching cubes complete",
			"voxelSize", voxelSize, "gridDims", [3]int{nx, ny, nz}, "triangles", len(out.Triangles))
	}
	return out
}

// computeSDF evaluates the oriented-point signed distance field at g.
func computeSDF(g Vec3, points *pointcloud.PointCloud, normals []Vec3, tree *pointcloud.KDTree, k int, sigma float32, mode SDFMode) float32 {
	neighbors := tree.FindKNearest(g, k)
	if len(neighbors) == 0 {
		return 1 // outside, by convention, when no data is available
	}

	if mode == SDFModeNearest {
		ni := neighbors[0]
		toG := g.Sub(points.At(ni))
		return toG.Dot(normals[ni])
	}

	var weightedSum, weightSum float64
	sigma2 := float64(sigma * sigma)
	if sigma2 < 1e-12 {
		sigma2 = 1e-12
	}
	for _, ni := range neighbors {
		p := points.At(ni)
		d2 := float64(g.Distance(p))
		d2 *= d2
		w := math.Exp(-d2 / sigma2)
		signedDist := float64(g.Sub(p).Dot(normals[ni]))
		weightedSum += w * signedDist
		weightSum += w
	}
	if weightSum < 1e-12 {
		return 1
	}
	return float32(weightedSum / weightSum)
}
