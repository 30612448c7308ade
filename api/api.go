// Package api exposes the geometry core's external interface: pure
// functions over flat float32 arrays, with no ownership sharing and no
// callbacks, matching the boundary a host runtime's FFI bridge
// marshals across (that bridge itself is out of this module's scope;
// this package is the Go-side surface it would call into).
package api

import (
	"go.uber.org/zap"

	"github.com/AdevelopD/3D-Scanning-App/export"
	"github.com/AdevelopD/3D-Scanning-App/mesh"
	"github.com/AdevelopD/3D-Scanning-App/pointcloud"
)

func pointsFromFlat(flat []float32) *pointcloud.PointCloud {
	pc := pointcloud.NewPointCloud()
	for i := 0; i+2 < len(flat); i += 3 {
		pc.Append(pointcloud.NewVec3(flat[i], flat[i+1], flat[i+2]))
	}
	return pc
}

func flatFromPoints(pc *pointcloud.PointCloud) []float32 {
	out := make([]float32, 0, pc.Size()*3)
	for _, p := range pc.Points() {
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}

// VoxelFilter implements the voxel_filter(points, voxel_size) -> points
// external interface.
func VoxelFilter(points []float32, voxelSize float32) []float32 {
	return flatFromPoints(pointcloud.VoxelFilter(pointsFromFlat(points), voxelSize))
}

// StatisticalOutlierRemoval implements the
// statistical_outlier_removal(points, k_neighbors, std_ratio) -> points
// external interface.
func StatisticalOutlierRemoval(points []float32, kNeighbors int, stdRatio float32, logger *zap.SugaredLogger) []float32 {
	return flatFromPoints(pointcloud.StatisticalOutlierRemoval(pointsFromFlat(points), kNeighbors, stdRatio, logger))
}

// ICP implements the icp(source, target, max_iter, tol) -> 16 floats
// external interface.
func ICP(source, target []float32, maxIter int, tol float32, logger *zap.SugaredLogger) [16]float32 {
	result := pointcloud.ICP(pointsFromFlat(source), pointsFromFlat(target), maxIter, tol, nil, logger)
	return result.Transformation
}

// EstimateNormals implements the estimate_normals(points, k) ->
// [x,y,z,nx,ny,nz,...] external interface.
func EstimateNormals(points []float32, k int, logger *zap.SugaredLogger) []float32 {
	pc := pointsFromFlat(points)
	normals := pointcloud.EstimateNormals(pc, k, logger)
	out := make([]float32, 0, pc.Size()*6)
	for i := 0; i < pc.Size(); i++ {
		p, n := pc.At(i), normals[i]
		out = append(out, p.X, p.Y, p.Z, n.X, n.Y, n.Z)
	}
	return out
}

// Reconstruct implements the
// reconstruct(points_with_normals, depth) -> mesh_blob external
// interface.
func Reconstruct(pointsWithNormals []float32, depth int, k int, logger *zap.SugaredLogger) []float32 {
	pc := pointcloud.NewPointCloud()
	var normals []mesh.Vec3
	for i := 0; i+5 < len(pointsWithNormals); i += 6 {
		pc.Append(pointcloud.NewVec3(pointsWithNormals[i], pointsWithNormals[i+1], pointsWithNormals[i+2]))
		normals = append(normals, pointcloud.NewVec3(pointsWithNormals[i+3], pointsWithNormals[i+4], pointsWithNormals[i+5]))
	}
	m := mesh.Reconstruct(pc, normals, depth, k, mesh.SDFModeGaussian, logger)
	return mesh.EncodeBlob(m)
}

// Decimate implements the decimate(mesh_blob, target_ratio) ->
// mesh_blob external interface. target_ratio is the fraction of the
// input triangle count to retain.
func Decimate(meshBlob []float32, targetRatio float32, logger *zap.SugaredLogger) []float32 {
	m := mesh.DecodeBlob(meshBlob)
	target := int(float32(len(m.Triangles)) * targetRatio)
	return mesh.EncodeBlob(mesh.Decimate(m, target, logger))
}

// Repair implements the repair(mesh_blob) -> mesh_blob external
// interface.
func Repair(meshBlob []float32, logger *zap.SugaredLogger) []float32 {
	m := mesh.DecodeBlob(meshBlob)
	repaired, _ := mesh.Repair(m, logger)
	return mesh.EncodeBlob(repaired)
}

// ExportSTL implements export_stl(mesh_blob, path) -> bool.
func ExportSTL(meshBlob []float32, path string, logger *zap.SugaredLogger) bool {
	return export.STLBinary(mesh.DecodeBlob(meshBlob), path, logger)
}

// ExportOBJ implements export_obj(mesh_blob, path) -> bool.
func ExportOBJ(meshBlob []float32, path string, logger *zap.SugaredLogger) bool {
	return export.OBJ(mesh.DecodeBlob(meshBlob), path, logger)
}

// ExportPLY implements export_ply(mesh_blob, path) -> bool.
func ExportPLY(meshBlob []float32, path string, logger *zap.SugaredLogger) bool {
	return export.PLYBinary(mesh.DecodeBlob(meshBlob), path, logger)
}
