package pointcloud

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// ICPResult is the outcome of registering a source cloud onto a
// target cloud: a column-major rigid transform, a fitness score (the
// inlier fraction at the 1cm threshold), the final RMSE, and the
// iteration count actually run.
type ICPResult struct {
	Transformation [16]float32
	Fitness        float32
	RMSE           float32
	Iterations     int
}

// IterationStats records one ICP iteration's bookkeeping, exposed for
// callers that want the convergence trace (supplements the original's
// per-iteration log lines with a structured record).
type IterationStats struct {
	Iteration      int
	InlierCount    int
	RMSE           float32
	MaxCorrespDist float32
}

const icpInlierThreshold float32 = 0.01 // 1cm

func identityTransform() [16]float32 {
	var m [16]float32
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// rot3 is a row-major 3x3 rotation matrix.
type rot3 [9]float64

func (r rot3) apply(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: r[0]*v.X + r[1]*v.Y + r[2]*v.Z,
		Y: r[3]*v.X + r[4]*v.Y + r[5]*v.Z,
		Z: r[6]*v.X + r[7]*v.Y + r[8]*v.Z,
	}
}

// matMul3 returns a*b for row-major 3x3 matrices.
func matMul3(a, b rot3) rot3 {
	var out rot3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += a[i*3+k] * b[k*3+j]
			}
			out[i*3+j] = sum
		}
	}
	return out
}

func columnMajor4x4(r rot3, t r3.Vector) [16]float32 {
	var m [16]float32
	m[0], m[1], m[2], m[3] = float32(r[0]), float32(r[3]), float32(r[6]), 0
	m[4], m[5], m[6], m[7] = float32(r[1]), float32(r[4]), float32(r[7]), 0
	m[8], m[9], m[10], m[11] = float32(r[2]), float32(r[5]), float32(r[8]), 0
	m[12], m[13], m[14], m[15] = float32(t.X), float32(t.Y), float32(t.Z), 1
	return m
}

// ICP rigidly aligns source onto target via iterative closest point.
// trace, if non-nil, is appended with one IterationStats per iteration
// actually run.
func ICP(source, target *PointCloud, maxIterations int, tolerance float32, trace *[]IterationStats, logger *zap.SugaredLogger) ICPResult {
	result := ICPResult{
		Transformation: identityTransform(),
		RMSE:           math.MaxFloat32,
	}
	if source.Size() == 0 || target.Size() == 0 {
		if logger != nil {
			logger.Debugw("icp: empty input, returning identity", "sourceSize", source.Size(), "targetSize", target.Size())
		}
		return result
	}

	targetTree := BuildKDTree(target)
	current := source.Clone()

	accumR := rot3{1, 0, 0, 0, 1, 0, 0, 0, 1}
	accumT := r3.Vector{}

	prevRMSE := float64(math.MaxFloat32)

	for iter := 0; iter < maxIterations; iter++ {
		correspIdx := make([]int, current.Size())
		correspDist := make([]float32, current.Size())
		for i := 0; i < current.Size(); i++ {
			nn := targetTree.FindNearest(current.At(i))
			correspIdx[i] = nn
			correspDist[i] = current.At(i).Distance(target.At(nn))
		}

		sortedDist := append([]float32(nil), correspDist...)
		sort.Slice(sortedDist, func(i, j int) bool { return sortedDist[i] < sortedDist[j] })
		median := sortedDist[len(sortedDist)/2]
		maxCorrespDist := median * 3
		if maxCorrespDist < 0.01 {
			maxCorrespDist = 0.01
		}

		var filteredSrc, filteredTgtIdx []int
		for i := 0; i < current.Size(); i++ {
			if correspDist[i] <= maxCorrespDist {
				filteredSrc = append(filteredSrc, i)
				filteredTgtIdx = append(filteredTgtIdx, correspIdx[i])
			}
		}

		if len(filteredSrc) < 3 {
			if logger != nil {
				logger.Debugw("icp: too few correspondences after outlier rejection, stopping", "iteration", iter, "pairs", len(filteredSrc))
			}
			break
		}

		rmseSum := 0.0
		for _, si := range filteredSrc {
			d := float64(correspDist[si])
			rmseSum += d * d
		}
		rmse := math.Sqrt(rmseSum / float64(len(filteredSrc)))

		if math.Abs(prevRMSE-rmse) < float64(tolerance) {
			result.RMSE = float32(rmse)
			result.Iterations = iter
			if trace != nil {
				*trace = append(*trace, IterationStats{Iteration: iter, InlierCount: len(filteredSrc), RMSE: float32(rmse), MaxCorrespDist: maxCorrespDist})
			}
			break
		}
		prevRMSE = rmse
		result.RMSE = float32(rmse)
		result.Iterations = iter + 1

		stepR, stepT := computeOptimalTransform(current, target, filteredSrc, filteredTgtIdx)

		accumT = stepR.apply(accumT).Add(stepT)
		accumR = matMul3(stepR, accumR)

		next := NewPointCloud()
		for i := 0; i < current.Size(); i++ {
			tp := stepR.apply(current.At(i).ToR3()).Add(stepT)
			next.Append(Vec3FromR3(tp))
		}
		current = next

		if trace != nil {
			*trace = append(*trace, IterationStats{Iteration: iter, InlierCount: len(filteredSrc), RMSE: float32(rmse), MaxCorrespDist: maxCorrespDist})
		}
	}

	result.Transformation = columnMajor4x4(accumR, accumT)

	inliers := 0
	for i := 0; i < current.Size(); i++ {
		nn := targetTree.FindNearest(current.At(i))
		if current.At(i).Distance(target.At(nn)) < icpInlierThreshold {
			inliers++
		}
	}
	result.Fitness = float32(inliers) / float32(current.Size())

	if logger != nil {
		logger.Debugw("icp converged", "iterations", result.Iterations, "fitness", result.Fitness, "rmse", result.RMSE)
	}

	return result
}

// computeOptimalTransform solves the Kabsch rigid-pose problem over
// the retained correspondences (srcIdx[i] in current, matched to
// tgtIdx[i] in target), via a cross-covariance matrix and a 3x3 SVD
// through gonum/mat, with the standard reflection fix when
// det(R) < 0.
func computeOptimalTransform(current, target *PointCloud, srcIdx, tgtIdx []int) (rot3, r3.Vector) {
	n := len(srcIdx)

	var srcCentroid, tgtCentroid r3.Vector
	for i := 0; i < n; i++ {
		srcCentroid = srcCentroid.Add(current.At(srcIdx[i]).ToR3())
		tgtCentroid = tgtCentroid.Add(target.At(tgtIdx[i]).ToR3())
	}
	fn := float64(n)
	srcCentroid = srcCentroid.Mul(1 / fn)
	tgtCentroid = tgtCentroid.Mul(1 / fn)

	h := mat.NewDense(3, 3, nil)
	for i := 0; i < n; i++ {
		s := current.At(srcIdx[i]).ToR3().Sub(srcCentroid)
		t := target.At(tgtIdx[i]).ToR3().Sub(tgtCentroid)
		sv := [3]float64{s.X, s.Y, s.Z}
		tv := [3]float64{t.X, t.Y, t.Z}
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				h.Set(r, c, h.At(r, c)+sv[r]*tv[c])
			}
		}
	}

	var svd mat.SVD
	ok := svd.Factorize(h, mat.SVDFull)
	if !ok {
		// Degenerate cross-covariance: no rotation information, identity.
		return rot3{1, 0, 0, 0, 1, 0, 0, 0, 1}, tgtCentroid.Sub(srcCentroid)
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// R = V * U^T
	var vut mat.Dense
	vut.Mul(&v, u.T())

	det := mat.Det(&vut)
	if det < 0 {
		// Kabsch reflection fix: flip the last column of V, recompute.
		for row := 0; row < 3; row++ {
			v.Set(row, 2, -v.At(row, 2))
		}
		vut.Mul(&v, u.T())
	}

	var r rot3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i*3+j] = vut.At(i, j)
		}
	}

	t := tgtCentroid.Sub(r.apply(srcCentroid))
	return r, t
}
