package pointcloud

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// StatisticalOutlierRemoval retains points whose mean distance to
// their k nearest neighbors (excluding themselves) does not exceed
// mean+stdRatio*stddev over the whole cloud. If the cloud has fewer
// than k+1 points the input is returned unchanged (there are not
// enough neighbors to form a meaningful statistic), with a diagnostic
// line if logger is non-nil.
func StatisticalOutlierRemoval(cloud *PointCloud, k int, stdRatio float32, logger *zap.SugaredLogger) *PointCloud {
	n := cloud.Size()
	if n < k+1 {
		if logger != nil {
			logger.Debugw("statistical outlier removal: underdetermined, returning input unchanged",
				"points", n, "k", k)
		}
		return cloud.Clone()
	}

	tree := BuildKDTree(cloud)
	meanDist := make([]float64, n)
	for i := 0; i < n; i++ {
		// Exclude self by requesting k+1 and dropping the zero-distance hit.
		neighbors := tree.FindKNearest(cloud.At(i), k+1)
		sum := 0.0
		count := 0
		for _, ni := range neighbors {
			if ni == i {
				continue
			}
			sum += float64(cloud.At(i).Distance(cloud.At(ni)))
			count++
		}
		if count == 0 {
			meanDist[i] = 0
			continue
		}
		meanDist[i] = sum / float64(count)
	}

	mu := floats.Sum(meanDist) / float64(n)
	variance := 0.0
	for _, d := range meanDist {
		diff := d - mu
		variance += diff * diff
	}
	variance /= float64(n)
	sigma := math.Sqrt(variance)

	threshold := mu + float64(stdRatio)*sigma

	out := NewPointCloud()
	for i := 0; i < n; i++ {
		if meanDist[i] <= threshold {
			out.Append(cloud.At(i))
		}
	}
	return out
}
