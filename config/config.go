// Package config holds the YAML-backed tunables for a scan
// post-processing pipeline session: the parameters each component in
// pointcloud and mesh takes as arguments, collected into one
// loadable/savable record.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// PipelineConfig collects the tunables for one end-to-end run of the
// filtering → registration → reconstruction → decimation → repair →
// smoothing → export pipeline.
type PipelineConfig struct {
	VoxelSize             float32 `yaml:"voxel_size"`
	OutlierKNeighbors      int     `yaml:"outlier_k_neighbors"`
	OutlierStdRatio        float32 `yaml:"outlier_std_ratio"`
	NormalKNeighbors       int     `yaml:"normal_k_neighbors"`
	ICPMaxIterations       int     `yaml:"icp_max_iterations"`
	ICPTolerance           float32 `yaml:"icp_tolerance"`
	ReconstructionDepth    int     `yaml:"reconstruction_depth"`
	ReconstructionKNeighbors int   `yaml:"reconstruction_k_neighbors"`
	DecimationTargetRatio  float32 `yaml:"decimation_target_ratio"`
	SmoothingIterations    int     `yaml:"smoothing_iterations"`
	TaubinLambda           float32 `yaml:"taubin_lambda"`
	TaubinMu               float32 `yaml:"taubin_mu"`
}

// DefaultPipelineConfig returns the spec's documented defaults.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		VoxelSize:                0.01,
		OutlierKNeighbors:        20,
		OutlierStdRatio:          1.0,
		NormalKNeighbors:         20,
		ICPMaxIterations:         30,
		ICPTolerance:             1e-6,
		ReconstructionDepth:      8,
		ReconstructionKNeighbors: 10,
		DecimationTargetRatio:    0.5,
		SmoothingIterations:      10,
		TaubinLambda:             0.5,
		TaubinMu:                 -0.53,
	}
}

// LoadPipelineConfig reads and parses a PipelineConfig from a YAML
// file at path.
func LoadPipelineConfig(path string) (PipelineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PipelineConfig{}, errors.Wrapf(err, "reading pipeline config %q", path)
	}
	cfg := DefaultPipelineConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PipelineConfig{}, errors.Wrapf(err, "parsing pipeline config %q", path)
	}
	return cfg, nil
}

// Save marshals cfg to path as YAML.
func (cfg PipelineConfig) Save(path string) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling pipeline config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing pipeline config %q", path)
	}
	return nil
}
