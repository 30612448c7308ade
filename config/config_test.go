package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func TestDefaultPipelineConfigMatchesDocumentedDefaults(t *testing.T) {
	cfg := DefaultPipelineConfig()
	test.That(t, cfg.VoxelSize, test.ShouldEqual, float32(0.01))
	test.That(t, cfg.OutlierKNeighbors, test.ShouldEqual, 20)
	test.That(t, cfg.ICPMaxIterations, test.ShouldEqual, 30)
	test.That(t, cfg.ReconstructionDepth, test.ShouldEqual, 8)
	test.That(t, cfg.TaubinLambda, test.ShouldEqual, float32(0.5))
	test.That(t, cfg.TaubinMu, test.ShouldEqual, float32(-0.53))
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	cfg := DefaultPipelineConfig()
	cfg.VoxelSize = 0.025
	cfg.SmoothingIterations = 15

	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	err := cfg.Save(path)
	test.That(t, err, test.ShouldBeNil)

	loaded, err := LoadPipelineConfig(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, loaded.VoxelSize, test.ShouldEqual, float32(0.025))
	test.That(t, loaded.SmoothingIterations, test.ShouldEqual, 15)
	test.That(t, loaded.OutlierStdRatio, test.ShouldEqual, cfg.OutlierStdRatio)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := LoadPipelineConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestLoadAppliesDefaultsForOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	err := os.WriteFile(path, []byte("voxel_size: 0.05\n"), 0o644)
	test.That(t, err, test.ShouldBeNil)

	cfg, err := LoadPipelineConfig(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.VoxelSize, test.ShouldEqual, float32(0.05))
	test.That(t, cfg.ICPMaxIterations, test.ShouldEqual, DefaultPipelineConfig().ICPMaxIterations)
}
