package habitat

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"go.viam.com/rdk/pointcloud"
	"go.viam.com/rdk/rimage"
)

// sceneName derives the output directory name from a scene asset path.
func sceneName(scene string) string {
	base := filepath.Base(scene)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// imagePath names an accepted capture deterministically from the viewpoint
// index and gaze label, e.g. point_03_forward_up.png.
func imagePath(dir string, viewpointIndex int, gazeName string) string {
	return filepath.Join(dir, fmt.Sprintf("point_%02d_%s.png", viewpointIndex, gazeName))
}

// saveImage persists one accepted frame as PNG.
func saveImage(img image.Image, path string) error {
	if err := rimage.SaveImage(img, path); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}

// savePointCloudToPCD writes a point cloud to a PCD file in binary format.
func savePointCloudToPCD(cloud pointcloud.PointCloud, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	if err := pointcloud.ToPCD(cloud, file, pointcloud.PCDBinary); err != nil {
		return fmt.Errorf("write PCD: %w", err)
	}

	return nil
}

// saveDiagnostics dumps the current scene's height-sampling cloud when a
// diagnostics directory is configured.
func (e *Extractor) saveDiagnostics() {
	if e.cfg.DiagnosticsDir == "" || e.state.SampleCloud == nil {
		return
	}
	if err := os.MkdirAll(e.cfg.DiagnosticsDir, 0o755); err != nil {
		e.logger.Warnf("Failed to create diagnostics dir: %v", err)
		return
	}
	path := filepath.Join(e.cfg.DiagnosticsDir, sceneName(e.state.Scene)+"_samples.pcd")
	if err := savePointCloudToPCD(e.state.SampleCloud, path); err != nil {
		e.logger.Warnf("Failed to save sample cloud: %v", err)
		return
	}
	e.logger.Infof("Saved sample cloud to %s (%d points)", path, e.state.SampleCloud.Size())
}
