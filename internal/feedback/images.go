package feedback

import (
	"path/filepath"

	"github.com/alexanderramin/placar/internal/domain"
)

// Default client images, two stages per picture.
const (
	ImageFirstSteps  = "primeiras_etapas.png"
	ImageHalfway     = "meio_do_caminho.png"
	ImageAlmost      = "quase_atingindo.png"
	ImageGoalReached = "meta_atingida.png"
)

var stageImages = [domain.StageCount]string{
	ImageFirstSteps, ImageFirstSteps,
	ImageHalfway, ImageHalfway,
	ImageAlmost, ImageAlmost,
	ImageGoalReached, ImageGoalReached,
}

// DefaultImage returns the image shown on the target marker for stage when
// no custom image was picked. Stages outside 0..7 are clamped.
func DefaultImage(assetsDir string, stage domain.Stage) string {
	return filepath.Join(assetsDir, stageImages[stage.Clamp()])
}
