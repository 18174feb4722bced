package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/piv-face/internal/encoding"
	"github.com/your-org/piv-face/internal/pipeline"
	"github.com/your-org/piv-face/pkg/dto"
)

var presetDescriptions = map[string]string{
	"twic-max":     "TWIC card's tighter size cap with level-2 ROI protection.",
	"piv-min":      "Smallest accepted size budget, aggressive level-1 ROI protection.",
	"piv-balanced": "Default preset: balanced size budget and ROI protection.",
	"piv-high":     "Larger size budget, traded for higher overall quality.",
	"archival":     "Fixed high rate, strictest confidence threshold, for long-term storage.",
	"fast":         "Lowest latency: relaxed confidence, level-0 (strongest) ROI protection, one retry.",
}

type PresetHandler struct{}

func NewPresetHandler() *PresetHandler { return &PresetHandler{} }

// List returns the named presets of §4.7, materialised as concrete option values.
func (h *PresetHandler) List(c *gin.Context) {
	names := pipeline.PresetNames()
	infos := make([]dto.PresetInfo, 0, len(names))
	for _, name := range names {
		opts, err := pipeline.PresetByName(name)
		if err != nil {
			continue
		}
		kind := "fixed_rate"
		if opts.Strategy.Kind == encoding.TargetSize {
			kind = "target_size"
		}
		infos = append(infos, dto.PresetInfo{
			Name:              name,
			Description:       presetDescriptions[name],
			StrategyKind:      kind,
			TargetSizeBytes:   opts.Strategy.TargetBytes,
			RateBpp:           opts.Strategy.RateBpp,
			RoiStartLevel:     opts.RoiStartLevel,
			MinFaceConfidence: opts.MinFaceConfidence,
		})
	}
	c.JSON(http.StatusOK, gin.H{"presets": infos})
}
