package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/piv-face/internal/jobs"
	"github.com/your-org/piv-face/internal/observability"
	"github.com/your-org/piv-face/internal/pipeline"
	"github.com/your-org/piv-face/internal/piverr"
	"github.com/your-org/piv-face/pkg/dto"
)

const maxUploadBytes = 32 << 20 // 32MiB

type ProcessHandler struct {
	jobs *jobs.Service
}

func NewProcessHandler(svc *jobs.Service) *ProcessHandler {
	return &ProcessHandler{jobs: svc}
}

// Process runs POST /v1/process: a synchronous call that returns the
// encoded image as the response body, with the processing summary in the
// X-Piv-Result header.
func (h *ProcessHandler) Process(c *gin.Context) {
	preset := c.DefaultQuery("preset", "piv-balanced")
	opts, err := pipeline.PresetByName(preset)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Kind: "invalid_input", Message: err.Error()})
		return
	}

	imageData, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Kind: "invalid_input", Message: "failed to read request body"})
		return
	}
	if len(imageData) > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Kind: "invalid_input", Message: "image exceeds 32MiB limit"})
		return
	}

	_, result, err := h.jobs.ProcessSync(c.Request.Context(), imageData, preset, opts)
	if err != nil {
		writeProcessingError(c, err)
		return
	}

	observability.ImagesProcessed.WithLabelValues("success").Inc()
	observability.ComplianceResult.WithLabelValues(result.ComplianceValidation.Severity.String()).Inc()
	observability.EncodedSizeBytes.WithLabelValues(preset).Observe(float64(result.ActualSizeBytes))

	resp := dto.ProcessResponse{
		SourceWidth:      result.SourceDimensions.Width,
		SourceHeight:     result.SourceDimensions.Height,
		TargetWidth:      result.TransformedDimensions.Width,
		TargetHeight:     result.TransformedDimensions.Height,
		RotationDegrees:  result.AppliedTransform.RotationDegrees,
		ActualRateBpp:    result.ActualRateBpp,
		ActualSizeBytes:  result.ActualSizeBytes,
		TargetSizeBytes:  result.TargetSizeBytes,
		IsFullyCompliant: result.ComplianceValidation.IsFullyCompliant,
		Severity:         result.ComplianceValidation.Severity.String(),
		Issues:           result.ComplianceValidation.Issues,
		Recommendations:  result.ComplianceValidation.Recommendations,
	}
	summary, err := json.Marshal(resp)
	if err == nil {
		c.Header("X-Piv-Result", string(summary))
	}

	c.Data(http.StatusOK, "image/jp2", result.EncodedBytes)
}

// writeProcessingError maps a tagged piverr.Error to an HTTP status and
// an ErrorResponse body. Everything else is an internal error.
func writeProcessingError(c *gin.Context, err error) {
	observability.ImagesProcessed.WithLabelValues("failure").Inc()

	var pe *piverr.Error
	if !errors.As(err, &pe) {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Kind: "internal", Message: err.Error()})
		return
	}

	status := http.StatusUnprocessableEntity
	switch pe.Kind {
	case piverr.KindInvalidInput:
		status = http.StatusBadRequest
	case piverr.KindTimeout:
		status = http.StatusGatewayTimeout
	case piverr.KindCancelled:
		status = http.StatusBadRequest
	}

	c.JSON(status, dto.ErrorResponse{Kind: pe.Kind.String(), Message: pe.Message})
}
