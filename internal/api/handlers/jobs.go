package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/your-org/piv-face/internal/jobs"
	"github.com/your-org/piv-face/internal/models"
	"github.com/your-org/piv-face/pkg/dto"
)

type JobHandler struct {
	jobs *jobs.Service
}

func NewJobHandler(svc *jobs.Service) *JobHandler {
	return &JobHandler{jobs: svc}
}

// Submit handles POST /v1/jobs: stores the uploaded image and enqueues
// it for a worker, returning immediately.
func (h *JobHandler) Submit(c *gin.Context) {
	preset := c.DefaultQuery("preset", "piv-balanced")

	imageData, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Kind: "invalid_input", Message: "failed to read request body"})
		return
	}
	if len(imageData) > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Kind: "invalid_input", Message: "image exceeds 32MiB limit"})
		return
	}

	job, err := h.jobs.Submit(c.Request.Context(), imageData, preset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Kind: "internal", Message: err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, dto.SubmitJobResponse{JobID: job.ID, Status: string(job.Status)})
}

// Get handles GET /v1/jobs/:id.
func (h *JobHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Kind: "invalid_input", Message: "malformed job id"})
		return
	}

	job, err := h.jobs.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Kind: "internal", Message: err.Error()})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Kind: "not_found", Message: "job not found"})
		return
	}

	c.JSON(http.StatusOK, jobs.ToResponse(job))
}

// List handles GET /v1/jobs.
func (h *JobHandler) List(c *gin.Context) {
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	rows, total, err := h.jobs.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Kind: "internal", Message: err.Error()})
		return
	}

	resp := dto.JobListResponse{Jobs: make([]dto.JobResponse, len(rows)), Total: total}
	for i := range rows {
		resp.Jobs[i] = jobs.ToResponse(&rows[i])
	}
	c.JSON(http.StatusOK, resp)
}

// Result handles GET /v1/jobs/:id/result, streaming the encoded J2K
// bytes for a completed job.
func (h *JobHandler) Result(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Kind: "invalid_input", Message: "malformed job id"})
		return
	}

	job, err := h.jobs.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Kind: "internal", Message: err.Error()})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Kind: "not_found", Message: "job not found"})
		return
	}
	if job.Status != models.JobCompleted {
		c.JSON(http.StatusConflict, dto.ErrorResponse{Kind: "not_ready", Message: "job has not completed"})
		return
	}

	data, err := h.jobs.ResultBytes(c.Request.Context(), job)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Kind: "internal", Message: err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/jp2", data)
}

func queryInt(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
