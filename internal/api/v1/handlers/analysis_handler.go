package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"videomind/internal/api/middleware"
	"videomind/internal/api/v1/dto"
	"videomind/internal/api/v1/services"
)

// AnalysisHandler serves job submission, status and result endpoints.
type AnalysisHandler struct {
	service services.AnalysisService
}

func NewAnalysisHandler(service services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// Analyze accepts a video URL and queues it for processing.
// POST /api/v1/analyze
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req dto.AnalyzeRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.Submit(req.URL, req.Options)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusAccepted, resp)
}

// Status reports the live progress of a job.
// GET /api/v1/status/:job_id
func (h *AnalysisHandler) Status(c *gin.Context) {
	resp, err := h.service.GetStatus(c.Param("job_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Result returns the artifacts of a job. Jobs still in flight get a
// progress notice; failed jobs get the failure message only.
// GET /api/v1/result/:job_id
func (h *AnalysisHandler) Result(c *gin.Context) {
	resp, err := h.service.GetResult(c.Param("job_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
