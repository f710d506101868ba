package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"videomind/internal/api/middleware"
	"videomind/internal/api/v1/dto"
	"videomind/internal/api/v1/services"
)

// AskHandler serves questions about completed jobs.
type AskHandler struct {
	service services.AnalysisService
}

func NewAskHandler(service services.AnalysisService) *AskHandler {
	return &AskHandler{service: service}
}

// Ask answers a free-form question about a completed job.
// POST /api/v1/ask
func (h *AskHandler) Ask(c *gin.Context) {
	var req dto.AskRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.Ask(c.Request.Context(), req.JobID, req.Question)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
