package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "videomind/internal/api/errors"
	"videomind/internal/api/v1/services"
)

const defaultExportLimit = 500

// OpsHandler serves health and export endpoints.
type OpsHandler struct {
	ops      services.OpsService
	analysis services.AnalysisService
}

func NewOpsHandler(ops services.OpsService, analysis services.AnalysisService) *OpsHandler {
	return &OpsHandler{ops: ops, analysis: analysis}
}

// Health runs the resource and stuck-job probes.
// GET /health
func (h *OpsHandler) Health(c *gin.Context) {
	report, err := h.ops.Health()
	if err != nil {
		c.Error(err)
		return
	}

	status := http.StatusOK
	if report.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

// Export writes completed jobs to an xlsx file on the server.
// GET /api/v1/export?path=...&limit=...
func (h *OpsHandler) Export(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.Error(apierrors.NewBadRequestError("path query parameter is required"))
		return
	}

	limit := defaultExportLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.Error(apierrors.NewBadRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	resp, err := h.analysis.Export(path, limit)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
