package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"videomind/internal/api/v1/handlers"
	"videomind/internal/api/v1/services"
)

// ServiceContainer bundles everything the route table needs.
type ServiceContainer struct {
	Analysis services.AnalysisService
	Ops      services.OpsService
}

// RegisterRoutes attaches all endpoints to the engine.
func RegisterRoutes(r *gin.Engine, sc *ServiceContainer) {
	analysisHandler := handlers.NewAnalysisHandler(sc.Analysis)
	askHandler := handlers.NewAskHandler(sc.Analysis)
	opsHandler := handlers.NewOpsHandler(sc.Ops, sc.Analysis)

	r.GET("/health", opsHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/analyze", analysisHandler.Analyze)
		v1.GET("/status/:job_id", analysisHandler.Status)
		v1.GET("/result/:job_id", analysisHandler.Result)
		v1.POST("/ask", askHandler.Ask)
		v1.GET("/export", opsHandler.Export)
	}
}
