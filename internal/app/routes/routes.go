package routes

import (
	"github.com/gin-gonic/gin"

	"studyplanner/internal/app/controllers"
	"studyplanner/internal/metrics"
	"studyplanner/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	catalogController *controllers.CatalogController,
	plannerController *controllers.PlannerController,
	exportController *controllers.ExportController,
	wsHandler *websocket.Handler,
	m *metrics.Metrics,
) {
	// Health check outside the versioned group, for container orchestration
	router.GET("/api/health", catalogController.Health)

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(m.Handler()))

	// API version group
	v1 := router.Group("/api/v1")

	// Read-only catalog
	v1.GET("/catalog", catalogController.GetCatalog)

	// Plan state and mutations
	plan := v1.Group("/plan")
	{
		plan.GET("", plannerController.GetPlan)
		plan.DELETE("", plannerController.RemoveAll)

		plan.POST("/selections", plannerController.PlanCourse)
		plan.POST("/selections/variable", plannerController.AddVariableCredit)
		plan.DELETE("/selections", plannerController.RemoveSelection)
		plan.POST("/selections/toggle", plannerController.ToggleCompleted)

		plan.GET("/backup", plannerController.DownloadBackup)
		plan.POST("/backup", plannerController.ImportBackup)

		plan.GET("/ws", wsHandler.HandleConnection)
	}

	// Stateless export rendering
	v1.POST("/export/:format", exportController.Export)
}
