package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"studyplanner/internal/app/models/dto"
	"studyplanner/internal/app/services"
)

// Version reported by the health endpoint.
const appVersion = "1.0.0"

// CatalogController serves the read-only catalog and the health check.
type CatalogController struct {
	catalogService *services.CatalogService
}

// NewCatalogController creates a new CatalogController.
func NewCatalogController(catalogService *services.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// GetCatalog returns the complete course catalog and program rules. This is
// the only data the server provides beyond exports; all plan state is local.
func (c *CatalogController) GetCatalog(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      c.catalogService.GetCatalog(),
		Timestamp: time.Now(),
	})
}

// Health is the health check endpoint for container orchestration.
func (c *CatalogController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "healthy",
		Version: appVersion,
	})
}
