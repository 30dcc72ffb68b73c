package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"studyplanner/internal/app/models/dto"
	"studyplanner/internal/app/services"
	"studyplanner/internal/middleware"
)

// ExportController renders posted plans into downloadable files.
type ExportController struct {
	exportService *services.ExportService
}

// NewExportController creates a new ExportController.
func NewExportController(exportService *services.ExportService) *ExportController {
	return &ExportController{exportService: exportService}
}

// Export renders the posted selections in the path format and sends the
// result as a file download. The server interprets nothing beyond course
// lookups; selections with unknown course ids are skipped.
func (c *ExportController) Export(ctx *gin.Context) {
	var req dto.ExportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid export payload")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.exportService.Render(ctx.Param("format"), req.Selections)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.Filename))
	ctx.Data(http.StatusOK, result.ContentType, result.Content)
}
