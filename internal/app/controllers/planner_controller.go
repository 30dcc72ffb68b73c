package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"studyplanner/internal/app/models/dto"
	"studyplanner/internal/app/services"
	"studyplanner/internal/middleware"
	"studyplanner/internal/planner"
)

// PlannerController handles plan view and mutation endpoints.
type PlannerController struct {
	plannerService *services.PlannerService
}

// NewPlannerController creates a new PlannerController.
func NewPlannerController(plannerService *services.PlannerService) *PlannerController {
	return &PlannerController{plannerService: plannerService}
}

// GetPlan returns the derived view model. Filter and sort state come from
// query params: q, areas (comma separated), sort, desc.
func (c *PlannerController) GetPlan(ctx *gin.Context) {
	query := planner.Query{
		Search: ctx.Query("q"),
		Sort:   planner.SortKey(ctx.Query("sort")),
		Desc:   ctx.Query("desc") == "true" || ctx.Query("desc") == "1",
	}
	if areas := ctx.Query("areas"); areas != "" {
		for _, id := range strings.Split(areas, ",") {
			if id = strings.TrimSpace(id); id != "" {
				query.Areas = append(query.Areas, id)
			}
		}
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      c.plannerService.GetPlan(query),
		Timestamp: time.Now(),
	})
}

// PlanCourse plans a fixed-credit course.
func (c *PlannerController) PlanCourse(ctx *gin.Context) {
	var req dto.PlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid plan request")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	selection, err := c.plannerService.PlanCourse(req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      selection,
		Timestamp: time.Now(),
	})
}

// AddVariableCredit books a credit amount of a variable-credit course.
func (c *PlannerController) AddVariableCredit(ctx *gin.Context) {
	var req dto.VariableCreditRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid credit request")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	selection, err := c.plannerService.AddVariableCredit(req.CourseID, req.ECTS)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      selection,
		Timestamp: time.Now(),
	})
}

// RemoveSelection removes one selection, or every selection of a course when
// no selection id is given. Removing nothing still returns 200.
func (c *PlannerController) RemoveSelection(ctx *gin.Context) {
	var req dto.SelectionRefRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid remove request")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	removed, err := c.plannerService.RemoveSelection(req.CourseID, req.SelectionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"removed": removed},
		Timestamp: time.Now(),
	})
}

// ToggleCompleted flips a selection between planned and completed.
func (c *PlannerController) ToggleCompleted(ctx *gin.Context) {
	var req dto.SelectionRefRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid toggle request")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	toggled, err := c.plannerService.ToggleCompleted(req.CourseID, req.SelectionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"toggled": toggled},
		Timestamp: time.Now(),
	})
}

// RemoveAll clears the whole plan. The client confirms on the user's behalf
// by sending confirm=true; without it nothing is cleared.
func (c *PlannerController) RemoveAll(ctx *gin.Context) {
	if ctx.Query("confirm") != "true" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Clearing the plan requires confirmation")
		errorDetail = errorDetail.WithField("confirm")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.plannerService.RemoveAll(); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "plan cleared"},
		Timestamp: time.Now(),
	})
}

// DownloadBackup sends the current plan as an importable backup file.
func (c *PlannerController) DownloadBackup(ctx *gin.Context) {
	backup := c.plannerService.ExportBackup()

	filename := fmt.Sprintf("studienplan_backup_%s.json", time.Now().Format("20060102"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	ctx.JSON(http.StatusOK, backup)
}

// ImportBackup replaces the whole plan with an uploaded backup file. The
// client confirms the replacement by sending confirm=true.
func (c *PlannerController) ImportBackup(ctx *gin.Context) {
	if ctx.Query("confirm") != "true" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Importing a backup replaces the current plan and requires confirmation")
		errorDetail = errorDetail.WithField("confirm")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	data, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidBackup, "Could not read backup file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	count, err := c.plannerService.ImportBackup(data)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"imported": count},
		Timestamp: time.Now(),
	})
}
