package dto

import "studyplanner/internal/app/models"

// PlanRequest plans a fixed-credit course.
type PlanRequest struct {
	CourseID string `json:"courseId" binding:"required"`
}

// VariableCreditRequest books a credit amount of a variable-credit course.
type VariableCreditRequest struct {
	CourseID string  `json:"courseId" binding:"required"`
	ECTS     float64 `json:"ects" binding:"required"`
}

// SelectionRefRequest addresses one or all selections of a course.
// SelectionID is optional; without it the whole course is addressed.
type SelectionRefRequest struct {
	CourseID    string `json:"courseId" binding:"required"`
	SelectionID string `json:"selectionId"`
}

// PlanResponse is the derived view model of the current plan.
type PlanResponse struct {
	Rows         []models.DisplayRow   `json:"rows"`
	Summary      models.Summary        `json:"summary"`
	AreaProgress []models.AreaProgress `json:"area_progress"`
	Selections   []models.Selection    `json:"selections"`
}

// CatalogResponse mirrors the catalog wire format of the original planner.
type CatalogResponse struct {
	Courses    []models.CourseRecord `json:"courses"`
	Rules      models.ProgramRules   `json:"rules"`
	AreaColors map[string]string     `json:"area_colors"`
}

// ExportRequest carries the selections to render, as posted by the client.
type ExportRequest struct {
	Selections []models.Selection `json:"selections"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
