package planner

import (
	"studyplanner/internal/app/models"
	"studyplanner/internal/catalog"
)

// Summarize computes the program-wide credit totals. Progress is planned
// credit over the program target and is not clamped, so over-planning
// reports values above 1.
func Summarize(cat *catalog.Catalog, selections []models.Selection) models.Summary {
	summary := models.Summary{TotalECTS: cat.Rules.TotalECTS}

	for _, sel := range selections {
		ects := sel.EffectiveECTS(cat.CourseByID(sel.CourseID))
		summary.PlannedECTS += ects
		if sel.Status == models.StatusCompleted {
			summary.CompletedECTS += ects
		}
	}

	if summary.TotalECTS > 0 {
		summary.Progress = summary.PlannedECTS / summary.TotalECTS
	}
	return summary
}

// BuildAreaProgress computes credit accumulation per area rule. Progress is
// capped at 1 and the minimum is floored at 1 to guard against a zero
// divisor.
func BuildAreaProgress(cat *catalog.Catalog, selections []models.Selection) []models.AreaProgress {
	plannedByArea := make(map[string]float64)
	for _, sel := range selections {
		course := cat.CourseByID(sel.CourseID)
		if course == nil {
			continue
		}
		plannedByArea[course.AreaID] += sel.EffectiveECTS(course)
	}

	progress := make([]models.AreaProgress, 0, len(cat.Rules.Areas))
	for _, area := range cat.Rules.Areas {
		planned := plannedByArea[area.ID]

		divisor := area.MinECTS
		if divisor < 1 {
			divisor = 1
		}
		ratio := planned / divisor
		if ratio > 1 {
			ratio = 1
		}

		progress = append(progress, models.AreaProgress{
			AreaID:      area.ID,
			Name:        area.Name,
			PlannedECTS: planned,
			MinECTS:     area.MinECTS,
			Progress:    ratio,
			Fulfilled:   planned >= area.MinECTS,
		})
	}
	return progress
}
