package planner

import (
	"math"
	"testing"

	"studyplanner/internal/app/models"
	"studyplanner/internal/catalog"
)

func TestSummarize(t *testing.T) {
	cat := testCatalog()
	selections := []models.Selection{
		{SelectionID: "s1", CourseID: "course-ie-500", Status: models.StatusCompleted},
		{SelectionID: "s2", CourseID: "course-ma-650", Status: models.StatusPlanned},
		{SelectionID: "s3", CourseID: "course-ac-651", Status: models.StatusPlanned, ECTS: ects(4)},
	}

	summary := Summarize(cat, selections)
	if summary.PlannedECTS != 40 {
		t.Fatalf("expected 40 planned ECTS, got %g", summary.PlannedECTS)
	}
	if summary.CompletedECTS != 6 {
		t.Fatalf("expected 6 completed ECTS, got %g", summary.CompletedECTS)
	}
	if summary.TotalECTS != 120 {
		t.Fatalf("expected 120 target ECTS, got %g", summary.TotalECTS)
	}
	if math.Abs(summary.Progress-40.0/120.0) > 1e-9 {
		t.Fatalf("expected progress 1/3, got %g", summary.Progress)
	}
}

func TestSummarizeProgressIsNotClamped(t *testing.T) {
	maxECTS := 200.0
	cat := catalog.New([]models.CourseRecord{
		{ID: "big", Code: "X 1", Title: "Big", ECTS: 0, IsVariableCredit: true, MaxECTS: &maxECTS},
	}, catalog.DefaultRules(), nil)

	selections := []models.Selection{
		{SelectionID: "s1", CourseID: "big", Status: models.StatusPlanned, ECTS: ects(180)},
	}

	summary := Summarize(cat, selections)
	if summary.Progress <= 1 {
		t.Fatalf("over-planned progress must exceed 1, got %g", summary.Progress)
	}
}

func TestSummarizeEmptyPlan(t *testing.T) {
	summary := Summarize(testCatalog(), nil)
	if summary.PlannedECTS != 0 || summary.CompletedECTS != 0 || summary.Progress != 0 {
		t.Fatalf("empty plan must report zeros, got %+v", summary)
	}
}

func TestBuildAreaProgress(t *testing.T) {
	cat := testCatalog()
	selections := []models.Selection{
		{SelectionID: "s1", CourseID: "course-ie-670", Status: models.StatusPlanned},
		{SelectionID: "s2", CourseID: "course-ma-650", Status: models.StatusPlanned},
		{SelectionID: "s3", CourseID: "gone-course", Status: models.StatusPlanned},
	}

	progress := BuildAreaProgress(cat, selections)
	if len(progress) != len(cat.Rules.Areas) {
		t.Fatalf("expected one entry per area rule, got %d", len(progress))
	}

	byID := make(map[string]models.AreaProgress, len(progress))
	for _, p := range progress {
		byID[p.AreaID] = p
	}

	dm := byID["data-management"]
	if dm.PlannedECTS != 6 || !dm.Fulfilled || dm.Progress != 1 {
		t.Fatalf("unexpected data-management progress: %+v", dm)
	}

	thesis := byID["master-thesis"]
	if thesis.PlannedECTS != 30 || !thesis.Fulfilled {
		t.Fatalf("unexpected thesis progress: %+v", thesis)
	}

	fundamentals := byID["fundamentals"]
	if fundamentals.PlannedECTS != 0 || fundamentals.Fulfilled || fundamentals.Progress != 0 {
		t.Fatalf("unexpected fundamentals progress: %+v", fundamentals)
	}
}

func TestBuildAreaProgressCapsRatio(t *testing.T) {
	cat := testCatalog()
	selections := []models.Selection{
		{SelectionID: "s1", CourseID: "course-ie-670", Status: models.StatusPlanned},
		{SelectionID: "s2", CourseID: "course-ac-651", Status: models.StatusPlanned, ECTS: ects(18)},
	}

	// data-management needs 6 and gets 6; booking more elsewhere never
	// pushes any area ratio above 1.
	for _, p := range BuildAreaProgress(cat, selections) {
		if p.Progress > 1 {
			t.Fatalf("area progress above 1: %+v", p)
		}
	}
}

func TestBuildAreaProgressZeroMinimum(t *testing.T) {
	rules := models.ProgramRules{
		ProgramName: "Test",
		TotalECTS:   10,
		Areas:       []models.AreaRule{{ID: "free", Name: "Free", MinECTS: 0}},
	}
	cat := catalog.New([]models.CourseRecord{
		{ID: "c1", Code: "F 1", Title: "Free Course", ECTS: 3, AreaID: "free", AreaName: "Free"},
	}, rules, nil)

	selections := []models.Selection{
		{SelectionID: "s1", CourseID: "c1", Status: models.StatusPlanned},
	}

	progress := BuildAreaProgress(cat, selections)
	if len(progress) != 1 {
		t.Fatalf("expected 1 area, got %d", len(progress))
	}
	if progress[0].Progress != 1 {
		t.Fatalf("zero-minimum area must cap at 1, got %g", progress[0].Progress)
	}
	if !progress[0].Fulfilled {
		t.Fatal("zero-minimum area is always fulfilled")
	}
}
