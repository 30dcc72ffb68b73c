package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"studyplanner/internal/app/models"
	"studyplanner/internal/catalog"
	"studyplanner/internal/export"
	"studyplanner/internal/metrics"
	"studyplanner/internal/pkg/apperrors"
	"studyplanner/internal/planner"
	"studyplanner/internal/storage"
)

type recordedEvent struct {
	eventType   string
	courseID    string
	selectionID string
}

type fakePublisher struct {
	events []recordedEvent
}

func (p *fakePublisher) PublishPlanEvent(eventType, courseID, selectionID string) {
	p.events = append(p.events, recordedEvent{eventType, courseID, selectionID})
}

func serviceTestCatalog() *catalog.Catalog {
	maxECTS := 18.0
	courses := []models.CourseRecord{
		{ID: "course-ie-500", Code: "IE 500", Title: "Data Mining I", ECTS: 6,
			AreaID: "data-analytics-methods", AreaName: "D. Data Analytics Methods"},
		{ID: "course-ac-651", Code: "AC 651", Title: "Additional Course", ECTS: 18,
			IsVariableCredit: true, MaxECTS: &maxECTS},
	}
	return catalog.New(courses, catalog.DefaultRules(), catalog.DefaultAreaColors())
}

func newTestService(t *testing.T) (*PlannerService, *storage.MemoryAdapter, *metrics.Metrics, *fakePublisher) {
	t.Helper()
	adapter := storage.NewMemoryAdapter()
	store := planner.NewStore(serviceTestCatalog(), adapter)
	m := metrics.New()
	publisher := &fakePublisher{}
	return NewPlannerService(store, m, publisher, zerolog.Nop()), adapter, m, publisher
}

func TestPlanCourseEmitsEventAndMetric(t *testing.T) {
	service, _, m, publisher := newTestService(t)

	selection, err := service.PlanCourse("course-ie-500")
	if err != nil {
		t.Fatalf("PlanCourse failed: %v", err)
	}

	if got := testutil.ToFloat64(m.Mutations.WithLabelValues("plan")); got != 1 {
		t.Fatalf("expected 1 plan mutation, got %g", got)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.eventType != "plan" || event.courseID != "course-ie-500" || event.selectionID != selection.SelectionID {
		t.Fatalf("unexpected event %+v", event)
	}
}

func TestFailedMutationEmitsNothing(t *testing.T) {
	service, _, m, publisher := newTestService(t)

	if _, err := service.PlanCourse("gone"); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected course-not-found, got %v", err)
	}
	if got := testutil.ToFloat64(m.Mutations.WithLabelValues("plan")); got != 0 {
		t.Fatalf("failed mutation must not count, got %g", got)
	}
	if len(publisher.events) != 0 {
		t.Fatalf("failed mutation must not publish, got %d events", len(publisher.events))
	}
}

func TestStorageWriteFailureIsCounted(t *testing.T) {
	service, adapter, m, _ := newTestService(t)
	adapter.FailWrites = true

	if _, err := service.PlanCourse("course-ie-500"); !errors.Is(err, apperrors.ErrStorageWrite) {
		t.Fatalf("expected storage-write error, got %v", err)
	}
	if got := testutil.ToFloat64(m.StorageWriteFailures); got != 1 {
		t.Fatalf("expected 1 storage write failure, got %g", got)
	}
}

func TestRemoveMissPublishesNothing(t *testing.T) {
	service, _, m, publisher := newTestService(t)

	removed, err := service.RemoveSelection("course-ie-500", "")
	if err != nil || removed {
		t.Fatalf("miss must be a silent no-op, got removed=%v err=%v", removed, err)
	}
	if got := testutil.ToFloat64(m.Mutations.WithLabelValues("remove")); got != 0 {
		t.Fatalf("no-op must not count, got %g", got)
	}
	if len(publisher.events) != 0 {
		t.Fatalf("no-op must not publish, got %d events", len(publisher.events))
	}
}

func TestGetPlanViewModel(t *testing.T) {
	service, _, _, _ := newTestService(t)

	if _, err := service.PlanCourse("course-ie-500"); err != nil {
		t.Fatalf("PlanCourse failed: %v", err)
	}
	if _, err := service.AddVariableCredit("course-ac-651", 6); err != nil {
		t.Fatalf("AddVariableCredit failed: %v", err)
	}

	plan := service.GetPlan(planner.Query{})
	// one fixed row, one booked row, one available row with 12 ECTS headroom
	if len(plan.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(plan.Rows))
	}
	if plan.Summary.PlannedECTS != 12 {
		t.Fatalf("expected 12 planned ECTS, got %g", plan.Summary.PlannedECTS)
	}
	if len(plan.Selections) != 2 {
		t.Fatalf("expected 2 selections, got %d", len(plan.Selections))
	}
}

func TestBackupExportImportRoundTrip(t *testing.T) {
	service, _, m, _ := newTestService(t)

	if _, err := service.PlanCourse("course-ie-500"); err != nil {
		t.Fatalf("PlanCourse failed: %v", err)
	}

	data, err := json.Marshal(service.ExportBackup())
	if err != nil {
		t.Fatalf("failed to encode backup: %v", err)
	}

	if err := service.RemoveAll(); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}

	count, err := service.ImportBackup(data)
	if err != nil {
		t.Fatalf("ImportBackup failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 imported selection, got %d", count)
	}
	if got := testutil.ToFloat64(m.Mutations.WithLabelValues("import")); got != 1 {
		t.Fatalf("expected 1 import mutation, got %g", got)
	}
}

func TestImportBackupRejectsGarbage(t *testing.T) {
	service, _, _, _ := newTestService(t)

	if _, err := service.ImportBackup([]byte("{broken")); !errors.Is(err, apperrors.ErrInvalidBackup) {
		t.Fatalf("expected invalid-backup, got %v", err)
	}
}

func TestExportServiceCountsRenders(t *testing.T) {
	m := metrics.New()
	service := NewExportService(serviceTestCatalog(), m)

	result, err := service.Render("md", []models.Selection{
		{SelectionID: "s1", CourseID: "course-ie-500", Status: models.StatusPlanned},
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if result.ContentType != "text/markdown" {
		t.Fatalf("unexpected content type %q", result.ContentType)
	}
	if got := testutil.ToFloat64(m.Exports.WithLabelValues(string(export.FormatMarkdown))); got != 1 {
		t.Fatalf("expected 1 markdown export, got %g", got)
	}

	if _, err := service.Render("pdf", nil); !errors.Is(err, apperrors.ErrUnknownExportFormat) {
		t.Fatalf("expected unknown-format, got %v", err)
	}
}
