package services

import (
	"errors"

	"github.com/rs/zerolog"

	"studyplanner/internal/app/models"
	"studyplanner/internal/app/models/dto"
	"studyplanner/internal/export"
	"studyplanner/internal/metrics"
	"studyplanner/internal/pkg/apperrors"
	"studyplanner/internal/planner"
)

// EventPublisher pushes plan-change notifications to listeners.
type EventPublisher interface {
	PublishPlanEvent(eventType, courseID, selectionID string)
}

// PlannerService orchestrates the selection store: it runs mutations,
// derives view models and emits events and metrics around them.
type PlannerService struct {
	store   *planner.Store
	metrics *metrics.Metrics
	events  EventPublisher
	logger  zerolog.Logger
}

// NewPlannerService creates a new planner service instance.
func NewPlannerService(store *planner.Store, m *metrics.Metrics, events EventPublisher, logger zerolog.Logger) *PlannerService {
	return &PlannerService{
		store:   store,
		metrics: m,
		events:  events,
		logger:  logger,
	}
}

// GetPlan derives the current view model under the given filter/sort state.
func (s *PlannerService) GetPlan(q planner.Query) dto.PlanResponse {
	cat := s.store.Catalog()
	selections := s.store.Selections()

	return dto.PlanResponse{
		Rows:         planner.BuildRows(cat, selections, q),
		Summary:      planner.Summarize(cat, selections),
		AreaProgress: planner.BuildAreaProgress(cat, selections),
		Selections:   selections,
	}
}

// PlanCourse plans a fixed-credit course.
func (s *PlannerService) PlanCourse(courseID string) (*models.Selection, error) {
	selection, err := s.store.Plan(courseID)
	if err != nil {
		return nil, s.observeError("plan", err)
	}

	s.afterMutation("plan", courseID, selection.SelectionID)
	return selection, nil
}

// AddVariableCredit books a credit amount of a variable-credit course.
func (s *PlannerService) AddVariableCredit(courseID string, ects float64) (*models.Selection, error) {
	selection, err := s.store.AddVariableCredit(courseID, ects)
	if err != nil {
		return nil, s.observeError("add_variable", err)
	}

	s.afterMutation("add_variable", courseID, selection.SelectionID)
	return selection, nil
}

// RemoveSelection removes one selection, or all selections of a course when
// selectionID is empty. A miss is a no-op.
func (s *PlannerService) RemoveSelection(courseID, selectionID string) (bool, error) {
	changed, err := s.store.Remove(courseID, selectionID)
	if err != nil {
		return changed, s.observeError("remove", err)
	}
	if changed {
		s.afterMutation("remove", courseID, selectionID)
	}
	return changed, nil
}

// ToggleCompleted flips a selection between planned and completed.
func (s *PlannerService) ToggleCompleted(courseID, selectionID string) (bool, error) {
	changed, err := s.store.ToggleCompleted(courseID, selectionID)
	if err != nil {
		return changed, s.observeError("toggle", err)
	}
	if changed {
		s.afterMutation("toggle", courseID, selectionID)
	}
	return changed, nil
}

// RemoveAll clears the plan. The caller has already confirmed the action.
func (s *PlannerService) RemoveAll() error {
	if err := s.store.RemoveAll(); err != nil {
		return s.observeError("clear", err)
	}

	s.afterMutation("clear", "", "")
	return nil
}

// ExportBackup wraps the current selections into a backup document.
func (s *PlannerService) ExportBackup() export.Backup {
	return export.NewBackup(s.store.Selections())
}

// ImportBackup replaces the whole plan with a parsed backup file.
func (s *PlannerService) ImportBackup(data []byte) (int, error) {
	selections, err := export.ParseBackup(data)
	if err != nil {
		return 0, err
	}

	if err := s.store.ReplaceAll(selections); err != nil {
		return 0, s.observeError("import", err)
	}

	s.afterMutation("import", "", "")
	return len(selections), nil
}

// afterMutation records a successful mutation and notifies listeners.
func (s *PlannerService) afterMutation(operation, courseID, selectionID string) {
	s.metrics.Mutations.WithLabelValues(operation).Inc()
	if s.events != nil {
		s.events.PublishPlanEvent(operation, courseID, selectionID)
	}
}

// observeError counts storage write failures before passing the error on.
func (s *PlannerService) observeError(operation string, err error) error {
	if errors.Is(err, apperrors.ErrStorageWrite) {
		s.metrics.StorageWriteFailures.Inc()
		s.logger.Warn().Str("operation", operation).Err(err).Msg("Plan mutation could not be persisted")
	}
	return err
}
