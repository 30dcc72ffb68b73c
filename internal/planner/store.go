// Package planner holds the planning state engine: the selection store with
// its mutation operations, and the pure view-model builders derived from
// catalog and selections.
package planner

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"studyplanner/internal/app/models"
	"studyplanner/internal/catalog"
	"studyplanner/internal/pkg/apperrors"
	"studyplanner/internal/pkg/logger"
)

// Store owns the live selection list. All mutations go through its methods;
// every mutation that changes the list persists synchronously through the
// adapter before returning. The store is single-session state and is not
// safe for concurrent use.
type Store struct {
	catalog    *catalog.Catalog
	adapter    storageAdapter
	selections []models.Selection
}

// storageAdapter is the persistence contract the store depends on.
type storageAdapter interface {
	Load() ([]models.Selection, error)
	Save(selections []models.Selection) error
}

// NewStore creates a store seeded from the adapter. A storage read error is
// logged and recovered by starting from an empty list.
func NewStore(cat *catalog.Catalog, adapter storageAdapter) *Store {
	selections, err := adapter.Load()
	if err != nil {
		logger.Warn().Err(err).Msg("Could not read persisted plan, starting empty")
		selections = []models.Selection{}
	}

	return &Store{
		catalog:    cat,
		adapter:    adapter,
		selections: selections,
	}
}

// Selections returns a copy of the current selection list.
func (s *Store) Selections() []models.Selection {
	return append([]models.Selection(nil), s.selections...)
}

// Catalog returns the catalog the store validates against.
func (s *Store) Catalog() *catalog.Catalog {
	return s.catalog
}

// Plan creates a planned selection for a fixed-credit course.
func (s *Store) Plan(courseID string) (*models.Selection, error) {
	course := s.catalog.CourseByID(courseID)
	if course == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound,
			fmt.Sprintf("unknown course %q", courseID))
	}

	if course.IsVariableCredit {
		return nil, apperrors.NewCustomError(apperrors.ErrVariableCreditRequired,
			fmt.Sprintf("course %s needs a credit amount per selection", course.Code))
	}

	if s.hasSelectionFor(courseID) {
		return nil, apperrors.NewCustomError(apperrors.ErrDuplicateSelection,
			fmt.Sprintf("course %s is already in the plan", course.Code))
	}

	selection := models.Selection{
		SelectionID: uuid.NewString(),
		CourseID:    courseID,
		Status:      models.StatusPlanned,
	}
	s.selections = append(s.selections, selection)

	if err := s.persist(); err != nil {
		return nil, err
	}
	return &selection, nil
}

// AddVariableCredit creates a selection of a variable-credit course with a
// chosen credit amount. The amount must be a positive integer and must not
// push the course's committed total over its cap.
func (s *Store) AddVariableCredit(courseID string, ects float64) (*models.Selection, error) {
	course := s.catalog.CourseByID(courseID)
	if course == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound,
			fmt.Sprintf("unknown course %q", courseID))
	}

	if !course.IsVariableCredit {
		return nil, apperrors.NewCustomError(apperrors.ErrNotVariableCredit,
			fmt.Sprintf("course %s has a fixed credit value", course.Code))
	}

	if ects < 1 || ects != math.Trunc(ects) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCreditAmount,
			fmt.Sprintf("credit amount %g must be a whole number of at least 1", ects))
	}

	if course.MaxECTS != nil {
		remaining := *course.MaxECTS - s.committedECTS(courseID)
		if ects > remaining {
			return nil, apperrors.NewCapacityError(
				fmt.Sprintf("course %s has only %g ECTS remaining", course.Code, remaining),
				remaining)
		}
	}

	amount := ects
	selection := models.Selection{
		SelectionID: uuid.NewString(),
		CourseID:    courseID,
		Status:      models.StatusPlanned,
		ECTS:        &amount,
	}
	s.selections = append(s.selections, selection)

	if err := s.persist(); err != nil {
		return nil, err
	}
	return &selection, nil
}

// Remove deletes the selection with the given id, or every selection of the
// course when selectionID is empty. Removing nothing is a no-op and does not
// persist.
func (s *Store) Remove(courseID, selectionID string) (bool, error) {
	kept := s.selections[:0:0]
	for _, sel := range s.selections {
		match := false
		if selectionID != "" {
			match = sel.SelectionID == selectionID
		} else {
			match = sel.CourseID == courseID
		}
		if !match {
			kept = append(kept, sel)
		}
	}

	if len(kept) == len(s.selections) {
		return false, nil
	}

	s.selections = kept
	if err := s.persist(); err != nil {
		return true, err
	}
	return true, nil
}

// ToggleCompleted flips the status of the first matching selection. A
// selection-id match takes precedence over a course-id match. A miss is a
// no-op.
func (s *Store) ToggleCompleted(courseID, selectionID string) (bool, error) {
	idx := -1
	if selectionID != "" {
		for i := range s.selections {
			if s.selections[i].SelectionID == selectionID {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		for i := range s.selections {
			if s.selections[i].CourseID == courseID {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		return false, nil
	}

	if s.selections[idx].Status == models.StatusCompleted {
		s.selections[idx].Status = models.StatusPlanned
	} else {
		s.selections[idx].Status = models.StatusCompleted
	}

	if err := s.persist(); err != nil {
		return true, err
	}
	return true, nil
}

// RemoveAll clears the plan. Confirmation is the caller's concern; the
// resulting empty list is persisted.
func (s *Store) RemoveAll() error {
	s.selections = []models.Selection{}
	return s.persist()
}

// ReplaceAll swaps in a whole selection list, validating statuses and
// selection-id uniqueness. Used by backup import.
func (s *Store) ReplaceAll(selections []models.Selection) error {
	seen := make(map[string]struct{}, len(selections))
	for _, sel := range selections {
		if sel.SelectionID == "" {
			return apperrors.NewCustomError(apperrors.ErrInvalidBackup, "selection without an id")
		}
		if _, dup := seen[sel.SelectionID]; dup {
			return apperrors.NewCustomError(apperrors.ErrInvalidBackup,
				fmt.Sprintf("duplicate selection id %q", sel.SelectionID))
		}
		seen[sel.SelectionID] = struct{}{}
		if !sel.Status.IsValid() {
			return apperrors.NewCustomError(apperrors.ErrInvalidBackup,
				fmt.Sprintf("unknown selection status %q", sel.Status))
		}
	}

	s.selections = append([]models.Selection(nil), selections...)
	return s.persist()
}

// hasSelectionFor reports whether any selection references the course.
func (s *Store) hasSelectionFor(courseID string) bool {
	for _, sel := range s.selections {
		if sel.CourseID == courseID {
			return true
		}
	}
	return false
}

// committedECTS sums the booked credit amounts of a variable-credit course.
func (s *Store) committedECTS(courseID string) float64 {
	var total float64
	for _, sel := range s.selections {
		if sel.CourseID == courseID && sel.ECTS != nil {
			total += *sel.ECTS
		}
	}
	return total
}

// persist writes the current list through the adapter.
func (s *Store) persist() error {
	if err := s.adapter.Save(s.selections); err != nil {
		logger.Error().Err(err).Msg("Failed to persist plan")
		return err
	}
	return nil
}
