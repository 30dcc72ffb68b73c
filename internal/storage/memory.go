package storage

import (
	"studyplanner/internal/app/models"
	"studyplanner/internal/pkg/apperrors"
)

// MemoryAdapter keeps the envelope in memory. Used by tests and by the CLI
// export path, which never persists.
type MemoryAdapter struct {
	selections []models.Selection

	// FailWrites makes every Save return a storage write error.
	FailWrites bool
	// SaveCount counts successful saves.
	SaveCount int
}

// NewMemoryAdapter creates an empty in-memory adapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{selections: []models.Selection{}}
}

// Load returns a copy of the stored selection list.
func (a *MemoryAdapter) Load() ([]models.Selection, error) {
	return append([]models.Selection(nil), a.selections...), nil
}

// Save replaces the stored selection list.
func (a *MemoryAdapter) Save(selections []models.Selection) error {
	if a.FailWrites {
		return apperrors.NewCustomError(apperrors.ErrStorageWrite, "memory adapter write disabled")
	}
	a.selections = append([]models.Selection(nil), selections...)
	a.SaveCount++
	return nil
}
