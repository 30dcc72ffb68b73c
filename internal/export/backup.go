package export

import (
	"encoding/json"
	"time"

	"studyplanner/internal/app/models"
	"studyplanner/internal/pkg/apperrors"
	"studyplanner/internal/storage"
)

// Backup is the user-facing export/import format for local plan state.
type Backup struct {
	Version    string             `json:"version"`
	ExportDate time.Time          `json:"exportDate"`
	Selections []models.Selection `json:"selections"`
}

// NewBackup wraps a selection list into a downloadable backup document.
func NewBackup(selections []models.Selection) Backup {
	if selections == nil {
		selections = []models.Selection{}
	}
	return Backup{
		Version:    storage.EnvelopeVersion,
		ExportDate: time.Now().UTC(),
		Selections: selections,
	}
}

// ParseBackup validates and decodes a backup document. The selections field
// must be present and must be a list; anything else rejects the file.
func ParseBackup(data []byte) ([]models.Selection, error) {
	var probe struct {
		Version    string          `json:"version"`
		Selections json.RawMessage `json:"selections"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidBackup, "backup file is not valid JSON")
	}

	if len(probe.Selections) == 0 || string(probe.Selections) == "null" {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidBackup, "backup file has no selections field")
	}

	var selections []models.Selection
	if err := json.Unmarshal(probe.Selections, &selections); err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidBackup, "selections must be a list")
	}

	return selections, nil
}
