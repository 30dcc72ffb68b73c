package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"studyplanner/internal/app/models"
	"studyplanner/internal/pkg/apperrors"
	"studyplanner/internal/pkg/logger"
)

const planFilename = "plan.json"

// FileAdapter persists the envelope to a JSON file under a base directory.
type FileAdapter struct {
	basePath string
}

// NewFileAdapter creates a file-backed adapter, ensuring the base directory exists.
func NewFileAdapter(basePath string) (*FileAdapter, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &FileAdapter{basePath: basePath}, nil
}

// Load reads the persisted selection list. A missing file is a fresh start;
// corrupt data and version mismatches surface as a storage read error
// alongside an empty list.
func (a *FileAdapter) Load() ([]models.Selection, error) {
	path := filepath.Join(a.basePath, planFilename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Selection{}, nil
		}
		return []models.Selection{}, apperrors.NewCustomError(apperrors.ErrStorageRead,
			fmt.Sprintf("failed to read %s: %v", path, err))
	}

	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return []models.Selection{}, apperrors.NewCustomError(apperrors.ErrStorageRead,
			fmt.Sprintf("failed to parse %s: %v", path, err))
	}

	if !compatibleVersion(envelope.Version) {
		logger.Warn().Str("version", envelope.Version).Str("supported", EnvelopeVersion).
			Msg("Persisted plan has an unsupported schema version")
		return []models.Selection{}, apperrors.NewCustomError(apperrors.ErrStorageRead,
			fmt.Sprintf("unsupported plan schema version %q", envelope.Version))
	}

	if envelope.Selections == nil {
		envelope.Selections = []models.Selection{}
	}
	return envelope.Selections, nil
}

// Save writes the full envelope. The write goes to a temp file first and is
// renamed into place, so a failed save leaves the previous file intact.
func (a *FileAdapter) Save(selections []models.Selection) error {
	envelope := Envelope{
		Version:      EnvelopeVersion,
		Selections:   selections,
		LastModified: time.Now().UTC(),
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return apperrors.NewCustomError(apperrors.ErrStorageWrite,
			fmt.Sprintf("failed to encode plan: %v", err))
	}

	path := filepath.Join(a.basePath, planFilename)
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return apperrors.NewCustomError(apperrors.ErrStorageWrite,
			fmt.Sprintf("failed to write %s: %v", tmpPath, err))
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return apperrors.NewCustomError(apperrors.ErrStorageWrite,
			fmt.Sprintf("failed to replace %s: %v", path, err))
	}

	return nil
}
