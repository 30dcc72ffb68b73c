// Package storage persists the selection list as a versioned JSON envelope,
// the durable backing copy of the in-memory plan. It is read once at startup
// and overwritten after every mutation.
package storage

import (
	"strings"
	"time"

	"studyplanner/internal/app/models"
)

// EnvelopeVersion is the schema version written with every save.
const EnvelopeVersion = "1.0"

// Envelope is the persisted shape of the plan.
type Envelope struct {
	Version      string             `json:"version"`
	Selections   []models.Selection `json:"selections"`
	LastModified time.Time          `json:"lastModified"`
}

// Adapter loads and saves the selection list.
//
// Load fails gracefully: a missing backing store yields an empty list and no
// error; corrupt data or a schema-version mismatch yields an empty list and a
// storage read error the caller may log and ignore. Save must be a single
// write from the caller's perspective and must leave prior state untouched
// when it fails.
type Adapter interface {
	Load() ([]models.Selection, error)
	Save(selections []models.Selection) error
}

// compatibleVersion reports whether a persisted envelope can be passed
// through unchanged. Versions sharing the current major version pass; future
// majors would need a transform this version does not have.
func compatibleVersion(version string) bool {
	major, _, _ := strings.Cut(version, ".")
	currentMajor, _, _ := strings.Cut(EnvelopeVersion, ".")
	return major == currentMajor
}
