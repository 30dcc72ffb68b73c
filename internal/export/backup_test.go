package export

import (
	"encoding/json"
	"errors"
	"testing"

	"studyplanner/internal/app/models"
	"studyplanner/internal/pkg/apperrors"
	"studyplanner/internal/storage"
)

func TestNewBackup(t *testing.T) {
	backup := NewBackup(testSelections())
	if backup.Version != storage.EnvelopeVersion {
		t.Fatalf("expected version %q, got %q", storage.EnvelopeVersion, backup.Version)
	}
	if backup.ExportDate.IsZero() {
		t.Fatal("export date not set")
	}
	if len(backup.Selections) != 3 {
		t.Fatalf("expected 3 selections, got %d", len(backup.Selections))
	}
}

func TestNewBackupNilSelections(t *testing.T) {
	backup := NewBackup(nil)
	if backup.Selections == nil {
		t.Fatal("nil selections must serialize as an empty list")
	}
}

func TestBackupRoundTrip(t *testing.T) {
	data, err := json.Marshal(NewBackup(testSelections()))
	if err != nil {
		t.Fatalf("failed to encode backup: %v", err)
	}

	selections, err := ParseBackup(data)
	if err != nil {
		t.Fatalf("ParseBackup failed: %v", err)
	}
	if len(selections) != 3 {
		t.Fatalf("expected 3 selections, got %d", len(selections))
	}
	if selections[0].SelectionID != "s1" || selections[0].Status != models.StatusCompleted {
		t.Fatalf("selection lost in round trip: %+v", selections[0])
	}
	if selections[2].ECTS == nil || *selections[2].ECTS != 4 {
		t.Fatalf("credit amount lost in round trip: %+v", selections[2])
	}
}

func TestParseBackupRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{broken"},
		{"missing selections", `{"version":"1.0"}`},
		{"null selections", `{"version":"1.0","selections":null}`},
		{"selections not a list", `{"version":"1.0","selections":{"a":1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBackup([]byte(tt.data)); !errors.Is(err, apperrors.ErrInvalidBackup) {
				t.Fatalf("expected invalid-backup, got %v", err)
			}
		})
	}
}

func TestParseBackupEmptyList(t *testing.T) {
	selections, err := ParseBackup([]byte(`{"version":"1.0","selections":[]}`))
	if err != nil {
		t.Fatalf("empty selection list is valid: %v", err)
	}
	if len(selections) != 0 {
		t.Fatalf("expected no selections, got %d", len(selections))
	}
}
