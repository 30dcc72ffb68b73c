package services

import (
	"time"

	"studyplanner/internal/app/models"
	"studyplanner/internal/catalog"
	"studyplanner/internal/export"
	"studyplanner/internal/metrics"
)

// ExportService renders posted selection lists into downloadable documents.
type ExportService struct {
	catalog *catalog.Catalog
	metrics *metrics.Metrics
}

// NewExportService creates a new export service instance.
func NewExportService(cat *catalog.Catalog, m *metrics.Metrics) *ExportService {
	return &ExportService{catalog: cat, metrics: m}
}

// Render produces the plan export in the named format.
func (s *ExportService) Render(formatName string, selections []models.Selection) (*export.Result, error) {
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	result, err := export.Render(s.catalog, selections, format, time.Now())
	if err != nil {
		return nil, err
	}

	s.metrics.Exports.WithLabelValues(string(format)).Inc()
	return result, nil
}
