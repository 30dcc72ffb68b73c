package services

import (
	"studyplanner/internal/app/models/dto"
	"studyplanner/internal/catalog"
)

// CatalogService serves the immutable catalog view.
type CatalogService struct {
	catalog *catalog.Catalog
}

// NewCatalogService creates a new catalog service instance.
func NewCatalogService(cat *catalog.Catalog) *CatalogService {
	return &CatalogService{catalog: cat}
}

// GetCatalog returns the full catalog payload.
func (s *CatalogService) GetCatalog() dto.CatalogResponse {
	return dto.CatalogResponse{
		Courses:    s.catalog.Courses,
		Rules:      s.catalog.Rules,
		AreaColors: s.catalog.AreaColors,
	}
}
