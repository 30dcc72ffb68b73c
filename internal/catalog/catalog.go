package catalog

import (
	"context"

	"studyplanner/internal/app/models"
)

// Catalog is the immutable, session-lifetime view of the course catalog and
// program rules. It is loaded once at startup and never mutated afterwards.
type Catalog struct {
	Courses    []models.CourseRecord
	Rules      models.ProgramRules
	AreaColors map[string]string

	byID map[string]int
}

// Source loads a catalog from some backing store. Any error is fatal for
// startup; there is no retry.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// New builds a catalog and its course index.
func New(courses []models.CourseRecord, rules models.ProgramRules, colors map[string]string) *Catalog {
	c := &Catalog{
		Courses:    courses,
		Rules:      rules,
		AreaColors: colors,
		byID:       make(map[string]int, len(courses)),
	}
	for i, course := range courses {
		c.byID[course.ID] = i
	}
	return c
}

// CourseByID returns the course with the given id, or nil.
func (c *Catalog) CourseByID(id string) *models.CourseRecord {
	if i, ok := c.byID[id]; ok {
		return &c.Courses[i]
	}
	return nil
}

// AreaRuleByID returns the area rule with the given id, or nil.
func (c *Catalog) AreaRuleByID(id string) *models.AreaRule {
	for i := range c.Rules.Areas {
		if c.Rules.Areas[i].ID == id {
			return &c.Rules.Areas[i]
		}
	}
	return nil
}

// Len returns the number of catalog courses.
func (c *Catalog) Len() int {
	return len(c.Courses)
}
