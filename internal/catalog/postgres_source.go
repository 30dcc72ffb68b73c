package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"studyplanner/internal/app/models"
	"studyplanner/internal/pkg/apperrors"
	"studyplanner/internal/pkg/logger"
)

// PostgresSource loads the catalog from a read-only courses table. Program
// rules and colors are still the bundled ones; only course records live in
// the database. Plan state never touches the database.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource creates a database-backed catalog source.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

const coursesQuery = `
	SELECT id, code, title, ects, professor, chair, semester, area_id,
	       is_variable_credit, max_ects, h_index, citations
	FROM courses
	ORDER BY lower(title)`

// Load reads all courses. Any database error is fatal for startup.
func (s *PostgresSource) Load(ctx context.Context) (*Catalog, error) {
	rules := DefaultRules()

	rows, err := s.pool.Query(ctx, coursesQuery)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrCatalogUnavailable,
			fmt.Sprintf("failed to query courses: %v", err))
	}
	defer rows.Close()

	var courses []models.CourseRecord
	for rows.Next() {
		var course models.CourseRecord
		err := rows.Scan(
			&course.ID,
			&course.Code,
			&course.Title,
			&course.ECTS,
			&course.Professor,
			&course.Chair,
			&course.Semester,
			&course.AreaID,
			&course.IsVariableCredit,
			&course.MaxECTS,
			&course.HIndex,
			&course.Citations,
		)
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrCatalogUnavailable,
				fmt.Sprintf("failed to scan course row: %v", err))
		}
		course.AreaName = areaNameForID(rules, course.AreaID)
		course.Source = "catalog"
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrCatalogUnavailable,
			fmt.Sprintf("failed to read course rows: %v", err))
	}

	logger.Info().Int("courses", len(courses)).Msg("Catalog loaded from database")
	return New(courses, rules, DefaultAreaColors()), nil
}
