// Package seed provisions a usable data directory on first start.
package seed

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// sampleCatalog is a minimal but representative catalog, enough to run the
// planner on a fresh checkout. Deployments replace it with the full parsed
// catalog files.
const sampleCatalog = `{
  "courses": [
    {"id": "course-ie-500", "code": "IE 500", "title": "Data Mining I", "ects": 6,
     "professor": "Prof. Dr. Heiko Paulheim", "area_id": "data-analytics-methods", "semester": "FSS"},
    {"id": "course-ie-675", "code": "IE 675", "title": "Machine Learning", "ects": 9,
     "professor": "Prof. Dr. Rainer Gemulla", "area_id": "data-analytics-methods", "semester": "HWS"},
    {"id": "course-cs-560", "code": "CS 560", "title": "Large-Scale Data Management", "ects": 6,
     "professor": "Prof. Dr. Theo Haerder", "area_id": "data-management", "semester": "HWS"},
    {"id": "course-ds-500", "code": "DS 500", "title": "Foundations of Statistics", "ects": 9,
     "professor": "Prof. Dr. Anna Keller", "area_id": "fundamentals", "semester": "HWS"},
    {"id": "course-ds-510", "code": "DS 510", "title": "Linear Algebra for Data Science", "ects": 9,
     "professor": "Prof. Dr. Jan Brandt", "area_id": "fundamentals", "semester": "FSS"},
    {"id": "course-rds-530", "code": "RDS 530", "title": "Responsible Data Science Seminar", "ects": 3,
     "professor": "Dr. Miriam Vogel", "area_id": "responsible-data-science", "semester": "FSS"},
    {"id": "course-tp-640", "code": "TP 640", "title": "Team Project Data Science", "ects": 14,
     "professor": "Prof. Dr. Rainer Gemulla", "area_id": "projects-and-seminars", "semester": "HWS"},
    {"id": "course-mt-650", "code": "MT 650", "title": "Master Thesis", "ects": 30,
     "professor": "", "area_id": "master-thesis", "semester": ""},
    {"id": "course-ac-651", "code": "AC 651", "title": "Additional Course", "ects": "18 max",
     "professor": "", "area_id": "data-management", "semester": ""}
  ]
}
`

// EnsureSampleCatalog writes the bundled sample catalog when the data
// directory has no catalog files yet. Existing files are never touched.
func EnsureSampleCatalog(dataDir string, lgr zerolog.Logger) error {
	for _, name := range []string{"courses_full.json", "courses_parsed.json"} {
		if _, err := os.Stat(filepath.Join(dataDir, name)); err == nil {
			return nil
		}
	}

	if err := os.MkdirAll(dataDir, os.ModePerm); err != nil {
		return err
	}

	path := filepath.Join(dataDir, "courses_parsed.json")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		return err
	}

	lgr.Info().Str("path", path).Msg("No catalog found, wrote sample catalog")
	return nil
}
