package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"studyplanner/internal/app/models"
	"studyplanner/internal/pkg/apperrors"
	"studyplanner/internal/pkg/logger"
)

// FileSource loads the catalog from JSON files in a data directory. It
// prefers courses_full.json (which carries professor and research metrics)
// and falls back to courses_parsed.json.
type FileSource struct {
	dataDir string
}

// NewFileSource creates a file-backed catalog source.
func NewFileSource(dataDir string) *FileSource {
	return &FileSource{dataDir: dataDir}
}

// rawCourse tolerates both catalog field naming conventions
// (module_code/module_name vs code/title) and both assigned_areas shapes.
type rawCourse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	ModuleCode    string          `json:"module_code"`
	Title         string          `json:"title"`
	ModuleName    string          `json:"module_name"`
	ECTS          json.RawMessage `json:"ects"`
	Professor     string          `json:"professor"`
	Chair         string          `json:"chair"`
	Semester      string          `json:"semester"`
	AreaID        string          `json:"area_id"`
	AssignedAreas json.RawMessage `json:"assigned_areas"`
	Source        string          `json:"source"`
	Metrics       *rawMetrics     `json:"metrics"`
}

type rawMetrics struct {
	HIndex            int    `json:"h_index"`
	Citations         int    `json:"citations"`
	TopPaperTitle     string `json:"top_paper_title"`
	TopPaperCitations int    `json:"top_paper_citations"`
	TopPaperYear      *int   `json:"top_paper_year"`
	TopPaperVenue     string `json:"top_paper_venue"`
}

type coursesFile struct {
	Courses []rawCourse `json:"courses"`
}

type restrictedEntry struct {
	Code   string `json:"code"`
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

type restrictedFile struct {
	Restricted []restrictedEntry `json:"restricted"`
}

// Load reads and normalizes the catalog. Any read or parse failure is fatal.
func (s *FileSource) Load(ctx context.Context) (*Catalog, error) {
	raw, err := s.loadCourses()
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrCatalogUnavailable, err.Error())
	}

	restricted, err := s.loadRestricted()
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrCatalogUnavailable, err.Error())
	}

	rules := DefaultRules()

	courses := make([]models.CourseRecord, 0, len(raw))
	for _, rc := range raw {
		course, explicit := serializeCourse(rc, rules, restricted)
		// Explicitly restricted modules are not served at all.
		if explicit {
			continue
		}
		courses = append(courses, course)
	}

	sort.SliceStable(courses, func(i, j int) bool {
		return strings.ToLower(courses[i].Title) < strings.ToLower(courses[j].Title)
	})

	logger.Info().Int("courses", len(courses)).Str("dataDir", s.dataDir).Msg("Catalog loaded")
	return New(courses, rules, DefaultAreaColors()), nil
}

// loadCourses reads the preferred course file, falling back to the parsed one.
func (s *FileSource) loadCourses() ([]rawCourse, error) {
	for _, name := range []string{"courses_full.json", "courses_parsed.json"} {
		path := filepath.Join(s.dataDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		var file coursesFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if len(file.Courses) > 0 {
			return file.Courses, nil
		}
	}
	return nil, fmt.Errorf("no course catalog found in %s", s.dataDir)
}

// loadRestricted reads the restricted-course map; a missing file means no restrictions.
func (s *FileSource) loadRestricted() (map[string]restrictedEntry, error) {
	path := filepath.Join(s.dataDir, "restricted_courses.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]restrictedEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file restrictedFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	byCode := make(map[string]restrictedEntry, len(file.Restricted))
	for _, entry := range file.Restricted {
		code := strings.ToUpper(strings.TrimSpace(entry.Code))
		if code != "" {
			byCode[code] = entry
		}
	}
	return byCode, nil
}

// serializeCourse normalizes one raw catalog entry. The second return value
// reports whether the course is explicitly restricted and must be dropped.
func serializeCourse(rc rawCourse, rules models.ProgramRules, restricted map[string]restrictedEntry) (models.CourseRecord, bool) {
	code := rc.Code
	if code == "" {
		code = rc.ModuleCode
	}
	title := rc.Title
	if title == "" {
		title = rc.ModuleName
	}

	isAC := isAdditionalCourse(code)

	areaID := rc.AreaID
	if areaID == "" {
		areaID = areaIDFromAssigned(rc.AssignedAreas)
	}

	id := rc.ID
	if id == "" {
		id = "course-" + strings.ReplaceAll(strings.ToLower(code), " ", "-")
	}

	source := rc.Source
	if source == "" {
		source = "catalog"
	}

	course := models.CourseRecord{
		ID:               id,
		Code:             code,
		Title:            title,
		ECTS:             parseECTS(rc.ECTS, isAC),
		Professor:        rc.Professor,
		Chair:            rc.Chair,
		Semester:         rc.Semester,
		AreaID:           areaID,
		AreaName:         areaNameForID(rules, areaID),
		Source:           source,
		IsVariableCredit: isAC,
	}

	if isAC {
		maxECTS := float64(additionalCourseMaxECTS)
		course.MaxECTS = &maxECTS
	}

	if rc.Metrics != nil {
		course.HIndex = rc.Metrics.HIndex
		course.Citations = rc.Metrics.Citations
		if rc.Metrics.TopPaperTitle != "" {
			course.TopPaper = &models.TopPaper{
				Title:     rc.Metrics.TopPaperTitle,
				Citations: rc.Metrics.TopPaperCitations,
				Year:      rc.Metrics.TopPaperYear,
				Venue:     rc.Metrics.TopPaperVenue,
			}
		}
	}

	entry, found := restricted[strings.ToUpper(code)]
	return course, found && entry.Kind == "explicit"
}

// assignedAreaEntry is the older assigned_areas shape carrying a PO version.
type assignedAreaEntry struct {
	Area      string `json:"area"`
	POVersion string `json:"po_version"`
}

// areaIDFromAssigned derives an area id from the assigned_areas field, which
// is either a list of names or a list of {area, po_version} objects. For the
// object shape, a PO 2024 assignment wins over the first entry.
func areaIDFromAssigned(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err == nil {
		if len(names) == 0 {
			return ""
		}
		return areaIDFromName(names[0])
	}

	var entries []assignedAreaEntry
	if err := json.Unmarshal(raw, &entries); err != nil || len(entries) == 0 {
		return ""
	}
	for _, entry := range entries {
		if strings.Contains(entry.POVersion, "PO 2024") {
			if id := areaIDFromName(entry.Area); id != "" {
				return id
			}
			break
		}
	}
	return areaIDFromName(entries[0].Area)
}

// parseECTS parses the catalog's credit field, which is either a number or a
// string. Strings containing "max" mark variable-credit modules; those carry
// the Additional Course cap as their nominal value, everything else parses
// numerically and defaults to 0 on garbage.
func parseECTS(raw json.RawMessage, isAC bool) float64 {
	if len(raw) == 0 {
		return 0
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if strings.Contains(strings.ToLower(str), "max") {
			if isAC {
				return additionalCourseMaxECTS
			}
			return 0
		}
		var value float64
		if _, err := fmt.Sscanf(strings.TrimSpace(str), "%g", &value); err == nil {
			return value
		}
		return 0
	}

	var value float64
	if err := json.Unmarshal(raw, &value); err == nil {
		return value
	}
	return 0
}
