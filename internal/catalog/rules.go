package catalog

import (
	"regexp"
	"strings"

	"studyplanner/internal/app/models"
)

// Program rules for M.Sc. Data Science (Mannheim), PO 2024.
var defaultRules = models.ProgramRules{
	ProgramName: "M.Sc. Data Science (Mannheim)",
	TotalECTS:   120,
	Areas: []models.AreaRule{
		{ID: "fundamentals", Name: "B. Fundamentals", MinECTS: 27, MaxECTS: 27, RequiredECTS: 27},
		{ID: "data-management", Name: "C. Data Management", MinECTS: 6, MaxECTS: 24, RequiredECTS: 6},
		{ID: "data-analytics-methods", Name: "D. Data Analytics Methods", MinECTS: 12, MaxECTS: 36, RequiredECTS: 12},
		{ID: "responsible-data-science", Name: "E. Responsible Data Science", MinECTS: 3, MaxECTS: 7, RequiredECTS: 3},
		{ID: "projects-and-seminars", Name: "F. Projects and Seminars", MinECTS: 14, MaxECTS: 18, RequiredECTS: 14},
		{ID: "master-thesis", Name: "G. Master Thesis", MinECTS: 30, MaxECTS: 30, RequiredECTS: 30},
	},
}

// defaultAreaColors maps area ids to their display colors.
var defaultAreaColors = map[string]string{
	"fundamentals":             "#b5673f",
	"data-management":          "#c78c64",
	"data-analytics-methods":   "#d4a574",
	"responsible-data-science": "#8fbc8f",
	"projects-and-seminars":    "#9f4f2a",
	"master-thesis":            "#6b4423",
	"unassigned":               "#d2c8bf",
}

// Additional Course module constants. These modules carry no fixed credit
// value; each selection books its own amount up to the cap.
const additionalCourseMaxECTS = 18

var additionalCourseCodes = map[string]struct{}{
	"AC 651": {},
	"AC 652": {},
	"AC 653": {},
	"AC 654": {},
}

// DefaultRules returns a copy of the bundled program rules.
func DefaultRules() models.ProgramRules {
	rules := defaultRules
	rules.Areas = append([]models.AreaRule(nil), defaultRules.Areas...)
	return rules
}

// DefaultAreaColors returns a copy of the bundled area color map.
func DefaultAreaColors() map[string]string {
	colors := make(map[string]string, len(defaultAreaColors))
	for k, v := range defaultAreaColors {
		colors[k] = v
	}
	return colors
}

// isAdditionalCourse reports whether a course code names an Additional Course module.
func isAdditionalCourse(code string) bool {
	_, ok := additionalCourseCodes[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// normalizeText lowercases and strips everything but letters and digits,
// so area names match regardless of punctuation and spacing.
func normalizeText(text string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(text), "")
}

// areaIDFromName maps a free-form area name to its area id, or "".
func areaIDFromName(name string) string {
	n := normalizeText(name)
	switch {
	case strings.Contains(n, "fundamental"):
		return "fundamentals"
	case strings.Contains(n, "datamanagement"):
		return "data-management"
	case strings.Contains(n, "dataanalyticsmethod"), strings.Contains(n, "dataanalyticmethod"):
		return "data-analytics-methods"
	case strings.Contains(n, "responsible"):
		return "responsible-data-science"
	case strings.Contains(n, "project"), strings.Contains(n, "seminar"):
		return "projects-and-seminars"
	case strings.Contains(n, "thesis"):
		return "master-thesis"
	}
	return ""
}

// areaNameForID resolves the display name of an area id, "Unassigned" when unknown.
func areaNameForID(rules models.ProgramRules, areaID string) string {
	for _, area := range rules.Areas {
		if area.ID == areaID {
			return area.Name
		}
	}
	return "Unassigned"
}
