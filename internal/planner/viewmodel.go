package planner

import (
	"sort"
	"strings"

	"studyplanner/internal/app/models"
	"studyplanner/internal/catalog"
)

// SortKey names a sortable column of the merged course view.
type SortKey string

const (
	SortTitle     SortKey = "title"
	SortCode      SortKey = "code"
	SortECTS      SortKey = "ects"
	SortProfessor SortKey = "professor"
	SortArea      SortKey = "area"
	SortHIndex    SortKey = "h_index"
	SortCitations SortKey = "citations"
)

// Query is the filter and sort state applied to the derived row list.
type Query struct {
	// Search is a case-insensitive substring match over title, code and professor.
	Search string
	// Areas keeps rows whose area id is among the given ids (OR semantics).
	Areas []string
	// Sort selects the sort column; empty keeps catalog order.
	Sort SortKey
	// Desc reverses the sort direction.
	Desc bool
}

// BuildRows derives the merged course+selection rows. Pure: it reads the
// catalog and the given selection list and builds a fresh slice every call.
//
// Variable-credit courses emit one booked row per selection plus, while
// headroom remains, an available row exposing the remaining capacity, so the
// same course can appear both as booked entries and as a still-available
// catalog entry. Fixed-credit courses emit exactly one row. Sorting is
// stable; ties keep catalog order.
func BuildRows(cat *catalog.Catalog, selections []models.Selection, q Query) []models.DisplayRow {
	byCourse := make(map[string][]models.Selection)
	for _, sel := range selections {
		byCourse[sel.CourseID] = append(byCourse[sel.CourseID], sel)
	}

	rows := make([]models.DisplayRow, 0, len(cat.Courses))
	for _, course := range cat.Courses {
		courseSelections := byCourse[course.ID]

		if course.IsVariableCredit {
			var committed float64
			for _, sel := range courseSelections {
				rows = append(rows, models.DisplayRow{
					Kind:        models.RowVariableBooked,
					Course:      course,
					SelectionID: sel.SelectionID,
					Status:      sel.Status,
					ECTS:        sel.EffectiveECTS(&course),
				})
				if sel.ECTS != nil {
					committed += *sel.ECTS
				}
			}

			if course.MaxECTS != nil {
				if remaining := *course.MaxECTS - committed; remaining > 0 {
					rows = append(rows, models.DisplayRow{
						Kind:   models.RowVariableAvailable,
						Course: course,
						ECTS:   remaining,
					})
				}
			}
			continue
		}

		row := models.DisplayRow{
			Kind:   models.RowFixed,
			Course: course,
			ECTS:   course.ECTS,
		}
		if len(courseSelections) > 0 {
			sel := courseSelections[0]
			row.SelectionID = sel.SelectionID
			row.Status = sel.Status
			row.ECTS = sel.EffectiveECTS(&course)
		}
		rows = append(rows, row)
	}

	rows = filterRows(rows, q)
	sortRows(rows, q)
	return rows
}

// filterRows applies the substring and area filters.
func filterRows(rows []models.DisplayRow, q Query) []models.DisplayRow {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	if search == "" && len(q.Areas) == 0 {
		return rows
	}

	areas := make(map[string]struct{}, len(q.Areas))
	for _, id := range q.Areas {
		areas[id] = struct{}{}
	}

	kept := rows[:0]
	for _, row := range rows {
		if search != "" && !matchesSearch(row.Course, search) {
			continue
		}
		if len(areas) > 0 {
			if _, ok := areas[row.Course.AreaID]; !ok {
				continue
			}
		}
		kept = append(kept, row)
	}
	return kept
}

// matchesSearch checks the lowercased search term against title, code and professor.
func matchesSearch(course models.CourseRecord, search string) bool {
	return strings.Contains(strings.ToLower(course.Title), search) ||
		strings.Contains(strings.ToLower(course.Code), search) ||
		strings.Contains(strings.ToLower(course.Professor), search)
}

// sortRows stable-sorts by the active key; string keys compare case-insensitively.
func sortRows(rows []models.DisplayRow, q Query) {
	if q.Sort == "" {
		if q.Desc {
			reverseRows(rows)
		}
		return
	}

	less := lessFunc(q.Sort)
	if less == nil {
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if q.Desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

func lessFunc(key SortKey) func(a, b models.DisplayRow) bool {
	switch key {
	case SortTitle:
		return func(a, b models.DisplayRow) bool {
			return strings.ToLower(a.Course.Title) < strings.ToLower(b.Course.Title)
		}
	case SortCode:
		return func(a, b models.DisplayRow) bool {
			return strings.ToLower(a.Course.Code) < strings.ToLower(b.Course.Code)
		}
	case SortProfessor:
		return func(a, b models.DisplayRow) bool {
			return strings.ToLower(a.Course.Professor) < strings.ToLower(b.Course.Professor)
		}
	case SortArea:
		return func(a, b models.DisplayRow) bool {
			return strings.ToLower(a.Course.AreaName) < strings.ToLower(b.Course.AreaName)
		}
	case SortECTS:
		return func(a, b models.DisplayRow) bool { return a.ECTS < b.ECTS }
	case SortHIndex:
		return func(a, b models.DisplayRow) bool { return a.Course.HIndex < b.Course.HIndex }
	case SortCitations:
		return func(a, b models.DisplayRow) bool { return a.Course.Citations < b.Course.Citations }
	}
	return nil
}

func reverseRows(rows []models.DisplayRow) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}
