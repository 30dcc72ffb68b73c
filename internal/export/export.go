// Package export renders a posted selection list into downloadable study
// plan documents. Rendering is stateless: the caller supplies the
// selections, the catalog supplies course data.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"studyplanner/internal/app/models"
	"studyplanner/internal/catalog"
	"studyplanner/internal/pkg/apperrors"
)

// Format is a supported export format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
)

// ParseFormat resolves a format name; "md" is an alias for markdown.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	}
	return "", apperrors.NewCustomError(apperrors.ErrUnknownExportFormat,
		fmt.Sprintf("invalid format %q, use: markdown, csv, json", name))
}

// Result is a rendered export document.
type Result struct {
	Content     []byte
	ContentType string
	Filename    string
}

// Status labels match the original planner's German export wording.
const (
	statusLabelPlanned   = "Geplant"
	statusLabelCompleted = "Abgeschlossen"
)

// module is one exported plan entry.
type module struct {
	Code      string  `json:"code"`
	Title     string  `json:"title"`
	ECTS      float64 `json:"ects"`
	Professor string  `json:"professor"`
	Status    string  `json:"status"`
	Area      string  `json:"area"`
}

// areaProgressEntry is one area line of the export summary.
type areaProgressEntry struct {
	Name      string  `json:"name"`
	Planned   float64 `json:"planned"`
	Required  float64 `json:"required"`
	Fulfilled bool    `json:"fulfilled"`
}

// planData is the resolved plan grouped by area name.
type planData struct {
	byArea         map[string][]module
	areaNames      []string
	totalPlanned   float64
	totalCompleted float64
	areaProgress   []areaProgressEntry
}

// Render produces the plan in the requested format. Selections referencing
// unknown course ids are skipped.
func Render(cat *catalog.Catalog, selections []models.Selection, format Format, now time.Time) (*Result, error) {
	data := buildPlanData(cat, selections)

	switch format {
	case FormatMarkdown:
		return renderMarkdown(cat, data, now)
	case FormatCSV:
		return renderCSV(data, now)
	case FormatJSON:
		return renderJSON(cat, data, now)
	}
	return nil, apperrors.NewCustomError(apperrors.ErrUnknownExportFormat, string(format))
}

// buildPlanData resolves selections against the catalog and groups them by area.
func buildPlanData(cat *catalog.Catalog, selections []models.Selection) planData {
	data := planData{byArea: make(map[string][]module)}

	for _, sel := range selections {
		course := cat.CourseByID(sel.CourseID)
		if course == nil {
			continue
		}

		ects := sel.EffectiveECTS(course)
		status := statusLabelPlanned
		if sel.Status == models.StatusCompleted {
			status = statusLabelCompleted
		}

		areaName := course.AreaName
		if areaName == "" {
			areaName = "Unassigned"
		}

		data.byArea[areaName] = append(data.byArea[areaName], module{
			Code:      course.Code,
			Title:     course.Title,
			ECTS:      ects,
			Professor: course.Professor,
			Status:    status,
			Area:      areaName,
		})

		data.totalPlanned += ects
		if sel.Status == models.StatusCompleted {
			data.totalCompleted += ects
		}
	}

	for name := range data.byArea {
		sort.Slice(data.byArea[name], func(i, j int) bool {
			return data.byArea[name][i].Code < data.byArea[name][j].Code
		})
		data.areaNames = append(data.areaNames, name)
	}
	sort.Strings(data.areaNames)

	for _, area := range cat.Rules.Areas {
		var areaECTS float64
		for _, m := range data.byArea[area.Name] {
			areaECTS += m.ECTS
		}
		data.areaProgress = append(data.areaProgress, areaProgressEntry{
			Name:      area.Name,
			Planned:   areaECTS,
			Required:  area.MinECTS,
			Fulfilled: areaECTS >= area.MinECTS,
		})
	}

	return data
}

func renderMarkdown(cat *catalog.Catalog, data planData, now time.Time) (*Result, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Studienplan %s\n\n", cat.Rules.ProgramName)
	fmt.Fprintf(&b, "*Exportiert am %s*\n\n---\n\n", now.Format("2006-01-02 15:04"))

	b.WriteString("## Zusammenfassung\n\n")
	fmt.Fprintf(&b, "- **ECTS geplant:** %.0f / %.0f\n", data.totalPlanned, cat.Rules.TotalECTS)
	fmt.Fprintf(&b, "- **ECTS abgeschlossen:** %.0f\n", data.totalCompleted)
	fmt.Fprintf(&b, "- **Fortschritt:** %.0f%%\n\n", data.totalPlanned/cat.Rules.TotalECTS*100)

	b.WriteString("### Bereichs-Fortschritt\n\n")
	b.WriteString("| Bereich | Geplant | Erforderlich | Status |\n")
	b.WriteString("|---------|---------|--------------|--------|\n")
	for _, ap := range data.areaProgress {
		status := "Offen"
		if ap.Fulfilled {
			status = "Erfüllt"
		}
		fmt.Fprintf(&b, "| %s | %.0f ECTS | %.0f ECTS | %s |\n", ap.Name, ap.Planned, ap.Required, status)
	}

	b.WriteString("\n---\n\n## Geplante Module\n\n")
	for _, areaName := range data.areaNames {
		modules := data.byArea[areaName]
		var areaECTS float64
		for _, m := range modules {
			areaECTS += m.ECTS
		}
		fmt.Fprintf(&b, "### %s (%.0f ECTS)\n\n", areaName, areaECTS)
		b.WriteString("| Code | Titel | ECTS | Dozent | Status |\n")
		b.WriteString("|------|-------|------|--------|--------|\n")
		for _, m := range modules {
			fmt.Fprintf(&b, "| %s | %s | %.0f | %s | %s |\n", m.Code, m.Title, m.ECTS, m.Professor, m.Status)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n*Generiert mit dem Studienplaner*\n")

	return &Result{
		Content:     []byte(b.String()),
		ContentType: "text/markdown",
		Filename:    fmt.Sprintf("studienplan_%s.md", now.Format("20060102")),
	}, nil
}

func renderCSV(data planData, now time.Time) (*Result, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Comma = ';'

	records := [][]string{
		{"Bereich", "Code", "Titel", "ECTS", "Dozent", "Status"},
	}
	for _, areaName := range data.areaNames {
		for _, m := range data.byArea[areaName] {
			records = append(records, []string{
				m.Area, m.Code, m.Title, fmt.Sprintf("%.0f", m.ECTS), m.Professor, m.Status,
			})
		}
	}
	records = append(records,
		[]string{},
		[]string{"# Zusammenfassung"},
		[]string{"ECTS geplant", fmt.Sprintf("%.0f", data.totalPlanned)},
		[]string{"ECTS abgeschlossen", fmt.Sprintf("%.0f", data.totalCompleted)},
	)

	for _, record := range records {
		if len(record) == 0 {
			// csv.Writer refuses empty records, keep the blank separator line
			buf.WriteString("\n")
			continue
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv record: %w", err)
		}
		writer.Flush()
	}
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to render csv: %w", err)
	}

	return &Result{
		Content:     buf.Bytes(),
		ContentType: "text/csv",
		Filename:    fmt.Sprintf("studienplan_%s.csv", now.Format("20060102")),
	}, nil
}

func renderJSON(cat *catalog.Catalog, data planData, now time.Time) (*Result, error) {
	modules := make([]module, 0)
	for _, areaName := range data.areaNames {
		modules = append(modules, data.byArea[areaName]...)
	}

	doc := map[string]interface{}{
		"export_date": now.Format("2006-01-02 15:04"),
		"program":     cat.Rules.ProgramName,
		"summary": map[string]interface{}{
			"total_ects":       cat.Rules.TotalECTS,
			"planned_ects":     data.totalPlanned,
			"completed_ects":   data.totalCompleted,
			"progress_percent": math.Round(data.totalPlanned/cat.Rules.TotalECTS*1000) / 10,
		},
		"area_progress": data.areaProgress,
		"modules":       modules,
	}

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render json export: %w", err)
	}

	return &Result{
		Content:     content,
		ContentType: "application/json",
		Filename:    fmt.Sprintf("studienplan_%s.json", now.Format("20060102")),
	}, nil
}
