package models

// RowKind tags the variants of a derived display row.
type RowKind string

const (
	// RowFixed is a fixed-credit course, planned or not.
	RowFixed RowKind = "fixed"
	// RowVariableBooked is one existing selection of a variable-credit course.
	RowVariableBooked RowKind = "variable_booked"
	// RowVariableAvailable exposes the remaining capacity of a
	// variable-credit course that still has headroom.
	RowVariableAvailable RowKind = "variable_available"
)

// DisplayRow is one row of the merged course+selection view. SelectionID and
// Status are empty for unplanned fixed rows and for available rows. ECTS
// carries the row's displayed credit value: the selection's effective credit
// for booked rows, the remaining headroom for available rows, and the course's
// fixed value otherwise.
type DisplayRow struct {
	Kind        RowKind         `json:"kind"`
	Course      CourseRecord    `json:"course"`
	SelectionID string          `json:"selection_id,omitempty"`
	Status      SelectionStatus `json:"status,omitempty"`
	ECTS        float64         `json:"ects"`
}

// Planned reports whether the row carries a selection.
func (r DisplayRow) Planned() bool {
	return r.SelectionID != ""
}

// Summary aggregates credit totals over the whole selection list. Progress is
// planned credit over the program target and is deliberately not clamped, so
// over-planned programs report values above 1.
type Summary struct {
	PlannedECTS   float64 `json:"planned_ects"`
	CompletedECTS float64 `json:"completed_ects"`
	TotalECTS     float64 `json:"total_ects"`
	Progress      float64 `json:"progress"`
}

// AreaProgress reports credit accumulation against one area rule. Progress is
// capped at 1 regardless of over-planning.
type AreaProgress struct {
	AreaID      string  `json:"area_id"`
	Name        string  `json:"name"`
	PlannedECTS float64 `json:"planned_ects"`
	MinECTS     float64 `json:"min_ects"`
	Progress    float64 `json:"progress"`
	Fulfilled   bool    `json:"fulfilled"`
}
