package models

// SelectionStatus is the two-state lifecycle of a selection.
type SelectionStatus string

const (
	// StatusPlanned marks a course the user intends to take.
	StatusPlanned SelectionStatus = "planned"
	// StatusCompleted marks a course the user has finished.
	StatusCompleted SelectionStatus = "completed"
)

// IsValid reports whether s is one of the known statuses.
func (s SelectionStatus) IsValid() bool {
	return s == StatusPlanned || s == StatusCompleted
}

// Selection is a user's commitment to a course. ECTS is nil for fixed-credit
// courses; for variable-credit courses it records the chosen credit amount
// of this particular selection.
type Selection struct {
	SelectionID string          `json:"selection_id"`
	CourseID    string          `json:"course_id"`
	Status      SelectionStatus `json:"status"`
	ECTS        *float64        `json:"ects"`
}

// EffectiveECTS resolves the credit value of the selection: its own amount
// when set, otherwise the fixed credit value of the referenced course.
func (s Selection) EffectiveECTS(course *CourseRecord) float64 {
	if s.ECTS != nil {
		return *s.ECTS
	}
	if course != nil {
		return course.ECTS
	}
	return 0
}
