package models

// CourseRecord represents one immutable catalog entry as served by the
// catalog endpoint. Field names follow the catalog wire format.
type CourseRecord struct {
	ID               string    `json:"id"`
	Code             string    `json:"code"`
	Title            string    `json:"title"`
	ECTS             float64   `json:"ects"`
	Professor        string    `json:"professor"`
	Chair            string    `json:"chair"`
	Semester         string    `json:"semester"`
	AreaID           string    `json:"area_id"`
	AreaName         string    `json:"area_name"`
	Source           string    `json:"source"`
	IsVariableCredit bool      `json:"is_additional_course"`
	MaxECTS          *float64  `json:"max_ects"` // Nullable, set only for variable-credit modules
	HIndex           int       `json:"h_index"`
	Citations        int       `json:"citations"`
	TopPaper         *TopPaper `json:"top_paper,omitempty"`
}

// TopPaper holds the most-cited publication of a course's professor.
type TopPaper struct {
	Title     string `json:"title"`
	Citations int    `json:"citations"`
	Year      *int   `json:"year"`
	Venue     string `json:"venue"`
}

// AreaRule describes the credit requirements of one program area.
type AreaRule struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	MinECTS      float64 `json:"min_ects"`
	MaxECTS      float64 `json:"max_ects"`
	RequiredECTS float64 `json:"required_ects"`
}

// ProgramRules bundles the program-wide credit target with its area rules.
type ProgramRules struct {
	ProgramName string     `json:"program_name"`
	TotalECTS   float64    `json:"total_ects"`
	Areas       []AreaRule `json:"areas"`
}
