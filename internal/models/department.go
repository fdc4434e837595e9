package models

// DepartmentType distinguishes the executive board from the representative council.
type DepartmentType string

const (
	DepartmentTypeBE DepartmentType = "BE"
	DepartmentTypeDP DepartmentType = "DP"
)

// PeriodRef is the period projection embedded in other resources.
type PeriodRef struct {
	ID   string `json:"id"`
	Year int    `json:"year"`
	Name string `json:"name"`
}

// ProgramRef is a work program of a department.
type ProgramRef struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Department is the list projection of a department.
type Department struct {
	ID          string             `db:"id" json:"id"`
	Name        string             `db:"name" json:"name"`
	Acronym     string             `db:"acronym" json:"acronym"`
	Image       *string            `db:"image" json:"image"`
	Description *string            `db:"description" json:"description"`
	Type        DepartmentType     `db:"type" json:"type"`
	PeriodYear  int                `db:"period_year" json:"periodYear"`
	Period      JSON[*PeriodRef]   `db:"period" json:"period"`
	Programs    JSON[[]ProgramRef] `db:"programs" json:"programs"`
}

// DepartmentQuery captures the normalized department list parameters.
type DepartmentQuery struct {
	Type    *DepartmentType
	Year    *int
	Acronym string
	Page    PageRequest
}
