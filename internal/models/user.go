package models

// UserDepartmentRef is the department projection embedded in users.
type UserDepartmentRef struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Acronym    string  `json:"acronym"`
	PeriodYear int     `json:"periodYear"`
	Image      *string `json:"image"`
}

// PositionRef is a position a user holds.
type PositionRef struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	DepartmentID *string `json:"departmentId"`
}

// User is the list projection of an organization member.
type User struct {
	ID          string                    `db:"id" json:"id"`
	Name        string                    `db:"name" json:"name"`
	Username    *string                   `db:"username" json:"username"`
	Image       *string                   `db:"image" json:"image"`
	Bio         *string                   `db:"bio" json:"bio"`
	Departments JSON[[]UserDepartmentRef] `db:"departments" json:"departments"`
	Periods     JSON[[]PeriodRef]         `db:"periods" json:"periods"`
	Positions   JSON[[]PositionRef]       `db:"positions" json:"positions"`
}

// UserQuery captures the normalized user list parameters.
type UserQuery struct {
	PeriodYears   []int
	DepartmentIDs []string
	PositionNames []string
	Page          PageRequest
}
