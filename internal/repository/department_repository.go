package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/himarpl/himarpl-api/internal/filter"
	"github.com/himarpl/himarpl-api/internal/models"
)

var departmentTable = listTable{
	label: "departments",
	from:  "departments d",
	key:   "d.id",
	columns: []string{
		"d.id", "d.name", "d.acronym", "d.image", "d.description", "d.type", "d.period_year",
		"(SELECT json_build_object('id', p.id, 'year', p.year, 'name', p.name) FROM periods p WHERE p.year = d.period_year) AS period",
		"COALESCE((SELECT json_agg(json_build_object('id', pr.id, 'content', pr.content) ORDER BY pr.id) FROM programs pr WHERE pr.department_id = d.id), '[]'::json) AS programs",
	},
	schema: filter.Schema{
		Columns: map[string]string{
			"type":       "d.type",
			"periodYear": "d.period_year",
			"acronym":    "d.acronym",
		},
	},
	orderColumns: map[string]string{
		"acronym": "d.acronym",
		"name":    "d.name",
	},
	defaultOrder: "acronym",
}

// DepartmentRepository reads departments with their period and programs.
type DepartmentRepository struct {
	*tableReader[models.Department]
}

// NewDepartmentRepository creates a department repository. observer may be nil.
func NewDepartmentRepository(db *sqlx.DB, observer QueryObserver) *DepartmentRepository {
	return &DepartmentRepository{tableReader: newTableReader[models.Department](db, departmentTable, observer)}
}
