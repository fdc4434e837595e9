package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/himarpl/himarpl-api/internal/filter"
	"github.com/himarpl/himarpl-api/internal/models"
)

var userTable = listTable{
	label: "users",
	from:  "users u",
	key:   "u.id",
	columns: []string{
		"u.id", "u.name", "u.username", "u.image", "u.bio",
		"COALESCE((SELECT json_agg(json_build_object('id', d.id, 'name', d.name, 'acronym', d.acronym, 'periodYear', d.period_year, 'image', d.image) ORDER BY d.period_year DESC, d.acronym) " +
			"FROM department_members dm JOIN departments d ON d.id = dm.department_id WHERE dm.user_id = u.id), '[]'::json) AS departments",
		"COALESCE((SELECT json_agg(json_build_object('id', p.id, 'year', p.year, 'name', p.name) ORDER BY p.year DESC) " +
			"FROM period_members pm JOIN periods p ON p.id = pm.period_id WHERE pm.user_id = u.id), '[]'::json) AS periods",
		"COALESCE((SELECT json_agg(json_build_object('id', po.id, 'name', po.name, 'departmentId', po.department_id) ORDER BY po.name) " +
			"FROM position_holders ph JOIN positions po ON po.id = ph.position_id WHERE ph.user_id = u.id), '[]'::json) AS positions",
	},
	schema: filter.Schema{
		Columns: map[string]string{
			"name":     "u.name",
			"email":    "u.email",
			"username": "u.username",
		},
		Relations: map[string]filter.Relation{
			"periods": {
				From:   "period_members fpm JOIN periods fp ON fp.id = fpm.period_id",
				Link:   "fpm.user_id = u.id",
				Schema: filter.Schema{Columns: map[string]string{"year": "fp.year"}},
			},
			"departments": {
				From:   "department_members fdm",
				Link:   "fdm.user_id = u.id",
				Schema: filter.Schema{Columns: map[string]string{"id": "fdm.department_id"}},
			},
			"positions": {
				From:   "position_holders fph JOIN positions fpo ON fpo.id = fph.position_id",
				Link:   "fph.user_id = u.id",
				Schema: filter.Schema{Columns: map[string]string{"name": "fpo.name"}},
			},
		},
	},
	orderColumns: map[string]string{
		"name":     "u.name",
		"email":    "u.email",
		"username": "u.username",
	},
	defaultOrder: "name",
}

// UserRepository reads organization members with their departments, periods and positions.
type UserRepository struct {
	*tableReader[models.User]
}

// NewUserRepository creates a user repository. observer may be nil.
func NewUserRepository(db *sqlx.DB, observer QueryObserver) *UserRepository {
	return &UserRepository{tableReader: newTableReader[models.User](db, userTable, observer)}
}
