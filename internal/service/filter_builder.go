package service

import (
	"github.com/himarpl/himarpl-api/internal/filter"
	"github.com/himarpl/himarpl-api/internal/models"
)

// departmentFilter holds one condition per supplied parameter and nothing for absent ones.
func departmentFilter(q models.DepartmentQuery) filter.And {
	var where filter.And
	if q.Type != nil {
		where = append(where, filter.Eq{Field: "type", Value: string(*q.Type)})
	}
	if q.Year != nil {
		where = append(where, filter.Eq{Field: "periodYear", Value: *q.Year})
	}
	if q.Acronym != "" {
		where = append(where, filter.Contains{Field: "acronym", Value: q.Acronym})
	}
	return where
}

func userFilter(q models.UserQuery) filter.And {
	var where filter.And
	if len(q.PeriodYears) > 0 {
		where = append(where, filter.Some{
			Relation: "periods",
			Where:    filter.In{Field: "year", Values: filter.Ints(q.PeriodYears)},
		})
	}
	if len(q.DepartmentIDs) > 0 {
		where = append(where, filter.Some{
			Relation: "departments",
			Where:    filter.In{Field: "id", Values: filter.Strings(q.DepartmentIDs)},
		})
	}
	if len(q.PositionNames) > 0 {
		where = append(where, filter.Some{
			Relation: "positions",
			Where:    filter.In{Field: "name", Values: filter.Strings(q.PositionNames)},
		})
	}
	return where
}

// newsFilter always restricts the feed to published posts tagged as news.
func newsFilter(q models.NewsQuery) filter.And {
	return filter.And{
		filter.Some{
			Relation: "tags",
			Where:    filter.Eq{Field: "title", Value: models.NewsTag},
		},
		filter.NotNull{Field: "publishedAt"},
		filter.Contains{Field: "title", Value: q.Search},
	}
}
