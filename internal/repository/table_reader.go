package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/himarpl/himarpl-api/internal/filter"
	"github.com/himarpl/himarpl-api/internal/models"
)

// QueryObserver receives the duration of every executed query.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// listTable describes a listable table: its projection, filterable fields and sortable columns.
type listTable struct {
	label        string
	from         string
	key          string
	columns      []string
	schema       filter.Schema
	orderColumns map[string]string
	defaultOrder string
}

// tableReader runs page and count queries for one listTable.
type tableReader[T any] struct {
	db       *sqlx.DB
	sb       sq.StatementBuilderType
	table    listTable
	observer QueryObserver
}

func newTableReader[T any](db *sqlx.DB, table listTable, observer QueryObserver) *tableReader[T] {
	return &tableReader[T]{
		db:       db,
		sb:       sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		table:    table,
		observer: observer,
	}
}

// List returns the rows matching where inside the page window.
func (r *tableReader[T]) List(ctx context.Context, where filter.Predicate, page models.PageRequest) ([]T, error) {
	cond, err := filter.Compile(where, r.table.schema)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table.label, err)
	}

	builder := r.sb.Select(r.table.columns...).
		From(r.table.from).
		OrderBy(r.orderBy(page)...).
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Skip()))
	if cond != nil {
		builder = builder.Where(cond)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s list query: %w", r.table.label, err)
	}

	start := time.Now()
	rows := make([]T, 0, page.Limit)
	err = r.db.SelectContext(ctx, &rows, query, args...)
	r.observe("list", start)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table.label, err)
	}
	return rows, nil
}

// Count returns the number of rows matching where.
func (r *tableReader[T]) Count(ctx context.Context, where filter.Predicate) (int, error) {
	cond, err := filter.Compile(where, r.table.schema)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.table.label, err)
	}

	builder := r.sb.Select("COUNT(*)").From(r.table.from)
	if cond != nil {
		builder = builder.Where(cond)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s count query: %w", r.table.label, err)
	}

	start := time.Now()
	var total int
	err = r.db.GetContext(ctx, &total, query, args...)
	r.observe("count", start)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.table.label, err)
	}
	return total, nil
}

// orderBy resolves the requested sort field, falling back to the table default, and breaks
// ties on the primary key so page windows stay stable.
func (r *tableReader[T]) orderBy(page models.PageRequest) []string {
	col, ok := r.table.orderColumns[page.OrderField]
	if !ok {
		col = r.table.orderColumns[r.table.defaultOrder]
	}
	dir := "ASC"
	if page.OrderDirection == models.SortDesc {
		dir = "DESC"
	}
	return []string{col + " " + dir, r.table.key + " ASC"}
}

func (r *tableReader[T]) observe(op string, start time.Time) {
	if r.observer == nil {
		return
	}
	r.observer.ObserveDBQuery(strings.Join([]string{r.table.label, op}, "_"), time.Since(start))
}
