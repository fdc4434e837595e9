package models

import "math"

// Page bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MinLimit     = 1
	MaxLimit     = 50

	// MaxPage keeps (MaxPage-1)*MaxLimit well inside a Postgres bigint OFFSET.
	MaxPage = math.MaxInt32
)

// SortDirection is an ORDER BY direction.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// PageRequest is the per-call pagination window.
type PageRequest struct {
	Page           int
	Limit          int
	OrderField     string
	OrderDirection SortDirection
}

// NewPageRequest builds a window with page clamped to [1, MaxPage] and limit clamped to
// [MinLimit, MaxLimit].
func NewPageRequest(page, limit int) PageRequest {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < MinLimit {
		limit = MinLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// Skip returns the number of rows before the window.
func (p PageRequest) Skip() int {
	return (p.Page - 1) * p.Limit
}

// PageMeta is the pagination metadata block of list envelopes.
type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPageMeta computes totalPages = ceil(total/limit).
func NewPageMeta(total int, req PageRequest) PageMeta {
	totalPages := 0
	if total > 0 && req.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(req.Limit)))
	}
	return PageMeta{Total: total, Page: req.Page, Limit: req.Limit, TotalPages: totalPages}
}

// Page is one window of rows plus its metadata.
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"metadata"`
}
