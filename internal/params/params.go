// Package params normalizes raw query-string values into bounded, typed list parameters.
// Parsing never fails on malformed numbers; it falls back to defaults instead.
package params

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/himarpl/himarpl-api/internal/models"
	appErrors "github.com/himarpl/himarpl-api/pkg/errors"
)

// AllowedDepartmentTypes lists the accepted department type values, lower-cased.
var AllowedDepartmentTypes = []string{"be", "dp"}

// Page parses a 1-based page number. Missing, malformed or non-positive values yield 1;
// values beyond models.MaxPage are capped.
func Page(raw string) int {
	n, ok := parseInt(raw)
	if !ok || n < 1 {
		return models.DefaultPage
	}
	if n > models.MaxPage {
		return models.MaxPage
	}
	return n
}

// Limit parses a page size clamped to [models.MinLimit, models.MaxLimit]; missing or
// malformed values yield models.DefaultLimit.
func Limit(raw string) int {
	n, ok := parseInt(raw)
	if !ok {
		return models.DefaultLimit
	}
	if n < models.MinLimit {
		return models.MinLimit
	}
	if n > models.MaxLimit {
		return models.MaxLimit
	}
	return n
}

// PageRequest reads page and limit from values.
func PageRequest(values url.Values) models.PageRequest {
	return models.NewPageRequest(Page(values.Get("page")), Limit(values.Get("limit")))
}

// Direction returns the sort direction named by raw, or fallback when raw is not asc/desc.
func Direction(raw string, fallback models.SortDirection) models.SortDirection {
	switch models.SortDirection(strings.ToLower(strings.TrimSpace(raw))) {
	case models.SortAsc:
		return models.SortAsc
	case models.SortDesc:
		return models.SortDesc
	default:
		return fallback
	}
}

// OneOf returns raw when it is in allowed, otherwise fallback.
func OneOf(raw string, allowed []string, fallback string) string {
	for _, candidate := range allowed {
		if raw == candidate {
			return raw
		}
	}
	return fallback
}

// List splits a comma-separated value, trimming segments and dropping empty ones.
func List(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// IntList parses a comma-separated list of integers, silently dropping segments that do not
// start with a number. A segment like "2024abc" reads as 2024.
func IntList(raw string) []int {
	segments := List(raw)
	out := make([]int, 0, len(segments))
	for _, segment := range segments {
		if n, ok := leadingInt(segment); ok {
			out = append(out, n)
		}
	}
	return out
}

// DepartmentType validates a department type case-insensitively. An empty value means no
// filter. Anything outside AllowedDepartmentTypes is a BAD_REQUEST listing the allowed values.
func DepartmentType(raw string) (*models.DepartmentType, error) {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return nil, nil
	}
	for _, allowed := range AllowedDepartmentTypes {
		if lowered == allowed {
			t := models.DepartmentType(strings.ToUpper(lowered))
			return &t, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrBadRequest, "Invalid type value").
		WithMetadata("allowedTypes", AllowedDepartmentTypes)
}

// Year parses an optional year; malformed values mean no filter.
func Year(raw string) *int {
	n, ok := parseInt(raw)
	if !ok {
		return nil
	}
	return &n
}

func parseInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err == nil {
		return saturate(float64(n)), true
	}
	f, err := strconv.ParseFloat(raw, 64)
	switch {
	case errors.Is(err, strconv.ErrRange):
		// out-of-range digits saturate like any other large number
	case err != nil, math.IsNaN(f), math.IsInf(f, 0):
		return 0, false
	}
	return saturate(f), true
}

// saturate truncates f toward zero within [-MaxInt32, MaxInt32].
func saturate(f float64) int {
	switch {
	case f > math.MaxInt32:
		return math.MaxInt32
	case f < -math.MaxInt32:
		return -math.MaxInt32
	default:
		return int(f)
	}
}

func leadingInt(raw string) (int, bool) {
	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	digits := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// UserOrderFields whitelists the user sort columns; the first entry is the default.
var UserOrderFields = []string{"name", "email", "username"}

// DepartmentQuery reads the department filters. Only an invalid type is an error.
func DepartmentQuery(values url.Values) (models.DepartmentQuery, error) {
	t, err := DepartmentType(values.Get("type"))
	if err != nil {
		return models.DepartmentQuery{}, err
	}
	return models.DepartmentQuery{
		Type:    t,
		Year:    Year(values.Get("year")),
		Acronym: strings.TrimSpace(values.Get("acronym")),
		Page:    PageRequest(values),
	}, nil
}

// UserQuery reads the user filters and sort order.
func UserQuery(values url.Values) models.UserQuery {
	page := PageRequest(values)
	page.OrderField = OneOf(values.Get("orderBy"), UserOrderFields, UserOrderFields[0])
	page.OrderDirection = Direction(values.Get("order"), models.SortAsc)
	return models.UserQuery{
		PeriodYears:   IntList(values.Get("periodYears")),
		DepartmentIDs: List(values.Get("departmentIds")),
		PositionNames: List(values.Get("positionNames")),
		Page:          page,
	}
}

// NewsQuery reads the news search term and sort order. News is always ordered by publication time.
func NewsQuery(values url.Values) models.NewsQuery {
	page := PageRequest(values)
	page.OrderField = "publishedAt"
	page.OrderDirection = Direction(values.Get("order"), models.SortDesc)
	return models.NewsQuery{
		Search: values.Get("search"),
		Page:   page,
	}
}
