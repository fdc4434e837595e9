package service

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/himarpl/himarpl-api/internal/filter"
	"github.com/himarpl/himarpl-api/internal/models"
	appErrors "github.com/himarpl/himarpl-api/pkg/errors"
)

// DepartmentExampleURL is returned to callers that supply no department filter.
const DepartmentExampleURL = "/api/v1/departments?type=be&year=2024"

type departmentRepository interface {
	List(ctx context.Context, where filter.Predicate, page models.PageRequest) ([]models.Department, error)
	Count(ctx context.Context, where filter.Predicate) (int, error)
}

// DepartmentService lists departments.
type DepartmentService struct {
	repo   departmentRepository
	cache  *CacheService
	logger *zap.Logger
}

// NewDepartmentService creates a department service. cache may be nil.
func NewDepartmentService(repo departmentRepository, cache *CacheService, logger *zap.Logger) *DepartmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepartmentService{repo: repo, cache: cache, logger: logger}
}

// List returns one page of departments. At least one of type, year or acronym is required.
func (s *DepartmentService) List(ctx context.Context, q models.DepartmentQuery) (*models.Page[models.Department], error) {
	where := departmentFilter(q)
	if filter.Len(where) == 0 {
		return nil, appErrors.Clone(appErrors.ErrBadRequest, "At least one filter (type, year or acronym) is required").
			WithMetadata("example", DepartmentExampleURL)
	}

	q.Page.OrderField = "acronym"
	q.Page.OrderDirection = models.SortAsc

	key := CacheKey("departments", departmentCacheParams(q))
	var cached models.Page[models.Department]
	if s.cache.Get(ctx, "departments", key, &cached) {
		return &cached, nil
	}

	page, err := fetchPage[models.Department](ctx, s.repo, where, q.Page)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeInternal, "failed to list departments")
	}
	s.cache.Set(ctx, key, page)
	return page, nil
}

func departmentCacheParams(q models.DepartmentQuery) url.Values {
	values := pageCacheParams(q.Page)
	if q.Type != nil {
		values.Set("type", string(*q.Type))
	}
	if q.Year != nil {
		values.Set("year", strconv.Itoa(*q.Year))
	}
	if q.Acronym != "" {
		values.Set("acronym", q.Acronym)
	}
	return values
}

func pageCacheParams(page models.PageRequest) url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(page.Page))
	values.Set("limit", strconv.Itoa(page.Limit))
	if page.OrderField != "" {
		values.Set("orderBy", page.OrderField)
		values.Set("order", string(page.OrderDirection))
	}
	return values
}
