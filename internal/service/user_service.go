package service

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/himarpl/himarpl-api/internal/filter"
	"github.com/himarpl/himarpl-api/internal/models"
	appErrors "github.com/himarpl/himarpl-api/pkg/errors"
)

type userRepository interface {
	List(ctx context.Context, where filter.Predicate, page models.PageRequest) ([]models.User, error)
	Count(ctx context.Context, where filter.Predicate) (int, error)
}

// UserService lists organization members.
type UserService struct {
	repo   userRepository
	cache  *CacheService
	logger *zap.Logger
}

// NewUserService creates a user service. cache may be nil.
func NewUserService(repo userRepository, cache *CacheService, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, cache: cache, logger: logger}
}

// List returns one page of users. Without filters every user is listed.
func (s *UserService) List(ctx context.Context, q models.UserQuery) (*models.Page[models.User], error) {
	key := CacheKey("users", userCacheParams(q))
	var cached models.Page[models.User]
	if s.cache.Get(ctx, "users", key, &cached) {
		return &cached, nil
	}

	page, err := fetchPage[models.User](ctx, s.repo, userFilter(q), q.Page)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeInternal, "failed to list users")
	}
	s.cache.Set(ctx, key, page)
	return page, nil
}

func userCacheParams(q models.UserQuery) url.Values {
	values := pageCacheParams(q.Page)
	if len(q.PeriodYears) > 0 {
		years := make([]string, len(q.PeriodYears))
		for i, y := range q.PeriodYears {
			years[i] = strconv.Itoa(y)
		}
		values.Set("periodYears", strings.Join(years, ","))
	}
	if len(q.DepartmentIDs) > 0 {
		values.Set("departmentIds", strings.Join(q.DepartmentIDs, ","))
	}
	if len(q.PositionNames) > 0 {
		values.Set("positionNames", strings.Join(q.PositionNames, ","))
	}
	return values
}
