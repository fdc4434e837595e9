package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/himarpl/himarpl-api/internal/filter"
	"github.com/himarpl/himarpl-api/internal/models"
	appErrors "github.com/himarpl/himarpl-api/pkg/errors"
)

type newsRepository interface {
	List(ctx context.Context, where filter.Predicate, page models.PageRequest) ([]models.Post, error)
	Count(ctx context.Context, where filter.Predicate) (int, error)
}

// NewsService serves the public news feed.
type NewsService struct {
	repo   newsRepository
	cache  *CacheService
	logger *zap.Logger
}

// NewNewsService creates a news service. cache may be nil.
func NewNewsService(repo newsRepository, cache *CacheService, logger *zap.Logger) *NewsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NewsService{repo: repo, cache: cache, logger: logger}
}

// List returns one page of published news posts, newest first unless asked otherwise.
func (s *NewsService) List(ctx context.Context, q models.NewsQuery) (*models.Page[models.Post], error) {
	q.Page.OrderField = "publishedAt"

	params := pageCacheParams(q.Page)
	params.Set("search", q.Search)
	key := CacheKey("news", params)
	var cached models.Page[models.Post]
	if s.cache.Get(ctx, "news", key, &cached) {
		return &cached, nil
	}

	page, err := fetchPage[models.Post](ctx, s.repo, newsFilter(q), q.Page)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeInternal, "failed to list news")
	}
	s.cache.Set(ctx, key, page)
	return page, nil
}
