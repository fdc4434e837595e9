package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/himarpl/himarpl-api/internal/filter"
	"github.com/himarpl/himarpl-api/internal/models"
)

func TestNewsServiceAlwaysFiltersPublishedNews(t *testing.T) {
	repo := &fakePageRepo[models.Post]{}
	svc := NewNewsService(repo, nil, zap.NewNop())

	page, err := svc.List(context.Background(), models.NewsQuery{Page: models.NewPageRequest(1, 10)})
	require.NoError(t, err)

	assert.NotNil(t, page.Data)
	assert.Equal(t, 0, page.Meta.TotalPages)
	assert.Equal(t, filter.And{
		filter.Some{Relation: "tags", Where: filter.Eq{Field: "title", Value: "berita"}},
		filter.NotNull{Field: "publishedAt"},
		filter.Contains{Field: "title", Value: ""},
	}, repo.lastWhere)
	assert.Equal(t, "publishedAt", repo.lastPage.OrderField)
}

func TestNewsServicePassesSearch(t *testing.T) {
	repo := &fakePageRepo[models.Post]{rows: []models.Post{{ID: "p1", Title: "Rapat Kerja"}}, total: 1}
	svc := NewNewsService(repo, nil, zap.NewNop())

	page, err := svc.List(context.Background(), models.NewsQuery{Search: "rapat", Page: models.NewPageRequest(1, 10)})
	require.NoError(t, err)

	assert.Equal(t, "p1", page.Data[0].ID)
	where := repo.lastWhere.(filter.And)
	assert.Equal(t, filter.Contains{Field: "title", Value: "rapat"}, where[2])
}
