package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/himarpl/himarpl-api/internal/filter"
	"github.com/himarpl/himarpl-api/internal/models"
	appErrors "github.com/himarpl/himarpl-api/pkg/errors"
)

func TestUserServiceListWithoutFilters(t *testing.T) {
	repo := &fakePageRepo[models.User]{rows: []models.User{{ID: "1", Name: "Ayu"}}, total: 11}
	svc := NewUserService(repo, nil, zap.NewNop())

	page, err := svc.List(context.Background(), models.UserQuery{Page: models.NewPageRequest(1, 10)})
	require.NoError(t, err)

	assert.Len(t, page.Data, 1)
	assert.Equal(t, 11, page.Meta.Total)
	assert.Equal(t, 2, page.Meta.TotalPages)
	assert.Equal(t, 0, filter.Len(repo.lastWhere))
}

func TestUserServiceListBuildsRelationFilters(t *testing.T) {
	repo := &fakePageRepo[models.User]{}
	svc := NewUserService(repo, nil, zap.NewNop())

	_, err := svc.List(context.Background(), models.UserQuery{
		PeriodYears:   []int{2024},
		PositionNames: []string{"Ketua"},
		Page:          models.NewPageRequest(1, 10),
	})
	require.NoError(t, err)

	assert.Equal(t, filter.And{
		filter.Some{Relation: "periods", Where: filter.In{Field: "year", Values: []interface{}{2024}}},
		filter.Some{Relation: "positions", Where: filter.In{Field: "name", Values: []interface{}{"Ketua"}}},
	}, repo.lastWhere)
}

func TestUserServiceListError(t *testing.T) {
	repo := &fakePageRepo[models.User]{listErr: errors.New("timeout")}
	svc := NewUserService(repo, nil, zap.NewNop())

	_, err := svc.List(context.Background(), models.UserQuery{Page: models.NewPageRequest(1, 10)})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.CodeInternal, appErr.Code)
	assert.EqualError(t, appErr.Unwrap(), "timeout")
}
