package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/himarpl/himarpl-api/internal/filter"
	"github.com/himarpl/himarpl-api/internal/models"
)

// pageFetcher reads one window of rows and the total row count for the same predicate.
type pageFetcher[T any] interface {
	List(ctx context.Context, where filter.Predicate, page models.PageRequest) ([]T, error)
	Count(ctx context.Context, where filter.Predicate) (int, error)
}

// fetchPage runs the page and count reads concurrently and fails if either fails. The reads
// share no snapshot, so under concurrent writes the total may disagree with the page.
func fetchPage[T any](ctx context.Context, repo pageFetcher[T], where filter.Predicate, page models.PageRequest) (*models.Page[T], error) {
	var (
		rows  []T
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = repo.List(gctx, where, page)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = repo.Count(gctx, where)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if rows == nil {
		rows = []T{}
	}
	return &models.Page[T]{Data: rows, Meta: models.NewPageMeta(total, page)}, nil
}
