package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/himarpl/himarpl-api/internal/filter"
	"github.com/himarpl/himarpl-api/internal/models"
)

var newsTable = listTable{
	label: "news",
	from:  "posts p",
	key:   "p.id",
	columns: []string{
		"p.id", "p.title", "p.meta_title", "p.slug", "p.content", "p.image",
		"p.published_at", "p.created_at", "p.updated_at",
		"(SELECT json_build_object('id', a.id, 'name', a.name, 'image', a.image) FROM users a WHERE a.id = p.author_id) AS author",
		"COALESCE((SELECT json_agg(json_build_object('title', t.title, 'slug', t.slug) ORDER BY t.title) " +
			"FROM post_to_post_tag pt JOIN post_tags t ON t.id = pt.post_tag_id WHERE pt.post_id = p.id), '[]'::json) AS post_tags",
	},
	schema: filter.Schema{
		Columns: map[string]string{
			"title":       "p.title",
			"publishedAt": "p.published_at",
		},
		Relations: map[string]filter.Relation{
			"tags": {
				From:   "post_to_post_tag fpt JOIN post_tags ft ON ft.id = fpt.post_tag_id",
				Link:   "fpt.post_id = p.id",
				Schema: filter.Schema{Columns: map[string]string{"title": "ft.title"}},
			},
		},
	},
	orderColumns: map[string]string{
		"publishedAt": "p.published_at",
	},
	defaultOrder: "publishedAt",
}

// NewsRepository reads posts with their author and tags.
type NewsRepository struct {
	*tableReader[models.Post]
}

// NewNewsRepository creates a news repository. observer may be nil.
func NewNewsRepository(db *sqlx.DB, observer QueryObserver) *NewsRepository {
	return &NewsRepository{tableReader: newTableReader[models.Post](db, newsTable, observer)}
}
