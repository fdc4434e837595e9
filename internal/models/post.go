package models

import "time"

// NewsTag is the tag title that marks a post as news.
const NewsTag = "berita"

// AuthorRef is the author projection of a post.
type AuthorRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

// PostTagRef is a tag attached to a post.
type PostTagRef struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Post is the news feed projection of a published post.
type Post struct {
	ID          string             `db:"id" json:"id"`
	Title       string             `db:"title" json:"title"`
	MetaTitle   *string            `db:"meta_title" json:"metaTitle"`
	Slug        string             `db:"slug" json:"slug"`
	Content     string             `db:"content" json:"content"`
	Image       *string            `db:"image" json:"image"`
	PublishedAt *time.Time         `db:"published_at" json:"publishedAt"`
	CreatedAt   time.Time          `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `db:"updated_at" json:"updatedAt"`
	Author      JSON[*AuthorRef]   `db:"author" json:"author"`
	PostTags    JSON[[]PostTagRef] `db:"post_tags" json:"postTags"`
}

// NewsQuery captures the normalized news feed parameters.
type NewsQuery struct {
	Search string
	Page   PageRequest
}
