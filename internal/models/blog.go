package models

import "time"

// BlogPost is blog article entity. Tags are stored as plain names.
type BlogPost struct {
	ID          uint64
	Title       string
	Slug        string
	PublishedAt time.Time
	AuthorName  string
	Excerpt     string
	Content     string
	ImageURL    string
	ImageAlt    string
	Tags        []string
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
