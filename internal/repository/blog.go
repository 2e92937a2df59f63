package repository

import (
	"context"
	"errors"

	"github.com/fungigrow/storeapi/internal/models"
	"github.com/fungigrow/storeapi/internal/repository/postgres"
	"github.com/jackc/pgx/v5"
)

const (
	blogPostColumns = `id, title, slug, published_at, author_name, excerpt, content,
						image_url, image_alt, tags, is_published, created_at, updated_at`

	insertBlogPostQuery = `
						INSERT INTO blog_posts (title, slug, published_at, author_name, excerpt, content,
							image_url, image_alt, tags, is_published)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
						RETURNING ` + blogPostColumns

	selectPublishedPostsQuery = `
						SELECT ` + blogPostColumns + ` FROM blog_posts
						WHERE is_published = TRUE
						ORDER BY published_at DESC
`
	selectBlogPostBySlugQuery = `
						SELECT ` + blogPostColumns + ` FROM blog_posts
						WHERE slug = $1
`
	updateBlogPostQuery = `
						UPDATE blog_posts
						SET title = $1, published_at = $2, author_name = $3, excerpt = $4,
							content = $5, image_url = $6, image_alt = $7, tags = $8,
							is_published = $9, updated_at = now()
						WHERE slug = $10
						RETURNING ` + blogPostColumns

	deleteBlogPostQuery = `
						DELETE FROM blog_posts
						WHERE slug = $1
`
	blogPostSlugExistsQuery = `
						SELECT EXISTS (SELECT 1 FROM blog_posts WHERE slug = $1)
`
)

// BlogRepository provides access to blog post rows
type BlogRepository struct {
	db *postgres.DB
}

// NewBlogRepository creates new BlogRepository instance
func NewBlogRepository(db *postgres.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

func scanBlogPost(row pgx.Row, post *models.BlogPost) error {
	return row.Scan(&post.ID, &post.Title, &post.Slug, &post.PublishedAt,
		&post.AuthorName, &post.Excerpt, &post.Content, &post.ImageURL,
		&post.ImageAlt, &post.Tags, &post.IsPublished, &post.CreatedAt, &post.UpdatedAt)
}

// CreateBlogPost inserts new blog post to database
func (br *BlogRepository) CreateBlogPost(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	row := br.db.QueryRow(ctx, insertBlogPostQuery,
		post.Title, post.Slug, post.PublishedAt, post.AuthorName, post.Excerpt,
		post.Content, post.ImageURL, post.ImageAlt, post.Tags, post.IsPublished)
	if err := scanBlogPost(row, post); err != nil {
		if errCode := br.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return post, nil
}

// ListPublishedPosts returns published posts ordered by publication date
func (br *BlogRepository) ListPublishedPosts(ctx context.Context) ([]models.BlogPost, error) {
	rows, err := br.db.Query(ctx, selectPublishedPostsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.BlogPost{}

	for rows.Next() {
		post := models.BlogPost{}
		if err := scanBlogPost(rows, &post); err != nil {
			continue
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// GetBlogPostBySlug returns blog post by slug
func (br *BlogRepository) GetBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	post := models.BlogPost{}
	if err := scanBlogPost(br.db.QueryRow(ctx, selectBlogPostBySlugQuery, slug), &post); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &post, nil
}

// UpdateBlogPost updates blog post fields by slug
func (br *BlogRepository) UpdateBlogPost(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	row := br.db.QueryRow(ctx, updateBlogPostQuery,
		post.Title, post.PublishedAt, post.AuthorName, post.Excerpt, post.Content,
		post.ImageURL, post.ImageAlt, post.Tags, post.IsPublished, post.Slug)
	if err := scanBlogPost(row, post); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return post, nil
}

// DeleteBlogPost deletes blog post by slug
func (br *BlogRepository) DeleteBlogPost(ctx context.Context, slug string) error {
	cmd, err := br.db.Exec(ctx, deleteBlogPostQuery, slug)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// SlugExists reports whether a blog post with the slug already exists
func (br *BlogRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := br.db.QueryRow(ctx, blogPostSlugExistsQuery, slug).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
