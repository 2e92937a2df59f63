package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fungigrow/storeapi/internal/models"
)

// BlogRepository is interface for interacting with blog post data
type BlogRepository interface {
	// CreateBlogPost inserts new blog post to database
	CreateBlogPost(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error)
	// ListPublishedPosts returns published posts ordered by publication date
	ListPublishedPosts(ctx context.Context) ([]models.BlogPost, error)
	// GetBlogPostBySlug returns blog post by slug
	GetBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	// UpdateBlogPost updates blog post fields by slug
	UpdateBlogPost(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error)
	// DeleteBlogPost deletes blog post by slug
	DeleteBlogPost(ctx context.Context, slug string) error
	// SlugExists reports whether a blog post with the slug already exists
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// BlogService implements blog content operations
type BlogService struct {
	repo BlogRepository
}

// NewBlogService creates new BlogService instance
func NewBlogService(repo BlogRepository) *BlogService {
	return &BlogService{repo: repo}
}

// ListPosts returns published posts for the storefront
func (bs *BlogService) ListPosts(ctx context.Context) ([]models.BlogPost, error) {
	return bs.repo.ListPublishedPosts(ctx)
}

// GetPost returns a published post by slug
func (bs *BlogService) GetPost(ctx context.Context, slug string) (*models.BlogPost, error) {
	post, err := bs.repo.GetBlogPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished {
		return nil, models.ErrDataNotFound
	}
	return post, nil
}

// CreatePost creates a blog post. An empty slug is generated from the title;
// colliding slugs get a numeric suffix.
func (bs *BlogService) CreatePost(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	if post.Title == "" || post.Content == "" {
		return nil, models.ErrMissingFields
	}
	if post.PublishedAt.IsZero() {
		post.PublishedAt = time.Now()
	}
	if post.Slug == "" {
		slug, err := bs.uniqueSlug(ctx, slugify(post.Title))
		if err != nil {
			return nil, err
		}
		post.Slug = slug
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	return bs.repo.CreateBlogPost(ctx, post)
}

// UpdatePost updates a blog post by slug
func (bs *BlogService) UpdatePost(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	if post.Slug == "" {
		return nil, models.ErrMissingFields
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	return bs.repo.UpdateBlogPost(ctx, post)
}

// DeletePost deletes a blog post by slug
func (bs *BlogService) DeletePost(ctx context.Context, slug string) error {
	return bs.repo.DeleteBlogPost(ctx, slug)
}

func (bs *BlogService) uniqueSlug(ctx context.Context, base string) (string, error) {
	slug := base
	for counter := 2; ; counter++ {
		exists, err := bs.repo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}
