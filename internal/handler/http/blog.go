package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fungigrow/storeapi/internal/models"
	"github.com/go-chi/chi/v5"
)

// BlogService is interface for blog content operations
type BlogService interface {
	// ListPosts returns published posts
	ListPosts(ctx context.Context) ([]models.BlogPost, error)
	// GetPost returns a published post by slug
	GetPost(ctx context.Context, slug string) (*models.BlogPost, error)
	// CreatePost creates a blog post
	CreatePost(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error)
	// UpdatePost updates a blog post by slug
	UpdatePost(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error)
	// DeletePost deletes a blog post by slug
	DeletePost(ctx context.Context, slug string) error
}

// BlogHandler represents HTTP handler for blog requests
type BlogHandler struct {
	svc BlogService
}

// NewBlogHandler creates new BlogHandler instance
func NewBlogHandler(svc BlogService) *BlogHandler {
	return &BlogHandler{svc: svc}
}

type blogPostPayload struct {
	ID          uint64   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Date        string   `json:"date"`
	AuthorName  string   `json:"author_name"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content,omitempty"`
	ImageURL    string   `json:"image_url"`
	ImageAlt    string   `json:"image_alt"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"is_published"`
}

func toBlogPostPayload(post *models.BlogPost, withContent bool) blogPostPayload {
	payload := blogPostPayload{
		ID:          post.ID,
		Title:       post.Title,
		Slug:        post.Slug,
		Date:        post.PublishedAt.UTC().Format("2006-01-02T15:04:05Z"),
		AuthorName:  post.AuthorName,
		Excerpt:     post.Excerpt,
		ImageURL:    post.ImageURL,
		ImageAlt:    post.ImageAlt,
		Tags:        post.Tags,
		IsPublished: post.IsPublished,
	}
	if withContent {
		payload.Content = post.Content
	}
	return payload
}

func (bp *blogPostPayload) toModel() (models.BlogPost, error) {
	post := models.BlogPost{
		Title:       bp.Title,
		Slug:        bp.Slug,
		AuthorName:  bp.AuthorName,
		Excerpt:     bp.Excerpt,
		Content:     bp.Content,
		ImageURL:    bp.ImageURL,
		ImageAlt:    bp.ImageAlt,
		Tags:        bp.Tags,
		IsPublished: bp.IsPublished,
	}
	if bp.Date != "" {
		date, err := time.Parse(time.RFC3339, bp.Date)
		if err != nil {
			return models.BlogPost{}, err
		}
		post.PublishedAt = date
	}
	return post, nil
}

// ListPosts returns published posts without the full content
// 200 — list of posts, possibly empty.
func (bh *BlogHandler) ListPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := bh.svc.ListPosts(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := []blogPostPayload{}
		for i := range posts {
			resp = append(resp, toBlogPostPayload(&posts[i], false))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}

// GetPost returns a post by slug including the full content
// 200 — post found;
// 404 — no published post with this slug.
func (bh *BlogHandler) GetPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := bh.svc.GetPost(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				writeError(w, http.StatusNotFound, "post not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(toBlogPostPayload(post, true))
	}
}

// CreatePost creates a blog post (admin)
// 201 — post created;
// 400 — malformed request;
// 409 — slug already exists.
func (bh *BlogHandler) CreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req blogPostPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad request")
			return
		}
		defer r.Body.Close()

		post, err := req.toModel()
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}

		created, err := bh.svc.CreatePost(r.Context(), &post)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrMissingFields):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, models.ErrConflictData):
				writeError(w, http.StatusConflict, "post already exists")
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(toBlogPostPayload(created, true))
	}
}

// UpdatePost updates a blog post by slug (admin)
// 200 — post updated;
// 400 — malformed request;
// 404 — no post with this slug.
func (bh *BlogHandler) UpdatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req blogPostPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad request")
			return
		}
		defer r.Body.Close()

		post, err := req.toModel()
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		post.Slug = chi.URLParam(r, "slug")

		updated, err := bh.svc.UpdatePost(r.Context(), &post)
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				writeError(w, http.StatusNotFound, "post not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(toBlogPostPayload(updated, true))
	}
}

// DeletePost deletes a blog post by slug (admin)
// 204 — post deleted;
// 404 — no post with this slug.
func (bh *BlogHandler) DeletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := bh.svc.DeletePost(r.Context(), chi.URLParam(r, "slug")); err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				writeError(w, http.StatusNotFound, "post not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
