package service

import (
	"context"
	"testing"

	"github.com/fungigrow/storeapi/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlogRepo struct {
	posts map[string]*models.BlogPost
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{posts: map[string]*models.BlogPost{}}
}

func (f *fakeBlogRepo) CreateBlogPost(_ context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	if _, ok := f.posts[post.Slug]; ok {
		return nil, models.ErrConflictData
	}
	cp := *post
	f.posts[post.Slug] = &cp
	return &cp, nil
}

func (f *fakeBlogRepo) ListPublishedPosts(_ context.Context) ([]models.BlogPost, error) {
	var out []models.BlogPost
	for _, post := range f.posts {
		if post.IsPublished {
			out = append(out, *post)
		}
	}
	return out, nil
}

func (f *fakeBlogRepo) GetBlogPostBySlug(_ context.Context, slug string) (*models.BlogPost, error) {
	post, ok := f.posts[slug]
	if !ok {
		return nil, models.ErrDataNotFound
	}
	cp := *post
	return &cp, nil
}

func (f *fakeBlogRepo) UpdateBlogPost(_ context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	if _, ok := f.posts[post.Slug]; !ok {
		return nil, models.ErrDataNotFound
	}
	cp := *post
	f.posts[post.Slug] = &cp
	return &cp, nil
}

func (f *fakeBlogRepo) DeleteBlogPost(_ context.Context, slug string) error {
	if _, ok := f.posts[slug]; !ok {
		return models.ErrDataNotFound
	}
	delete(f.posts, slug)
	return nil
}

func (f *fakeBlogRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	_, ok := f.posts[slug]
	return ok, nil
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cultivo de Hongos Ostra", "cultivo-de-hongos-ostra"},
		{"Guía de cultivo: Ñoquis & setas", "guia-de-cultivo-noquis-setas"},
		{"  espacios   extra  ", "espacios-extra"},
		{"MAYÚSCULAS", "mayusculas"},
		{"kit 3x1", "kit-3x1"},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.in))
		})
	}
}

func TestCreatePostGeneratesSlug(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := NewBlogService(repo)

	post, err := svc.CreatePost(context.Background(), &models.BlogPost{
		Title:   "Cómo cultivar hongos ostra",
		Content: "contenido",
	})

	require.NoError(t, err)
	assert.Equal(t, "como-cultivar-hongos-ostra", post.Slug)
	assert.False(t, post.PublishedAt.IsZero())
	assert.NotNil(t, post.Tags)
}

func TestCreatePostSlugCollision(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := NewBlogService(repo)

	first, err := svc.CreatePost(context.Background(), &models.BlogPost{Title: "Hongos Ostra", Content: "a"})
	require.NoError(t, err)
	second, err := svc.CreatePost(context.Background(), &models.BlogPost{Title: "Hongos Ostra", Content: "b"})
	require.NoError(t, err)
	third, err := svc.CreatePost(context.Background(), &models.BlogPost{Title: "Hongos Ostra", Content: "c"})
	require.NoError(t, err)

	assert.Equal(t, "hongos-ostra", first.Slug)
	assert.Equal(t, "hongos-ostra-2", second.Slug)
	assert.Equal(t, "hongos-ostra-3", third.Slug)
}

func TestCreatePostKeepsExplicitSlug(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := NewBlogService(repo)

	post, err := svc.CreatePost(context.Background(), &models.BlogPost{
		Title:   "Hongos Ostra",
		Content: "a",
		Slug:    "custom-slug",
	})

	require.NoError(t, err)
	assert.Equal(t, "custom-slug", post.Slug)
}

func TestCreatePostMissingFields(t *testing.T) {
	svc := NewBlogService(newFakeBlogRepo())

	_, err := svc.CreatePost(context.Background(), &models.BlogPost{Title: "sin contenido"})

	assert.ErrorIs(t, err, models.ErrMissingFields)
}

func TestGetPostHidesUnpublished(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := NewBlogService(repo)

	_, err := repo.CreateBlogPost(context.Background(), &models.BlogPost{
		Slug:        "borrador",
		Title:       "Borrador",
		Content:     "wip",
		IsPublished: false,
	})
	require.NoError(t, err)

	_, err = svc.GetPost(context.Background(), "borrador")

	assert.ErrorIs(t, err, models.ErrDataNotFound)
}
