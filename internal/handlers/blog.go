package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"portfolio-backend/internal/blog"
	"portfolio-backend/internal/cms"
	"portfolio-backend/internal/models"
)

type BlogHandler struct {
	posts  postSource
	logger *zap.Logger
	now    func() time.Time
}

type postSource interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	PostBySlug(ctx context.Context, slug string) (*models.Post, error)
	RecentPosts(ctx context.Context, slug string) ([]models.Post, error)
	RelatedPosts(ctx context.Context, slug string, cats []string) ([]models.Post, error)
	ImageURL(ref string, width int) string
}

// NewBlogHandler wires the blog endpoints. A nil source means no content
// backend is configured and every blog request answers 503.
func NewBlogHandler(posts postSource, logger *zap.Logger) *BlogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlogHandler{posts: posts, logger: logger, now: time.Now}
}

func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.posts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("UNAVAILABLE", "Blog is not configured", r))
		return
	}

	all, err := h.posts.ListPosts(r.Context())
	if err != nil {
		h.logger.Error("failed to list posts", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResp("UPSTREAM_ERROR", "Failed to load posts", r))
		return
	}
	all = blog.WithCovers(all, h.posts.ImageURL)

	filter := blog.ParseFilter(r.URL.Query())
	filtered := filter.Apply(all, h.now())

	resp := models.PostListResponse{
		Posts:      filtered,
		Categories: blog.Categories(all),
		Count:      len(filtered),
	}
	// The unfiltered index leads with the newest post.
	if !filter.Active() && len(filtered) > 0 {
		featured := filtered[0]
		resp.Featured = &featured
		resp.Posts = filtered[1:]
	}
	if resp.Posts == nil {
		resp.Posts = []models.Post{}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.posts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("UNAVAILABLE", "Blog is not configured", r))
		return
	}

	slug := chi.URLParam(r, "slug")
	post, err := h.posts.PostBySlug(r.Context(), slug)
	if errors.Is(err, cms.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Post not found", r))
		return
	}
	if err != nil {
		h.logger.Error("failed to get post", zap.String("slug", slug), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResp("UPSTREAM_ERROR", "Failed to load post", r))
		return
	}
	post.CoverURL = blog.CoverURL(*post, h.posts.ImageURL)

	var recent, related []models.Post
	wg := conc.NewWaitGroup()
	wg.Go(func() {
		posts, err := h.posts.RecentPosts(r.Context(), slug)
		if err != nil {
			h.logger.Warn("failed to load recent posts", zap.String("slug", slug), zap.Error(err))
			return
		}
		recent = blog.WithCovers(posts, h.posts.ImageURL)
	})
	wg.Go(func() {
		posts, err := h.posts.RelatedPosts(r.Context(), slug, blog.CategoryTitles(*post))
		if err != nil {
			h.logger.Warn("failed to load related posts", zap.String("slug", slug), zap.Error(err))
			return
		}
		related = blog.WithCovers(posts, h.posts.ImageURL)
	})
	wg.Wait()

	if recent == nil {
		recent = []models.Post{}
	}
	if related == nil {
		related = []models.Post{}
	}

	writeJSON(w, http.StatusOK, models.PostDetailResponse{
		Post:    *post,
		Recent:  recent,
		Related: related,
	})
}
