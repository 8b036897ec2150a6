package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"portfolio-backend/internal/chat"
	"portfolio-backend/internal/cms"
	"portfolio-backend/internal/models"
)

type echoBackend struct{}

func (echoBackend) StartSession(_ context.Context, cfg chat.SessionConfig) (chat.RemoteSession, error) {
	return echoSession{}, nil
}

type echoSession struct{}

func (echoSession) Send(_ context.Context, text string) (string, error) {
	return "You asked: **" + text + "**", nil
}

func testProfile() chat.Profile {
	return chat.Profile{
		Name:             "Test Owner",
		LiveGreeting:     "Hello! I'm an AI assistant.",
		OfflineGreeting:  "Hi! I'm Test Owner.",
		ContactReply:     "Please contact me directly: owner@example.com",
		ContactCard:      "📧 owner@example.com",
		RateLimitedReply: "Please wait a minute.",
	}
}

func newTestRegistry(backend chat.Backend) *chat.Registry {
	opts := chat.Options{PrimaryModel: "primary-model", MaxPairs: 5}
	shared := chat.Shared{Cache: chat.NewMemoryCache(), Limiter: chat.NewRateWindow(chat.DefaultRPMLimit, chat.DefaultRateWindow)}
	return chat.NewRegistry(backend, testProfile(), opts, shared, 0, nil)
}

// withURLParams attaches chi route params the way the router would.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type fakePosts struct {
	mu        sync.Mutex
	posts     []models.Post
	listErr   error
	recent    []models.Post
	related   []models.Post
	relatedTo []string
}

func (f *fakePosts) ListPosts(context.Context) ([]models.Post, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Post, len(f.posts))
	copy(out, f.posts)
	return out, nil
}

func (f *fakePosts) PostBySlug(_ context.Context, slug string) (*models.Post, error) {
	for _, p := range f.posts {
		if p.Slug.Current == slug {
			post := p
			return &post, nil
		}
	}
	return nil, cms.ErrNotFound
}

func (f *fakePosts) RecentPosts(context.Context, string) ([]models.Post, error) {
	return append([]models.Post(nil), f.recent...), nil
}

func (f *fakePosts) RelatedPosts(_ context.Context, _ string, cats []string) ([]models.Post, error) {
	f.mu.Lock()
	f.relatedTo = cats
	f.mu.Unlock()
	return append([]models.Post(nil), f.related...), nil
}

func (f *fakePosts) ImageURL(ref string, width int) string {
	return ""
}
