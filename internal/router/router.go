package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"portfolio-backend/internal/handlers"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/websocket"
)

func New(
	chatHandler *handlers.ChatHandler,
	blogHandler *handlers.BlogHandler,
	resumeHandler *handlers.ResumeHandler,
	chatSocket *websocket.ChatSocket,
	chatLimiter *middleware.RateLimiter,
	frontendURL string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Chat Routes ────
		r.Route("/chat", func(r chi.Router) {
			r.Get("/ws", chatSocket.HandleWebSocket)

			r.Route("/sessions", func(r chi.Router) {
				r.With(chatLimiter.Middleware).Post("/", chatHandler.OpenSession)
				r.With(chatLimiter.Middleware).Post("/{id}/messages", chatHandler.SendMessage)
				r.Get("/{id}", chatHandler.GetSession)
				r.Delete("/{id}", chatHandler.DeleteSession)
			})
		})

		// ──── Blog Routes ────
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", blogHandler.List)
			r.Get("/{slug}", blogHandler.Get)
		})

		// ──── Profile Routes ────
		r.Get("/resume", resumeHandler.Get)
		r.Get("/images/{key}", resumeHandler.Image)
	})

	return r
}
