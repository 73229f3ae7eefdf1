// Package server exposes the review service over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/at-ishikawa/flashrev/internal/config"
	"github.com/at-ishikawa/flashrev/internal/item"
	"github.com/at-ishikawa/flashrev/internal/review"
	"github.com/at-ishikawa/flashrev/internal/scheduling"
)

// OwnerHeader carries the authenticated learner ID, set by the gateway in front of this server.
const OwnerHeader = "X-User-ID"

//go:generate mockgen -source=handler.go -destination=../mocks/server/mock_handler.go -package=mock_server ReviewService,Pinger

// ReviewService is the subset of review.Service used by the handlers.
type ReviewService interface {
	Get(ctx context.Context, ownerID, itemID string) (*scheduling.Item, error)
	CreateItem(ctx context.Context, ownerID string, content scheduling.Content) (*scheduling.Item, error)
	ListItems(ctx context.Context, ownerID string, filter item.ListFilter) ([]scheduling.Item, error)
	Review(ctx context.Context, ownerID, itemID string, outcome scheduling.Outcome, input scheduling.ReviewInput) (*scheduling.ReviewResult, error)
	Restore(ctx context.Context, ownerID, itemID string) (*scheduling.Item, error)
	Priority(ctx context.Context, ownerID, itemID string) (int, error)
	Events(ctx context.Context, ownerID, itemID string) ([]scheduling.ReviewEvent, error)
	DueQueue(ctx context.Context, ownerID string, opts scheduling.DueOptions) ([]scheduling.DueItem, error)
	CountDue(ctx context.Context, ownerID string, includeOverdue bool) (int, error)
	Stats(ctx context.Context, ownerID string, year, month int) (*review.Report, error)
}

// Pinger checks a backing store, typically *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	service         ReviewService
	pinger          Pinger
	allowedOrigins  []string
	defaultDueLimit int
}

// NewHandler creates a new Handler. pinger may be nil.
func NewHandler(service ReviewService, pinger Pinger, serverCfg config.ServerConfig, reviewCfg config.ReviewConfig) *Handler {
	return &Handler{
		service:         service,
		pinger:          pinger,
		allowedOrigins:  serverCfg.CORS.AllowedOrigins,
		defaultDueLimit: reviewCfg.DefaultDueLimit,
	}
}

// Router returns the HTTP routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", OwnerHeader},
		MaxAge:         int((time.Hour).Seconds()),
	}))

	r.Get("/healthz", h.healthz)

	r.Route("/v1", func(r chi.Router) {
		r.Use(requireOwner)

		r.Get("/items", h.listItems)
		r.Post("/items", h.createItem)
		r.Get("/items/{id}", h.getItem)
		r.Post("/items/{id}/reviews", h.reviewItem)
		r.Post("/items/{id}/restore", h.restoreItem)
		r.Get("/items/{id}/priority", h.itemPriority)
		r.Get("/items/{id}/events", h.itemEvents)

		r.Get("/reviews/due", h.dueItems)
		r.Get("/reviews/due/count", h.dueCount)

		r.Get("/stats", h.stats)
	})

	return r
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.PingContext(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
