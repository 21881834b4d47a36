// Package httpapi exposes the batch use cases as JSON endpoints under
// /api/usecases/{id}/...
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/app"
)

// Services are the use cases the handlers call.
type Services struct {
	Plan         app.PlanUseCase
	Stakeholders app.StakeholderUseCase
	Updates      app.ProgressUpdateUseCase
	Prioritize   app.PrioritizeUseCase
}

type Options struct {
	Logger *slog.Logger
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
	// MaxBodyBytes caps request bodies; zero means 1 MiB.
	MaxBodyBytes int64
}

type handler struct {
	svc     Services
	logger  *slog.Logger
	maxBody int64
}

// NewHandler builds the routed handler with request-id, no-store and
// access-log middleware applied.
func NewHandler(svc Services, opts Options) http.Handler {
	h := &handler{svc: svc, logger: opts.Logger, maxBody: opts.MaxBodyBytes}
	if h.logger == nil {
		h.logger = slog.New(slog.DiscardHandler)
	}
	if h.maxBody <= 0 {
		h.maxBody = 1 << 20
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics)
	}

	mux.HandleFunc("GET /api/usecases/{id}/plan", h.listPlan)
	mux.HandleFunc("PATCH /api/usecases/{id}/plan", h.patchPlan)

	mux.HandleFunc("GET /api/usecases/{id}/stakeholders", h.listStakeholders)
	mux.HandleFunc("PUT /api/usecases/{id}/stakeholders", h.putStakeholders)
	mux.HandleFunc("POST /api/usecases/{id}/stakeholders", h.postStakeholder)
	mux.HandleFunc("PATCH /api/usecases/{id}/stakeholders", h.patchStakeholder)

	mux.HandleFunc("GET /api/usecases/{id}/updates", h.listUpdates)
	mux.HandleFunc("POST /api/usecases/{id}/updates", h.postUpdate)

	mux.HandleFunc("GET /api/usecases/{id}/prioritize", h.getPrioritization)
	mux.HandleFunc("PATCH /api/usecases/{id}/prioritize", h.patchPrioritization)

	return withRequestID(noStore(h.accessLog(mux)))
}
