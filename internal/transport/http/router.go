package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	platformmetrics "biblio/internal/platform/metrics"
	"biblio/internal/platform/middleware"
	"biblio/pkg/platform/httputil"
)

// NewRouter wires all public endpoints behind the standard middleware chain.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.RequestLogger(h.logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", platformmetrics.Handler())

	r.Route("/catalog/books", func(r chi.Router) {
		r.Post("/", h.handleAddBook)
		r.Get("/", h.handleListBooks)
		r.Get("/{bookID}", h.handleGetBook)
	})

	r.Route("/loans", func(r chi.Router) {
		r.Post("/borrow", h.handleBorrow)
		r.Post("/return", h.handleReturn)
	})

	r.Route("/patrons/{patronID}", func(r chi.Router) {
		r.Get("/report", h.handleReport)
		r.Get("/books/{bookID}/fee", h.handleFeeLookup)
	})

	r.Route("/payments", func(r chi.Router) {
		r.Post("/late-fees", h.handlePayLateFees)
		r.Post("/refunds", h.handleRefund)
		r.Get("/{transactionID}/status", h.handlePaymentStatus)
	})

	return r
}
