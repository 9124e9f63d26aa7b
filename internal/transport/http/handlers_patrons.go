package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"biblio/pkg/domain"
	dErrors "biblio/pkg/domain-errors"
	"biblio/pkg/platform/httputil"
)

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	statusReport, err := h.reporter.Report(ctx, chi.URLParam(r, "patronID"))
	if err != nil {
		h.logWarnOrError(ctx, "status report failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, statusReport)
}

func (h *Handler) handleFeeLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	patronID, err := domain.ParsePatronID(chi.URLParam(r, "patronID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid patron ID. Must be exactly 6 digits."))
		return
	}
	bookID, err := parseBookID(chi.URLParam(r, "bookID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	assessment, err := h.fees.Resolve(ctx, patronID, bookID)
	if err != nil {
		h.logWarnOrError(ctx, "fee lookup failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, assessment)
}
