package httptransport

import (
	"encoding/json"
	"net/http"

	dErrors "biblio/pkg/domain-errors"
	"biblio/pkg/platform/httputil"
)

type loanRequest struct {
	PatronID string `json:"patron_id"`
	BookID   int64  `json:"book_id"`
}

func (h *Handler) handleBorrow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	receipt, err := h.loans.Borrow(ctx, req.PatronID, req.BookID)
	if err != nil {
		h.logWarnOrError(ctx, "borrow failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, receipt)
}

func (h *Handler) handleReturn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	receipt, err := h.loans.Return(ctx, req.PatronID, req.BookID)
	if err != nil {
		h.logWarnOrError(ctx, "return failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, receipt)
}
