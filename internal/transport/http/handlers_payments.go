package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "biblio/pkg/domain-errors"
	"biblio/pkg/platform/httputil"
)

type payLateFeesRequest struct {
	PatronID string `json:"patron_id"`
	BookID   int64  `json:"book_id"`
}

type refundRequest struct {
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
}

func (h *Handler) handlePayLateFees(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req payLateFeesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	outcome, err := h.payments.PayLateFees(ctx, req.PatronID, req.BookID)
	if err != nil {
		h.logWarnOrError(ctx, "payment failed", err)
		httputil.WriteError(w, err)
		return
	}

	// A decline or gateway error is a 402, not a 4xx validation error.
	status := http.StatusOK
	if !outcome.Approved {
		status = http.StatusPaymentRequired
	}
	httputil.WriteJSON(w, status, outcome)
}

func (h *Handler) handleRefund(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req refundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	outcome, err := h.payments.RefundLateFeePayment(ctx, req.TransactionID, req.Amount)
	if err != nil {
		h.logWarnOrError(ctx, "refund failed", err)
		httputil.WriteError(w, err)
		return
	}

	status := http.StatusOK
	if !outcome.Approved {
		status = http.StatusPaymentRequired
	}
	httputil.WriteJSON(w, status, outcome)
}

func (h *Handler) handlePaymentStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status, err := h.gateway.VerifyPaymentStatus(ctx, chi.URLParam(r, "transactionID"))
	if err != nil {
		h.logWarnOrError(ctx, "payment status lookup failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}
