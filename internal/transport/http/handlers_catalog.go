package httptransport

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "biblio/pkg/domain-errors"
	"biblio/pkg/platform/httputil"
	"biblio/pkg/requestcontext"
)

type addBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	TotalCopies int    `json:"total_copies"`
}

func (h *Handler) handleAddBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	book, err := h.catalog.AddBook(ctx, req.Title, req.Author, req.ISBN, req.TotalCopies)
	if err != nil {
		h.logWarnOrError(ctx, "add book failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, book)
}

// handleListBooks serves both the full listing and searches. A request with
// q and type parameters filters; anything else lists everything.
func (h *Handler) handleListBooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	term := r.URL.Query().Get("q")
	searchType := r.URL.Query().Get("type")

	if term != "" || searchType != "" {
		books, err := h.catalog.SearchBooks(ctx, term, searchType)
		if err != nil {
			h.logWarnOrError(ctx, "search books failed", err)
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, books)
		return
	}

	books, err := h.catalog.ListBooks(ctx)
	if err != nil {
		h.logWarnOrError(ctx, "list books failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, books)
}

func (h *Handler) handleGetBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bookID, err := parseBookID(chi.URLParam(r, "bookID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	book, err := h.catalog.GetBook(ctx, bookID)
	if err != nil {
		h.logWarnOrError(ctx, "get book failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, book)
}

func parseBookID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "Book ID must be a positive integer.")
	}
	return id, nil
}

// logWarnOrError keeps caller mistakes at warn and real failures at error.
func (h *Handler) logWarnOrError(ctx context.Context, msg string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"error", err, "request_id", requestcontext.RequestID(ctx))
		return
	}
	h.logger.WarnContext(ctx, msg,
		"error", err, "request_id", requestcontext.RequestID(ctx))
}
