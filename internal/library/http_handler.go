package library

import (
	"encoding/json"
	"errors"
	"net/http"

	"booktrack/internal/httpx"

	"go.uber.org/zap"
)

type HTTPHandler struct {
	service *Service
	logger  *zap.Logger
}

func NewHTTPHandler(service *Service, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, logger: logger}
}

type createBookReq struct {
	ISBN          string   `json:"isbn" validate:"omitempty,isbn"`
	Title         string   `json:"title" validate:"required,max=500"`
	Author        string   `json:"author" validate:"required,max=500"`
	Description   string   `json:"description"`
	CoverURL      string   `json:"cover_url" validate:"omitempty,url"`
	PageCount     int      `json:"page_count" validate:"min=0"`
	PublishedYear *int     `json:"published_year"`
	Genres        []string `json:"genres"`
	Category      string   `json:"category" validate:"required"`
	Rating        *int     `json:"rating"`
	Notes         string   `json:"notes"`
	IsManual      bool     `json:"is_manual"`
}

type updateBookReq struct {
	Category *string `json:"category"`
	Rating   *int    `json:"rating"`
	Notes    *string `json:"notes"`
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := httpx.UserIDFrom(r)
	if ownerID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req createBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	category, err := ParseCategory(req.Category)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	b := Book{
		OwnerID:       ownerID,
		ISBN:          req.ISBN,
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		CoverURL:      req.CoverURL,
		PageCount:     req.PageCount,
		PublishedYear: req.PublishedYear,
		Genres:        req.Genres,
		Category:      category,
		Rating:        req.Rating,
		Notes:         req.Notes,
		IsManual:      req.IsManual,
	}

	if err := h.service.Create(r.Context(), &b); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, b)
}

// List handles GET /books[?category=]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := httpx.UserIDFrom(r)
	if ownerID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	category, ok := h.categoryFilter(w, r)
	if !ok {
		return
	}

	books, err := h.service.List(r.Context(), ownerID, category)
	if err != nil {
		h.logger.Error("list books failed", zap.String("owner_id", ownerID), zap.Error(err))
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, books, map[string]any{"total": len(books)})
}

// Get handles GET /books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := httpx.UserIDFrom(r)
	if ownerID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	b, err := h.service.Get(r.Context(), r.PathValue("id"), ownerID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, b, nil)
}

// Update handles PATCH /books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := httpx.UserIDFrom(r)
	if ownerID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req updateBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	patch := Patch{Rating: req.Rating, Notes: req.Notes}
	if req.Category != nil {
		category, err := ParseCategory(*req.Category)
		if err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
		patch.Category = &category
	}

	b, err := h.service.Update(r.Context(), r.PathValue("id"), ownerID, patch)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, b, nil)
}

// Delete handles DELETE /books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := httpx.UserIDFrom(r)
	if ownerID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	if err := h.service.Delete(r.Context(), r.PathValue("id"), ownerID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// Watch handles GET /books/watch[?category=] as a server-sent event
// stream. Every emission is a full replacement snapshot of the shelf.
func (h *HTTPHandler) Watch(w http.ResponseWriter, r *http.Request) {
	ownerID := httpx.UserIDFrom(r)
	if ownerID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	category, ok := h.categoryFilter(w, r)
	if !ok {
		return
	}

	flusher, canFlush := w.(http.Flusher)
	if !canFlush {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Streaming unsupported", nil)
		return
	}

	sub, err := h.service.Subscribe(r.Context(), ownerID, category)
	if err != nil {
		h.logger.Error("subscribe failed", zap.String("owner_id", ownerID), zap.Error(err))
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	defer sub.Cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	enc := json.NewEncoder(w)
	for {
		select {
		case <-r.Context().Done():
			return
		case books, open := <-sub.C:
			if !open {
				return
			}
			if _, err := w.Write([]byte("data: ")); err != nil {
				return
			}
			if err := enc.Encode(books); err != nil {
				return
			}
			if _, err := w.Write([]byte("\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (h *HTTPHandler) categoryFilter(w http.ResponseWriter, r *http.Request) (*Category, bool) {
	raw := r.URL.Query().Get("category")
	if raw == "" {
		return nil, true
	}
	category, err := ParseCategory(raw)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return nil, false
	}
	return &category, true
}

func (h *HTTPHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	case errors.Is(err, ErrInvalidRating),
		errors.Is(err, ErrTitleRequired),
		errors.Is(err, ErrAuthorRequired):
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	default:
		h.logger.Error("library request failed", zap.Error(err))
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
