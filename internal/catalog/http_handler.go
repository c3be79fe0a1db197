package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"booktrack/internal/httpx"
	"booktrack/internal/platform/googlebooks"

	"go.uber.org/zap"
)

type HTTPHandler struct {
	service *Service
	logger  *zap.Logger
}

func NewHTTPHandler(service *Service, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, logger: logger}
}

// Search handles GET /catalog/search?q=&max_results=
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	maxResults := 20
	if raw := r.URL.Query().Get("max_results"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 40 {
			maxResults = v
		}
	}

	items, err := h.service.Search(r.Context(), query, maxResults)
	if err != nil {
		h.writeSearchError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, map[string]any{"items": items}, map[string]any{"total": len(items)})
}

func (h *HTTPHandler) writeSearchError(w http.ResponseWriter, r *http.Request, err error) {
	var searchErr *googlebooks.SearchError
	if !errors.As(err, &searchErr) {
		h.logger.Error("catalog search failed", zap.Error(err))
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	switch searchErr.Kind {
	case googlebooks.RateLimited:
		httpx.JSONError(w, r, http.StatusTooManyRequests, "RATE_LIMITED", searchErr.Error(), nil)
	case googlebooks.ServerError, googlebooks.TransportError:
		httpx.JSONError(w, r, http.StatusBadGateway, "CATALOG_UNAVAILABLE", searchErr.Error(), nil)
	default:
		httpx.JSONError(w, r, http.StatusBadGateway, "CATALOG_ERROR", searchErr.Error(), nil)
	}
}
