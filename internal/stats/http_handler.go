package stats

import (
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

// Summary handles GET /stats.
func (h *HTTPHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ownerID := httpx.UserIDFrom(r)
	if ownerID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	summary, err := h.service.Summary(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("stats summary failed", zap.Error(err))
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, summary, nil)
}
