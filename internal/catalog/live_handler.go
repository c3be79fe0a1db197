package catalog

import (
	"errors"
	"net/http"
	"sync"
	"sync/atomic"

	"booktrack/internal/platform/googlebooks"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// liveResult is one frame pushed back to a live-search client.
type liveResult struct {
	Query string             `json:"query"`
	Items []googlebooks.Book `json:"items,omitempty"`
	Error *liveError         `json:"error,omitempty"`
}

type liveError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LiveHandler serves search-as-you-type over a websocket. Each text frame
// from the client is the current query; the debouncer coalesces bursts so
// only the last query after 500ms of quiet hits the catalog, and a
// sequence counter discards responses that were superseded while in
// flight.
type LiveHandler struct {
	service  *Service
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewLiveHandler(service *Service, logger *zap.Logger) *LiveHandler {
	return &LiveHandler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

// Live handles GET /catalog/live
func (h *LiveHandler) Live(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return
	}
	defer conn.Close()

	debouncer := NewDebouncer(DebounceDelay)
	defer debouncer.Stop()

	var (
		seq     atomic.Uint64
		writeMu sync.Mutex
	)
	send := func(res liveResult) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(res); err != nil {
			h.logger.Debug("live search write failed", zap.Error(err))
		}
	}

	ctx := r.Context()
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			// Client closed the search; the deferred Stop cancels any
			// pending timer.
			return
		}

		query := string(msg)
		id := seq.Add(1)

		debouncer.Schedule(func() {
			items, err := h.service.Search(ctx, query, 20)
			if seq.Load() != id {
				// A newer keystroke arrived while this request was in
				// flight; drop the stale result.
				return
			}
			if err != nil {
				send(liveResult{Query: query, Error: classify(err)})
				return
			}
			send(liveResult{Query: query, Items: items})
		})
	}
}

func classify(err error) *liveError {
	var searchErr *googlebooks.SearchError
	if errors.As(err, &searchErr) {
		return &liveError{Code: searchErr.Kind.String(), Message: searchErr.Error()}
	}
	return &liveError{Code: "internal", Message: "search failed"}
}
