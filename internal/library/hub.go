package library

import (
	"sync"

	"github.com/google/uuid"
)

// Hub fans out full-snapshot updates to shelf watchers. Each emission
// replaces whatever the subscriber held before; slow subscribers only
// ever see the latest snapshot (intermediate ones are dropped).
type Hub struct {
	mu   sync.Mutex
	subs map[string]*Subscription
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]*Subscription)}
}

// Subscription delivers snapshots on C until Cancel is called.
type Subscription struct {
	C <-chan []Book

	id       string
	ownerID  string
	category *Category
	ch       chan []Book
	hub      *Hub
	once     sync.Once
}

// Cancel detaches the subscription and closes C.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s.id)
		close(s.ch)
		s.hub.mu.Unlock()
	})
}

func (h *Hub) Subscribe(ownerID string, category *Category) *Subscription {
	ch := make(chan []Book, 1)
	sub := &Subscription{
		C:        ch,
		id:       uuid.New().String(),
		ownerID:  ownerID,
		category: category,
		ch:       ch,
		hub:      h,
	}
	h.mu.Lock()
	h.subs[sub.id] = sub
	h.mu.Unlock()
	return sub
}

// Publish delivers the owner's full snapshot to every matching
// subscription, applying each one's category filter.
func (h *Hub) Publish(ownerID string, books []Book) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		if sub.ownerID == ownerID {
			h.deliverLocked(sub, books)
		}
	}
}

// publishTo seeds a single subscription, skipping it if already cancelled.
func (h *Hub) publishTo(sub *Subscription, books []Book) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub.id]; !ok {
		return
	}
	h.deliverLocked(sub, books)
}

func (h *Hub) deliverLocked(sub *Subscription, books []Book) {
	snapshot := books
	if sub.category != nil {
		snapshot = make([]Book, 0, len(books))
		for _, b := range books {
			if b.Category == *sub.category {
				snapshot = append(snapshot, b)
			}
		}
	}

	// Replace any undelivered snapshot instead of blocking.
	select {
	case <-sub.ch:
	default:
	}
	select {
	case sub.ch <- snapshot:
	default:
	}
}
