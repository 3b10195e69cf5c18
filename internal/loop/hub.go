package loop

import (
	"sync"
	"time"
)

// HubEventType identifies a hub broadcast.
type HubEventType int

const (
	EventServerShutdown HubEventType = iota
)

// HubEvent is sent from the hub to every registered session.
type HubEvent struct {
	Type HubEventType
}

// Hub tracks live sessions so the host can broadcast to them. Each session
// runs its own arena; the hub shares nothing but the notification channel.
type Hub struct {
	mu       sync.RWMutex
	sessions map[int]chan HubEvent
	nextID   int
	best     int
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		sessions: make(map[int]chan HubEvent),
		nextID:   1,
	}
}

// Register adds a session and returns its id and event channel.
func (h *Hub) Register() (int, <-chan HubEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan HubEvent, 4)
	h.sessions[id] = ch
	return id, ch
}

// Unregister removes a session and closes its channel. Unknown ids are ignored.
func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.sessions[id]; ok {
		close(ch)
		delete(h.sessions, id)
	}
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// ReportScore records a finished run and returns the best score so far.
func (h *Hub) ReportScore(score int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.best = max(h.best, score)
	return h.best
}

// Best returns the best reported score.
func (h *Hub) Best() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.best
}

// Shutdown notifies every session and waits for them to unregister, up to
// timeout. The caller closes the listener afterwards.
func (h *Hub) Shutdown(timeout time.Duration) {
	h.mu.RLock()
	for _, ch := range h.sessions {
		select {
		case ch <- HubEvent{Type: EventServerShutdown}:
		default:
		}
	}
	h.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			if h.Len() == 0 {
				return
			}
		}
	}
}
