// pattern: Imperative Shell

package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// eventBroker fans out "sessions changed" signals to SSE subscribers.
type eventBroker struct {
	mu          sync.Mutex
	subscribers map[chan struct{}]struct{}
}

func newEventBroker() *eventBroker {
	return &eventBroker{
		subscribers: make(map[chan struct{}]struct{}),
	}
}

// Subscribe returns a buffered channel that receives a signal on each
// Notify call. The caller must call Unsubscribe when done.
func (b *eventBroker) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber channel.
func (b *eventBroker) Unsubscribe(ch chan struct{}) {
	b.mu.Lock()
	delete(b.subscribers, ch)
	b.mu.Unlock()
}

// Notify signals all subscribers. Non-blocking: a subscriber that has not
// consumed the previous signal gets the new one coalesced into it.
func (b *eventBroker) Notify() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// handleEvents is the SSE endpoint. It sends the current session list on
// open and again each time the broker is notified, so a dashboard can
// track viewers without polling.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := s.events.Subscribe()
	defer s.events.Unsubscribe(ch)

	s.writeSessionsEvent(w)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ch:
			s.writeSessionsEvent(w)
			flusher.Flush()
		}
	}
}

func (s *Server) writeSessionsEvent(w http.ResponseWriter) {
	list := []SessionInfo{}
	if s.sessions != nil {
		list = s.sessions()
	}
	data, err := json.Marshal(list)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: sessions\ndata: %s\n\n", data)
}
