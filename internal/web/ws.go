package web

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pinboard-cli/internal/board"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  8 * 1024,
	WriteBufferSize: 8 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			return true
		}
		// Basic same-origin check; good enough for localhost use.
		host := strings.TrimSpace(r.Host)
		return strings.Contains(origin, "://"+host)
	},
}

// stateEvent is the watch feed's wire shape.
type stateEvent struct {
	Type    string      `json:"type"`
	BoardID string      `json:"boardId"`
	State   board.State `json:"state"`
}

// boardBroadcaster fans saved board states out to watch subscribers.
// Slow subscribers are dropped rather than allowed to stall saves.
type boardBroadcaster struct {
	mu   sync.Mutex
	subs map[string]map[chan stateEvent]struct{}
}

func newBoardBroadcaster() *boardBroadcaster {
	return &boardBroadcaster{subs: make(map[string]map[chan stateEvent]struct{})}
}

func (b *boardBroadcaster) subscribe(boardID string) chan stateEvent {
	ch := make(chan stateEvent, 8)
	b.mu.Lock()
	if b.subs[boardID] == nil {
		b.subs[boardID] = make(map[chan stateEvent]struct{})
	}
	b.subs[boardID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *boardBroadcaster) unsubscribe(boardID string, ch chan stateEvent) {
	b.mu.Lock()
	if set := b.subs[boardID]; set != nil {
		delete(set, ch)
		if len(set) == 0 {
			delete(b.subs, boardID)
		}
	}
	b.mu.Unlock()
}

func (b *boardBroadcaster) broadcast(boardID string, state board.State) {
	ev := stateEvent{Type: "state", BoardID: boardID, State: state.Clone()}
	b.mu.Lock()
	for ch := range b.subs[boardID] {
		select {
		case ch <- ev:
		default:
		}
	}
	b.mu.Unlock()
}

// closeBoard tells watchers of a deleted board to go away.
func (b *boardBroadcaster) closeBoard(boardID string) {
	b.mu.Lock()
	set := b.subs[boardID]
	delete(b.subs, boardID)
	b.mu.Unlock()
	for ch := range set {
		close(ch)
	}
}

// handleBoardWatch streams the board's state over a websocket: the
// current state on connect, then one message per save.
func (s *Server) handleBoardWatch(w http.ResponseWriter, r *http.Request) {
	boardID := r.PathValue("boardId")
	b, err := s.st.GetBoard(r.Context(), boardID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ch := s.bc.subscribe(boardID)
	defer s.bc.unsubscribe(boardID, ch)

	// Reader goroutine: we never expect client messages, but reading is
	// what surfaces the close frame.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(stateEvent{Type: "state", BoardID: boardID, State: b.State}); err != nil {
		return
	}

	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case ev, ok := <-ch:
			if !ok {
				_ = conn.WriteJSON(map[string]string{"type": "deleted", "boardId": boardID})
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}
