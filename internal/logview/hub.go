package logview

import (
	"sync"
	"time"

	"autoshot/internal/capture"
	"autoshot/internal/config"
	"autoshot/internal/session"
)

const (
	maxClients    = 5
	clientBacklog = 64
)

// Message is what the page receives over the websocket.
type Message struct {
	Type     string          `json:"type"`
	RunID    string          `json:"run_id,omitempty"`
	Record   *capture.Record `json:"record,omitempty"`
	Error    string          `json:"error,omitempty"`
	Notice   string          `json:"notice,omitempty"`
	Snapshot *Snapshot       `json:"snapshot,omitempty"`
	At       time.Time       `json:"at"`
}

// Snapshot is the full state of the current run's log.
type Snapshot struct {
	RunID    string           `json:"run_id,omitempty"`
	State    string           `json:"state"`
	Folder   string           `json:"folder,omitempty"`
	Interval int              `json:"interval_seconds"`
	Format   config.Format    `json:"format,omitempty"`
	Notice   string           `json:"notice,omitempty"`
	Error    string           `json:"error,omitempty"`
	Records  []capture.Record `json:"records"`
}

// Hub keeps the current run's log and fans changes out to connected pages.
type Hub struct {
	stoppedNotice string
	clock         func() time.Time

	mu       sync.Mutex
	snapshot Snapshot
	clients  []chan Message
}

func NewHub(stoppedNotice string) *Hub {
	return &Hub{
		stoppedNotice: stoppedNotice,
		clock:         time.Now,
		snapshot:      Snapshot{State: session.StateStopped.String(), Records: []capture.Record{}},
	}
}

// Apply folds a session event into the log and notifies every page.
func (h *Hub) Apply(ev session.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg := Message{Type: ev.Kind.String(), RunID: ev.RunID, At: h.clock().UTC()}
	switch ev.Kind {
	case session.EventStarted:
		h.snapshot = Snapshot{
			RunID:    ev.RunID,
			State:    session.StateRunning.String(),
			Folder:   ev.Settings.Folder,
			Interval: ev.Settings.IntervalSeconds,
			Format:   ev.Settings.Format,
			Records:  []capture.Record{},
		}
		snap := h.copySnapshot()
		msg.Snapshot = &snap
	case session.EventCaptured:
		if ev.RunID != h.snapshot.RunID {
			return
		}
		rec := ev.Record
		h.snapshot.Records = append(h.snapshot.Records, rec)
		msg.Record = &rec
	case session.EventStopped:
		if ev.RunID != h.snapshot.RunID {
			return
		}
		h.snapshot.State = session.StateStopped.String()
		if ev.Err != nil {
			h.snapshot.Error = ev.Err.Error()
			msg.Error = ev.Err.Error()
		} else {
			h.snapshot.Notice = h.stoppedNotice
			msg.Notice = h.stoppedNotice
		}
	case session.EventFailed:
		if ev.RunID != h.snapshot.RunID {
			return
		}
		if ev.Err != nil {
			h.snapshot.Error = ev.Err.Error()
			msg.Error = ev.Err.Error()
		}
	default:
		return
	}
	h.broadcast(msg)
}

// Snapshot returns a copy of the current log.
func (h *Hub) Snapshot() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.copySnapshot()
}

func (h *Hub) copySnapshot() Snapshot {
	snap := h.snapshot
	snap.Records = append([]capture.Record{}, h.snapshot.Records...)
	return snap
}

// subscribe registers a page and returns the log it should render first.
// Nothing published after the snapshot is missed.
func (h *Hub) subscribe() (chan Message, Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.clients) >= maxClients {
		close(h.clients[0])
		h.clients = h.clients[1:]
	}
	ch := make(chan Message, clientBacklog)
	h.clients = append(h.clients, ch)
	return ch, h.copySnapshot()
}

func (h *Hub) unsubscribe(ch chan Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(ch)
}

func (h *Hub) drop(ch chan Message) {
	for i, c := range h.clients {
		if c == ch {
			h.clients = append(h.clients[:i], h.clients[i+1:]...)
			close(ch)
			return
		}
	}
}

// broadcast must be called with mu held. A page that cannot keep up is
// disconnected; it reconnects and starts again from a snapshot.
func (h *Hub) broadcast(msg Message) {
	for _, ch := range append([]chan Message(nil), h.clients...) {
		select {
		case ch <- msg:
		default:
			h.drop(ch)
		}
	}
}

func (h *Hub) closeClients() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.clients {
		close(ch)
	}
	h.clients = nil
}

func (h *Hub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
