package logview

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"autoshot/internal/capture"
	"autoshot/internal/config"
	"autoshot/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func started(runID string) session.Event {
	return session.Event{
		Kind:     session.EventStarted,
		RunID:    runID,
		Settings: config.Settings{Folder: "/shots", IntervalSeconds: 10, Format: config.FormatPNG},
	}
}

func captured(runID string, seq int) session.Event {
	return session.Event{
		Kind:  session.EventCaptured,
		RunID: runID,
		Record: capture.Record{
			RunID:    runID,
			Seq:      seq,
			FileName: "2024-05-01_0900.0" + string(rune('0'+seq)) + "_screen_shot.png",
		},
	}
}

func TestHubTracksCurrentRun(t *testing.T) {
	hub := NewHub("stopped")

	hub.Apply(started("a"))
	hub.Apply(captured("a", 1))
	hub.Apply(captured("a", 2))
	hub.Apply(session.Event{Kind: session.EventStopped, RunID: "a"})

	snap := hub.Snapshot()
	if snap.RunID != "a" || snap.State != "stopped" || snap.Notice != "stopped" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if len(snap.Records) != 2 || snap.Records[1].Seq != 2 {
		t.Fatalf("unexpected records %+v", snap.Records)
	}

	// A new run starts with an empty log and ignores stragglers of the old one.
	hub.Apply(started("b"))
	hub.Apply(captured("a", 3))
	snap = hub.Snapshot()
	if snap.RunID != "b" || snap.State != "running" || len(snap.Records) != 0 {
		t.Fatalf("expected empty log for run b, got %+v", snap)
	}
	if snap.Folder != "/shots" || snap.Interval != 10 || snap.Format != config.FormatPNG {
		t.Fatalf("unexpected settings in snapshot %+v", snap)
	}
}

func TestHubRecordsFailure(t *testing.T) {
	hub := NewHub("stopped")
	hub.Apply(started("a"))
	hub.Apply(session.Event{Kind: session.EventStopped, RunID: "a", Err: errors.New("disk full")})

	snap := hub.Snapshot()
	if snap.Error != "disk full" || snap.Notice != "" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestHubIgnoresFailureOfEarlierRun(t *testing.T) {
	hub := NewHub("stopped")
	hub.Apply(started("run-1"))
	hub.Apply(session.Event{Kind: session.EventStopped, RunID: "run-1"})
	hub.Apply(started("run-2"))

	ch, _ := hub.subscribe()
	defer hub.unsubscribe(ch)
	hub.Apply(session.Event{Kind: session.EventFailed, RunID: "run-1", Err: errors.New("old disk full")})

	snap := hub.Snapshot()
	if snap.RunID != "run-2" || snap.State != "running" || snap.Error != "" {
		t.Fatalf("failure of run-1 leaked into run-2: %+v", snap)
	}
	select {
	case msg := <-ch:
		t.Fatalf("unexpected broadcast %+v", msg)
	default:
	}

	hub.Apply(session.Event{Kind: session.EventFailed, RunID: "run-2", Err: errors.New("disk full")})
	if snap := hub.Snapshot(); snap.Error != "disk full" {
		t.Fatalf("failure of the current run not recorded: %+v", snap)
	}
}

func TestLogEndpointReturnsSnapshot(t *testing.T) {
	hub := NewHub("stopped")
	hub.Apply(started("a"))
	hub.Apply(captured("a", 1))

	srv := NewServer("127.0.0.1:0", hub, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/log", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	var snap Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.RunID != "a" || len(snap.Records) != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestIndexServesPage(t *testing.T) {
	srv := NewServer("127.0.0.1:0", NewHub(""), nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/ws") {
		t.Fatalf("page does not connect to the websocket")
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read message: %v", err)
	}
	return msg
}

func TestWebsocketStreamsEvents(t *testing.T) {
	hub := NewHub("done")
	hub.Apply(started("a"))
	hub.Apply(captured("a", 1))

	srv := NewServer("127.0.0.1:0", hub, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	first := readMessage(t, conn)
	if first.Type != "snapshot" || first.Snapshot == nil || len(first.Snapshot.Records) != 1 {
		t.Fatalf("unexpected first message %+v", first)
	}

	hub.Apply(captured("a", 2))
	hub.Apply(session.Event{Kind: session.EventStopped, RunID: "a"})

	msg := readMessage(t, conn)
	if msg.Type != "captured" || msg.Record == nil || msg.Record.Seq != 2 {
		t.Fatalf("unexpected captured message %+v", msg)
	}
	msg = readMessage(t, conn)
	if msg.Type != "stopped" || msg.Notice != "done" {
		t.Fatalf("unexpected stopped message %+v", msg)
	}
}

func TestSubscribeEvictsOldestClient(t *testing.T) {
	hub := NewHub("")
	var chans []chan Message
	for i := 0; i < maxClients+1; i++ {
		ch, _ := hub.subscribe()
		chans = append(chans, ch)
	}
	if hub.clientCount() != maxClients {
		t.Fatalf("expected %d clients, got %d", maxClients, hub.clientCount())
	}
	if _, ok := <-chans[0]; ok {
		t.Fatalf("expected oldest client channel to be closed")
	}
	hub.unsubscribe(chans[0])
	hub.closeClients()
	if hub.clientCount() != 0 {
		t.Fatalf("expected no clients after close")
	}
}
