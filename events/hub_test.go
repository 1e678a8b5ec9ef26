package events

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

// newServerConn upgrades a loopback connection and hands back the
// server-side *websocket.Conn, the thing the hub actually holds.
func newServerConn(t *testing.T) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	connCh := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		connCh <- conn
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return <-connCh
}

func TestBroadcastDropsDeadConnections(t *testing.T) {
	live := newServerConn(t)
	gone := newServerConn(t)

	RegisterClient(live, "staff")
	RegisterClient(gone, "staff")
	t.Cleanup(func() {
		UnregisterClient(live)
		UnregisterClient(gone)
	})

	// closing the held conn makes the next write fail immediately
	gone.Close()

	BroadcastStaffNotification("shift change")

	hub.mutex.Lock()
	_, liveKept := hub.clients[live]
	_, goneKept := hub.clients[gone]
	hub.mutex.Unlock()

	assert.True(t, liveKept, "healthy connection should stay registered")
	assert.False(t, goneKept, "dead connection should be dropped after a failed write")
}
