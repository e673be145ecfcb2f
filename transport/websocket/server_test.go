package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/celebration-backend/internal/entity"
	"github.com/rocketscienceinc/celebration-backend/internal/notify"
)

const readTimeout = 5 * time.Second

func newTestServer(t *testing.T) (*httptest.Server, *notify.Hub) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := notify.NewHub(logger, nil)

	router := mux.NewRouter()
	router.HandleFunc("/ws/{user_id}", New(logger, hub, 16).Handle)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server, hub
}

// dial connects userID and waits for a heartbeat round trip, which guarantees
// the connection is registered in the hub.
func dial(t *testing.T, server *httptest.Server, userID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/" + userID

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})

	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	send(t, conn, map[string]any{"type": MessageHeartbeat})
	assert.Equal(t, entity.EventHeartbeatAck, receive(t, conn)["type"])

	return conn
}

func send(t *testing.T, conn *websocket.Conn, message any) {
	t.Helper()

	require.NoError(t, conn.WriteJSON(message))
}

func receive(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(readTimeout)))

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event map[string]any
	require.NoError(t, json.Unmarshal(data, &event))

	return event
}

func TestServer_Heartbeat(t *testing.T) {
	// Given: a connected client
	server, hub := newTestServer(t)
	conn := dial(t, server, "alice")

	// When: the client sends a heartbeat
	send(t, conn, map[string]any{"type": MessageHeartbeat})

	// Then: the server answers with heartbeat_ack on the same socket
	assert.Equal(t, map[string]any{"type": entity.EventHeartbeatAck}, receive(t, conn))
	assert.True(t, hub.IsConnected("alice"))
}

func TestServer_Typing(t *testing.T) {
	t.Run("Broadcasts typing with its context", func(t *testing.T) {
		// Given: two connected clients
		server, _ := newTestServer(t)
		alice := dial(t, server, "alice")
		bob := dial(t, server, "bob")

		// When: alice types in the photos screen
		send(t, alice, map[string]any{"type": MessageTyping, "context": "photos"})

		// Then: bob is told that alice is typing there
		expected := map[string]any{"type": entity.EventUserTyping, "user_id": "alice", "context": "photos"}
		assert.Equal(t, expected, receive(t, bob))
	})

	t.Run("Context defaults to general", func(t *testing.T) {
		// Given: one connected client
		server, _ := newTestServer(t)
		alice := dial(t, server, "alice")

		// When: alice types without a context
		send(t, alice, map[string]any{"type": MessageTyping})

		// Then: the broadcast reaches alice too with the default context
		expected := map[string]any{"type": entity.EventUserTyping, "user_id": "alice", "context": "general"}
		assert.Equal(t, expected, receive(t, alice))
	})
}

func TestServer_IgnoresUnknownAndMalformedMessages(t *testing.T) {
	// Given: a connected client
	server, _ := newTestServer(t)
	conn := dial(t, server, "alice")

	// When: unknown and malformed messages are followed by a heartbeat
	send(t, conn, map[string]any{"type": "dance"})
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	send(t, conn, map[string]any{"type": MessageHeartbeat})

	// Then: the first reply is the heartbeat ack and the socket is still open
	assert.Equal(t, entity.EventHeartbeatAck, receive(t, conn)["type"])
}

func TestServer_UnregistersOnClose(t *testing.T) {
	// Given: a connected client
	server, hub := newTestServer(t)
	conn := dial(t, server, "alice")
	require.True(t, hub.IsConnected("alice"))

	// When: the client goes away
	require.NoError(t, conn.Close())

	// Then: the hub forgets it
	assert.Eventually(t, func() bool {
		return !hub.IsConnected("alice")
	}, readTimeout, 10*time.Millisecond)
}

func TestServer_ReconnectKeepsNewestConnection(t *testing.T) {
	// Given: carol connects from two tabs
	server, hub := newTestServer(t)
	first := dial(t, server, "carol")
	second := dial(t, server, "carol")

	// When: the older tab closes
	require.NoError(t, first.Close())

	// Then: carol still receives events on the newer tab
	time.Sleep(50 * time.Millisecond)
	require.True(t, hub.IsConnected("carol"))

	hub.SendTo("carol", entity.NewEvent(entity.EventIncomingCall))
	assert.Equal(t, entity.EventIncomingCall, receive(t, second)["type"])
}

func TestConnection_SendFailsWhenClosed(t *testing.T) {
	// Given: a closed connection
	conn := &Connection{send: make(chan []byte, 1), done: make(chan struct{})}
	close(conn.done)

	// When / Then: Send reports the connection as closed
	require.ErrorIs(t, conn.Send(entity.NewEvent(entity.EventHeartbeatAck)), ErrConnectionClosed)
}

func TestConnection_SendFailsWhenBufferIsFull(t *testing.T) {
	// Given: an open connection whose queue is full
	conn := &Connection{send: make(chan []byte, 1), done: make(chan struct{})}
	require.NoError(t, conn.Send(entity.NewEvent(entity.EventHeartbeatAck)))

	// When / Then: the next event is rejected instead of blocking
	require.ErrorIs(t, conn.Send(entity.NewEvent(entity.EventHeartbeatAck)), ErrSendBufferFull)
}
