package hub

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"logbid/config"
	"logbid/internal/domain/service"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// connectClient upgrades one websocket pair and registers the server side
// with the hub under the given identity.
func connectClient(t *testing.T, h *Hub, userID uuid.UUID, marketID int64) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		h.Register(conn, userID, marketID)
	}))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	clientConn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { clientConn.Close() })

	return clientConn
}

func readEvent(t *testing.T, conn *websocket.Conn) *service.RealtimeEvent {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var event service.RealtimeEvent
	require.NoError(t, json.Unmarshal(payload, &event))

	return &event
}

func assertNoEvent(t *testing.T, conn *websocket.Conn) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func createTestHub(t *testing.T) *Hub {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewHub(&config.Config{}, logger)
}

// waitForClients blocks until the hub has registered the expected number of
// connections; Register runs on the server goroutine after the dial returns.
func waitForClients(t *testing.T, h *Hub, want int) {
	t.Helper()

	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()

		return len(h.clients) == want
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDispatch_DeliversToAddressedUserOnly(t *testing.T) {
	h := createTestHub(t)
	recipientID := uuid.New()
	bystanderID := uuid.New()

	recipient := connectClient(t, h, recipientID, 3)
	bystander := connectClient(t, h, bystanderID, 3)
	waitForClients(t, h, 2)

	h.Dispatch(&service.RealtimeEvent{
		Stream:   service.StreamNotifications,
		Action:   service.ActionInsert,
		UserID:   recipientID.String(),
		MarketID: 3,
		Record:   json.RawMessage(`{"id":42}`),
	})

	event := readEvent(t, recipient)
	assert.Equal(t, service.StreamNotifications, event.Stream)
	assert.Equal(t, recipientID.String(), event.UserID)

	assertNoEvent(t, bystander)
}

func TestDispatch_BroadcastsToMarket(t *testing.T) {
	h := createTestHub(t)

	sameMarket := connectClient(t, h, uuid.New(), 3)
	otherMarket := connectClient(t, h, uuid.New(), 7)
	waitForClients(t, h, 2)

	h.Dispatch(&service.RealtimeEvent{
		Stream:   service.StreamShipments,
		Action:   service.ActionInsert,
		MarketID: 3,
		Record:   json.RawMessage(`{"id":5683}`),
	})

	event := readEvent(t, sameMarket)
	assert.Equal(t, service.StreamShipments, event.Stream)
	assert.EqualValues(t, 3, event.MarketID)

	assertNoEvent(t, otherMarket)
}

func TestDispatch_MalformedUserIDDropsEvent(t *testing.T) {
	h := createTestHub(t)
	conn := connectClient(t, h, uuid.New(), 3)
	waitForClients(t, h, 1)

	h.Dispatch(&service.RealtimeEvent{
		Stream: service.StreamNotifications,
		Action: service.ActionInsert,
		UserID: "not-a-uuid",
		Record: json.RawMessage(`{}`),
	})

	assertNoEvent(t, conn)
}
