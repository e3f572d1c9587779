package live

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"savorly/mq"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()

	router := httprouter.New()
	router.GET("/ws/activity", WebSocketHandler(h))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/activity"

	h.mu.RLock()
	before := len(h.clients)
	h.mu.RUnlock()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// The server registers the connection after the handshake; wait for it
	// so a Publish right after dialing is not lost.
	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		return len(h.clients) > before
	}, 2*time.Second, 10*time.Millisecond)

	return conn
}

func TestHubBroadcast(t *testing.T) {
	h := NewHub()
	go h.Run()

	conn := dialHub(t, h)

	h.Publish("recipe-liked", mq.Index{EntityType: "recipe", EntityID: "abc123", By: "fan@example.com"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	require.Equal(t, "recipe-liked", ev.Event)
	require.Equal(t, "recipe", ev.EntityType)
	require.Equal(t, "abc123", ev.EntityID)
	require.Equal(t, "fan@example.com", ev.By)
}

func TestHubFanOut(t *testing.T) {
	h := NewHub()
	go h.Run()

	first := dialHub(t, h)
	second := dialHub(t, h)

	h.Publish("recipe-created", mq.Index{EntityType: "recipe", EntityID: "def456"})

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var ev Event
		require.NoError(t, conn.ReadJSON(&ev))
		require.Equal(t, "def456", ev.EntityID)
	}
}

func TestEmitterFeedsHub(t *testing.T) {
	h := NewHub()
	go h.Run()
	mq.SetSink(h.Publish)
	t.Cleanup(func() { mq.SetSink(nil) })

	conn := dialHub(t, h)

	mq.Emit("recipe-bookmarked", mq.Index{EntityType: "bookmark", EntityID: "xyz", By: "fan@example.com"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	require.Equal(t, "recipe-bookmarked", ev.Event)
	require.Equal(t, "bookmark", ev.EntityType)
}
