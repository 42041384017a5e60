package stream

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszgryglicki/photonwalk/internal/photonwalk"
)

type received struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func next(t *testing.T, conn *websocket.Conn) received {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg received
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHubStream(t *testing.T) {
	hub := NewHub(nil)
	hub.SetStars([]photonwalk.Point3{{3000, 0, 0}, {0, -4000, 0}})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	msg := next(t, conn)
	require.Equal(t, TypeStars, msg.Type)
	var stars []photonwalk.Point3
	require.NoError(t, json.Unmarshal(msg.Data, &stars))
	assert.Equal(t, []photonwalk.Point3{{3000, 0, 0}, {0, -4000, 0}}, stars)
	assert.Equal(t, 1, hub.Clients())

	hub.Record(photonwalk.Segment{From: photonwalk.Point3{}, To: photonwalk.Point3{1, 2, 3}, Step: 1})
	msg = next(t, conn)
	require.Equal(t, TypeSegment, msg.Type)
	assert.JSONEq(t, `{"from":[0,0,0],"to":[1,2,3],"step":1}`, string(msg.Data))

	hub.Report(photonwalk.Stats{Duration: 1.5, TotalSteps: 57, EscapeYears: 9781})
	msg = next(t, conn)
	require.Equal(t, TypeStats, msg.Type)
	var st photonwalk.Stats
	require.NoError(t, json.Unmarshal(msg.Data, &st))
	assert.Equal(t, 57, st.TotalSteps)
	assert.Equal(t, int64(9781), st.EscapeYears)

	hub.Reset()
	msg = next(t, conn)
	assert.Equal(t, TypeReset, msg.Type)
	assert.Empty(t, msg.Data)
}

func TestHubBroadcastsToAllClients(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	a, b := dial(t, srv), dial(t, srv)
	assert.Equal(t, TypeStars, next(t, a).Type)
	assert.Equal(t, TypeStars, next(t, b).Type)

	hub.SetStars([]photonwalk.Point3{{5000, 5000, 0}})
	assert.Equal(t, TypeStars, next(t, a).Type)
	assert.Equal(t, TypeStars, next(t, b).Type)
}

func TestHubDropsClosedClients(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	next(t, conn)
	require.Equal(t, 1, hub.Clients())

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubClose(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	next(t, conn)
	hub.Close()
	assert.Zero(t, hub.Clients())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestHubSendsStarsBeforeSegments(t *testing.T) {
	hub := NewHub(nil)
	hub.SetStars([]photonwalk.Point3{{3000, 3000, 3000}})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; ; i++ {
			select {
			case <-stop:
				return
			default:
				hub.Record(photonwalk.Segment{Step: i})
			}
		}
	}()

	for i := 0; i < 20; i++ {
		conn := dial(t, srv)
		assert.Equal(t, TypeStars, next(t, conn).Type, "first message of client %d", i)
		_ = conn.Close()
	}
	close(stop)
	<-done
}

func TestHubBroadcastDoesNotWaitForSlowClients(t *testing.T) {
	hub := NewHub(nil)
	hub.queueSize = 4
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	next(t, conn)
	require.Equal(t, 1, hub.Clients())

	// hold the writer of the only client so nothing drains its queue
	hub.mu.Lock()
	var c *client
	for c = range hub.clients {
	}
	hub.mu.Unlock()
	c.sw.mu.Lock()

	finished := make(chan struct{})
	go func() {
		for i := 1; i <= 100; i++ {
			hub.Record(photonwalk.Segment{Step: i})
		}
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a stuck client")
	}
	assert.Zero(t, hub.Clients(), "a client with a full queue is dropped")
	c.sw.mu.Unlock()
}
