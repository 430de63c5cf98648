package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialConnection spins up a real websocket pair and returns the server-side
// Connection with its write loop running.
func dialConnection(t *testing.T, identity string) (*Connection, *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	connCh := make(chan *Connection, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn := NewConnection(identity, ws)
		conn.Start()
		connCh <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return <-connCh, client
}

func TestConnectionSendDelivers(t *testing.T) {
	conn, client := dialConnection(t, "alice")

	require.NoError(t, conn.Send([]byte(`{"type":"connected"}`)))

	_, data, err := client.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"connected"}`, string(data))
}

func TestSendAfterShutdownFailsWithoutPanic(t *testing.T) {
	conn, _ := dialConnection(t, "alice")

	conn.Shutdown(websocket.CloseNormalClosure, "done")

	// A late push must surface as an offline-style error, never a panic,
	// no matter how often it is retried.
	for i := 0; i < 256; i++ {
		assert.Error(t, conn.Send([]byte("late frame")))
	}
}

func TestConcurrentSendAndShutdown(t *testing.T) {
	conn, _ := dialConnection(t, "alice")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = conn.Send([]byte("racing frame"))
			}
		}()
	}
	conn.Shutdown(websocket.CloseGoingAway, "session replaced")
	wg.Wait()

	assert.Error(t, conn.Send([]byte("after the dust settles")))
}

func TestShutdownIsIdempotent(t *testing.T) {
	conn, _ := dialConnection(t, "alice")

	conn.Shutdown(websocket.CloseNormalClosure, "first")
	conn.Shutdown(websocket.CloseNormalClosure, "second")

	assert.Error(t, conn.Send([]byte("late")))
}
