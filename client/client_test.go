package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, messages []string, joined chan<- string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		joined <- string(msg)

		for _, m := range messages {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(m)); err != nil {
				return
			}
		}
		// Hold the connection open until the client goes away.
		conn.ReadMessage()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestRoomID(t *testing.T) {
	id, err := RoomID("gen9randombattle-1")
	require.NoError(t, err)
	assert.Equal(t, "battle-gen9randombattle-1", id)

	id, err = RoomID(" battle-gen9ou-2 ")
	require.NoError(t, err)
	assert.Equal(t, "battle-gen9ou-2", id)

	_, err = RoomID("")
	assert.ErrorIs(t, err, ErrEmptyRoom)
}

func TestReadLines(t *testing.T) {
	joined := make(chan string, 1)
	srv := newTestServer(t, []string{
		">battle-gen9randombattle-1\n|init|battle\n|turn|1",
		">battle-gen9randombattle-1\n|move|p1a: Pikachu|Thunderbolt|p2a: Starmie\n|win|Ash",
		"|turn|99",
	}, joined)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sc, err := NewShowdownClient(ctx, wsURL(srv), nil)
	require.NoError(t, err)
	defer sc.Close()

	require.NoError(t, sc.JoinRoom("battle-gen9randombattle-1"))
	assert.Equal(t, "|/join battle-gen9randombattle-1", <-joined)

	var lines []string
	err = sc.ReadLines(ctx, func(line string) bool {
		lines = append(lines, line)
		return !strings.HasPrefix(line, "|win|")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"|init|battle",
		"|turn|1",
		"|move|p1a: Pikachu|Thunderbolt|p2a: Starmie",
		"|win|Ash",
	}, lines)
}

func TestReadLinesCancelled(t *testing.T) {
	joined := make(chan string, 1)
	srv := newTestServer(t, nil, joined)

	ctx, cancel := context.WithCancel(context.Background())
	sc, err := NewShowdownClient(ctx, wsURL(srv), nil)
	require.NoError(t, err)
	require.NoError(t, sc.JoinRoom("battle-x"))
	<-joined

	cancel()
	err = sc.ReadLines(ctx, func(string) bool { return true })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewShowdownClientDialError(t *testing.T) {
	_, err := NewShowdownClient(context.Background(), "ws://127.0.0.1:1/showdown", nil)
	assert.Error(t, err)
}
