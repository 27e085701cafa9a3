package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
)

const (
	DefaultServerURL = "wss://sim3.psim.us/showdown/websocket"
	battlePrefix     = "battle-"
)

var ErrEmptyRoom = errors.New("room id is empty")

type ShowdownClient struct {
	Conn   *websocket.Conn
	logger *slog.Logger
}

// RoomID adds the "battle-" prefix the server expects when it is missing.
func RoomID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == battlePrefix {
		return "", ErrEmptyRoom
	}
	if !strings.HasPrefix(raw, battlePrefix) {
		raw = battlePrefix + raw
	}
	return raw, nil
}

func NewShowdownClient(ctx context.Context, serverURL string, logger *slog.Logger) (*ShowdownClient, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("parsing server url: %w", err)
	}

	logger.Info("connecting", "url", u.String())
	c, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dialing websocket: %w", err)
	}
	logger.Info("connected", "url", u.String())

	return &ShowdownClient{Conn: c, logger: logger}, nil
}

func (sc *ShowdownClient) Send(message string) error {
	sc.logger.Debug("sending", "message", message)
	return sc.Conn.WriteMessage(websocket.TextMessage, []byte(message))
}

func (sc *ShowdownClient) JoinRoom(roomID string) error {
	return sc.Send(fmt.Sprintf("|/join %s", roomID))
}

func (sc *ShowdownClient) Close() error {
	return sc.Conn.Close()
}

// ReadLines delivers every protocol line to handle until handle returns
// false, the connection fails, or ctx is cancelled. Room header lines
// (">battle-...") are dropped.
func (sc *ShowdownClient) ReadLines(ctx context.Context, handle func(line string) bool) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			sc.Conn.Close()
		case <-done:
		}
	}()

	for {
		_, message, err := sc.Conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("reading message: %w", err)
		}
		sc.logger.Debug("received", "bytes", len(message))

		for _, line := range strings.Split(string(message), "\n") {
			if strings.HasPrefix(line, ">") {
				continue
			}
			if !handle(line) {
				return nil
			}
		}
	}
}
