package realtime

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// DefaultWriteTimeout bounds a single send when no timeout is configured.
const DefaultWriteTimeout = 5 * time.Second

// Client adapts a gorilla WebSocket connection to the Sender interface.
type Client struct {
	id           uuid.UUID
	conn         *websocket.Conn
	writeTimeout time.Duration
	logger       *slog.Logger

	// writeMu serializes data frames; gorilla allows one concurrent writer.
	writeMu sync.Mutex

	closeOnce sync.Once
	closeErr  error
}

// NewClient wraps conn. A non-positive writeTimeout uses DefaultWriteTimeout.
func NewClient(conn *websocket.Conn, writeTimeout time.Duration, logger *slog.Logger) *Client {
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New()
	return &Client{
		id:           id,
		conn:         conn,
		writeTimeout: writeTimeout,
		logger:       logger.With(slog.String("client_id", id.String())),
	}
}

// ID returns the client's unique identifier.
func (c *Client) ID() uuid.UUID {
	return c.id
}

// Send writes msg as a text frame, giving up at the write timeout or the
// context deadline, whichever comes first.
func (c *Client) Send(ctx context.Context, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	deadline := time.Now().Add(c.writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

// Close sends a going-away close frame when possible and closes the
// connection. Only the first call has any effect.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
		if err := c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil &&
			!errors.Is(err, websocket.ErrCloseSent) && !errors.Is(err, net.ErrClosed) {
			c.logger.Debug("failed to write close frame", slog.String("error", err.Error()))
		}
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

// Hold reads and discards client messages until the peer goes away, the
// connection fails or ctx is cancelled. A normal disconnect returns nil.
func (c *Client) Hold(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { _ = c.Close() })
	defer stop()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if isPeerDisconnect(err) {
				c.logger.Debug("peer disconnected")
				return nil
			}
			return err
		}
	}
}

func isPeerDisconnect(err error) bool {
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
	) || errors.Is(err, net.ErrClosed)
}
