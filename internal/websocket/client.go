package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ClientOptions tunes the connection keepalive and outbound buffering
type ClientOptions struct {
	WriteWait  time.Duration // deadline for a single frame write
	PongWait   time.Duration // how long a silent peer is tolerated
	SendBuffer int           // queued notifications before the client counts as too slow
}

// DefaultClientOptions returns the options used by NewClient
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		WriteWait:  10 * time.Second,
		PongWait:   60 * time.Second,
		SendBuffer: 64,
	}
}

// inbound frames are only control traffic, so keep the read limit small
const maxInboundSize = 512

// Client is a listen-only subscriber to the notification stream of one tracker session
type Client struct {
	id        string
	sessionID uuid.UUID
	conn      *websocket.Conn
	hub       *Hub
	opts      ClientOptions

	outbound  chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewClient creates a client for sessionID with the default options
func NewClient(conn *websocket.Conn, sessionID uuid.UUID, hub *Hub) *Client {
	return NewClientWithOptions(conn, sessionID, hub, DefaultClientOptions())
}

// NewClientWithOptions creates a client with custom keepalive and buffering
func NewClientWithOptions(conn *websocket.Conn, sessionID uuid.UUID, hub *Hub, opts ClientOptions) *Client {
	defaults := DefaultClientOptions()
	if opts.WriteWait <= 0 {
		opts.WriteWait = defaults.WriteWait
	}
	if opts.PongWait <= 0 {
		opts.PongWait = defaults.PongWait
	}
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = defaults.SendBuffer
	}

	return &Client{
		id:        uuid.New().String(),
		sessionID: sessionID,
		conn:      conn,
		hub:       hub,
		opts:      opts,
		outbound:  make(chan []byte, opts.SendBuffer),
		done:      make(chan struct{}),
	}
}

// ID returns the client's unique identifier
func (c *Client) ID() string {
	return c.id
}

// SessionID returns the tracker session the client is subscribed to
func (c *Client) SessionID() uuid.UUID {
	return c.sessionID
}

// Send queues a frame without blocking. A full queue means the peer is not
// keeping up and the frame is refused.
func (c *Client) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}

	select {
	case c.outbound <- data:
		return nil
	case <-c.done:
		return ErrClientClosed
	default:
		return ErrClientClosed
	}
}

// Close shuts the connection down. Safe to call more than once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		// WriteControl may run concurrently with the write loop
		c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"),
			time.Now().Add(c.opts.WriteWait),
		)
		err = c.conn.Close()
	})
	return err
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Run starts the read and write loops. It returns immediately.
func (c *Client) Run() {
	go c.writeLoop()
	go c.readLoop()
}

// readLoop keeps the read deadline alive through pongs and detects disconnects.
// Data frames from the peer are ignored.
func (c *Client) readLoop() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxInboundSize)
	c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	})

	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().
					Err(err).
					Str("client_id", c.id).
					Str("session_id", c.sessionID.String()).
					Msg("WebSocket unexpected close")
			}
			return
		}
	}
}

// writeLoop drains the outbound queue and pings the peer at 90% of PongWait
func (c *Client) writeLoop() {
	ticker := time.NewTicker(c.opts.PongWait * 9 / 10)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			return

		case frame := <-c.outbound:
			c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				log.Warn().
					Err(err).
					Str("client_id", c.id).
					Str("session_id", c.sessionID.String()).
					Msg("WebSocket write error")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
