// Package signal adapts the relay core to its WebSocket transport: it
// upgrades connections, runs the read/write pumps, and translates wire
// frames into relay operations.
package signal

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/collabconnect/meet/internal/config"
	"github.com/collabconnect/meet/internal/relay"
)

const sendBufferSize = 32

var ErrBackpressure = errors.New("backpressure")

// Controller owns the WebSocket endpoint for one relay service.
type Controller struct {
	Relay    *relay.Service
	cfg      *config.Config
	upgrader websocket.Upgrader
}

func NewController(cfg *config.Config, svc *relay.Service) *Controller {
	return &Controller{
		Relay: svc,
		cfg:   cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return cfg.OriginAllowed(r.Header.Get("Origin"))
			},
		},
	}
}

// wsConn is the relay.Conn implementation for a gorilla connection.
// Writes go through a buffered channel drained by writePump; TrySend
// never blocks the relay on a slow reader.
type wsConn struct {
	id   string
	conn *websocket.Conn
	send chan relay.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *wsConn) ID() string { return c.id }

func (c *wsConn) TrySend(f relay.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
		return nil
	default:
		return ErrBackpressure
	}
}

func (c *wsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

// HandleSignal upgrades the request and hands the connection to the
// pumps. The connection id is transport-assigned; the participant
// identity arrives later in a join-room frame.
func (ctl *Controller) HandleSignal(c *gin.Context) {
	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	conn := &wsConn{
		id:   uuid.NewString(),
		conn: ws,
		send: make(chan relay.Frame, sendBufferSize),
	}
	log.Info().Str("module", "signal").Str("conn", conn.id).
		Str("client_token", c.GetString("client_token")).Msg("new WS connection")

	go ctl.writePump(conn)
	go ctl.readPump(conn)
}
