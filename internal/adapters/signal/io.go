package signal

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/collabconnect/meet/internal/relay"
)

func (ctl *Controller) writePump(c *wsConn) {
	ticker := time.NewTicker(ctl.cfg.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.cfg.WriteTimeout)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Str("conn", c.id).Msg("writePump write error")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(ctl.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains inbound frames and dispatches them. When the transport
// closes, for whatever reason, it prunes the connection's relay state and
// lets the room know.
func (ctl *Controller) readPump(c *wsConn) {
	defer func() {
		ctl.Relay.Disconnect(c)
		c.Close()
		log.Info().Str("module", "signal").Str("conn", c.id).Msg("connection closed")
	}()

	c.conn.SetReadLimit(ctl.cfg.ReadLimit)
	pongWait := ctl.cfg.PingPeriod * 10 / 9
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("module", "signal").Str("conn", c.id).Msg("readPump read error")
			}
			return
		}
		ctl.dispatch(c, data)
	}
}

func (ctl *Controller) dispatch(c *wsConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("conn", c.id).Msg("bad json")
		ctl.sendError(c, "bad_payload")
		return
	}

	switch env.Type {
	case relay.EventJoinRoom:
		ctl.handleJoinRoom(c, data)
	case relay.EventOffer:
		ctl.handleOffer(c, data)
	case relay.EventAnswer:
		ctl.handleAnswer(c, data)
	case relay.EventICECandidate:
		ctl.handleCandidate(c, data)
	case relay.EventChatMessage:
		ctl.handleChat(c, data)
	case relay.EventEmojiReaction:
		ctl.handleReaction(c, data)
	case relay.EventScreenShareStarted:
		ctl.handleScreenShare(c, data, true)
	case relay.EventScreenShareStopped:
		ctl.handleScreenShare(c, data, false)
	case relay.EventMeetingEnded:
		ctl.handleMeetingEnded(c, data)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown signal")
	}
}

func (ctl *Controller) sendJSON(c *wsConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	if err := c.TrySend(b); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", c.id).Msg("sendJSON drop")
	}
}

func (ctl *Controller) sendError(c *wsConn, reason string) {
	ctl.sendJSON(c, relay.ErrorEvent{
		Envelope: relay.Envelope{Type: relay.EventError},
		Error:    reason,
	})
}
