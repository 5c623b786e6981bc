package signal

import (
	"encoding/json"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/collabconnect/meet/internal/domain"
	"github.com/collabconnect/meet/internal/relay"
)

func (ctl *Controller) handleJoinRoom(c *wsConn, data []byte) {
	var p struct {
		Type   string `json:"type"`
		RoomID string `json:"roomId"`
		User   struct {
			UserID   string `json:"userId"`
			UserName string `json:"userName"`
		} `json:"user"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendError(c, "bad_payload")
		return
	}
	if err := domain.ValidateRoomID(domain.RoomID(p.RoomID)); err != nil {
		ctl.sendError(c, err.Error())
		return
	}
	participant, err := domain.NewParticipant(domain.UserID(p.User.UserID), p.User.UserName)
	if err != nil {
		ctl.sendError(c, err.Error())
		return
	}

	roster := ctl.Relay.Join(c, domain.RoomID(p.RoomID), participant)
	ctl.sendJSON(c, relay.ExistingUsersEvent{
		Envelope: relay.Envelope{Type: relay.EventExistingUsers},
		Users:    roster,
	})
}

func (ctl *Controller) handleOffer(c *wsConn, data []byte) {
	var p struct {
		Type   string                    `json:"type"`
		Target string                    `json:"target"`
		Offer  webrtc.SessionDescription `json:"offer"`
		Caller string                    `json:"caller"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad offer payload")
		ctl.sendError(c, "bad_payload")
		return
	}
	if p.Target == "" {
		ctl.sendError(c, "missing target")
		return
	}
	ctl.Relay.Route(domain.UserID(p.Target), relay.OfferEvent{
		Envelope: relay.Envelope{Type: relay.EventOffer},
		Offer:    p.Offer,
		Caller:   domain.UserID(p.Caller),
	})
}

func (ctl *Controller) handleAnswer(c *wsConn, data []byte) {
	var p struct {
		Type     string                    `json:"type"`
		Target   string                    `json:"target"`
		Answer   webrtc.SessionDescription `json:"answer"`
		Answerer string                    `json:"answerer"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad answer payload")
		ctl.sendError(c, "bad_payload")
		return
	}
	if p.Target == "" {
		ctl.sendError(c, "missing target")
		return
	}
	ctl.Relay.Route(domain.UserID(p.Target), relay.AnswerEvent{
		Envelope: relay.Envelope{Type: relay.EventAnswer},
		Answer:   p.Answer,
		Answerer: domain.UserID(p.Answerer),
	})
}

func (ctl *Controller) handleCandidate(c *wsConn, data []byte) {
	var p struct {
		Type      string                  `json:"type"`
		Target    string                  `json:"target"`
		Candidate webrtc.ICECandidateInit `json:"candidate"`
		From      string                  `json:"from"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad candidate payload")
		ctl.sendError(c, "bad_payload")
		return
	}
	if p.Target == "" {
		ctl.sendError(c, "missing target")
		return
	}
	ctl.Relay.Route(domain.UserID(p.Target), relay.ICECandidateEvent{
		Envelope:  relay.Envelope{Type: relay.EventICECandidate},
		Candidate: p.Candidate,
		From:      domain.UserID(p.From),
	})
}

func (ctl *Controller) handleChat(c *wsConn, data []byte) {
	var p struct {
		Type    string `json:"type"`
		RoomID  string `json:"roomId"`
		Message struct {
			ID        json.RawMessage `json:"id"`
			UserName  string          `json:"userName"`
			Text      string          `json:"text"`
			Timestamp json.RawMessage `json:"timestamp"`
		} `json:"message"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad chat payload")
		ctl.sendError(c, "bad_payload")
		return
	}
	ctl.Relay.Chat(c, domain.RoomID(p.RoomID), p.Message.ID, p.Message.Text, p.Message.Timestamp)
}

func (ctl *Controller) handleReaction(c *wsConn, data []byte) {
	var p struct {
		Type   string `json:"type"`
		RoomID string `json:"roomId"`
		Emoji  string `json:"emoji"`
		Sender string `json:"sender"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad reaction payload")
		ctl.sendError(c, "bad_payload")
		return
	}
	ctl.Relay.Reaction(c, domain.RoomID(p.RoomID), p.Emoji, p.Sender)
}

func (ctl *Controller) handleScreenShare(c *wsConn, data []byte, started bool) {
	var p struct {
		Type   string `json:"type"`
		RoomID string `json:"roomId"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad screen share payload")
		ctl.sendError(c, "bad_payload")
		return
	}
	ctl.Relay.ScreenShare(c, domain.RoomID(p.RoomID), started)
}

func (ctl *Controller) handleMeetingEnded(c *wsConn, data []byte) {
	var p struct {
		Type   string `json:"type"`
		RoomID string `json:"roomId"`
		IsHost bool   `json:"isHost"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad meeting end payload")
		ctl.sendError(c, "bad_payload")
		return
	}
	ctl.Relay.EndMeeting(c, domain.RoomID(p.RoomID), p.IsHost)
}
