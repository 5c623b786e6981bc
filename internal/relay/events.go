package relay

import (
	"encoding/json"
	"time"

	"github.com/pion/webrtc/v4"

	"github.com/collabconnect/meet/internal/domain"
)

// Wire event names. Inbound and outbound frames carry the event name in
// the envelope's "type" field; each event has a fixed payload shape.
const (
	EventJoinRoom           = "join-room"
	EventExistingUsers      = "existing-users"
	EventUserConnected      = "user-connected"
	EventUserDisconnected   = "user-disconnected"
	EventOffer              = "offer"
	EventAnswer             = "answer"
	EventICECandidate       = "ice-candidate"
	EventChatMessage        = "chat-message"
	EventEmojiReaction      = "emoji-reaction"
	EventScreenShareStarted = "screen-share-started"
	EventScreenShareStopped = "screen-share-stopped"
	EventMeetingEnded       = "meeting-ended"
	EventNotAuthorized      = "not-authorized"
	EventError              = "error"
)

// Envelope tags every outbound frame with its event name.
type Envelope struct {
	Type string `json:"type"`
}

// RosterEntry is one existing participant reported to a new joiner.
type RosterEntry struct {
	UserID       domain.UserID `json:"userId"`
	UserName     string        `json:"userName"`
	ConnectionID string        `json:"connectionId"`
}

type ExistingUsersEvent struct {
	Envelope
	Users []RosterEntry `json:"users"`
}

type UserConnectedEvent struct {
	Envelope
	UserID       domain.UserID `json:"userId"`
	UserName     string        `json:"userName"`
	ConnectionID string        `json:"connectionId"`
}

type UserDisconnectedEvent struct {
	Envelope
	UserID domain.UserID `json:"userId"`
}

// OfferEvent carries a caller's session description to one callee.
type OfferEvent struct {
	Envelope
	Offer  webrtc.SessionDescription `json:"offer"`
	Caller domain.UserID             `json:"caller"`
}

type AnswerEvent struct {
	Envelope
	Answer   webrtc.SessionDescription `json:"answer"`
	Answerer domain.UserID             `json:"answerer"`
}

type ICECandidateEvent struct {
	Envelope
	Candidate webrtc.ICECandidateInit `json:"candidate"`
	From      domain.UserID           `json:"from"`
}

// ChatMessageEvent is the reshaped chat broadcast. ID and Timestamp are
// relayed verbatim from the sender's payload so the client stays in
// control of its ordering keys; Sender is the display name the relay
// recorded at join time, not whatever the payload claimed.
type ChatMessageEvent struct {
	Envelope
	ID        json.RawMessage `json:"id"`
	Sender    string          `json:"sender"`
	Message   string          `json:"message"`
	Timestamp json.RawMessage `json:"timestamp"`
}

// EmojiReactionEvent is stamped with the relay's clock at delivery time,
// unlike chat, which trusts the sender's clock. The asymmetry is part of
// the protocol contract.
type EmojiReactionEvent struct {
	Envelope
	Emoji     string `json:"emoji"`
	Sender    string `json:"sender"`
	Timestamp string `json:"timestamp"`
}

type ScreenShareEvent struct {
	Envelope
	UserID domain.UserID `json:"userId"`
}

type MeetingEndedEvent struct {
	Envelope
}

type NotAuthorizedEvent struct {
	Envelope
	Message string `json:"message"`
}

type ErrorEvent struct {
	Envelope
	Error string `json:"error"`
}

// isoTimestamp renders t the way the web clients expect reaction
// timestamps: UTC ISO-8601 with millisecond precision.
func isoTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000") + "Z"
}
