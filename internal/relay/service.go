package relay

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/collabconnect/meet/internal/domain"
)

// Service is the relay's event-facing API. One instance serves the whole
// process; all connection handlers share it. State is process-local:
// identities bound on another instance are invisible here, so a
// horizontally scaled deployment needs an external presence backplane.
type Service struct {
	registry *Registry
	rooms    *Rooms
	hosts    HostPolicy
	now      func() time.Time
}

func NewService(hosts HostPolicy) *Service {
	return &Service{
		registry: NewRegistry(),
		rooms:    NewRooms(),
		hosts:    hosts,
		now:      time.Now,
	}
}

// Stats summarizes current presence for the stats endpoint.
type Stats struct {
	NumRooms   int `json:"num_rooms"`
	NumClients int `json:"num_clients"`
}

func (s *Service) Stats() Stats {
	return Stats{
		NumRooms:   s.rooms.RoomCount(),
		NumClients: s.registry.Len(),
	}
}

// Join registers conn in the room under the participant's identity and
// announces it to the other members. It returns the roster of existing
// members for the joiner's existing-users event. A repeat join under the
// same identity supersedes the old binding (last join wins).
func (s *Service) Join(conn Conn, roomID domain.RoomID, p domain.Participant) []RosterEntry {
	members := s.rooms.Join(conn, roomID, p)
	s.registry.Register(p.ID, conn)

	roster := make([]RosterEntry, 0, len(members))
	for _, m := range members {
		roster = append(roster, RosterEntry{
			UserID:       m.ID,
			UserName:     m.Name,
			ConnectionID: m.Conn.ID(),
		})
	}

	s.broadcast(roomID, UserConnectedEvent{
		Envelope:     Envelope{Type: EventUserConnected},
		UserID:       p.ID,
		UserName:     p.Name,
		ConnectionID: conn.ID(),
	}, conn)

	log.Info().Str("module", "relay").Str("user_id", string(p.ID)).
		Str("room_id", string(roomID)).Int("peers", len(roster)).Msg("joined room")
	return roster
}

// Route delivers event to the connection currently bound to target.
// A missing binding means the frame is dropped: best-effort signaling,
// no error back to the sender, no retry.
func (s *Service) Route(target domain.UserID, event any) bool {
	conn, ok := s.registry.Lookup(target)
	if !ok {
		log.Debug().Str("module", "relay").Str("target", string(target)).Msg("routing miss, dropped")
		return false
	}
	s.send(conn, event)
	return true
}

// Chat relays a chat message to the rest of the room. The sender's id and
// timestamp fields pass through verbatim; the sender name is replaced
// with the display name recorded at join. Messages from connections that
// never joined are dropped.
func (s *Service) Chat(conn Conn, roomID domain.RoomID, id json.RawMessage, text string, timestamp json.RawMessage) {
	m, _, ok := s.rooms.MemberByConn(conn)
	if !ok {
		log.Warn().Str("module", "relay").Str("conn", conn.ID()).Msg("chat from unjoined connection")
		return
	}
	s.broadcast(roomID, ChatMessageEvent{
		Envelope:  Envelope{Type: EventChatMessage},
		ID:        id,
		Sender:    m.Name,
		Message:   text,
		Timestamp: timestamp,
	}, conn)
}

// Reaction fans an emoji reaction out to the rest of the room, stamped
// with the relay's clock at delivery time.
func (s *Service) Reaction(conn Conn, roomID domain.RoomID, emoji, sender string) {
	s.broadcast(roomID, EmojiReactionEvent{
		Envelope:  Envelope{Type: EventEmojiReaction},
		Emoji:     emoji,
		Sender:    sender,
		Timestamp: isoTimestamp(s.now()),
	}, conn)
}

// ScreenShare notifies the rest of the room that the sender started or
// stopped sharing. The payload is the sender's identity only.
func (s *Service) ScreenShare(conn Conn, roomID domain.RoomID, started bool) {
	m, _, ok := s.rooms.MemberByConn(conn)
	if !ok {
		log.Warn().Str("module", "relay").Str("conn", conn.ID()).Msg("screen share from unjoined connection")
		return
	}
	event := EventScreenShareStopped
	if started {
		event = EventScreenShareStarted
	}
	s.broadcast(roomID, ScreenShareEvent{
		Envelope: Envelope{Type: event},
		UserID:   m.ID,
	}, conn)
}

// EndMeeting terminates the meeting for every participant in the room,
// requester included, if the host policy allows it. Otherwise only the
// requester hears about it, via not-authorized, and nothing changes.
func (s *Service) EndMeeting(conn Conn, roomID domain.RoomID, assertedHost bool) bool {
	var requester domain.UserID
	if m, _, ok := s.rooms.MemberByConn(conn); ok {
		requester = m.ID
	}
	if !s.hosts.AuthorizeMeetingEnd(roomID, requester, assertedHost) {
		log.Info().Str("module", "relay").Str("user_id", string(requester)).
			Str("room_id", string(roomID)).Msg("meeting end denied")
		s.send(conn, NotAuthorizedEvent{
			Envelope: Envelope{Type: EventNotAuthorized},
			Message:  "only the host can end the meeting",
		})
		return false
	}
	log.Info().Str("module", "relay").Str("room_id", string(roomID)).Msg("meeting ended")
	s.broadcast(roomID, MeetingEndedEvent{Envelope: Envelope{Type: EventMeetingEnded}}, nil)
	return true
}

// Disconnect prunes all state for a closed connection and tells the rest
// of its room. Safe to call more than once; only the first call after a
// join does anything.
func (s *Service) Disconnect(conn Conn) {
	m, roomID, ok := s.rooms.Leave(conn)
	if !ok {
		return
	}
	s.registry.Remove(m.ID, conn)
	s.broadcast(roomID, UserDisconnectedEvent{
		Envelope: Envelope{Type: EventUserDisconnected},
		UserID:   m.ID,
	}, conn)
	log.Info().Str("module", "relay").Str("user_id", string(m.ID)).
		Str("room_id", string(roomID)).Msg("left room")
}

// broadcast fans event out to every member of roomID except exclude.
// Pass exclude=nil to include everyone. The frame is serialized once.
func (s *Service) broadcast(roomID domain.RoomID, event any, exclude Conn) {
	frame, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("module", "relay").Msg("marshal broadcast")
		return
	}
	for _, m := range s.rooms.MembersOf(roomID) {
		if exclude != nil && m.Conn == exclude {
			continue
		}
		if err := m.Conn.TrySend(frame); err != nil {
			log.Warn().Err(err).Str("module", "relay").Str("user_id", string(m.ID)).Msg("broadcast drop")
		}
	}
}

func (s *Service) send(conn Conn, event any) {
	frame, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("module", "relay").Msg("marshal send")
		return
	}
	if err := conn.TrySend(frame); err != nil {
		log.Warn().Err(err).Str("module", "relay").Str("conn", conn.ID()).Msg("send drop")
	}
}
