package relay

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/collabconnect/meet/internal/domain"
)

// Member is a connection's announced presence in a room.
type Member struct {
	Conn Conn
	ID   domain.UserID
	Name string
}

// Rooms tracks, per room, the set of active connections with their
// announced identity, plus the reverse connection-to-room link used for
// cleanup. A connection belongs to at most one room at a time; rooms are
// created lazily on first join and dropped once empty.
type Rooms struct {
	mu     sync.RWMutex
	rooms  map[domain.RoomID]map[Conn]*Member
	byConn map[Conn]domain.RoomID
}

func NewRooms() *Rooms {
	return &Rooms{
		rooms:  make(map[domain.RoomID]map[Conn]*Member),
		byConn: make(map[Conn]domain.RoomID),
	}
}

// Join adds conn to the room's member set and returns the roster of the
// other members already present, excluding the joiner itself. Roster
// order is unspecified. If conn was in another room it is removed from
// that room first.
func (rs *Rooms) Join(conn Conn, roomID domain.RoomID, p domain.Participant) []Member {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if prev, ok := rs.byConn[conn]; ok && prev != roomID {
		rs.remove(conn, prev)
	}

	members, ok := rs.rooms[roomID]
	if !ok {
		members = make(map[Conn]*Member, 1)
		rs.rooms[roomID] = members
	}

	roster := make([]Member, 0, len(members))
	for c, m := range members {
		if c == conn {
			continue
		}
		roster = append(roster, *m)
	}

	members[conn] = &Member{Conn: conn, ID: p.ID, Name: p.Name}
	rs.byConn[conn] = roomID
	return roster
}

// Leave removes conn from whatever room it belongs to and clears the
// reverse link. It returns the member record and the room it was removed
// from. Idempotent: leaving twice, or leaving without having joined,
// reports ok=false the second time.
func (rs *Rooms) Leave(conn Conn) (Member, domain.RoomID, bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	roomID, ok := rs.byConn[conn]
	if !ok {
		return Member{}, "", false
	}
	m, ok := rs.rooms[roomID][conn]
	if !ok {
		// Reverse link without a member entry should not happen; heal it.
		delete(rs.byConn, conn)
		return Member{}, "", false
	}
	rs.remove(conn, roomID)
	return *m, roomID, true
}

func (rs *Rooms) remove(conn Conn, roomID domain.RoomID) {
	delete(rs.rooms[roomID], conn)
	delete(rs.byConn, conn)
	if len(rs.rooms[roomID]) == 0 {
		delete(rs.rooms, roomID)
		log.Info().Str("module", "relay.rooms").Str("room_id", string(roomID)).Msg("room emptied")
	}
}

// MembersOf snapshots the current members of roomID.
func (rs *Rooms) MembersOf(roomID domain.RoomID) []Member {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	members := rs.rooms[roomID]
	out := make([]Member, 0, len(members))
	for _, m := range members {
		out = append(out, *m)
	}
	return out
}

// MemberByConn resolves the member record and room for a connection.
func (rs *Rooms) MemberByConn(conn Conn) (Member, domain.RoomID, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	roomID, ok := rs.byConn[conn]
	if !ok {
		return Member{}, "", false
	}
	m, ok := rs.rooms[roomID][conn]
	if !ok {
		return Member{}, "", false
	}
	return *m, roomID, true
}

// RoomCount reports how many rooms currently have members.
func (rs *Rooms) RoomCount() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.rooms)
}
