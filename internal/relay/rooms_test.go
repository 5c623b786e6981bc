package relay

import (
	"testing"

	"github.com/collabconnect/meet/internal/domain"
)

func TestRoomsJoinReturnsOthersOnly(t *testing.T) {
	rs := NewRooms()
	a := &fakeConn{id: "c1"}
	b := &fakeConn{id: "c2"}

	roster := rs.Join(a, "room-1", domain.Participant{ID: "alice", Name: "Alice"})
	if len(roster) != 0 {
		t.Fatalf("first join roster = %v, want empty", roster)
	}

	roster = rs.Join(b, "room-1", domain.Participant{ID: "bob", Name: "Bob"})
	if len(roster) != 1 || roster[0].ID != "alice" || roster[0].Name != "Alice" {
		t.Fatalf("second join roster = %+v, want exactly alice", roster)
	}
	if len(rs.MembersOf("room-1")) != 2 {
		t.Errorf("room has %d members, want 2", len(rs.MembersOf("room-1")))
	}
}

func TestRoomsLeaveIdempotent(t *testing.T) {
	rs := NewRooms()
	a := &fakeConn{id: "c1"}
	rs.Join(a, "room-1", domain.Participant{ID: "alice", Name: "Alice"})

	m, roomID, ok := rs.Leave(a)
	if !ok || roomID != "room-1" || m.ID != "alice" {
		t.Fatalf("leave = (%+v, %q, %v), want alice from room-1", m, roomID, ok)
	}
	if _, _, ok := rs.Leave(a); ok {
		t.Error("second leave reported a removal")
	}
	if _, _, ok := rs.Leave(&fakeConn{id: "never-joined"}); ok {
		t.Error("leave of never-joined connection reported a removal")
	}
}

func TestRoomsEmptyRoomReclaimed(t *testing.T) {
	rs := NewRooms()
	a := &fakeConn{id: "c1"}
	rs.Join(a, "room-1", domain.Participant{ID: "alice", Name: "Alice"})
	if rs.RoomCount() != 1 {
		t.Fatalf("room count = %d, want 1", rs.RoomCount())
	}
	rs.Leave(a)
	if rs.RoomCount() != 0 {
		t.Errorf("room count = %d after last leave, want 0", rs.RoomCount())
	}
	if got := rs.MembersOf("room-1"); len(got) != 0 {
		t.Errorf("members of reclaimed room = %v, want none", got)
	}
}

func TestRoomsRejoinMovesConnection(t *testing.T) {
	rs := NewRooms()
	a := &fakeConn{id: "c1"}
	rs.Join(a, "room-1", domain.Participant{ID: "alice", Name: "Alice"})
	rs.Join(a, "room-2", domain.Participant{ID: "alice", Name: "Alice"})

	if len(rs.MembersOf("room-1")) != 0 {
		t.Error("connection left behind in its previous room")
	}
	if m, roomID, ok := rs.MemberByConn(a); !ok || roomID != "room-2" || m.ID != "alice" {
		t.Errorf("member lookup = (%+v, %q, %v), want alice in room-2", m, roomID, ok)
	}
	if rs.RoomCount() != 1 {
		t.Errorf("room count = %d, want 1 (room-1 reclaimed)", rs.RoomCount())
	}
}

func TestRoomsMemberByConnUnknown(t *testing.T) {
	rs := NewRooms()
	if _, _, ok := rs.MemberByConn(&fakeConn{id: "c1"}); ok {
		t.Error("lookup of unknown connection reported membership")
	}
}
