package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewParticipant(t *testing.T) {
	p, err := NewParticipant("alice", "Alice")
	if err != nil {
		t.Fatalf("valid participant: %v", err)
	}
	if p.ID != "alice" || p.Name != "Alice" {
		t.Errorf("participant = %+v", p)
	}

	cases := []struct {
		name    string
		id      UserID
		display string
		wantErr error
	}{
		{"empty id", "", "Alice", ErrUserIDEmpty},
		{"long id", UserID(strings.Repeat("x", MaxUserIDLen+1)), "Alice", ErrUserIDTooLong},
		{"empty name", "alice", "", ErrUserNameEmpty},
		{"long name", "alice", strings.Repeat("x", MaxUserNameLen+1), ErrUserNameTooLong},
	}
	for _, tc := range cases {
		if _, err := NewParticipant(tc.id, tc.display); !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestValidateRoomID(t *testing.T) {
	if err := ValidateRoomID("room-1"); err != nil {
		t.Errorf("valid room id: %v", err)
	}
	if err := ValidateRoomID(""); !errors.Is(err, ErrRoomIDEmpty) {
		t.Errorf("empty room id err = %v", err)
	}
	if err := ValidateRoomID(RoomID(strings.Repeat("r", MaxRoomIDLen+1))); !errors.Is(err, ErrRoomIDTooLong) {
		t.Errorf("long room id err = %v", err)
	}
}
