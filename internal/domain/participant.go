// Package domain contains entity without logic, just meta-data
package domain

import "errors"

const (
	MaxUserIDLen   = 64
	MaxUserNameLen = 64
)

var (
	ErrUserIDEmpty     = errors.New("user id empty")
	ErrUserIDTooLong   = errors.New("user id too long")
	ErrUserNameEmpty   = errors.New("user name empty")
	ErrUserNameTooLong = errors.New("user name too long")
)

// UserID is the stable logical participant identifier supplied by the
// client at join time. It is distinct from the transport connection id.
type UserID string

// Participant is a user's announced presence in a meeting room.
type Participant struct {
	ID   UserID `json:"userId"`
	Name string `json:"userName"`
}

// NewParticipant validates the join-time fields so adapters never build
// half-filled records from raw payloads.
func NewParticipant(id UserID, name string) (Participant, error) {
	if len(id) == 0 {
		return Participant{}, ErrUserIDEmpty
	}
	if len(id) > MaxUserIDLen {
		return Participant{}, ErrUserIDTooLong
	}
	if len(name) == 0 {
		return Participant{}, ErrUserNameEmpty
	}
	if len(name) > MaxUserNameLen {
		return Participant{}, ErrUserNameTooLong
	}
	return Participant{ID: id, Name: name}, nil
}
