package domain

import (
	"errors"
	"time"
)

const DefaultMeetingDuration = 60 // minutes

var (
	ErrMeetingTitleEmpty = errors.New("meeting title empty")
	ErrMeetingHostEmpty  = errors.New("meeting host empty")
	ErrMeetingStartZero  = errors.New("meeting start time not set")
)

// Meeting is a scheduled meeting record. MeetingID doubles as the room id
// participants join when the meeting starts.
type Meeting struct {
	MeetingID       string    `json:"meetingId"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	StartTime       time.Time `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes"`
	HostUsername    string    `json:"hostUsername"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (m *Meeting) Validate() error {
	if m.Title == "" {
		return ErrMeetingTitleEmpty
	}
	if m.HostUsername == "" {
		return ErrMeetingHostEmpty
	}
	if m.StartTime.IsZero() {
		return ErrMeetingStartZero
	}
	return nil
}
