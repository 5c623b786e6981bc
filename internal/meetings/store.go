// Package meetings persists scheduled meetings and serves the REST
// surface the web client uses to create and look them up. The relay core
// never reads this state; a meeting id is just the room id participants
// join once the meeting starts.
package meetings

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/collabconnect/meet/internal/domain"
)

var ErrNotFound = errors.New("meeting not found")

// Store is the durable-store boundary for scheduled meetings.
type Store interface {
	Create(ctx context.Context, m domain.Meeting) error
	// Upcoming returns meetings whose start time is at or after now,
	// soonest first, optionally filtered by host username.
	Upcoming(ctx context.Context, host string) ([]domain.Meeting, error)
	Get(ctx context.Context, meetingID string) (domain.Meeting, error)
}

// MemoryStore keeps meetings in process memory. State does not survive a
// restart, which matches the rest of the server.
type MemoryStore struct {
	mu       sync.RWMutex
	meetings map[string]domain.Meeting
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		meetings: make(map[string]domain.Meeting),
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, m domain.Meeting) error {
	if err := m.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meetings[m.MeetingID] = m
	return nil
}

func (s *MemoryStore) Upcoming(_ context.Context, host string) ([]domain.Meeting, error) {
	now := s.now()
	s.mu.RLock()
	out := make([]domain.Meeting, 0, len(s.meetings))
	for _, m := range s.meetings {
		if host != "" && m.HostUsername != host {
			continue
		}
		if m.StartTime.Before(now) {
			continue
		}
		out = append(out, m)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, meetingID string) (domain.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meetings[meetingID]
	if !ok {
		return domain.Meeting{}, ErrNotFound
	}
	return m, nil
}
