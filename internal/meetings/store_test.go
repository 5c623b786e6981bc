package meetings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/collabconnect/meet/internal/domain"
)

func testMeeting(id, host string, start time.Time) domain.Meeting {
	return domain.Meeting{
		MeetingID:       id,
		Title:           "standup",
		StartTime:       start,
		DurationMinutes: 30,
		HostUsername:    host,
		CreatedAt:       time.Now(),
	}
}

func TestStoreCreateValidates(t *testing.T) {
	s := NewMemoryStore()
	m := testMeeting("m-1", "alice", time.Now().Add(time.Hour))
	m.Title = ""
	if err := s.Create(context.Background(), m); !errors.Is(err, domain.ErrMeetingTitleEmpty) {
		t.Errorf("create without title = %v, want ErrMeetingTitleEmpty", err)
	}
}

func TestStoreGet(t *testing.T) {
	s := NewMemoryStore()
	want := testMeeting("m-1", "alice", time.Now().Add(time.Hour))
	if err := s.Create(context.Background(), want); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.Get(context.Background(), "m-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.MeetingID != "m-1" || got.Title != "standup" {
		t.Errorf("get = %+v", got)
	}

	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get of unknown id = %v, want ErrNotFound", err)
	}
}

func TestStoreUpcomingFiltersAndSorts(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	ctx := context.Background()
	for _, m := range []domain.Meeting{
		testMeeting("past", "alice", now.Add(-time.Hour)),
		testMeeting("soon", "alice", now.Add(time.Hour)),
		testMeeting("later", "alice", now.Add(3*time.Hour)),
		testMeeting("other-host", "bob", now.Add(2*time.Hour)),
	} {
		if err := s.Create(ctx, m); err != nil {
			t.Fatalf("create %s: %v", m.MeetingID, err)
		}
	}

	all, err := s.Upcoming(ctx, "")
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	gotIDs := make([]string, 0, len(all))
	for _, m := range all {
		gotIDs = append(gotIDs, m.MeetingID)
	}
	want := []string{"soon", "other-host", "later"}
	if len(gotIDs) != len(want) {
		t.Fatalf("upcoming = %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("upcoming = %v, want %v", gotIDs, want)
		}
	}

	mine, err := s.Upcoming(ctx, "alice")
	if err != nil {
		t.Fatalf("upcoming by host: %v", err)
	}
	if len(mine) != 2 || mine[0].MeetingID != "soon" || mine[1].MeetingID != "later" {
		t.Errorf("upcoming for alice = %+v", mine)
	}
}
