package view

import (
	"strings"
	"testing"
	"time"

	"github.com/example/eventflow/internal/store"
)

func TestDuration(t *testing.T) {
	cases := []struct {
		start, end string
		want       string
	}{
		{"09:00", "10:30", "1h 30m"},
		{"09:00", "10:00", "1h"},
		{"09:00", "09:45", "45m"},
		{"09:00", "09:00", "0m"},
		{"12:30", "14:00", "1h 30m"},
		{"", "10:00", ""},
		{"nine", "10:00", ""},
	}

	for _, tc := range cases {
		if got := Duration(tc.start, tc.end); got != tc.want {
			t.Fatalf("Duration(%q, %q) = %q, want %q", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, time.December, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{59 * time.Minute, "59m ago"},
		{2 * time.Hour, "2h ago"},
		{26 * time.Hour, "1d ago"},
		{72 * time.Hour, "3d ago"},
	}

	for _, tc := range cases {
		if got := RelativeTime(now.Add(-tc.ago), now); got != tc.want {
			t.Fatalf("RelativeTime(-%v) = %q, want %q", tc.ago, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 150); got != "short" {
		t.Fatalf("Truncate short = %q", got)
	}

	long := strings.Repeat("a", 200)
	got := Truncate(long, 150)
	if len([]rune(got)) != 153 {
		t.Fatalf("expected 150 runes plus ellipsis, got %d", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got[len(got)-10:])
	}

	exact := strings.Repeat("b", 150)
	if got := Truncate(exact, 150); got != exact {
		t.Fatal("string at the limit must not be truncated")
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2025-12-15"); got != "Mon, Dec 15, 2025" {
		t.Fatalf("FormatDate = %q", got)
	}
	if got := FormatDate("not-a-date"); got != "not-a-date" {
		t.Fatalf("unparseable date must pass through, got %q", got)
	}
}

func TestProjectSession(t *testing.T) {
	snap := fixtureSnapshot()
	now := time.Date(2025, time.December, 15, 12, 0, 0, 0, time.UTC)

	session, ok := snap.SessionByID("session-morning")
	if !ok {
		t.Fatal("fixture session missing")
	}

	card := ProjectSession(snap, session, now)

	if card.SpeakerName != "Dr. Sarah Chen, AI Research Lead" {
		t.Fatalf("speaker name = %q", card.SpeakerName)
	}
	if card.RoomName != "Main Auditorium" || card.RoomColor != store.ColorIndigo {
		t.Fatalf("room = %q/%q", card.RoomName, card.RoomColor)
	}
	if card.Duration != "1h 30m" {
		t.Fatalf("duration = %q", card.Duration)
	}
	if card.DisplayDate != "Mon, Dec 15, 2025" {
		t.Fatalf("display date = %q", card.DisplayDate)
	}
	if card.AttendeeCount != 1 || len(card.AttendeeNames) != 1 || card.AttendeeNames[0] != "Sarah Chen" {
		t.Fatalf("attendees = %d %v", card.AttendeeCount, card.AttendeeNames)
	}
	if card.UpdatedRelative != "" {
		t.Fatalf("never-edited session must have no relative time, got %q", card.UpdatedRelative)
	}
}

func TestProjectSession_SpeakerWithoutTitle(t *testing.T) {
	snap := fixtureSnapshot()
	snap.Speakers = append(snap.Speakers, store.Speaker{ID: "speaker-3", Name: "All Attendees"})
	snap.Sessions[0].SpeakerID = "speaker-3"

	card := ProjectSession(snap, snap.Sessions[0], time.Now())
	if card.SpeakerName != "All Attendees" {
		t.Fatalf("speaker name = %q", card.SpeakerName)
	}
}

func TestProjectSession_DanglingReferences(t *testing.T) {
	snap := fixtureSnapshot()
	session := snap.Sessions[0]
	session.SpeakerID = "ghost"
	session.RoomID = "ghost"

	card := ProjectSession(snap, session, time.Now())
	if card.SpeakerName != UnknownSpeaker {
		t.Fatalf("speaker sentinel = %q", card.SpeakerName)
	}
	if card.RoomName != UnknownRoom {
		t.Fatalf("room sentinel = %q", card.RoomName)
	}
}

func TestProjectSession_AttendeeNameCap(t *testing.T) {
	snap := fixtureSnapshot()
	attendeeIDs := make([]string, 0, 8)
	for _, suffix := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		id := "cap-" + suffix
		snap.Attendees = append(snap.Attendees, store.Attendee{ID: id, Name: "Attendee " + suffix})
		attendeeIDs = append(attendeeIDs, id)
	}
	session := snap.Sessions[0]
	session.AttendeeIDs = attendeeIDs

	card := ProjectSession(snap, session, time.Now())
	if len(card.AttendeeNames) != 5 {
		t.Fatalf("expected 5 names, got %d", len(card.AttendeeNames))
	}
	if card.MoreAttendees != 3 {
		t.Fatalf("expected 3 overflow, got %d", card.MoreAttendees)
	}
	if card.AttendeeCount != 8 {
		t.Fatalf("count must cover the full roster, got %d", card.AttendeeCount)
	}
}

func TestProjectSession_TruncatesDescription(t *testing.T) {
	snap := fixtureSnapshot()
	session := snap.Sessions[0]
	session.Description = strings.Repeat("x", 300)

	card := ProjectSession(snap, session, time.Now())
	if len([]rune(card.Description)) != 153 {
		t.Fatalf("card description length = %d", len([]rune(card.Description)))
	}

	detail := ProjectDetail(snap, session, time.Now())
	if len(detail.Description) != 300 {
		t.Fatalf("detail must keep the full description, got %d", len(detail.Description))
	}
}

func TestProjectSession_RelativeUpdate(t *testing.T) {
	snap := fixtureSnapshot()
	now := time.Date(2025, time.December, 15, 12, 0, 0, 0, time.UTC)
	edited := now.Add(-10 * time.Minute)
	session := snap.Sessions[0]
	session.LastUpdated = &edited

	card := ProjectSession(snap, session, now)
	if card.UpdatedRelative != "10m ago" {
		t.Fatalf("relative time = %q", card.UpdatedRelative)
	}
}

func TestProjectDetail_ResolvesRoster(t *testing.T) {
	snap := fixtureSnapshot()
	session, ok := snap.SessionByID("session-evening")
	if !ok {
		t.Fatal("fixture session missing")
	}

	detail := ProjectDetail(snap, session, time.Now())
	if len(detail.Attendees) != 2 {
		t.Fatalf("expected full roster, got %d", len(detail.Attendees))
	}
	if detail.Card.ID != "session-evening" {
		t.Fatalf("card id = %q", detail.Card.ID)
	}
}
