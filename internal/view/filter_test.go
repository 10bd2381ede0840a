package view

import (
	"testing"

	"github.com/example/eventflow/internal/store"
)

func fixtureSnapshot() store.Snapshot {
	return store.Snapshot{
		Speakers: []store.Speaker{
			{ID: "speaker-1", Name: "Dr. Sarah Chen", Title: "AI Research Lead"},
			{ID: "speaker-2", Name: "Marcus Williams", Title: "Principal Engineer"},
		},
		Rooms: []store.Room{
			{ID: "room-1", Name: "Main Auditorium", Color: store.ColorIndigo},
			{ID: "room-2", Name: "Innovation Lab", Color: store.ColorEmerald},
		},
		Attendees: []store.Attendee{
			{ID: "attendee-1", Name: "Sarah Chen"},
			{ID: "attendee-2", Name: "Marcus Williams"},
		},
		Sessions: []store.Session{
			{
				ID: "session-evening", Title: "Closing Keynote",
				SpeakerID: "speaker-2", RoomID: "room-1",
				Date: "2025-12-15", StartTime: "17:00", EndTime: "18:00",
				Description: "Wrap-up and trends.",
				Tags:        []string{"Keynote", "Trends"},
				AttendeeIDs: []string{"attendee-1", "attendee-2"},
			},
			{
				ID: "session-morning", Title: "The Future of AI",
				SpeakerID: "speaker-1", RoomID: "room-1",
				Date: "2025-12-15", StartTime: "09:00", EndTime: "10:30",
				Description: "Neural architectures and more.",
				Tags:        []string{"AI", "Machine Learning"},
				AttendeeIDs: []string{"attendee-1"},
			},
			{
				ID: "session-afternoon", Title: "Microservices in Practice",
				SpeakerID: "speaker-2", RoomID: "room-2",
				Date: "2025-12-15", StartTime: "14:00", EndTime: "15:00",
				Description: "Service mesh and API gateways.",
				Tags:        []string{"Backend"},
				AttendeeIDs: []string{"attendee-2"},
			},
		},
	}
}

func ids(sessions []store.Session) []string {
	out := make([]string, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterSessions(t *testing.T) {
	snap := fixtureSnapshot()

	cases := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{
			name:     "no criteria returns all in chronological order",
			criteria: Criteria{},
			want:     []string{"session-morning", "session-afternoon", "session-evening"},
		},
		{
			name:     "search matches title case-insensitively",
			criteria: Criteria{Search: "future"},
			want:     []string{"session-morning"},
		},
		{
			name:     "search matches speaker name",
			criteria: Criteria{Search: "marcus"},
			want:     []string{"session-afternoon", "session-evening"},
		},
		{
			name:     "search matches description",
			criteria: Criteria{Search: "gateways"},
			want:     []string{"session-afternoon"},
		},
		{
			name:     "search matches tags case-insensitively",
			criteria: Criteria{Search: "ai"},
			want:     []string{"session-morning"},
		},
		{
			name:     "room filter",
			criteria: Criteria{RoomID: "room-2"},
			want:     []string{"session-afternoon"},
		},
		{
			name:     "attendee filter keeps only sessions that include the attendee",
			criteria: Criteria{AttendeeID: "attendee-2"},
			want:     []string{"session-afternoon", "session-evening"},
		},
		{
			name:     "morning bucket",
			criteria: Criteria{TimeOfDay: TimeMorning},
			want:     []string{"session-morning"},
		},
		{
			name:     "afternoon bucket",
			criteria: Criteria{TimeOfDay: TimeAfternoon},
			want:     []string{"session-afternoon"},
		},
		{
			name:     "evening bucket",
			criteria: Criteria{TimeOfDay: TimeEvening},
			want:     []string{"session-evening"},
		},
		{
			name:     "predicates combine with AND",
			criteria: Criteria{Search: "marcus", TimeOfDay: TimeEvening},
			want:     []string{"session-evening"},
		},
		{
			name:     "no match yields empty result",
			criteria: Criteria{Search: "quantum"},
			want:     []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(FilterSessions(snap, tc.criteria))
			if !equalIDs(got, tc.want) {
				t.Fatalf("FilterSessions returned %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterSessions_StableTieBreak(t *testing.T) {
	snap := fixtureSnapshot()
	// Two sessions sharing the chronological key keep snapshot order.
	snap.Sessions = append(snap.Sessions, store.Session{
		ID: "session-parallel", Title: "Parallel Track",
		SpeakerID: "speaker-1", RoomID: "room-2",
		Date: "2025-12-15", StartTime: "09:00", EndTime: "10:00",
	})

	got := ids(FilterSessions(snap, Criteria{}))
	want := []string{"session-morning", "session-parallel", "session-afternoon", "session-evening"}
	if !equalIDs(got, want) {
		t.Fatalf("FilterSessions returned %v, want %v", got, want)
	}
}

func TestFilterSessions_SortsAcrossDates(t *testing.T) {
	snap := fixtureSnapshot()
	snap.Sessions = append(snap.Sessions, store.Session{
		ID: "session-day2", Title: "Day Two Opener",
		SpeakerID: "speaker-1", RoomID: "room-1",
		Date: "2025-12-16", StartTime: "08:00", EndTime: "09:00",
	})

	got := ids(FilterSessions(snap, Criteria{}))
	if got[len(got)-1] != "session-day2" {
		t.Fatalf("expected later date sorted last, got %v", got)
	}
}

func TestTimeOfDay_Valid(t *testing.T) {
	for _, valid := range []TimeOfDay{TimeAny, TimeMorning, TimeAfternoon, TimeEvening} {
		if !valid.Valid() {
			t.Fatalf("expected %q to be valid", valid)
		}
	}
	if TimeOfDay("midnight").Valid() {
		t.Fatal("expected unknown bucket to be invalid")
	}
}
