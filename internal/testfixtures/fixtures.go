// Package testfixtures provides deterministic clocks, identifier generators,
// and entity fixtures shared by the test suites.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/eventflow/internal/store"
)

var (
	attendeeCounter uint64
	speakerCounter  uint64
	roomCounter     uint64
	sessionCounter  uint64
)

var referenceTime = time.Date(2025, time.December, 1, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// AttendeeOption configures a generated attendee fixture.
type AttendeeOption func(*store.Attendee)

// NewAttendee returns a deterministic attendee with optional overrides.
func NewAttendee(opts ...AttendeeOption) store.Attendee {
	idx := atomic.AddUint64(&attendeeCounter, 1)
	id := fmt.Sprintf("attendee-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	attendee := store.Attendee{
		ID:        id,
		Name:      fmt.Sprintf("Attendee %03d", idx),
		Email:     fmt.Sprintf("%s@example.com", id),
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&attendee)
	}
	return attendee
}

// WithAttendeeID overrides the generated attendee ID.
func WithAttendeeID(id string) AttendeeOption {
	return func(a *store.Attendee) {
		a.ID = id
	}
}

// WithAttendeeName overrides the generated attendee name.
func WithAttendeeName(name string) AttendeeOption {
	return func(a *store.Attendee) {
		a.Name = name
	}
}

// SpeakerOption configures a generated speaker fixture.
type SpeakerOption func(*store.Speaker)

// NewSpeaker returns a deterministic speaker with optional overrides.
func NewSpeaker(opts ...SpeakerOption) store.Speaker {
	idx := atomic.AddUint64(&speakerCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	speaker := store.Speaker{
		ID:        fmt.Sprintf("speaker-%03d", idx),
		Name:      fmt.Sprintf("Speaker %03d", idx),
		Title:     "Staff Engineer",
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&speaker)
	}
	return speaker
}

// WithSpeakerID overrides the generated speaker ID.
func WithSpeakerID(id string) SpeakerOption {
	return func(s *store.Speaker) {
		s.ID = id
	}
}

// WithSpeakerName overrides the generated speaker name.
func WithSpeakerName(name string) SpeakerOption {
	return func(s *store.Speaker) {
		s.Name = name
	}
}

// WithSpeakerTitle overrides the generated speaker title.
func WithSpeakerTitle(title string) SpeakerOption {
	return func(s *store.Speaker) {
		s.Title = title
	}
}

// RoomOption configures a generated room fixture.
type RoomOption func(*store.Room)

// NewRoom returns a deterministic room with optional overrides.
func NewRoom(opts ...RoomOption) store.Room {
	idx := atomic.AddUint64(&roomCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	palette := store.Palette()
	room := store.Room{
		ID:        fmt.Sprintf("room-%03d", idx),
		Name:      fmt.Sprintf("Room %03d", idx),
		Color:     palette[int(idx)%len(palette)],
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&room)
	}
	return room
}

// WithRoomID overrides the generated room ID.
func WithRoomID(id string) RoomOption {
	return func(r *store.Room) {
		r.ID = id
	}
}

// WithRoomColor overrides the generated room color.
func WithRoomColor(color store.RoomColor) RoomOption {
	return func(r *store.Room) {
		r.Color = color
	}
}

// SessionOption configures a generated session fixture.
type SessionOption func(*store.Session)

// NewSession returns a deterministic session with optional overrides. The
// caller is responsible for ensuring the referenced speaker, room, and
// attendees exist where referential integrity is enforced.
func NewSession(speakerID, roomID string, opts ...SessionOption) store.Session {
	idx := atomic.AddUint64(&sessionCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	session := store.Session{
		ID:          fmt.Sprintf("session-%03d", idx),
		Title:       fmt.Sprintf("Session %03d", idx),
		SpeakerID:   speakerID,
		RoomID:      roomID,
		Date:        "2025-12-15",
		StartTime:   "09:00",
		EndTime:     "10:00",
		Description: "A deterministic fixture session.",
		Tags:        []string{"fixture"},
		CreatedAt:   created,
	}
	for _, opt := range opts {
		opt(&session)
	}
	return session
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) SessionOption {
	return func(s *store.Session) {
		s.ID = id
	}
}

// WithSessionTitle overrides the generated title.
func WithSessionTitle(title string) SessionOption {
	return func(s *store.Session) {
		s.Title = title
	}
}

// WithSessionSchedule overrides the date and time fields.
func WithSessionSchedule(date, startTime, endTime string) SessionOption {
	return func(s *store.Session) {
		s.Date = date
		s.StartTime = startTime
		s.EndTime = endTime
	}
}

// WithSessionTags overrides the tag list.
func WithSessionTags(tags ...string) SessionOption {
	return func(s *store.Session) {
		s.Tags = tags
	}
}

// WithSessionAttendees overrides the attendee ID list.
func WithSessionAttendees(ids ...string) SessionOption {
	return func(s *store.Session) {
		s.AttendeeIDs = ids
	}
}

// WithSessionDescription overrides the description.
func WithSessionDescription(description string) SessionOption {
	return func(s *store.Session) {
		s.Description = description
	}
}
