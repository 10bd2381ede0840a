package application

import (
	"github.com/example/eventflow/internal/store"
	"github.com/example/eventflow/internal/view"
)

// AttendeeInput captures caller provided attendee fields.
type AttendeeInput struct {
	Name  string
	Email string
}

// SpeakerInput captures caller provided speaker fields.
type SpeakerInput struct {
	Name  string
	Title string
	Bio   *string
}

// RoomInput captures caller provided room fields.
type RoomInput struct {
	Name  string
	Color store.RoomColor
}

// SessionInput captures caller provided session fields. Attendee IDs are
// treated as a set; duplicates are dropped while preserving order.
type SessionInput struct {
	Title       string
	SpeakerID   string
	RoomID      string
	Date        string
	StartTime   string
	EndTime     string
	Description string
	Tags        []string
	AttendeeIDs []string
}

// SessionList is the result of a filtered listing. TotalSessions is the
// unfiltered catalog size so the presentation layer can distinguish "no
// sessions exist" from "none match the filters".
type SessionList struct {
	Sessions      []view.SessionCard
	TotalSessions int
}
