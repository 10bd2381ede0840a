package store

import "time"

// RoomColor identifies the badge color assigned to a room. The palette is
// fixed; values outside it are rejected at validation time.
type RoomColor string

const (
	ColorSlate   RoomColor = "slate"
	ColorIndigo  RoomColor = "indigo"
	ColorEmerald RoomColor = "emerald"
	ColorAmber   RoomColor = "amber"
	ColorRose    RoomColor = "rose"
)

// Palette returns the allowed room colors in display order.
func Palette() []RoomColor {
	return []RoomColor{ColorSlate, ColorIndigo, ColorEmerald, ColorAmber, ColorRose}
}

// Valid reports whether the color belongs to the fixed palette.
func (c RoomColor) Valid() bool {
	for _, candidate := range Palette() {
		if c == candidate {
			return true
		}
	}
	return false
}

// Attendee represents a registered conference attendee.
type Attendee struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Speaker represents a session speaker listed in the program.
type Speaker struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Bio       *string   `json:"bio,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Room represents a venue room sessions are assigned to.
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     RoomColor `json:"colorTag"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Session represents a scheduled talk or activity. Date is a calendar date in
// "2006-01-02" form; StartTime and EndTime are times of day in "15:04" form.
// LastUpdated is nil until the session is first edited.
type Session struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	SpeakerID   string     `json:"speakerId"`
	RoomID      string     `json:"roomId"`
	Date        string     `json:"date"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	AttendeeIDs []string   `json:"attendeeIds"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}

// Stats summarises collection sizes for the dashboard counters.
type Stats struct {
	Sessions  int `json:"sessions"`
	Attendees int `json:"attendees"`
	Speakers  int `json:"speakers"`
	Rooms     int `json:"rooms"`
	Favorites int `json:"favorites"`
}

// Snapshot is a point-in-time copy of every collection plus the favorites
// set. Collections preserve insertion order, which the filter engine relies
// on for stable tie-breaking. Snapshots are value types: mutating one never
// affects the store it was taken from.
type Snapshot struct {
	Sessions  []Session  `json:"sessions"`
	Attendees []Attendee `json:"attendees"`
	Speakers  []Speaker  `json:"speakers"`
	Rooms     []Room     `json:"rooms"`
	Favorites []string   `json:"favorites"`
}

// AttendeeByID resolves an attendee from the snapshot.
func (s Snapshot) AttendeeByID(id string) (Attendee, bool) {
	for _, attendee := range s.Attendees {
		if attendee.ID == id {
			return attendee, true
		}
	}
	return Attendee{}, false
}

// SpeakerByID resolves a speaker from the snapshot.
func (s Snapshot) SpeakerByID(id string) (Speaker, bool) {
	for _, speaker := range s.Speakers {
		if speaker.ID == id {
			return speaker, true
		}
	}
	return Speaker{}, false
}

// RoomByID resolves a room from the snapshot.
func (s Snapshot) RoomByID(id string) (Room, bool) {
	for _, room := range s.Rooms {
		if room.ID == id {
			return room, true
		}
	}
	return Room{}, false
}

// SessionByID resolves a session from the snapshot.
func (s Snapshot) SessionByID(id string) (Session, bool) {
	for _, session := range s.Sessions {
		if session.ID == id {
			return session, true
		}
	}
	return Session{}, false
}

// IsFavorite reports whether the session ID is marked as a favorite.
func (s Snapshot) IsFavorite(id string) bool {
	for _, fav := range s.Favorites {
		if fav == id {
			return true
		}
	}
	return false
}

func cloneSession(session Session) Session {
	out := session
	out.Tags = append([]string(nil), session.Tags...)
	out.AttendeeIDs = append([]string(nil), session.AttendeeIDs...)
	if session.LastUpdated != nil {
		updated := *session.LastUpdated
		out.LastUpdated = &updated
	}
	return out
}

func cloneSpeaker(speaker Speaker) Speaker {
	out := speaker
	if speaker.Bio != nil {
		bio := *speaker.Bio
		out.Bio = &bio
	}
	return out
}

func cloneSessions(sessions []Session) []Session {
	if len(sessions) == 0 {
		return nil
	}
	out := make([]Session, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, cloneSession(session))
	}
	return out
}

func cloneSpeakers(speakers []Speaker) []Speaker {
	if len(speakers) == 0 {
		return nil
	}
	out := make([]Speaker, 0, len(speakers))
	for _, speaker := range speakers {
		out = append(out, cloneSpeaker(speaker))
	}
	return out
}
