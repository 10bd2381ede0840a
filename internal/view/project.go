package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/eventflow/internal/store"
)

const (
	// UnknownRoom and UnknownSpeaker are defensive sentinels for dangling
	// references; the store's integrity checks should make them unreachable.
	UnknownRoom    = "Unknown Room"
	UnknownSpeaker = "Unknown Speaker"

	descriptionLimit = 150
	attendeeNameCap  = 5
)

// SessionCard is the display-ready projection of a session for list views.
type SessionCard struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	SpeakerName     string          `json:"speakerName"`
	RoomName        string          `json:"roomName"`
	RoomColor       store.RoomColor `json:"roomColor"`
	Date            string          `json:"date"`
	DisplayDate     string          `json:"displayDate"`
	StartTime       string          `json:"startTime"`
	EndTime         string          `json:"endTime"`
	Duration        string          `json:"duration"`
	Description     string          `json:"description"`
	Tags            []string        `json:"tags"`
	AttendeeCount   int             `json:"attendeeCount"`
	AttendeeNames   []string        `json:"attendeeNames"`
	MoreAttendees   int             `json:"moreAttendees"`
	Favorite        bool            `json:"favorite"`
	UpdatedRelative string          `json:"updatedRelative,omitempty"`
}

// SessionDetail extends the card with the untruncated description and the
// full attendee roster.
type SessionDetail struct {
	Card        SessionCard      `json:"card"`
	Description string           `json:"description"`
	Attendees   []store.Attendee `json:"attendees"`
}

// ProjectSession derives the display record for a single session.
func ProjectSession(snap store.Snapshot, session store.Session, now time.Time) SessionCard {
	card := SessionCard{
		ID:            session.ID,
		Title:         session.Title,
		SpeakerName:   UnknownSpeaker,
		RoomName:      UnknownRoom,
		Date:          session.Date,
		DisplayDate:   FormatDate(session.Date),
		StartTime:     session.StartTime,
		EndTime:       session.EndTime,
		Duration:      Duration(session.StartTime, session.EndTime),
		Description:   Truncate(session.Description, descriptionLimit),
		Tags:          append([]string(nil), session.Tags...),
		AttendeeCount: len(session.AttendeeIDs),
		Favorite:      snap.IsFavorite(session.ID),
	}

	if speaker, ok := snap.SpeakerByID(session.SpeakerID); ok {
		card.SpeakerName = speakerDisplayName(speaker)
	}
	if room, ok := snap.RoomByID(session.RoomID); ok {
		card.RoomName = room.Name
		card.RoomColor = room.Color
	}

	names := resolveAttendeeNames(snap, session.AttendeeIDs)
	if len(names) > attendeeNameCap {
		card.MoreAttendees = len(names) - attendeeNameCap
		names = names[:attendeeNameCap]
	}
	card.AttendeeNames = names

	if session.LastUpdated != nil {
		card.UpdatedRelative = RelativeTime(*session.LastUpdated, now)
	}

	return card
}

// ProjectSessions maps a filtered slice to cards, preserving order.
func ProjectSessions(snap store.Snapshot, sessions []store.Session, now time.Time) []SessionCard {
	if len(sessions) == 0 {
		return nil
	}
	cards := make([]SessionCard, 0, len(sessions))
	for _, session := range sessions {
		cards = append(cards, ProjectSession(snap, session, now))
	}
	return cards
}

// ProjectDetail derives the detail record shown when a session is opened.
func ProjectDetail(snap store.Snapshot, session store.Session, now time.Time) SessionDetail {
	detail := SessionDetail{
		Card:        ProjectSession(snap, session, now),
		Description: session.Description,
	}
	for _, id := range session.AttendeeIDs {
		if attendee, ok := snap.AttendeeByID(id); ok {
			detail.Attendees = append(detail.Attendees, attendee)
		}
	}
	return detail
}

// Duration renders the span between two "15:04" times as "Nh Mm", "Nh", or
// "Mm". Zero-length spans render as "0m". Unparseable input yields "".
func Duration(startTime, endTime string) string {
	start, ok := minutesOfDay(startTime)
	if !ok {
		return ""
	}
	end, ok := minutesOfDay(endTime)
	if !ok {
		return ""
	}

	minutes := end - start
	hours := minutes / 60
	mins := minutes % 60

	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

func minutesOfDay(clock string) (int, bool) {
	rawHour, rawMin, found := strings.Cut(clock, ":")
	if !found {
		return 0, false
	}
	hour, err := strconv.Atoi(rawHour)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	min, err := strconv.Atoi(rawMin)
	if err != nil || min < 0 || min > 59 {
		return 0, false
	}
	return hour*60 + min, true
}

// RelativeTime renders how long ago t was relative to now: "just now" under
// a minute, then minute, hour, and day granularity.
func RelativeTime(t, now time.Time) string {
	seconds := int(now.Sub(t).Seconds())
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	default:
		return fmt.Sprintf("%dd ago", seconds/86400)
	}
}

// Truncate cuts s to max runes and appends an ellipsis when it was longer.
// The cut is exact; no word-boundary snapping.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// FormatDate renders a "2006-01-02" date for display, e.g. "Mon, Dec 15,
// 2025". Unparseable input is returned unchanged.
func FormatDate(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsed.Format("Mon, Jan 2, 2006")
}

func speakerDisplayName(speaker store.Speaker) string {
	if strings.TrimSpace(speaker.Title) == "" {
		return speaker.Name
	}
	return speaker.Name + ", " + speaker.Title
}

func resolveAttendeeNames(snap store.Snapshot, ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if attendee, ok := snap.AttendeeByID(id); ok {
			names = append(names, attendee.Name)
		}
	}
	return names
}
