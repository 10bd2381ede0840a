// Package export renders the session catalog as an iCalendar feed so the
// schedule can be subscribed to from external calendar clients.
package export

import (
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/example/eventflow/internal/store"
)

const calendarProductID = "-//EventFlow//Schedule//EN"

// Calendar serializes every session in the snapshot as a VEVENT, ordered
// chronologically. Sessions whose date or times fail to parse are skipped;
// the catalog's integrity checks make that unreachable in practice.
func Calendar(snap store.Snapshot) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)

	sessions := append([]store.Session(nil), snap.Sessions...)
	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].Date != sessions[j].Date {
			return sessions[i].Date < sessions[j].Date
		}
		return sessions[i].StartTime < sessions[j].StartTime
	})

	for _, session := range sessions {
		start, err := parseLocal(session.Date, session.StartTime)
		if err != nil {
			continue
		}
		end, err := parseLocal(session.Date, session.EndTime)
		if err != nil {
			continue
		}

		event := cal.AddEvent(session.ID + "@eventflow")
		event.SetCreatedTime(session.CreatedAt)
		if session.LastUpdated != nil {
			event.SetModifiedAt(*session.LastUpdated)
		}
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(session.Title)
		if session.Description != "" {
			event.SetDescription(session.Description)
		}
		if room, ok := snap.RoomByID(session.RoomID); ok {
			event.SetLocation(room.Name)
		}
		if speaker, ok := snap.SpeakerByID(session.SpeakerID); ok {
			event.SetOrganizer(speaker.Name)
		}
	}

	return cal.Serialize(), nil
}

func parseLocal(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", fmt.Sprintf("%s %s", date, clock), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse session time: %w", err)
	}
	return t, nil
}
