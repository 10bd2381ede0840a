// Package view contains the pure read side of the schedule: filtering the
// session catalog against user criteria and projecting sessions into
// display-ready records. Nothing here mutates the store.
package view

import (
	"sort"
	"strconv"
	"strings"

	"github.com/example/eventflow/internal/store"
)

// TimeOfDay buckets sessions by their start hour.
type TimeOfDay string

const (
	TimeAny       TimeOfDay = ""
	TimeMorning   TimeOfDay = "morning"   // [00:00, 12:00)
	TimeAfternoon TimeOfDay = "afternoon" // [12:00, 17:00)
	TimeEvening   TimeOfDay = "evening"   // [17:00, 24:00)
)

// Valid reports whether the bucket is one of the known values.
func (t TimeOfDay) Valid() bool {
	switch t {
	case TimeAny, TimeMorning, TimeAfternoon, TimeEvening:
		return true
	}
	return false
}

// Criteria is the transient set of filter predicates selected by the user.
// A zero-value field means the predicate is not applied.
type Criteria struct {
	Search     string
	RoomID     string
	AttendeeID string
	TimeOfDay  TimeOfDay
}

// IsZero reports whether no predicate is set.
func (c Criteria) IsZero() bool {
	return c.Search == "" && c.RoomID == "" && c.AttendeeID == "" && c.TimeOfDay == TimeAny
}

// FilterSessions returns the sessions matching every set predicate, ordered
// ascending by (date, start time). The sort is stable: sessions sharing a
// chronological key keep their snapshot order across repeated calls. An
// empty result is returned both when no sessions exist and when none match;
// callers distinguish the two via the snapshot's total session count.
func FilterSessions(snap store.Snapshot, c Criteria) []store.Session {
	matched := make([]store.Session, 0, len(snap.Sessions))
	for _, session := range snap.Sessions {
		if matches(snap, session, c) {
			matched = append(matched, session)
		}
	}

	// ISO dates and HH:MM times compare lexicographically in chronological
	// order, so a plain string key suffices.
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Date != matched[j].Date {
			return matched[i].Date < matched[j].Date
		}
		return matched[i].StartTime < matched[j].StartTime
	})

	return matched
}

func matches(snap store.Snapshot, session store.Session, c Criteria) bool {
	if c.Search != "" && !matchesSearch(snap, session, c.Search) {
		return false
	}
	if c.RoomID != "" && session.RoomID != c.RoomID {
		return false
	}
	if c.AttendeeID != "" && !containsID(session.AttendeeIDs, c.AttendeeID) {
		return false
	}
	if c.TimeOfDay != TimeAny && !matchesTimeOfDay(session.StartTime, c.TimeOfDay) {
		return false
	}
	return true
}

func matchesSearch(snap store.Snapshot, session store.Session, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(session.Title), needle) {
		return true
	}
	if speaker, ok := snap.SpeakerByID(session.SpeakerID); ok {
		if strings.Contains(strings.ToLower(speaker.Name), needle) {
			return true
		}
	}
	if strings.Contains(strings.ToLower(session.Description), needle) {
		return true
	}
	for _, tag := range session.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func matchesTimeOfDay(startTime string, bucket TimeOfDay) bool {
	hour, ok := startHour(startTime)
	if !ok {
		return false
	}
	switch bucket {
	case TimeMorning:
		return hour < 12
	case TimeAfternoon:
		return hour >= 12 && hour < 17
	case TimeEvening:
		return hour >= 17
	}
	return true
}

func startHour(startTime string) (int, bool) {
	raw, _, found := strings.Cut(startTime, ":")
	if !found {
		return 0, false
	}
	hour, err := strconv.Atoi(raw)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
