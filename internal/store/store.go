package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Persister writes a full snapshot to durable storage. The store calls it
// after every successful mutation; implementations must write all keys in a
// single transaction so readers never observe a partial state.
type Persister interface {
	Save(ctx context.Context, snap Snapshot) error
}

// Store is the single source of truth for all four entity collections and
// the favorites set. It alone mutates state, enforces referential integrity,
// and triggers write-through persistence. All operations are atomic; no
// observable intermediate state exists.
type Store struct {
	mu        sync.Mutex
	persister Persister
	logger    *slog.Logger

	sessions  []Session
	attendees []Attendee
	speakers  []Speaker
	rooms     []Room
	favorites []string
}

// New constructs a store from a previously loaded snapshot. Sessions whose
// speaker or room reference does not resolve cause an error: that state can
// only come from foreign or corrupted data and accepting it would break the
// deletion guard's guarantee. Unknown attendee IDs inside sessions and
// favorites pointing at unknown sessions are pruned with a warning instead,
// since both are soft references.
func New(snap Snapshot, persister Persister, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		persister: persister,
		logger:    logger,
		sessions:  cloneSessions(snap.Sessions),
		attendees: append([]Attendee(nil), snap.Attendees...),
		speakers:  cloneSpeakers(snap.Speakers),
		rooms:     append([]Room(nil), snap.Rooms...),
	}

	for i, session := range s.sessions {
		if _, ok := s.speakerByIDLocked(session.SpeakerID); !ok {
			return nil, fmt.Errorf("session %q references unknown speaker %q: %w", session.ID, session.SpeakerID, ErrDanglingReference)
		}
		if _, ok := s.roomByIDLocked(session.RoomID); !ok {
			return nil, fmt.Errorf("session %q references unknown room %q: %w", session.ID, session.RoomID, ErrDanglingReference)
		}

		kept := session.AttendeeIDs[:0]
		for _, id := range session.AttendeeIDs {
			if _, ok := s.attendeeByIDLocked(id); ok {
				kept = append(kept, id)
				continue
			}
			logger.Warn("pruned unknown attendee reference", "session_id", session.ID, "attendee_id", id)
		}
		s.sessions[i].AttendeeIDs = kept
	}

	for _, id := range snap.Favorites {
		if _, ok := s.sessionByIDLocked(id); !ok {
			logger.Warn("pruned favorite for unknown session", "session_id", id)
			continue
		}
		s.favorites = append(s.favorites, id)
	}

	return s, nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Sessions:  cloneSessions(s.sessions),
		Attendees: append([]Attendee(nil), s.attendees...),
		Speakers:  cloneSpeakers(s.speakers),
		Rooms:     append([]Room(nil), s.rooms...),
		Favorites: append([]string(nil), s.favorites...),
	}
}

// Stats reports the collection sizes.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Sessions:  len(s.sessions),
		Attendees: len(s.attendees),
		Speakers:  len(s.speakers),
		Rooms:     len(s.rooms),
		Favorites: len(s.favorites),
	}
}

// AttendeeByID resolves an attendee.
func (s *Store) AttendeeByID(id string) (Attendee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attendeeByIDLocked(id)
}

// SpeakerByID resolves a speaker.
func (s *Store) SpeakerByID(id string) (Speaker, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	speaker, ok := s.speakerByIDLocked(id)
	if !ok {
		return Speaker{}, false
	}
	return cloneSpeaker(speaker), true
}

// RoomByID resolves a room.
func (s *Store) RoomByID(id string) (Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomByIDLocked(id)
}

// SessionByID resolves a session.
func (s *Store) SessionByID(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessionByIDLocked(id)
	if !ok {
		return Session{}, false
	}
	return cloneSession(*session), true
}

// IsFavorite reports whether the session is currently marked as a favorite.
func (s *Store) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favoriteIndexLocked(id) >= 0
}

// AddAttendee inserts a new attendee record.
func (s *Store) AddAttendee(ctx context.Context, attendee Attendee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.attendeeByIDLocked(attendee.ID); ok {
		return ErrDuplicate
	}
	s.attendees = append(s.attendees, attendee)
	return s.persistLocked(ctx)
}

// UpdateAttendee replaces an existing attendee record.
func (s *Store) UpdateAttendee(ctx context.Context, attendee Attendee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.attendees {
		if s.attendees[i].ID == attendee.ID {
			s.attendees[i] = attendee
			return s.persistLocked(ctx)
		}
	}
	return ErrNotFound
}

// DeleteAttendee removes an attendee unless a session still references it.
func (s *Store) DeleteAttendee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.attendees {
		if s.attendees[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	for _, session := range s.sessions {
		for _, attendeeID := range session.AttendeeIDs {
			if attendeeID == id {
				return ErrInUse
			}
		}
	}
	s.attendees = append(s.attendees[:idx], s.attendees[idx+1:]...)
	return s.persistLocked(ctx)
}

// AddSpeaker inserts a new speaker record.
func (s *Store) AddSpeaker(ctx context.Context, speaker Speaker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.speakerByIDLocked(speaker.ID); ok {
		return ErrDuplicate
	}
	s.speakers = append(s.speakers, cloneSpeaker(speaker))
	return s.persistLocked(ctx)
}

// UpdateSpeaker replaces an existing speaker record.
func (s *Store) UpdateSpeaker(ctx context.Context, speaker Speaker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.speakers {
		if s.speakers[i].ID == speaker.ID {
			s.speakers[i] = cloneSpeaker(speaker)
			return s.persistLocked(ctx)
		}
	}
	return ErrNotFound
}

// DeleteSpeaker removes a speaker unless a session still references it.
func (s *Store) DeleteSpeaker(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.speakers {
		if s.speakers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	for _, session := range s.sessions {
		if session.SpeakerID == id {
			return ErrInUse
		}
	}
	s.speakers = append(s.speakers[:idx], s.speakers[idx+1:]...)
	return s.persistLocked(ctx)
}

// AddRoom inserts a new room record.
func (s *Store) AddRoom(ctx context.Context, room Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roomByIDLocked(room.ID); ok {
		return ErrDuplicate
	}
	s.rooms = append(s.rooms, room)
	return s.persistLocked(ctx)
}

// UpdateRoom replaces an existing room record.
func (s *Store) UpdateRoom(ctx context.Context, room Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rooms {
		if s.rooms[i].ID == room.ID {
			s.rooms[i] = room
			return s.persistLocked(ctx)
		}
	}
	return ErrNotFound
}

// DeleteRoom removes a room unless a session still references it.
func (s *Store) DeleteRoom(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.rooms {
		if s.rooms[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	for _, session := range s.sessions {
		if session.RoomID == id {
			return ErrInUse
		}
	}
	s.rooms = append(s.rooms[:idx], s.rooms[idx+1:]...)
	return s.persistLocked(ctx)
}

// AddSession inserts a new session after resolving every reference it names.
func (s *Store) AddSession(ctx context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessionByIDLocked(session.ID); ok {
		return ErrDuplicate
	}
	if err := s.checkSessionReferencesLocked(session); err != nil {
		return err
	}
	session.AttendeeIDs = dedupe(session.AttendeeIDs)
	s.sessions = append(s.sessions, cloneSession(session))
	return s.persistLocked(ctx)
}

// UpdateSession replaces an existing session after re-checking references.
func (s *Store) UpdateSession(ctx context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.sessions {
		if s.sessions[i].ID == session.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	if err := s.checkSessionReferencesLocked(session); err != nil {
		return err
	}
	session.AttendeeIDs = dedupe(session.AttendeeIDs)
	s.sessions[idx] = cloneSession(session)
	return s.persistLocked(ctx)
}

// DeleteSession removes a session and its favorites entry in one step. The
// removed session is returned so callers can reference it in notifications.
func (s *Store) DeleteSession(ctx context.Context, id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Session{}, ErrNotFound
	}
	removed := cloneSession(s.sessions[idx])
	s.sessions = append(s.sessions[:idx], s.sessions[idx+1:]...)
	if fav := s.favoriteIndexLocked(id); fav >= 0 {
		s.favorites = append(s.favorites[:fav], s.favorites[fav+1:]...)
	}
	return removed, s.persistLocked(ctx)
}

// ToggleFavorite flips the favorite flag for a session and reports the new
// state.
func (s *Store) ToggleFavorite(ctx context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessionByIDLocked(sessionID); !ok {
		return false, ErrNotFound
	}
	if idx := s.favoriteIndexLocked(sessionID); idx >= 0 {
		s.favorites = append(s.favorites[:idx], s.favorites[idx+1:]...)
		return false, s.persistLocked(ctx)
	}
	s.favorites = append(s.favorites, sessionID)
	return true, s.persistLocked(ctx)
}

func (s *Store) checkSessionReferencesLocked(session Session) error {
	if _, ok := s.speakerByIDLocked(session.SpeakerID); !ok {
		return fmt.Errorf("speaker %q: %w", session.SpeakerID, ErrDanglingReference)
	}
	if _, ok := s.roomByIDLocked(session.RoomID); !ok {
		return fmt.Errorf("room %q: %w", session.RoomID, ErrDanglingReference)
	}
	for _, id := range session.AttendeeIDs {
		if _, ok := s.attendeeByIDLocked(id); !ok {
			return fmt.Errorf("attendee %q: %w", id, ErrDanglingReference)
		}
	}
	return nil
}

func (s *Store) persistLocked(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	if err := s.persister.Save(ctx, s.snapshotLocked()); err != nil {
		s.logger.ErrorContext(ctx, "write-through failed, in-memory state retained", "error", err)
		return fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	return nil
}

func (s *Store) attendeeByIDLocked(id string) (Attendee, bool) {
	for _, attendee := range s.attendees {
		if attendee.ID == id {
			return attendee, true
		}
	}
	return Attendee{}, false
}

func (s *Store) speakerByIDLocked(id string) (Speaker, bool) {
	for _, speaker := range s.speakers {
		if speaker.ID == id {
			return speaker, true
		}
	}
	return Speaker{}, false
}

func (s *Store) roomByIDLocked(id string) (Room, bool) {
	for _, room := range s.rooms {
		if room.ID == id {
			return room, true
		}
	}
	return Room{}, false
}

func (s *Store) sessionByIDLocked(id string) (*Session, bool) {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return &s.sessions[i], true
		}
	}
	return nil, false
}

func (s *Store) favoriteIndexLocked(id string) int {
	for i, fav := range s.favorites {
		if fav == id {
			return i
		}
	}
	return -1
}

func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
