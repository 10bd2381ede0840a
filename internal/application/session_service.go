package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/eventflow/internal/notify"
	"github.com/example/eventflow/internal/store"
	"github.com/example/eventflow/internal/view"
)

// SessionStore captures the entity-store operations needed by the service.
type SessionStore interface {
	AddSession(ctx context.Context, session store.Session) error
	UpdateSession(ctx context.Context, session store.Session) error
	DeleteSession(ctx context.Context, id string) (store.Session, error)
	ToggleFavorite(ctx context.Context, sessionID string) (bool, error)
	SessionByID(id string) (store.Session, bool)
	Snapshot() store.Snapshot
	Stats() store.Stats
}

// SessionService orchestrates validation, persistence, notification, and
// read-side projection for sessions.
type SessionService struct {
	store       SessionStore
	notifier    notify.Notifier
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewSessionService constructs a session service with the provided
// dependencies. A nil notifier disables notifications.
func NewSessionService(st SessionStore, notifier notify.Notifier, idGenerator func() string, now func() time.Time, logger *slog.Logger) *SessionService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &SessionService{store: st, notifier: notifier, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *SessionService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "SessionService", operation, attrs...)
}

// Create validates input and schedules a new session. LastUpdated stays
// unset until the first edit.
func (s *SessionService) Create(ctx context.Context, input SessionInput) (session store.Session, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("session store not configured")
		return
	}

	logger := s.loggerWith(ctx, "Create")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create session", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("session_id", session.ID).InfoContext(ctx, "session created")
	}()

	vErr := validateSessionInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	session = store.Session{
		ID:          s.idGenerator(),
		Title:       strings.TrimSpace(input.Title),
		SpeakerID:   input.SpeakerID,
		RoomID:      input.RoomID,
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Description: strings.TrimSpace(input.Description),
		Tags:        normalizeTags(input.Tags),
		AttendeeIDs: append([]string(nil), input.AttendeeIDs...),
		CreatedAt:   s.now(),
	}

	if err = mapStoreError(s.store.AddSession(ctx, session)); err != nil {
		session = store.Session{}
		return
	}

	s.notifier.Notify(ctx, notify.Notification{
		Title: "New Session Added",
		Body:  fmt.Sprintf("%q has been added to the schedule.", session.Title),
		Tag:   "session-new-" + session.ID,
	})
	return
}

// Update replaces the editable fields of a session and stamps LastUpdated
// with the current instant.
func (s *SessionService) Update(ctx context.Context, id string, input SessionInput) (session store.Session, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("session store not configured")
		return
	}

	logger := s.loggerWith(ctx, "Update", "session_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update session", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "session updated")
	}()

	existing, ok := s.store.SessionByID(id)
	if !ok {
		err = ErrNotFound
		return
	}

	vErr := validateSessionInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	previousTitle := existing.Title
	updated := existing
	updated.Title = strings.TrimSpace(input.Title)
	updated.SpeakerID = input.SpeakerID
	updated.RoomID = input.RoomID
	updated.Date = input.Date
	updated.StartTime = input.StartTime
	updated.EndTime = input.EndTime
	updated.Description = strings.TrimSpace(input.Description)
	updated.Tags = normalizeTags(input.Tags)
	updated.AttendeeIDs = append([]string(nil), input.AttendeeIDs...)
	stamp := s.now()
	updated.LastUpdated = &stamp

	if err = mapStoreError(s.store.UpdateSession(ctx, updated)); err != nil {
		return
	}

	session = updated
	s.notifier.Notify(ctx, notify.Notification{
		Title: "Session Updated",
		Body:  fmt.Sprintf("%q has been updated. Check the latest details.", previousTitle),
		Tag:   "session-" + id,
	})
	return
}

// Delete removes a session; its favorites entry is removed in the same step.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("session store not configured")
	}

	logger := s.loggerWith(ctx, "Delete", "session_id", id)
	removed, err := s.store.DeleteSession(ctx, id)
	if err != nil {
		err = mapStoreError(err)
		logger.ErrorContext(ctx, "failed to delete session", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "session deleted")
	s.notifier.Notify(ctx, notify.Notification{
		Title: "Session Cancelled",
		Body:  fmt.Sprintf("%q has been removed from the schedule.", removed.Title),
		Tag:   "session-delete-" + id,
	})
	return nil
}

// List filters the catalog against the criteria and projects the matches
// into display records.
func (s *SessionService) List(ctx context.Context, criteria view.Criteria) (SessionList, error) {
	if s == nil || s.store == nil {
		return SessionList{}, nil
	}

	snap := s.store.Snapshot()
	filtered := view.FilterSessions(snap, criteria)
	cards := view.ProjectSessions(snap, filtered, s.now())

	s.loggerWith(ctx, "List", "result_count", len(cards), "total", len(snap.Sessions)).InfoContext(ctx, "sessions listed")
	return SessionList{Sessions: cards, TotalSessions: len(snap.Sessions)}, nil
}

// Get projects the detail record for a single session.
func (s *SessionService) Get(ctx context.Context, id string) (view.SessionDetail, error) {
	if s == nil || s.store == nil {
		return view.SessionDetail{}, ErrNotFound
	}

	snap := s.store.Snapshot()
	session, ok := snap.SessionByID(id)
	if !ok {
		return view.SessionDetail{}, ErrNotFound
	}
	return view.ProjectDetail(snap, session, s.now()), nil
}

// ToggleFavorite flips the favorite flag for a session and reports the new
// state.
func (s *SessionService) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	if s == nil || s.store == nil {
		return false, fmt.Errorf("session store not configured")
	}

	logger := s.loggerWith(ctx, "ToggleFavorite", "session_id", id)
	state, err := s.store.ToggleFavorite(ctx, id)
	if err != nil {
		err = mapStoreError(err)
		logger.ErrorContext(ctx, "failed to toggle favorite", "error", err, "error_kind", ErrorKind(err))
		return state, err
	}

	logger.With("favorite", state).InfoContext(ctx, "favorite toggled")
	return state, nil
}

// Stats reports the catalog counters for the dashboard strip.
func (s *SessionService) Stats(ctx context.Context) (store.Stats, error) {
	if s == nil || s.store == nil {
		return store.Stats{}, nil
	}
	return s.store.Stats(), nil
}

func validateSessionInput(input SessionInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	if strings.TrimSpace(input.SpeakerID) == "" {
		vErr.add("speakerId", "speaker is required")
	}
	if strings.TrimSpace(input.RoomID) == "" {
		vErr.add("roomId", "room is required")
	}

	if strings.TrimSpace(input.Date) == "" {
		vErr.add("date", "date is required")
	} else if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		vErr.add("date", "date must be in YYYY-MM-DD form")
	}

	startValid := false
	if strings.TrimSpace(input.StartTime) == "" {
		vErr.add("startTime", "start time is required")
	} else if _, err := time.Parse("15:04", input.StartTime); err != nil {
		vErr.add("startTime", "start time must be in HH:MM form")
	} else {
		startValid = true
	}

	if strings.TrimSpace(input.EndTime) == "" {
		vErr.add("endTime", "end time is required")
	} else if _, err := time.Parse("15:04", input.EndTime); err != nil {
		vErr.add("endTime", "end time must be in HH:MM form")
	} else if startValid && input.EndTime <= input.StartTime {
		vErr.add("endTime", "end time must be after start time")
	}

	return vErr
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
