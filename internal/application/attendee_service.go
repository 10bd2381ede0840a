package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/eventflow/internal/store"
)

// AttendeeStore captures the entity-store operations needed by the service.
type AttendeeStore interface {
	AddAttendee(ctx context.Context, attendee store.Attendee) error
	UpdateAttendee(ctx context.Context, attendee store.Attendee) error
	DeleteAttendee(ctx context.Context, id string) error
	AttendeeByID(id string) (store.Attendee, bool)
	Snapshot() store.Snapshot
}

// AttendeeService orchestrates validation, persistence, and logging for
// attendees.
type AttendeeService struct {
	store       AttendeeStore
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewAttendeeService constructs an attendee service with the provided
// dependencies.
func NewAttendeeService(st AttendeeStore, idGenerator func() string, now func() time.Time, logger *slog.Logger) *AttendeeService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &AttendeeService{store: st, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *AttendeeService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AttendeeService", operation, attrs...)
}

// Create validates input and registers a new attendee.
func (s *AttendeeService) Create(ctx context.Context, input AttendeeInput) (attendee store.Attendee, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("attendee store not configured")
		return
	}

	logger := s.loggerWith(ctx, "Create")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create attendee", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("attendee_id", attendee.ID).InfoContext(ctx, "attendee created")
	}()

	vErr := validateAttendeeInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	now := s.now()
	attendee = store.Attendee{
		ID:        s.idGenerator(),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = mapStoreError(s.store.AddAttendee(ctx, attendee)); err != nil {
		return
	}
	return
}

// Update validates input and replaces the editable fields of an attendee.
func (s *AttendeeService) Update(ctx context.Context, id string, input AttendeeInput) (attendee store.Attendee, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("attendee store not configured")
		return
	}

	logger := s.loggerWith(ctx, "Update", "attendee_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update attendee", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "attendee updated")
	}()

	existing, ok := s.store.AttendeeByID(id)
	if !ok {
		err = ErrNotFound
		return
	}

	vErr := validateAttendeeInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	attendee = existing
	attendee.Name = strings.TrimSpace(input.Name)
	attendee.Email = strings.TrimSpace(input.Email)
	attendee.UpdatedAt = s.now()

	if err = mapStoreError(s.store.UpdateAttendee(ctx, attendee)); err != nil {
		return
	}
	return
}

// Delete removes an attendee unless a session still references it.
func (s *AttendeeService) Delete(ctx context.Context, id string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("attendee store not configured")
	}

	logger := s.loggerWith(ctx, "Delete", "attendee_id", id)
	if err := mapStoreError(s.store.DeleteAttendee(ctx, id)); err != nil {
		logger.ErrorContext(ctx, "failed to delete attendee", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "attendee deleted")
	return nil
}

// List returns the attendee catalog in registration order.
func (s *AttendeeService) List(ctx context.Context) ([]store.Attendee, error) {
	if s == nil || s.store == nil {
		return nil, nil
	}
	attendees := s.store.Snapshot().Attendees
	s.loggerWith(ctx, "List", "result_count", len(attendees)).InfoContext(ctx, "attendees listed")
	return attendees, nil
}

func validateAttendeeInput(input AttendeeInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		vErr.add("email", "email is required")
	}
	return vErr
}
