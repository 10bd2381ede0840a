package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/eventflow/internal/store"
)

// SpeakerStore captures the entity-store operations needed by the service.
type SpeakerStore interface {
	AddSpeaker(ctx context.Context, speaker store.Speaker) error
	UpdateSpeaker(ctx context.Context, speaker store.Speaker) error
	DeleteSpeaker(ctx context.Context, id string) error
	SpeakerByID(id string) (store.Speaker, bool)
	Snapshot() store.Snapshot
}

// SpeakerService orchestrates validation, persistence, and logging for
// speakers.
type SpeakerService struct {
	store       SpeakerStore
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewSpeakerService constructs a speaker service with the provided
// dependencies.
func NewSpeakerService(st SpeakerStore, idGenerator func() string, now func() time.Time, logger *slog.Logger) *SpeakerService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &SpeakerService{store: st, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *SpeakerService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "SpeakerService", operation, attrs...)
}

// Create validates input and registers a new speaker.
func (s *SpeakerService) Create(ctx context.Context, input SpeakerInput) (speaker store.Speaker, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("speaker store not configured")
		return
	}

	logger := s.loggerWith(ctx, "Create")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create speaker", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("speaker_id", speaker.ID).InfoContext(ctx, "speaker created")
	}()

	vErr := validateSpeakerInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	now := s.now()
	speaker = store.Speaker{
		ID:        s.idGenerator(),
		Name:      strings.TrimSpace(input.Name),
		Title:     strings.TrimSpace(input.Title),
		Bio:       normalizeOptionalString(input.Bio),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = mapStoreError(s.store.AddSpeaker(ctx, speaker)); err != nil {
		return
	}
	return
}

// Update validates input and replaces the editable fields of a speaker.
func (s *SpeakerService) Update(ctx context.Context, id string, input SpeakerInput) (speaker store.Speaker, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("speaker store not configured")
		return
	}

	logger := s.loggerWith(ctx, "Update", "speaker_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update speaker", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "speaker updated")
	}()

	existing, ok := s.store.SpeakerByID(id)
	if !ok {
		err = ErrNotFound
		return
	}

	vErr := validateSpeakerInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	speaker = existing
	speaker.Name = strings.TrimSpace(input.Name)
	speaker.Title = strings.TrimSpace(input.Title)
	speaker.Bio = normalizeOptionalString(input.Bio)
	speaker.UpdatedAt = s.now()

	if err = mapStoreError(s.store.UpdateSpeaker(ctx, speaker)); err != nil {
		return
	}
	return
}

// Delete removes a speaker unless a session still references it.
func (s *SpeakerService) Delete(ctx context.Context, id string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("speaker store not configured")
	}

	logger := s.loggerWith(ctx, "Delete", "speaker_id", id)
	if err := mapStoreError(s.store.DeleteSpeaker(ctx, id)); err != nil {
		logger.ErrorContext(ctx, "failed to delete speaker", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "speaker deleted")
	return nil
}

// List returns the speaker catalog in registration order.
func (s *SpeakerService) List(ctx context.Context) ([]store.Speaker, error) {
	if s == nil || s.store == nil {
		return nil, nil
	}
	speakers := s.store.Snapshot().Speakers
	s.loggerWith(ctx, "List", "result_count", len(speakers)).InfoContext(ctx, "speakers listed")
	return speakers, nil
}

func validateSpeakerInput(input SpeakerInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	return vErr
}

func normalizeOptionalString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
