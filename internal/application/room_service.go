package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/eventflow/internal/store"
)

// RoomStore captures the entity-store operations needed by the service.
type RoomStore interface {
	AddRoom(ctx context.Context, room store.Room) error
	UpdateRoom(ctx context.Context, room store.Room) error
	DeleteRoom(ctx context.Context, id string) error
	RoomByID(id string) (store.Room, bool)
	Snapshot() store.Snapshot
}

// RoomService orchestrates validation, persistence, and logging for rooms.
type RoomService struct {
	store       RoomStore
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewRoomService constructs a room service with the provided dependencies.
func NewRoomService(st RoomStore, idGenerator func() string, now func() time.Time, logger *slog.Logger) *RoomService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &RoomService{store: st, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *RoomService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RoomService", operation, attrs...)
}

// Create validates input and registers a new room.
func (s *RoomService) Create(ctx context.Context, input RoomInput) (room store.Room, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("room store not configured")
		return
	}

	logger := s.loggerWith(ctx, "Create")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("room_id", room.ID).InfoContext(ctx, "room created")
	}()

	vErr := validateRoomInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	now := s.now()
	room = store.Room{
		ID:        s.idGenerator(),
		Name:      strings.TrimSpace(input.Name),
		Color:     input.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = mapStoreError(s.store.AddRoom(ctx, room)); err != nil {
		return
	}
	return
}

// Update validates input and replaces the editable fields of a room.
func (s *RoomService) Update(ctx context.Context, id string, input RoomInput) (room store.Room, err error) {
	if s == nil || s.store == nil {
		err = fmt.Errorf("room store not configured")
		return
	}

	logger := s.loggerWith(ctx, "Update", "room_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "room updated")
	}()

	existing, ok := s.store.RoomByID(id)
	if !ok {
		err = ErrNotFound
		return
	}

	vErr := validateRoomInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	room = existing
	room.Name = strings.TrimSpace(input.Name)
	room.Color = input.Color
	room.UpdatedAt = s.now()

	if err = mapStoreError(s.store.UpdateRoom(ctx, room)); err != nil {
		return
	}
	return
}

// Delete removes a room unless a session still references it.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("room store not configured")
	}

	logger := s.loggerWith(ctx, "Delete", "room_id", id)
	if err := mapStoreError(s.store.DeleteRoom(ctx, id)); err != nil {
		logger.ErrorContext(ctx, "failed to delete room", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "room deleted")
	return nil
}

// List returns the room catalog in registration order.
func (s *RoomService) List(ctx context.Context) ([]store.Room, error) {
	if s == nil || s.store == nil {
		return nil, nil
	}
	rooms := s.store.Snapshot().Rooms
	s.loggerWith(ctx, "List", "result_count", len(rooms)).InfoContext(ctx, "rooms listed")
	return rooms, nil
}

func validateRoomInput(input RoomInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if input.Color == "" {
		vErr.add("colorTag", "color tag is required")
	} else if !input.Color.Valid() {
		vErr.add("colorTag", "color tag is not in the palette")
	}
	return vErr
}
