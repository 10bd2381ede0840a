package application_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/eventflow/internal/application"
	"github.com/example/eventflow/internal/notify"
	"github.com/example/eventflow/internal/store"
	"github.com/example/eventflow/internal/testfixtures"
	"github.com/example/eventflow/internal/view"
)

type recordingNotifier struct {
	mu            sync.Mutex
	notifications []notify.Notification
}

func (r *recordingNotifier) Notify(ctx context.Context, n notify.Notification) {
	r.mu.Lock()
	r.notifications = append(r.notifications, n)
	r.mu.Unlock()
}

func (r *recordingNotifier) last(t *testing.T) notify.Notification {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notifications) == 0 {
		t.Fatal("expected a notification")
	}
	return r.notifications[len(r.notifications)-1]
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notifications)
}

type sessionServiceFixture struct {
	service  *application.SessionService
	store    *store.Store
	notifier *recordingNotifier
	clock    *testfixtures.Clock
}

func newSessionServiceFixture(t *testing.T) sessionServiceFixture {
	t.Helper()

	snap := store.Snapshot{
		Attendees: []store.Attendee{
			{ID: "attendee-1", Name: "Sarah Chen", Email: "sarah.chen@example.com"},
			{ID: "attendee-2", Name: "Marcus Williams", Email: "marcus.w@example.com"},
		},
		Speakers: []store.Speaker{
			{ID: "speaker-1", Name: "Dr. Sarah Chen", Title: "AI Research Lead"},
		},
		Rooms: []store.Room{
			{ID: "room-1", Name: "Main Auditorium", Color: store.ColorIndigo},
		},
	}

	catalog, err := store.New(snap, nil, nil)
	if err != nil {
		t.Fatalf("store.New returned error: %v", err)
	}

	notifier := &recordingNotifier{}
	clock := testfixtures.NewClock(time.Time{})
	ids := testfixtures.NewIDGenerator("session")

	service := application.NewSessionService(catalog, notifier, ids.NextFunc(), clock.NowFunc(), nil)
	return sessionServiceFixture{service: service, store: catalog, notifier: notifier, clock: clock}
}

func validSessionInput() application.SessionInput {
	return application.SessionInput{
		Title:       "The Future of AI",
		SpeakerID:   "speaker-1",
		RoomID:      "room-1",
		Date:        "2025-12-15",
		StartTime:   "09:00",
		EndTime:     "10:30",
		Description: "Keynote on neural architectures.",
		Tags:        []string{"AI", "Keynote"},
		AttendeeIDs: []string{"attendee-1", "attendee-2"},
	}
}

func TestSessionService_Create(t *testing.T) {
	fx := newSessionServiceFixture(t)

	session, err := fx.service.Create(context.Background(), validSessionInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if session.ID != "session-1" {
		t.Fatalf("session ID = %q", session.ID)
	}
	if !session.CreatedAt.Equal(testfixtures.ReferenceTime()) {
		t.Fatalf("CreatedAt = %v", session.CreatedAt)
	}
	if session.LastUpdated != nil {
		t.Fatal("LastUpdated must stay unset on create")
	}

	got := fx.notifier.last(t)
	if got.Title != "New Session Added" {
		t.Fatalf("notification title = %q", got.Title)
	}
	if got.Body != `"The Future of AI" has been added to the schedule.` {
		t.Fatalf("notification body = %q", got.Body)
	}
	if got.Tag != "session-new-session-1" {
		t.Fatalf("notification tag = %q", got.Tag)
	}
}

func TestSessionService_Create_Validation(t *testing.T) {
	fx := newSessionServiceFixture(t)

	cases := []struct {
		name   string
		mutate func(*application.SessionInput)
		field  string
	}{
		{"missing title", func(in *application.SessionInput) { in.Title = "  " }, "title"},
		{"missing speaker", func(in *application.SessionInput) { in.SpeakerID = "" }, "speakerId"},
		{"missing room", func(in *application.SessionInput) { in.RoomID = "" }, "roomId"},
		{"missing date", func(in *application.SessionInput) { in.Date = "" }, "date"},
		{"malformed date", func(in *application.SessionInput) { in.Date = "15-12-2025" }, "date"},
		{"malformed start", func(in *application.SessionInput) { in.StartTime = "9am" }, "startTime"},
		{"missing end", func(in *application.SessionInput) { in.EndTime = "" }, "endTime"},
		{"end before start", func(in *application.SessionInput) { in.EndTime = "08:00" }, "endTime"},
		{"end equals start", func(in *application.SessionInput) { in.EndTime = "09:00" }, "endTime"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validSessionInput()
			tc.mutate(&input)

			_, err := fx.service.Create(context.Background(), input)
			var vErr *application.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := vErr.FieldErrors[tc.field]; !ok {
				t.Fatalf("expected error on field %q, got %v", tc.field, vErr.FieldErrors)
			}
		})
	}

	if fx.notifier.count() != 0 {
		t.Fatalf("failed creates must not notify, got %d notifications", fx.notifier.count())
	}
}

func TestSessionService_Create_DanglingReference(t *testing.T) {
	fx := newSessionServiceFixture(t)

	input := validSessionInput()
	input.SpeakerID = "ghost"

	_, err := fx.service.Create(context.Background(), input)
	if !errors.Is(err, application.ErrDanglingReference) {
		t.Fatalf("expected dangling reference error, got %v", err)
	}
	if fx.notifier.count() != 0 {
		t.Fatal("failed create must not notify")
	}
}

func TestSessionService_Update(t *testing.T) {
	fx := newSessionServiceFixture(t)

	created, err := fx.service.Create(context.Background(), validSessionInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	edited := fx.clock.Advance(45 * time.Minute)

	input := validSessionInput()
	input.Title = "The Future of AI: Revised"
	updated, err := fx.service.Update(context.Background(), created.ID, input)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.LastUpdated == nil || !updated.LastUpdated.Equal(edited) {
		t.Fatalf("LastUpdated = %v, want %v", updated.LastUpdated, edited)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("CreatedAt must be preserved on update")
	}

	got := fx.notifier.last(t)
	if got.Title != "Session Updated" {
		t.Fatalf("notification title = %q", got.Title)
	}
	// The body names the title as it was before the edit.
	if got.Body != `"The Future of AI" has been updated. Check the latest details.` {
		t.Fatalf("notification body = %q", got.Body)
	}
	if got.Tag != "session-"+created.ID {
		t.Fatalf("notification tag = %q", got.Tag)
	}
}

func TestSessionService_Update_NotFound(t *testing.T) {
	fx := newSessionServiceFixture(t)

	_, err := fx.service.Update(context.Background(), "ghost", validSessionInput())
	if !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSessionService_Delete(t *testing.T) {
	fx := newSessionServiceFixture(t)

	created, err := fx.service.Create(context.Background(), validSessionInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := fx.service.ToggleFavorite(context.Background(), created.ID); err != nil {
		t.Fatalf("ToggleFavorite returned error: %v", err)
	}

	if err := fx.service.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	got := fx.notifier.last(t)
	if got.Title != "Session Cancelled" {
		t.Fatalf("notification title = %q", got.Title)
	}
	if got.Body != `"The Future of AI" has been removed from the schedule.` {
		t.Fatalf("notification body = %q", got.Body)
	}
	if got.Tag != "session-delete-"+created.ID {
		t.Fatalf("notification tag = %q", got.Tag)
	}

	stats, err := fx.service.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.Sessions != 0 || stats.Favorites != 0 {
		t.Fatalf("expected empty schedule after delete, got %+v", stats)
	}
}

func TestSessionService_Delete_NotFound(t *testing.T) {
	fx := newSessionServiceFixture(t)

	err := fx.service.Delete(context.Background(), "ghost")
	if !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if fx.notifier.count() != 0 {
		t.Fatal("failed delete must not notify")
	}
}

func TestSessionService_List(t *testing.T) {
	fx := newSessionServiceFixture(t)

	if _, err := fx.service.Create(context.Background(), validSessionInput()); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	evening := validSessionInput()
	evening.Title = "Closing Keynote"
	evening.StartTime = "17:00"
	evening.EndTime = "18:00"
	evening.AttendeeIDs = []string{"attendee-2"}
	if _, err := fx.service.Create(context.Background(), evening); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	list, err := fx.service.List(context.Background(), view.Criteria{TimeOfDay: view.TimeEvening})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list.Sessions) != 1 || list.Sessions[0].Title != "Closing Keynote" {
		t.Fatalf("filtered sessions = %+v", list.Sessions)
	}
	if list.TotalSessions != 2 {
		t.Fatalf("TotalSessions = %d, want 2", list.TotalSessions)
	}
}

func TestSessionService_Get(t *testing.T) {
	fx := newSessionServiceFixture(t)

	created, err := fx.service.Create(context.Background(), validSessionInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	detail, err := fx.service.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if detail.Card.ID != created.ID {
		t.Fatalf("detail card ID = %q", detail.Card.ID)
	}
	if len(detail.Attendees) != 2 {
		t.Fatalf("detail roster = %d", len(detail.Attendees))
	}

	if _, err := fx.service.Get(context.Background(), "ghost"); !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSessionService_ToggleFavorite(t *testing.T) {
	fx := newSessionServiceFixture(t)

	created, err := fx.service.Create(context.Background(), validSessionInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	state, err := fx.service.ToggleFavorite(context.Background(), created.ID)
	if err != nil || !state {
		t.Fatalf("first toggle = %v, %v", state, err)
	}
	state, err = fx.service.ToggleFavorite(context.Background(), created.ID)
	if err != nil || state {
		t.Fatalf("second toggle = %v, %v", state, err)
	}

	if _, err := fx.service.ToggleFavorite(context.Background(), "ghost"); !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
