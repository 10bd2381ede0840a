package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/eventflow/internal/application"
	httptransport "github.com/example/eventflow/internal/http"
	"github.com/example/eventflow/internal/store"
	"github.com/example/eventflow/internal/testfixtures"
)

func newTestServer(t *testing.T) http.Handler {
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
			{ID: "room-2", Name: "Innovation Lab", Color: store.ColorEmerald},
		},
		Sessions: []store.Session{
			{
				ID: "session-1", Title: "The Future of AI",
				SpeakerID: "speaker-1", RoomID: "room-1",
				Date: "2025-12-15", StartTime: "09:00", EndTime: "10:30",
				Description: "Keynote.",
				Tags:        []string{"AI"},
				AttendeeIDs: []string{"attendee-1"},
			},
		},
	}

	catalog, err := store.New(snap, nil, nil)
	if err != nil {
		t.Fatalf("store.New returned error: %v", err)
	}

	ids := testfixtures.NewIDGenerator("id")
	clock := testfixtures.NewClock(time.Time{})

	sessionService := application.NewSessionService(catalog, nil, ids.NextFunc(), clock.NowFunc(), nil)
	attendeeService := application.NewAttendeeService(catalog, ids.NextFunc(), clock.NowFunc(), nil)
	speakerService := application.NewSpeakerService(catalog, ids.NextFunc(), clock.NowFunc(), nil)
	roomService := application.NewRoomService(catalog, ids.NextFunc(), clock.NowFunc(), nil)

	metrics := httptransport.NewMetrics()
	return httptransport.NewRouter(httptransport.RouterConfig{
		Sessions:  httptransport.NewSessionHandler(sessionService, nil),
		Attendees: httptransport.NewAttendeeHandler(attendeeService, nil),
		Speakers:  httptransport.NewSpeakerHandler(speakerService, nil),
		Rooms:     httptransport.NewRoomHandler(roomService, nil),
		Export:    httptransport.NewExportHandler(catalog, nil),
		Metrics:   metrics,
		Middleware: []func(http.Handler) http.Handler{
			httptransport.Instrument(metrics),
		},
	})
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func TestListSessions(t *testing.T) {
	handler := newTestServer(t)

	rec := doRequest(t, handler, http.MethodGet, "/sessions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Sessions []struct {
			ID          string `json:"id"`
			SpeakerName string `json:"speakerName"`
			RoomName    string `json:"roomName"`
			Duration    string `json:"duration"`
		} `json:"sessions"`
		TotalSessions int `json:"totalSessions"`
	}
	decodeBody(t, rec, &resp)

	if len(resp.Sessions) != 1 || resp.TotalSessions != 1 {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Sessions[0].SpeakerName != "Dr. Sarah Chen, AI Research Lead" {
		t.Fatalf("speaker name = %q", resp.Sessions[0].SpeakerName)
	}
	if resp.Sessions[0].Duration != "1h 30m" {
		t.Fatalf("duration = %q", resp.Sessions[0].Duration)
	}
}

func TestListSessions_FilterDistinguishesEmptyFromNoMatch(t *testing.T) {
	handler := newTestServer(t)

	rec := doRequest(t, handler, http.MethodGet, "/sessions?search=quantum", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Sessions      []json.RawMessage `json:"sessions"`
		TotalSessions int               `json:"totalSessions"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Sessions) != 0 || resp.TotalSessions != 1 {
		t.Fatalf("response = %+v", resp)
	}
}

func TestListSessions_RejectsUnknownTimeOfDay(t *testing.T) {
	handler := newTestServer(t)

	rec := doRequest(t, handler, http.MethodGet, "/sessions?timeOfDay=midnight", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCreateSession(t *testing.T) {
	handler := newTestServer(t)

	body := `{
		"title": "New Talk",
		"speakerId": "speaker-1",
		"roomId": "room-2",
		"date": "2025-12-15",
		"startTime": "14:00",
		"endTime": "15:00",
		"tags": ["Backend"],
		"attendeeIds": ["attendee-1", "attendee-2"]
	}`
	rec := doRequest(t, handler, http.MethodPost, "/sessions", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Session struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"session"`
	}
	decodeBody(t, rec, &resp)
	if resp.Session.ID == "" || resp.Session.Title != "New Talk" {
		t.Fatalf("response = %+v", resp)
	}
}

func TestCreateSession_Validation(t *testing.T) {
	handler := newTestServer(t)

	rec := doRequest(t, handler, http.MethodPost, "/sessions", `{"title":""}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		ErrorCode string            `json:"error_code"`
		Errors    map[string]string `json:"errors"`
	}
	decodeBody(t, rec, &resp)
	if resp.ErrorCode != "VALIDATION_FAILED" {
		t.Fatalf("error code = %q", resp.ErrorCode)
	}
	if _, ok := resp.Errors["title"]; !ok {
		t.Fatalf("errors = %v", resp.Errors)
	}
}

func TestCreateSession_BadJSON(t *testing.T) {
	handler := newTestServer(t)

	rec := doRequest(t, handler, http.MethodPost, "/sessions", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGetSession_NotFound(t *testing.T) {
	handler := newTestServer(t)

	rec := doRequest(t, handler, http.MethodGet, "/sessions/ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		ErrorCode string `json:"error_code"`
	}
	decodeBody(t, rec, &resp)
	if resp.ErrorCode != "NOT_FOUND" {
		t.Fatalf("error code = %q", resp.ErrorCode)
	}
}

func TestToggleFavorite(t *testing.T) {
	handler := newTestServer(t)

	rec := doRequest(t, handler, http.MethodPost, "/sessions/session-1/favorite", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		SessionID string `json:"sessionId"`
		Favorite  bool   `json:"favorite"`
	}
	decodeBody(t, rec, &resp)
	if resp.SessionID != "session-1" || !resp.Favorite {
		t.Fatalf("response = %+v", resp)
	}

	rec = doRequest(t, handler, http.MethodPost, "/sessions/session-1/favorite", "")
	decodeBody(t, rec, &resp)
	if resp.Favorite {
		t.Fatal("second toggle must clear the flag")
	}
}

func TestDeleteRoom_InUse(t *testing.T) {
	handler := newTestServer(t)

	rec := doRequest(t, handler, http.MethodDelete, "/rooms/room-1", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		ErrorCode string `json:"error_code"`
	}
	decodeBody(t, rec, &resp)
	if resp.ErrorCode != "IN_USE" {
		t.Fatalf("error code = %q", resp.ErrorCode)
	}
}

func TestDeleteRoom_Unreferenced(t *testing.T) {
	handler := newTestServer(t)

	rec := doRequest(t, handler, http.MethodDelete, "/rooms/room-2", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestStats(t *testing.T) {
	handler := newTestServer(t)

	rec := doRequest(t, handler, http.MethodGet, "/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Sessions  int `json:"sessions"`
		Attendees int `json:"attendees"`
		Speakers  int `json:"speakers"`
		Rooms     int `json:"rooms"`
	}
	decodeBody(t, rec, &resp)
	if resp.Sessions != 1 || resp.Attendees != 2 || resp.Speakers != 1 || resp.Rooms != 2 {
		t.Fatalf("stats = %+v", resp)
	}
}

func TestCreateAttendee(t *testing.T) {
	handler := newTestServer(t)

	rec := doRequest(t, handler, http.MethodPost, "/attendees", `{"name":"Elena","email":"elena@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Attendee struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"attendee"`
	}
	decodeBody(t, rec, &resp)
	if resp.Attendee.ID == "" || resp.Attendee.Name != "Elena" {
		t.Fatalf("response = %+v", resp)
	}
}

func TestCreateRoom_RejectsPaletteViolation(t *testing.T) {
	handler := newTestServer(t)

	rec := doRequest(t, handler, http.MethodPost, "/rooms", `{"name":"New Room","colorTag":"chartreuse"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := newTestServer(t)

	rec := doRequest(t, handler, http.MethodPatch, "/sessions", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); !strings.Contains(allow, http.MethodGet) {
		t.Fatalf("Allow header = %q", allow)
	}
}

func TestExportCalendar(t *testing.T) {
	handler := newTestServer(t)

	rec := doRequest(t, handler, http.MethodGet, "/export/calendar.ics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Fatalf("content type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "BEGIN:VCALENDAR") {
		t.Fatal("missing VCALENDAR envelope")
	}
	if !strings.Contains(body, "SUMMARY:The Future of AI") {
		t.Fatalf("missing session summary in %q", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestServer(t)

	// Generate one instrumented request first.
	doRequest(t, handler, http.MethodGet, "/sessions", "")

	rec := doRequest(t, handler, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Fatal("missing request counter in scrape output")
	}
}
