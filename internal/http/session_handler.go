package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/example/eventflow/internal/application"
	"github.com/example/eventflow/internal/store"
	"github.com/example/eventflow/internal/view"
)

type sessionService interface {
	Create(ctx context.Context, input application.SessionInput) (store.Session, error)
	Update(ctx context.Context, id string, input application.SessionInput) (store.Session, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (view.SessionDetail, error)
	List(ctx context.Context, criteria view.Criteria) (application.SessionList, error)
	ToggleFavorite(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context) (store.Stats, error)
}

type SessionHandler struct {
	service   sessionService
	responder responder
}

func NewSessionHandler(service sessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{service: service, responder: newResponder(logger)}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	session, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, sessionResponse{Session: session})
}

func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sessionID, ok := SessionIDFromContext(r.Context())
	if !ok || strings.TrimSpace(sessionID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSessionID)
		return
	}

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	session, err := h.service.Update(r.Context(), sessionID, req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, sessionResponse{Session: session})
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sessionID, ok := SessionIDFromContext(r.Context())
	if !ok || strings.TrimSpace(sessionID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSessionID)
		return
	}

	if err := h.service.Delete(r.Context(), sessionID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sessionID, ok := SessionIDFromContext(r.Context())
	if !ok || strings.TrimSpace(sessionID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSessionID)
		return
	}

	detail, err := h.service.Get(r.Context(), sessionID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, detail)
}

func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	criteria, err := buildCriteria(r.URL.Query())
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	list, err := h.service.List(r.Context(), criteria)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listSessionsResponse{
		Sessions:      list.Sessions,
		TotalSessions: list.TotalSessions,
	})
}

func (h *SessionHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sessionID, ok := SessionIDFromContext(r.Context())
	if !ok || strings.TrimSpace(sessionID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSessionID)
		return
	}

	favorite, err := h.service.ToggleFavorite(r.Context(), sessionID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, favoriteResponse{SessionID: sessionID, Favorite: favorite})
}

func (h *SessionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, stats)
}

type sessionRequest struct {
	Title       string   `json:"title"`
	SpeakerID   string   `json:"speakerId"`
	RoomID      string   `json:"roomId"`
	Date        string   `json:"date"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	AttendeeIDs []string `json:"attendeeIds"`
}

func (r sessionRequest) toInput() application.SessionInput {
	return application.SessionInput{
		Title:       strings.TrimSpace(r.Title),
		SpeakerID:   strings.TrimSpace(r.SpeakerID),
		RoomID:      strings.TrimSpace(r.RoomID),
		Date:        strings.TrimSpace(r.Date),
		StartTime:   strings.TrimSpace(r.StartTime),
		EndTime:     strings.TrimSpace(r.EndTime),
		Description: r.Description,
		Tags:        append([]string(nil), r.Tags...),
		AttendeeIDs: append([]string(nil), r.AttendeeIDs...),
	}
}

type sessionResponse struct {
	Session store.Session `json:"session"`
}

type listSessionsResponse struct {
	Sessions      []view.SessionCard `json:"sessions"`
	TotalSessions int                `json:"totalSessions"`
}

type favoriteResponse struct {
	SessionID string `json:"sessionId"`
	Favorite  bool   `json:"favorite"`
}

func buildCriteria(values url.Values) (view.Criteria, error) {
	criteria := view.Criteria{
		Search:     strings.TrimSpace(values.Get("search")),
		RoomID:     strings.TrimSpace(values.Get("room")),
		AttendeeID: strings.TrimSpace(values.Get("attendee")),
		TimeOfDay:  view.TimeOfDay(strings.TrimSpace(values.Get("timeOfDay"))),
	}
	if !criteria.TimeOfDay.Valid() {
		return view.Criteria{}, errBadTimeOfDay
	}
	return criteria, nil
}
