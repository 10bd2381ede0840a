package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/eventflow/internal/application"
	"github.com/example/eventflow/internal/store"
)

type attendeeService interface {
	Create(ctx context.Context, input application.AttendeeInput) (store.Attendee, error)
	Update(ctx context.Context, id string, input application.AttendeeInput) (store.Attendee, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]store.Attendee, error)
}

type AttendeeHandler struct {
	service   attendeeService
	responder responder
}

func NewAttendeeHandler(service attendeeService, logger *slog.Logger) *AttendeeHandler {
	return &AttendeeHandler{service: service, responder: newResponder(logger)}
}

func (h *AttendeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req attendeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	attendee, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, attendeeResponse{Attendee: attendee})
}

func (h *AttendeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	attendeeID, ok := AttendeeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(attendeeID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAttendeeID)
		return
	}

	var req attendeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	attendee, err := h.service.Update(r.Context(), attendeeID, req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, attendeeResponse{Attendee: attendee})
}

func (h *AttendeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	attendeeID, ok := AttendeeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(attendeeID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAttendeeID)
		return
	}

	if err := h.service.Delete(r.Context(), attendeeID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *AttendeeHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	attendees, err := h.service.List(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listAttendeesResponse{Attendees: attendees})
}

type attendeeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r attendeeRequest) toInput() application.AttendeeInput {
	return application.AttendeeInput{
		Name:  strings.TrimSpace(r.Name),
		Email: strings.TrimSpace(r.Email),
	}
}

type attendeeResponse struct {
	Attendee store.Attendee `json:"attendee"`
}

type listAttendeesResponse struct {
	Attendees []store.Attendee `json:"attendees"`
}
