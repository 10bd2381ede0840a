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

type speakerService interface {
	Create(ctx context.Context, input application.SpeakerInput) (store.Speaker, error)
	Update(ctx context.Context, id string, input application.SpeakerInput) (store.Speaker, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]store.Speaker, error)
}

type SpeakerHandler struct {
	service   speakerService
	responder responder
}

func NewSpeakerHandler(service speakerService, logger *slog.Logger) *SpeakerHandler {
	return &SpeakerHandler{service: service, responder: newResponder(logger)}
}

func (h *SpeakerHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req speakerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	speaker, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, speakerResponse{Speaker: speaker})
}

func (h *SpeakerHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	speakerID, ok := SpeakerIDFromContext(r.Context())
	if !ok || strings.TrimSpace(speakerID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSpeakerID)
		return
	}

	var req speakerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	speaker, err := h.service.Update(r.Context(), speakerID, req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, speakerResponse{Speaker: speaker})
}

func (h *SpeakerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	speakerID, ok := SpeakerIDFromContext(r.Context())
	if !ok || strings.TrimSpace(speakerID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSpeakerID)
		return
	}

	if err := h.service.Delete(r.Context(), speakerID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *SpeakerHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	speakers, err := h.service.List(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listSpeakersResponse{Speakers: speakers})
}

type speakerRequest struct {
	Name  string  `json:"name"`
	Title string  `json:"title"`
	Bio   *string `json:"bio"`
}

func (r speakerRequest) toInput() application.SpeakerInput {
	return application.SpeakerInput{
		Name:  strings.TrimSpace(r.Name),
		Title: strings.TrimSpace(r.Title),
		Bio:   r.Bio,
	}
}

type speakerResponse struct {
	Speaker store.Speaker `json:"speaker"`
}

type listSpeakersResponse struct {
	Speakers []store.Speaker `json:"speakers"`
}
