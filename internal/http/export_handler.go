package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/example/eventflow/internal/export"
	"github.com/example/eventflow/internal/store"
)

type snapshotSource interface {
	Snapshot() store.Snapshot
}

type ExportHandler struct {
	source    snapshotSource
	responder responder
}

func NewExportHandler(source snapshotSource, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{source: source, responder: newResponder(logger)}
}

// Calendar serves the full schedule as an iCalendar document.
func (h *ExportHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.source == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	payload, err := export.Calendar(h.source.Snapshot())
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusInternalServerError, errors.New("failed to render calendar"))
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(payload)); err != nil {
		handlerLogger(r.Context(), h.responder.logger, "ExportHandler", "Calendar").ErrorContext(r.Context(), "failed to write calendar", "error", err)
	}
}
