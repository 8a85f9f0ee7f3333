package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/healthtrack/healthtrack-go/internal/middleware"
	"github.com/healthtrack/healthtrack-go/internal/model"
	"github.com/healthtrack/healthtrack-go/internal/service"
)

// LogHandler handles HTTP requests for health log entries.
type LogHandler struct {
	service *service.LogService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(svc *service.LogService) *LogHandler {
	return &LogHandler{service: svc}
}

// HandleSubmit handles POST /api/v1/logs requests.
func (h *LogHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	m, err := h.service.Submit(r.Context(), userID, body)
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, validationResponse(ve))
			return
		}
		slog.Error("saving measurement failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusCreated, m)
}

// HandleList handles GET /api/v1/logs requests. An optional kind query
// parameter narrows the listing to one measurement kind.
func (h *LogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	kind := model.Kind(r.URL.Query().Get("kind"))
	if kind != "" && !model.KnownKind(kind) {
		writeJSON(w, http.StatusBadRequest, errorResponse("unknown kind"))
		return
	}

	logs, err := h.service.List(r.Context(), userID, kind)
	if err != nil {
		slog.Error("listing measurements failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	if logs == nil {
		logs = []model.Measurement{}
	}
	writeJSON(w, http.StatusOK, logs)
}
