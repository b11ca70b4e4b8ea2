package event_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"club-events/internal/auth"
	"club-events/internal/events"
	"club-events/internal/logger"
	"club-events/internal/models"
	"club-events/internal/utils"
)

type Handler struct {
	EventService *events.Service
	Logger       *logger.Logger
}

// ListEvents is the public listing: every club's events, ascending by date.
// GET /api/events
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	evts, err := h.EventService.ListAll(r.Context())
	if err != nil {
		h.Logger.Error("EVENTS", fmt.Sprintf("Failed to list events: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load events")
		return
	}
	utils.WriteJSON(w, http.StatusOK, evts)
}

// ListMine returns the authenticated club's own events.
// GET /api/events/mine
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	evts, err := h.EventService.ListOwn(r.Context(), auth.ClubID(r.Context()))
	if err != nil {
		h.Logger.Error("EVENTS", fmt.Sprintf("Failed to list own events: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load events")
		return
	}
	utils.WriteJSON(w, http.StatusOK, evts)
}

// CreateEvent inserts an event owned by the session's club.
// POST /api/events -> 201 + created row
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := h.EventService.Create(r.Context(), auth.ClubID(r.Context()), req)
	if err != nil {
		h.writeServiceError(w, "create", err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, event)
}

// UpdateEvent performs a partial merge into an owned event.
// PUT /api/events/{id} -> updated row, 404/403 on ownership failure
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := h.EventService.Update(r.Context(), auth.ClubID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeServiceError(w, "update", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, event)
}

// DeleteEvent removes an owned event.
// DELETE /api/events/{id} -> {ok: true}, 404/403 on ownership failure
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.EventService.Delete(r.Context(), auth.ClubID(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, "delete", err)
		return
	}
	utils.WriteOK(w)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, events.ErrValidation):
		utils.WriteError(w, http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, events.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, events.ErrForbidden):
		utils.WriteError(w, http.StatusForbidden, "Forbidden")
	default:
		h.Logger.Error("EVENTS", fmt.Sprintf("Failed to %s event: %v", op, err))
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong")
	}
}
