package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"advancedstats/database"
	"advancedstats/utils"
)

const (
	OrderPlaced = "placed"
	OrderPaid   = "paid"
)

type OrderEvent struct {
	Organizer string `json:"organizer"`
	Event     string `json:"event"`
	Action string `json:"action"`
}

// HandleOrderWebhook drops cached statistics whenever an order is placed or paid.
func (h *Handler) HandleOrderWebhook(w http.ResponseWriter, r *http.Request) {
	var req OrderEvent
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !utils.ValidateSlug(req.Organizer) || !utils.ValidateSlug(req.Event) {
		utils.WriteError(w, http.StatusBadRequest, "organizer and event are required")
		return
	}
	if req.Action != OrderPlaced && req.Action != OrderPaid {
		utils.WriteError(w, http.StatusBadRequest, "action must be placed or paid")
		return
	}

	err := h.Stats.InvalidateEvent(r.Context(), req.Organizer, req.Event)
	if errors.Is(err, database.ErrEventNotFound) {
		utils.WriteError(w, http.StatusNotFound, "event not found")
		return
	}
	if err != nil {
		log.Printf("Invalidating statistics of %s/%s failed: %v", req.Organizer, req.Event, err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to invalidate cache")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
