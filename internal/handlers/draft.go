package handlers

import (
	"net/http"
	"strings"

	"github.com/wutheringcup/echodraft/internal/models"
)

// sideFrom normalizes a wire side value
func sideFrom(s string) models.Side {
	return models.Side(strings.ToUpper(strings.TrimSpace(s)))
}

// actionTypeFrom normalizes a wire action type value
func actionTypeFrom(s string) models.ActionType {
	return models.ActionType(strings.ToUpper(strings.TrimSpace(s)))
}

// roleFrom normalizes a wire role value
func roleFrom(s string) models.Role {
	return models.Role(strings.ToUpper(strings.TrimSpace(s)))
}

// handleDraftView returns the draft state as the requester may see it
func (h *Handlers) handleDraftView(w http.ResponseWriter, r *http.Request) {
	matchID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	view, err := h.Draft.View(r.Context(), actorFrom(r), matchID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, view)
}

// handleDraftAction applies one ban or pick selection
func (h *Handlers) handleDraftAction(w http.ResponseWriter, r *http.Request) {
	matchID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req DraftActionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	view, err := h.Draft.SubmitAction(r.Context(), actorFrom(r), matchID, sideFrom(req.Side), actionTypeFrom(req.ActionType), req.ResonatorID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, view)
}

// handleDraftReset wipes a match's draft back to the first ban slot
func (h *Handlers) handleDraftReset(w http.ResponseWriter, r *http.Request) {
	matchID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Draft.ResetDraft(r.Context(), actorFrom(r), matchID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Draft reset")
}

// handleDraftCatalog returns the resonators a side may currently select
func (h *Handlers) handleDraftCatalog(w http.ResponseWriter, r *http.Request) {
	matchID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	side := sideFrom(r.URL.Query().Get("side"))
	actionType := actionTypeFrom(r.URL.Query().Get("action_type"))
	allowReselect := r.URL.Query().Get("reselect") == "true"

	resonators, err := h.Draft.AvailableFor(r.Context(), matchID, side, actionType, allowReselect)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, resonators)
}
