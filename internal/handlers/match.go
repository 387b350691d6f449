package handlers

import (
	"fmt"
	"net/http"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/wutheringcup/echodraft/internal/services"
)

// handleGetMatch returns the match detail view
func (h *Handlers) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	detail, err := h.Match.GetMatch(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, detail)
}

// handleCreateMatch creates a standalone match (host only)
func (h *Handlers) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req services.MatchCreate
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	match, err := h.Match.CreateMatch(r.Context(), actorFrom(r), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, match)
}

// handleTournamentMatches lists a tournament's matches in bracket order
func (h *Handlers) handleTournamentMatches(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	matches, err := h.Match.ListForTournament(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, matches)
}

// handlePlayerMatches lists the matches a player appears in
func (h *Handlers) handlePlayerMatches(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	matches, err := h.Match.ListForPlayer(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, matches)
}

// handleStartMatch moves a match into its running state (host only)
func (h *Handlers) handleStartMatch(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	match, err := h.Lifecycle.Start(r.Context(), actorFrom(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, match)
}

// handleSubmitTime records one side's clear time
func (h *Handlers) handleSubmitTime(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req SubmitTimeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	match, err := h.Lifecycle.SubmitTime(r.Context(), actorFrom(r), id, sideFrom(req.Side), req.Time)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, match)
}

// handleFinishMatch settles the winner and advances the bracket (host only)
func (h *Handlers) handleFinishMatch(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	match, err := h.Lifecycle.Finish(r.Context(), actorFrom(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, match)
}

// handleMatchQR serves a QR code image linking to the match page
func (h *Handlers) handleMatchQR(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	// Verify the match exists before minting a link to it.
	if _, err := h.Match.GetMatch(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	url := fmt.Sprintf("%s/matches/%d", h.BaseURL, id)
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		respondError(w, InternalError(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// handleGenerateBracket seeds a fresh single-elimination bracket (host only)
func (h *Handlers) handleGenerateBracket(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	// Both fields are optional, so a bare POST is valid.
	var req GenerateBracketRequest
	if err := decodeJSONOptional(r, &req); err != nil {
		respondError(w, err)
		return
	}

	overwrite := true
	if req.Overwrite != nil {
		overwrite = *req.Overwrite
	}

	matches, err := h.Bracket.Generate(r.Context(), actorFrom(r), id, req.Seed, overwrite)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, matches)
}
