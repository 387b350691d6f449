package handlers

import (
	"net/http"

	"github.com/wutheringcup/echodraft/internal/services"
)

// Players

func (h *Handlers) handleGetPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.Player.ListPlayers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, players)
}

func (h *Handlers) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	player, err := h.Player.GetPlayer(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, player)
}

func (h *Handlers) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req PlayerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	id, err := h.Player.CreatePlayer(r.Context(), actorFrom(r), req.DisplayName)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, map[string]int64{"id": id})
}

func (h *Handlers) handleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req PlayerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Player.UpdatePlayer(r.Context(), actorFrom(r), id, req.DisplayName); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Player updated")
}

func (h *Handlers) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Player.DeletePlayer(r.Context(), actorFrom(r), id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

// Resonators

func (h *Handlers) handleGetResonators(w http.ResponseWriter, r *http.Request) {
	resonators, err := h.Resonator.ListResonators(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, resonators)
}

func (h *Handlers) handleCreateResonator(w http.ResponseWriter, r *http.Request) {
	var req services.ResonatorInput
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	id, err := h.Resonator.CreateResonator(r.Context(), actorFrom(r), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, map[string]int64{"id": id})
}

func (h *Handlers) handleUpdateResonator(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req services.ResonatorInput
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Resonator.UpdateResonator(r.Context(), actorFrom(r), id, req); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Resonator updated")
}

func (h *Handlers) handleDeleteResonator(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Resonator.DeleteResonator(r.Context(), actorFrom(r), id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

// Bosses

func (h *Handlers) handleGetBosses(w http.ResponseWriter, r *http.Request) {
	bosses, err := h.Boss.ListBosses(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, bosses)
}

func (h *Handlers) handleCreateBoss(w http.ResponseWriter, r *http.Request) {
	var req BossRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	id, err := h.Boss.CreateBoss(r.Context(), actorFrom(r), req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, map[string]int64{"id": id})
}

func (h *Handlers) handleUpdateBoss(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req BossRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Boss.UpdateBoss(r.Context(), actorFrom(r), id, req.Name); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Boss updated")
}

func (h *Handlers) handleDeleteBoss(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Boss.DeleteBoss(r.Context(), actorFrom(r), id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

// handleLeaderboards returns the best recorded times per boss
func (h *Handlers) handleLeaderboards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.Boss.Leaderboards(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, boards)
}

// Tournaments

func (h *Handlers) handleGetTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.Tournament.ListTournaments(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, tournaments)
}

func (h *Handlers) handleGetTournament(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	tournament, err := h.Tournament.GetTournament(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, tournament)
}

func (h *Handlers) handleCreateTournament(w http.ResponseWriter, r *http.Request) {
	var req TournamentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	id, err := h.Tournament.CreateTournament(r.Context(), actorFrom(r), req.Name, req.Active)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, map[string]int64{"id": id})
}

func (h *Handlers) handleUpdateTournament(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req TournamentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Tournament.UpdateTournament(r.Context(), actorFrom(r), id, req.Name, req.Active); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Tournament updated")
}

func (h *Handlers) handleDeleteTournament(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Tournament.DeleteTournament(r.Context(), actorFrom(r), id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

func (h *Handlers) handleGetRoster(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	players, err := h.Tournament.ListRoster(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, players)
}

func (h *Handlers) handleSetRoster(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req RosterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Tournament.SetRoster(r.Context(), actorFrom(r), id, req.PlayerIDs); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Roster updated")
}
