package handlers

import (
	"net/http"

	"github.com/wutheringcup/echodraft/internal/auth"
)

// UserResponse is the account view returned after login
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	PlayerID *int64 `json:"player_id"`
}

// handleLogin checks credentials and issues a session cookie
func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.User.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, Unauthorized("Invalid username or password"))
		return
	}

	token := h.Sessions.Create(user.ID)
	h.Sessions.SetCookie(w, token)

	respondOK(w, UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		PlayerID: user.PlayerID,
	})
}

// handleLogout invalidates the session
func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		h.Sessions.Invalidate(cookie.Value)
	}
	auth.ClearCookie(w)
	respondSuccess(w, "Logged out")
}

// handleCurrentUser returns the account behind the session, if any
func (h *Handlers) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	if actor.UserID == 0 {
		respondError(w, Unauthorized("Not logged in"))
		return
	}

	user, err := h.User.GetUser(r.Context(), actor.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		PlayerID: user.PlayerID,
	})
}

// handleCreateUser registers a new account (host only)
func (h *Handlers) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	id, err := h.User.CreateUser(r.Context(), actorFrom(r), req.Username, req.Password, roleFrom(req.Role), req.PlayerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, map[string]int64{"id": id})
}
