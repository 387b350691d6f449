package auth

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const CookieName = "echodraft_session"

type session struct {
	userID  int64
	expires time.Time
}

// Sessions is an in-memory session store. Tokens are opaque UUIDs handed
// out at login and resolved back to a user id on each request.
type Sessions struct {
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]session
}

// NewSessions creates a session store whose tokens expire after ttl.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		ttl:      ttl,
		sessions: make(map[string]session),
	}
}

// Create issues a fresh token for the given user.
func (s *Sessions) Create(userID int64) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = session{userID: userID, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token
}

// Resolve maps a token back to its user id. Expired tokens are dropped.
func (s *Sessions) Resolve(token string) (int64, bool) {
	s.mu.RLock()
	sess, exists := s.sessions[token]
	s.mu.RUnlock()

	if !exists {
		return 0, false
	}
	if time.Now().After(sess.expires) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return 0, false
	}
	return sess.userID, true
}

// Invalidate removes a token, if present.
func (s *Sessions) Invalidate(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// ResolveRequest extracts the session cookie from a request and resolves it.
func (s *Sessions) ResolveRequest(r *http.Request) (int64, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return 0, false
	}
	return s.Resolve(cookie.Value)
}

// SetCookie attaches a session cookie to the response.
func (s *Sessions) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(s.ttl),
	})
}

// ClearCookie expires the session cookie on the client.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
