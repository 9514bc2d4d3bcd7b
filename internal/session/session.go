package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const tokenKey = "sid"

// Manager hands out opaque anonymous session tokens via a signed
// cookie. The token has no identity linkage; it only keys favorites.
type Manager struct {
	store      *sessions.CookieStore
	cookieName string
}

// NewManager creates a session manager backed by a cookie store signed
// with secret.
func NewManager(secret, cookieName string, maxAge time.Duration) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store, cookieName: cookieName}
}

// Token returns the caller's session token, or "" when the request
// carries none. Never mutates state.
func (m *Manager) Token(r *http.Request) string {
	session, err := m.store.Get(r, m.cookieName)
	if err != nil {
		// Tampered or stale cookie: treat as no session
		return ""
	}
	token, _ := session.Values[tokenKey].(string)
	return token
}

// EnsureToken returns the caller's session token, minting a fresh one
// and attaching it to the response when absent.
func (m *Manager) EnsureToken(r *http.Request, w http.ResponseWriter) (string, error) {
	session, err := m.store.Get(r, m.cookieName)
	if err != nil {
		// Start over with a clean session rather than failing the request
		session, _ = m.store.New(r, m.cookieName)
	}

	if token, ok := session.Values[tokenKey].(string); ok && token != "" {
		return token, nil
	}

	token := uuid.NewString()
	session.Values[tokenKey] = token
	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return token, nil
}
