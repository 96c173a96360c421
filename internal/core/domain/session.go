package domain

import "time"

// User is the authenticated principal as reported by the identity provider.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the single auth value handed down to every view. Components gate
// on it instead of re-deriving auth state independently.
type Session struct {
	User      *User     `json:"user,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Anonymous returns the unauthenticated session.
func Anonymous() Session {
	return Session{}
}

// Authenticated returns a session for the given user.
func Authenticated(u User, expiresAt time.Time) Session {
	return Session{User: &u, ExpiresAt: expiresAt}
}

// IsAuthenticated reports whether a user is attached and the session has not
// lapsed.
func (s Session) IsAuthenticated() bool {
	if s.User == nil {
		return false
	}
	return s.ExpiresAt.IsZero() || time.Now().Before(s.ExpiresAt)
}

// CanManage reports whether the session may create, archive, delete, or
// publish queries. Read views are open to everyone.
func (s Session) CanManage() bool {
	return s.IsAuthenticated()
}
