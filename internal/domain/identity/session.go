package identity

import "github.com/google/uuid"

// Session is the identity resolved from a request token. It is rebuilt
// from the signed token on every request; nothing is cached server-side.
// A session is either fully authenticated or Anonymous, never partial.
type Session struct {
	UserID        uuid.UUID
	Name          string
	Email         string
	Role          Role
	Authenticated bool
}

// Anonymous is the session for requests without a verifiable token
func Anonymous() Session {
	return Session{}
}

// NewSession builds an authenticated session from verified token claims
func NewSession(userID uuid.UUID, name, email string, role Role) Session {
	return Session{
		UserID:        userID,
		Name:          name,
		Email:         email,
		Role:          role,
		Authenticated: true,
	}
}

// IsAdmin reports whether the session holds the ADMIN role
func (s Session) IsAdmin() bool {
	return s.Authenticated && s.Role == RoleAdmin
}
