package domain

import "time"

// SessionTTL is the fixed validity window of a session token.
const SessionTTL = 2 * time.Hour

// Session is a short-lived credential record keyed by an opaque random
// token. Username and Role are a denormalized snapshot of the owning account
// at issuance: authorization decisions read them from here, never from a
// fresh account load. Whenever the owner's role or username changes, every
// session of that owner must be rewritten in the same transaction; whenever
// the owner leaves the active state or is removed, every session must be
// deleted in the same transaction.
type Session struct {
	Token      string
	Username   string
	Role       Role
	ValidFrom  time.Time
	ValidUntil time.Time
}

// NewSession mints a session for the given account snapshot with the fixed
// validity window starting at now. The token itself is supplied by the
// caller (a fresh 128-bit random id).
func NewSession(token, username string, role Role, now time.Time) Session {
	return Session{
		Token:      token,
		Username:   username,
		Role:       role,
		ValidFrom:  now,
		ValidUntil: now.Add(SessionTTL),
	}
}

// ExpiredAt reports whether the session is past its validity window at the
// given instant.
func (s Session) ExpiredAt(now time.Time) bool {
	return now.After(s.ValidUntil)
}
