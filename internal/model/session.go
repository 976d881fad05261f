package model

import "time"

// LoginRoute is where unauthenticated navigation is redirected.
const LoginRoute = "/login"

// Claims holds the fields decoded from a credential's payload segment.
//
// Claims are advisory only: the client never verifies the token
// signature, so decoded roles gate UI navigation and nothing else.
// Protected resources must re-verify the credential server-side.
type Claims struct {
	Subject   string
	Roles     []string
	ExpiresAt int64 // unix seconds, 0 when absent
	Email     string
	FirstName string
	LastName  string
}

// Expired reports whether the claims carry an expiry in the past.
// Comparison is at whole-second granularity; absent expiry never expires.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != 0 && c.ExpiresAt < now.Unix()
}

// HasAnyRole reports whether any of the given roles is present.
func (c *Claims) HasAnyRole(roles []string) bool {
	for _, want := range roles {
		for _, have := range c.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Session is the in-memory view of the active credential. Claims are
// always recomputed from Token, never persisted.
type Session struct {
	Token    string
	Username string
	Claims   *Claims
}

// LoggedIn reports whether the session holds a credential.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

// Roles returns the decoded role set, or nil for an empty session.
func (s *Session) Roles() []string {
	if s == nil || s.Claims == nil {
		return nil
	}
	return s.Claims.Roles
}
