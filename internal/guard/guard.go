// Package guard decides whether a navigation may proceed. Decide is
// pure: the caller performs the redirect when a navigation is denied.
package guard

import "github.com/ghaggin/cryptodash/internal/model"

// Decision is the outcome of an access check.
type Decision struct {
	Allow      bool
	RedirectTo string // set when Allow is false
}

// Decide gates a navigation on session state and the target's
// required-role declaration. An absent or empty requiredRoles means
// any authenticated session passes; otherwise any overlap between the
// session's roles and requiredRoles allows the navigation.
func Decide(s *model.Session, requiredRoles []string) Decision {
	if !s.LoggedIn() {
		return Decision{RedirectTo: model.LoginRoute}
	}

	if len(requiredRoles) == 0 {
		return Decision{Allow: true}
	}

	if s.Claims != nil && s.Claims.HasAnyRole(requiredRoles) {
		return Decision{Allow: true}
	}

	return Decision{RedirectTo: model.LoginRoute}
}
