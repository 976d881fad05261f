// Package claims decodes the payload segment of a bearer credential.
//
// Decoding is deliberately signature-blind: the client trusts the
// issuing backend and uses the claims for UI and routing decisions
// only. Nothing here constitutes authorization enforcement.
package claims

import (
	"fmt"

	"github.com/ghaggin/cryptodash/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

type payload struct {
	Roles     []string `json:"roles"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	jwt.RegisteredClaims
}

// Decode parses a three-segment, base64url-encoded credential and
// returns its claims without verifying the signature. A malformed
// token returns an error; callers degrade to "no session" rather than
// propagating it.
func Decode(token string) (*model.Claims, error) {
	var p payload
	if _, _, err := jwt.NewParser().ParseUnverified(token, &p); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	c := &model.Claims{
		Subject:   p.Subject,
		Roles:     p.Roles,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
	if p.ExpiresAt != nil {
		c.ExpiresAt = p.ExpiresAt.Unix()
	}

	return c, nil
}
