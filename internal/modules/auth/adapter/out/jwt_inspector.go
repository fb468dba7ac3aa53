package out

import (
	"github.com/golang-jwt/jwt/v5"

	"writerly/internal/modules/auth/domain"
	authout "writerly/internal/modules/auth/port/out"
)

// JWTInspector decodes claims without verifying the signature. The key
// lives on the server; the result is informational only.
type JWTInspector struct {
	parser *jwt.Parser
}

func NewJWTInspector() authout.TokenInspector {
	return &JWTInspector{parser: jwt.NewParser()}
}

func (i *JWTInspector) Inspect(token string) domain.Claims {
	claims := jwt.MapClaims{}
	if _, _, err := i.parser.ParseUnverified(token, claims); err != nil {
		return domain.Claims{Opaque: true}
	}
	out := domain.Claims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time.UTC()
	}
	return out
}
