package out

import (
	"context"

	"writerly/internal/modules/auth/domain"
)

type Gateway interface {
	Register(ctx context.Context, username, email, password string) (domain.User, error)
	// Login returns the user only when the API includes it in the token response.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Me resolves the account behind token, which is not stored yet.
	Me(ctx context.Context, token string) (domain.User, error)
}

type SessionStore interface {
	Load(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}

type TokenInspector interface {
	Inspect(token string) domain.Claims
}
