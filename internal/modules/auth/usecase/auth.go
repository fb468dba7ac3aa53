package usecase

import (
	"context"
	"fmt"
	"strings"

	"writerly/internal/modules/auth/domain"
	"writerly/internal/modules/auth/dto"
	authin "writerly/internal/modules/auth/port/in"
	authout "writerly/internal/modules/auth/port/out"
	"writerly/internal/modules/auth/service"
	apperrors "writerly/internal/platform/errors"
)

type Interactor struct {
	store     *service.AuthStore
	gateway   authout.Gateway
	inspector authout.TokenInspector
}

func NewInteractor(store *service.AuthStore, gateway authout.Gateway, inspector authout.TokenInspector) authin.Usecase {
	return &Interactor{store: store, gateway: gateway, inspector: inspector}
}

func (i *Interactor) Register(ctx context.Context, input dto.RegisterInput) (dto.UserOutput, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if err := domain.ValidateRegistration(username, email, input.Password); err != nil {
		return dto.UserOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	user, err := i.gateway.Register(ctx, username, email, input.Password)
	if err != nil {
		return dto.UserOutput{}, err
	}
	return toUserOutput(user), nil
}

func (i *Interactor) Login(ctx context.Context, input dto.LoginInput) (dto.UserOutput, error) {
	email := strings.TrimSpace(input.Email)
	if err := domain.ValidateCredentials(email, input.Password); err != nil {
		return dto.UserOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	token, user, err := i.gateway.Login(ctx, email, input.Password)
	if err != nil {
		return dto.UserOutput{}, err
	}
	if user == nil {
		me, err := i.gateway.Me(ctx, token)
		if err != nil {
			return dto.UserOutput{}, fmt.Errorf("load profile after login: %w", err)
		}
		user = &me
	}
	if user.Email == "" {
		user.Email = email
	}
	if err := i.store.Login(ctx, token, *user); err != nil {
		return dto.UserOutput{}, err
	}
	return toUserOutput(*user), nil
}

func (i *Interactor) Logout(ctx context.Context) error {
	return i.store.Logout(ctx)
}

func (i *Interactor) Status(_ context.Context) (dto.StatusOutput, error) {
	session := i.store.Session()
	if !session.Authenticated() {
		return dto.StatusOutput{}, nil
	}
	out := dto.StatusOutput{Authenticated: true}
	if session.User != nil {
		out.User = toUserOutput(*session.User)
	}
	if i.inspector != nil {
		claims := i.inspector.Inspect(session.Token)
		out.Subject = claims.Subject
		out.ExpiresAt = claims.ExpiresAt
		out.TokenOpaque = claims.Opaque
	}
	return out, nil
}

func (i *Interactor) IsAuthenticated() bool {
	return i.store.IsAuthenticated()
}

func toUserOutput(user domain.User) dto.UserOutput {
	return dto.UserOutput{ID: user.ID, Username: user.Username, Email: user.Email}
}
