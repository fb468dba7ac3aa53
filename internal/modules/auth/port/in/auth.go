package in

import (
	"context"

	"writerly/internal/modules/auth/dto"
)

type Usecase interface {
	Register(ctx context.Context, input dto.RegisterInput) (dto.UserOutput, error)
	Login(ctx context.Context, input dto.LoginInput) (dto.UserOutput, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (dto.StatusOutput, error)
	IsAuthenticated() bool
}
