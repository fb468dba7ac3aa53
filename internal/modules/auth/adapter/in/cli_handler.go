package in

import (
	"context"

	"writerly/internal/modules/auth/dto"
	authin "writerly/internal/modules/auth/port/in"
)

type CLIHandler struct {
	usecase authin.Usecase
}

func NewCLIHandler(usecase authin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Register(ctx context.Context, username, email, password string) (dto.UserOutput, error) {
	return h.usecase.Register(ctx, dto.RegisterInput{Username: username, Email: email, Password: password})
}

func (h CLIHandler) Login(ctx context.Context, email, password string) (dto.UserOutput, error) {
	return h.usecase.Login(ctx, dto.LoginInput{Email: email, Password: password})
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) IsAuthenticated() bool {
	return h.usecase.IsAuthenticated()
}
