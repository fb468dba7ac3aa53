package dto

import "time"

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type UserOutput struct {
	ID       string
	Username string
	Email    string
}

type StatusOutput struct {
	Authenticated bool
	User          UserOutput
	Subject       string
	ExpiresAt     time.Time
	TokenOpaque   bool
}
