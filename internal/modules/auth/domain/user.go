package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is the persisted login. There is no expiry tracking; a stale
// token only shows up as a 401 from the API.
type Session struct {
	Token string
	User  *User
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Claims are read from the token for display only and never gate a request.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
	Opaque    bool
}

func ValidateRegistration(username, email, password string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("username is required")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return fmt.Errorf("email is invalid: %q", email)
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

func ValidateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}
	return nil
}
