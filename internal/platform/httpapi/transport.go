package httpapi

import (
	"net/http"
	"strings"
)

// TokenSource yields the current bearer token, or "" when logged out.
type TokenSource interface {
	Token() string
}

type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// BearerTransport attaches the session token to every outgoing request.
// The token is read per request so a login or logout takes effect on the
// next call. A request that already carries Authorization is left alone.
type BearerTransport struct {
	Base   http.RoundTripper
	Tokens TokenSource
}

func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if t.Tokens == nil || req.Header.Get("Authorization") != "" {
		return base.RoundTrip(req)
	}
	token := strings.TrimSpace(t.Tokens.Token())
	if token == "" {
		return base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return base.RoundTrip(clone)
}
