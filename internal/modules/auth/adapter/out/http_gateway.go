package out

import (
	"context"
	"net/http"
	"net/url"

	"writerly/internal/modules/auth/domain"
	authout "writerly/internal/modules/auth/port/out"
	"writerly/internal/platform/httpapi"
)

type HTTPGateway struct {
	client *httpapi.Client
}

func NewHTTPGateway(client *httpapi.Client) authout.Gateway {
	return &HTTPGateway{client: client}
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user"`
}

func (g *HTTPGateway) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	out := domain.User{}
	err := g.client.Do(ctx, httpapi.Request{
		Method:               http.MethodPost,
		Path:                 "/auth/register",
		JSON:                 map[string]string{"username": username, "email": email, "password": password},
		SkipUnauthorizedHook: true,
	}, &out)
	return out, err
}

// Login posts the OAuth2 password form; the API expects the email in the
// username field.
func (g *HTTPGateway) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	resp := tokenResponse{}
	err := g.client.Do(ctx, httpapi.Request{
		Method:               http.MethodPost,
		Path:                 "/auth/login",
		Form:                 url.Values{"username": {email}, "password": {password}},
		SkipUnauthorizedHook: true,
	}, &resp)
	if err != nil {
		return "", nil, err
	}
	if resp.AccessToken == "" {
		return "", nil, &httpapi.APIError{Status: http.StatusBadGateway, Detail: "login response has no access token"}
	}
	return resp.AccessToken, resp.User, nil
}

func (g *HTTPGateway) Me(ctx context.Context, token string) (domain.User, error) {
	out := domain.User{}
	err := g.client.Do(ctx, httpapi.Request{
		Method:               http.MethodGet,
		Path:                 "/profile/me",
		Header:               http.Header{"Authorization": {"Bearer " + token}},
		SkipUnauthorizedHook: true,
	}, &out)
	return out, err
}
