package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "writerly/internal/platform/errors"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api %d: %s", e.Status, e.Detail)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return apperrors.ErrUnauthorized
	case http.StatusNotFound:
		return apperrors.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.ErrInvalidInput
	default:
		return nil
	}
}

// Message returns the API's own wording when err carries one, else fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	if err == nil || fallback != "" {
		return fallback
	}
	return err.Error()
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, apperrors.ErrUnauthorized)
}

// parseDetail understands both error shapes the API emits: a plain
// {"detail": "..."} and the validation list {"detail": [{"msg": ...}]}.
func parseDetail(status int, body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var text string
		if err := json.Unmarshal(payload.Detail, &text); err == nil && text != "" {
			return text
		}
		var items []struct {
			Loc []any  `json:"loc"`
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(payload.Detail, &items); err == nil && len(items) > 0 {
			msgs := make([]string, 0, len(items))
			for _, item := range items {
				if len(item.Loc) > 0 {
					msgs = append(msgs, fmt.Sprintf("%v: %s", item.Loc[len(item.Loc)-1], item.Msg))
					continue
				}
				msgs = append(msgs, item.Msg)
			}
			return strings.Join(msgs, "; ")
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", status)
}
