package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	apperrors "writerly/internal/platform/errors"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}

// Parse normalizes a resource id issued by the API. The API keys every
// resource by UUID, so anything else is rejected before a request is made.
func Parse(kind, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %s id is required", apperrors.ErrInvalidInput, kind)
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %s id %q is not a uuid", apperrors.ErrInvalidInput, kind, trimmed)
	}
	return parsed.String(), nil
}
