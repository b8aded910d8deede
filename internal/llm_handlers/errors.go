package llmHandlers

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	ErrRateLimited    ErrorKind = "rate_limited"
	ErrInvalidRequest ErrorKind = "invalid_request"
	ErrUnauthorized   ErrorKind = "unauthorized"
	ErrModelNotFound  ErrorKind = "model_not_found"
	ErrNetwork        ErrorKind = "network"
	ErrUpstream       ErrorKind = "upstream"
)

// ProviderError is a fatal adapter failure. Body carries the vendor's raw
// error payload for diagnostics.
type ProviderError struct {
	Kind     ErrorKind
	Provider Provider
	Status   int
	Body     string
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (http %d): %s", e.Provider, e.Kind, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Body)
}

func newStatusError(provider Provider, status int, body string) *ProviderError {
	return &ProviderError{Kind: classifyStatus(status), Provider: provider, Status: status, Body: body}
}

func classifyStatus(status int) ErrorKind {
	switch {
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status == http.StatusBadRequest:
		return ErrInvalidRequest
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrModelNotFound
	default:
		return ErrUpstream
	}
}

// IsKind reports whether err is a ProviderError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Kind == kind
}
