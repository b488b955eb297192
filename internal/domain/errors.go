package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart indicates payment was initiated with no cart items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrMissingDraft indicates payment was initiated before the review
	// step completed. Normal UI flow never reaches this.
	ErrMissingDraft = errors.New("checkout draft missing")
	// ErrCheckoutBusy indicates a payment initiation is already in flight
	// for this session.
	ErrCheckoutBusy = errors.New("payment already in progress")
)

// GatewayError wraps a non-success or malformed response from the remote
// commerce API, including network-level failures. Surfaced to the user as
// a retryable message; never retried automatically.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	return e.Message
}

// ValidationErrors maps form field names to human-readable messages.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
