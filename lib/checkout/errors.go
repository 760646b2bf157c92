// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package checkout

import (
	"errors"
	"strings"

	"github.com/popuweekendclub/storefront/lib/ticketapi"
)

var (
	// ErrValidationFailed is the kind of every *ValidationError. Local
	// input was incomplete or malformed; nothing was sent upstream.
	ErrValidationFailed = errors.New("validation failed")

	// ErrBusy means a gateway call for this session is still in flight.
	ErrBusy = errors.New("a request is already in progress")

	// ErrInvalidTransition means the intent does not apply to the
	// current stage. It is returned to the caller but never stored as
	// the session's last error.
	ErrInvalidTransition = errors.New("action not available at this stage")

	// ErrHoldExpired is stored as the last error of the fresh session
	// left behind when a hold deadline passes.
	ErrHoldExpired = errors.New("reservation hold expired")

	// ErrStaleResponse is reported by Pending.Wait when a gateway
	// response arrived for a session that had already moved on.
	ErrStaleResponse = errors.New("response discarded: session changed")
)

// ValidationError describes local input that blocks a transition.
type ValidationError struct {
	// Reason is the buyer-facing explanation.
	Reason string
}

func (err *ValidationError) Error() string {
	return "validation failed: " + err.Reason
}

func (err *ValidationError) Unwrap() error { return ErrValidationFailed }

func invalid(reason string) error {
	return &ValidationError{Reason: reason}
}

// ErrorMessage renders err for the buyer: the reason of a validation
// failure, the upstream message of a gateway failure, or err.Error().
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var validationError *ValidationError
	if errors.As(err, &validationError) {
		return validationError.Reason
	}
	var apiError *ticketapi.Error
	if errors.As(err, &apiError) {
		return ticketapi.Message(err)
	}
	message := err.Error()
	if message != "" {
		message = strings.ToUpper(message[:1]) + message[1:]
	}
	return message
}
