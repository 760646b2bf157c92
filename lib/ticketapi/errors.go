// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package ticketapi

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfigMissing means the client was built without a base URL
	// or token. Nothing was sent.
	ErrConfigMissing = errors.New("ticketing API configuration is missing")

	// ErrUpstreamUnavailable covers transport failures and non-2xx
	// responses that are not a rejection of the request itself.
	ErrUpstreamUnavailable = errors.New("ticketing API unavailable")

	// ErrReservationFailed means the upstream refused to hold a slot,
	// typically because the event is sold out.
	ErrReservationFailed = errors.New("reservation failed")

	// ErrFinalizeFailed means the upstream refused the order details.
	ErrFinalizeFailed = errors.New("order confirmation failed")
)

// Error describes a failed ticketing API call.
type Error struct {
	// Kind is one of the sentinel errors above.
	Kind error

	// Op names the operation, e.g. "create reservation".
	Op string

	// StatusCode is the HTTP status, or 0 when no response arrived.
	StatusCode int

	// Message is the upstream's description of the failure, suitable
	// for showing to the buyer.
	Message string

	// Err is the transport error when no response arrived.
	Err error
}

func (err *Error) Error() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "ticketapi: %s", err.Op)
	if err.StatusCode != 0 {
		fmt.Fprintf(&builder, ": HTTP %d", err.StatusCode)
	}
	switch {
	case err.Message != "":
		fmt.Fprintf(&builder, ": %s", err.Message)
	case err.Err != nil:
		fmt.Fprintf(&builder, ": %v", err.Err)
	default:
		fmt.Fprintf(&builder, ": %v", err.Kind)
	}
	return builder.String()
}

// Unwrap exposes both the kind and the transport cause, so
// errors.Is(err, ErrUpstreamUnavailable) and
// errors.Is(err, context.DeadlineExceeded) both work.
func (err *Error) Unwrap() []error {
	if err.Err == nil {
		return []error{err.Kind}
	}
	return []error{err.Kind, err.Err}
}

// Message returns the buyer-facing description of err: the upstream
// message for an *Error that carries one, otherwise err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiError *Error
	if errors.As(err, &apiError) {
		if apiError.Message != "" {
			return apiError.Message
		}
		if apiError.Err != nil {
			return apiError.Kind.Error() + ": " + apiError.Err.Error()
		}
		return apiError.Kind.Error()
	}
	return err.Error()
}

// StatusCode returns the HTTP status of a failed call, or 0.
func StatusCode(err error) int {
	var apiError *Error
	if errors.As(err, &apiError) {
		return apiError.StatusCode
	}
	return 0
}

// isNoPaymentLog reports whether an upstream error message means the
// order has no payment recorded yet. The upstream signals this only in
// free text, so this is the one place that text is matched.
func isNoPaymentLog(message string) bool {
	return strings.Contains(strings.ToLower(message), "no payment log")
}
