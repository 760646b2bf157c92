// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticketapi is a typed client for the ticketing API that owns
// inventory, orders, and payment codes for the storefront.
//
// The client is stateless: every method is a single HTTPS request with
// bearer-token authentication and no local retry. Sequencing calls into
// a purchase is the job of the checkout package.
//
// Failures are *Error values whose Kind is one of the sentinel errors
// (ErrUpstreamUnavailable, ErrReservationFailed, ErrFinalizeFailed), so
// callers branch with errors.Is and show Message to the buyer.
// Construction fails with ErrConfigMissing when the base URL or token
// is absent. A payment that has not arrived yet is not an error:
// VerifyPayment reports it through PaymentStatus.Paid.
package ticketapi
