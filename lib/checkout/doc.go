// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

// Package checkout drives one buyer through a ticket purchase.
//
// A Controller owns the buyer's order session: the chosen category,
// date, quantity, and contact details, the upstream reservation, the
// hold deadline, and the payment code. Presenters never mutate the
// session. They call intent methods (SelectCategory, ToggleDate,
// Proceed, Confirm, CompletePayment, ...) and render Snapshot values,
// re-reading the snapshot whenever Changes delivers.
//
// # Stages
//
//	Browsing        SelectCategory      -> DateSelection
//	DateSelection   Proceed (reserved)  -> ContactInfo
//	DateSelection   Close               -> Browsing
//	ContactInfo     Proceed (valid)     -> Confirmation
//	Confirmation    EditDetails         -> ContactInfo
//	Confirmation    Confirm (finalized) -> Payment
//	Payment         CompletePayment     -> ThankYou or PaymentNotDone
//	PaymentNotDone  AcknowledgeNotDone  -> Payment
//	ThankYou        Close               -> Browsing
//
// A reservation exists exactly while the session is in ContactInfo,
// Confirmation, Payment, PaymentNotDone, or ThankYou.
//
// # Hold deadline
//
// A successful reservation starts a countdown of the configured hold
// budget. Moving between ContactInfo, Confirmation, and Payment does
// not restart it. When it reaches zero before payment is verified, the
// session collapses to Browsing and the reservation is forgotten.
//
// # Gateway calls
//
// At most one gateway call is in flight per session; intents that
// would start a second one fail with ErrBusy. Calls run on their own
// goroutine and report back through a Pending handle. Every call is
// tagged with the session attempt and, once a reservation exists, its
// order id. A response whose tag no longer matches the session (the
// buyer cancelled, or the hold expired) is discarded.
package checkout
