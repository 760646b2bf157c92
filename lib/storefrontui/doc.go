// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

// Package storefrontui is the interactive terminal storefront: a
// bubbletea model that renders a checkout.Controller snapshot one
// stage at a time and turns key presses into controller intents.
//
// The model never edits session state itself. Every change goes
// through the controller, and the view is redrawn from a fresh
// Snapshot whenever the controller signals a change (intents, gateway
// responses, and countdown ticks alike).
//
// Layout per stage:
//
//	browsing          event header, blurb, ticket listing (/ filters)
//	date-selection    one row per event day with remaining stock, quantity
//	contact-info      name, email, and WhatsApp inputs
//	confirmation      order summary
//	payment           payment code and MM:SS countdown
//	payment-not-done  notice that no payment was recorded yet
//	thank-you         upstream confirmation message
package storefrontui
