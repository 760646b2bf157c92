// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package checkout

import "fmt"

// Stage is the position of an order session in the purchase flow.
type Stage int

const (
	Browsing Stage = iota
	DateSelection
	ContactInfo
	Confirmation
	Payment
	PaymentNotDone
	ThankYou
)

var stageNames = [...]string{
	Browsing:       "browsing",
	DateSelection:  "date-selection",
	ContactInfo:    "contact-info",
	Confirmation:   "confirmation",
	Payment:        "payment",
	PaymentNotDone: "payment-not-done",
	ThankYou:       "thank-you",
}

func (stage Stage) String() string {
	if stage < 0 || int(stage) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(stage))
	}
	return stageNames[stage]
}

// HoldsReservation reports whether a session in this stage owns an
// upstream reservation.
func (stage Stage) HoldsReservation() bool {
	switch stage {
	case ContactInfo, Confirmation, Payment, PaymentNotDone, ThankYou:
		return true
	}
	return false
}

// expires reports whether the hold deadline applies in this stage.
func (stage Stage) expires() bool {
	return stage.HoldsReservation() && stage != ThankYou
}
