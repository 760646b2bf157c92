// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package checkout

import (
	"slices"
	"time"

	"github.com/popuweekendclub/storefront/lib/catalog"
	"github.com/popuweekendclub/storefront/lib/ticketapi"
)

// ContactField names one of the buyer's contact details.
type ContactField int

const (
	FieldName ContactField = iota
	FieldEmail
	FieldWhatsApp
)

func (field ContactField) String() string {
	switch field {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldWhatsApp:
		return "whatsapp"
	}
	return "unknown"
}

// Contact is the buyer's contact details.
type Contact struct {
	Name     string
	Email    string
	WhatsApp string
}

// Session is one checkout attempt. The controller owns the live
// session; callers only ever see copies inside a Snapshot.
type Session struct {
	Stage Stage

	Category  catalog.Category
	UnitPrice int64

	// SelectedDate is 0 when no date is selected.
	SelectedDate catalog.Day

	// Quantity is always within [1, max quantity].
	Quantity int

	Contact Contact

	// Reservation is the zero value unless Stage.HoldsReservation().
	Reservation ticketapi.Reservation

	// Deadline is when the hold expires. Zero unless a reservation
	// exists.
	Deadline time.Time

	// PaymentCode is set once the order is finalized.
	PaymentCode string

	// PaymentMessage is the upstream's confirmation text, set on
	// ThankYou.
	PaymentMessage string

	// Availability is the result of the most recent availability
	// fetch for this session. AvailabilityKnown is false until one
	// succeeds.
	Availability      []ticketapi.Availability
	AvailabilityKnown bool

	// LastError is the most recent recoverable failure, or nil.
	LastError error
}

// HasReservation reports whether the session owns an upstream hold.
func (session Session) HasReservation() bool {
	return session.Reservation.OrderID != ""
}

// Total is the order total at the current quantity.
func (session Session) Total() int64 {
	return catalog.Total(session.UnitPrice, session.Quantity)
}

// EventID is the upstream event for the selected category and date.
// Returns false when no date is selected or the combination is not in
// the catalog.
func (session Session) EventID() (int64, bool) {
	if session.SelectedDate == 0 {
		return 0, false
	}
	return catalog.LookupEventID(session.Category, session.SelectedDate)
}

// AvailabilityFor returns the cached availability of the session's
// category on day.
func (session Session) AvailabilityFor(day catalog.Day) (ticketapi.Availability, bool) {
	if !session.AvailabilityKnown {
		return ticketapi.Availability{}, false
	}
	eventID, ok := catalog.LookupEventID(session.Category, day)
	if !ok {
		return ticketapi.Availability{}, false
	}
	for _, record := range session.Availability {
		if record.EventID == eventID {
			return record, true
		}
	}
	return ticketapi.Availability{}, false
}

func (session Session) clone() Session {
	session.Availability = slices.Clone(session.Availability)
	return session
}

// Snapshot is a consistent, read-only view of the controller.
type Snapshot struct {
	Session

	// RemainingSeconds is the time left on the hold, rounded up. Zero
	// outside the stages where the hold can expire.
	RemainingSeconds int

	// Busy is true while a gateway call is in flight.
	Busy bool

	// MaxQuantity is the configured quantity ceiling.
	MaxQuantity int
}

// LastErrorMessage renders LastError for the buyer, or "" when there
// is none.
func (snapshot Snapshot) LastErrorMessage() string {
	return ErrorMessage(snapshot.LastError)
}
