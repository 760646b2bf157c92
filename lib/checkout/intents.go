// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package checkout

import (
	"regexp"
	"strings"

	"github.com/popuweekendclub/storefront/lib/catalog"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SelectCategory starts a new purchase of category. Valid from
// Browsing. The previous session is discarded and the availability
// fetch for the date picker begins.
func (controller *Controller) SelectCategory(category catalog.Category) (*Pending, error) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.session.Stage != Browsing {
		return nil, ErrInvalidTransition
	}
	product, ok := catalog.Lookup(category)
	if !ok {
		return nil, invalid("ticket category " + string(category) + " is not on sale")
	}

	controller.resetLocked()
	controller.session.Category = product.Category
	controller.session.UnitPrice = product.Price
	controller.setStageLocked(DateSelection)
	pending := controller.fetchAvailabilityLocked()
	controller.notifyLocked()
	return pending, nil
}

// RefreshAvailability re-runs the availability fetch. Valid from
// DateSelection when no other call is in flight.
func (controller *Controller) RefreshAvailability() (*Pending, error) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.session.Stage != DateSelection {
		return nil, ErrInvalidTransition
	}
	if controller.inFlight != "" {
		return nil, ErrBusy
	}
	pending := controller.fetchAvailabilityLocked()
	controller.notifyLocked()
	return pending, nil
}

// ToggleDate selects day, or clears the selection when day is already
// selected. Selecting a date replaces any previous selection. Dates
// known to be sold out or behind a full waiting room are refused.
func (controller *Controller) ToggleDate(day catalog.Day) error {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.session.Stage != DateSelection {
		return ErrInvalidTransition
	}
	if controller.inFlight == opReserve {
		return ErrBusy
	}

	if controller.session.SelectedDate == day {
		controller.session.SelectedDate = 0
		controller.notifyLocked()
		return nil
	}
	if !catalog.ValidDay(day) {
		return controller.failLocked(invalid("the event does not run on " + catalog.FormatDay(day)))
	}
	if record, ok := controller.session.AvailabilityFor(day); ok {
		if record.SoldOut {
			return controller.failLocked(invalid(catalog.FormatDay(day) + " is sold out"))
		}
		if record.WaitingRoomFull {
			return controller.failLocked(invalid("the waiting room for " + catalog.FormatDay(day) + " is full"))
		}
	}

	controller.session.SelectedDate = day
	controller.session.LastError = nil
	controller.notifyLocked()
	return nil
}

// SetQuantity sets the quantity, clamped to [1, max quantity]. Valid
// only in DateSelection: once the reservation is placed the upstream
// holds that many tickets, and finalize must send the same count.
func (controller *Controller) SetQuantity(quantity int) error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.setQuantityLocked(quantity)
}

// IncreaseQuantity adds one ticket, up to the max quantity.
func (controller *Controller) IncreaseQuantity() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.setQuantityLocked(controller.session.Quantity + 1)
}

// DecreaseQuantity removes one ticket, down to one.
func (controller *Controller) DecreaseQuantity() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.setQuantityLocked(controller.session.Quantity - 1)
}

func (controller *Controller) setQuantityLocked(quantity int) error {
	if controller.session.Stage != DateSelection {
		return ErrInvalidTransition
	}
	if controller.inFlight == opReserve {
		return ErrBusy
	}
	controller.session.Quantity = min(max(quantity, 1), controller.maxQuantity)
	controller.notifyLocked()
	return nil
}

// SetContactField updates one contact detail. Valid in ContactInfo.
func (controller *Controller) SetContactField(field ContactField, value string) error {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.session.Stage != ContactInfo {
		return ErrInvalidTransition
	}
	switch field {
	case FieldName:
		controller.session.Contact.Name = value
	case FieldEmail:
		controller.session.Contact.Email = value
	case FieldWhatsApp:
		controller.session.Contact.WhatsApp = value
	default:
		return invalid("unknown contact field")
	}
	controller.notifyLocked()
	return nil
}

// Proceed advances the session. From DateSelection it reserves the
// selected date upstream; from ContactInfo it validates the contact
// details and moves to Confirmation.
func (controller *Controller) Proceed() (*Pending, error) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	switch controller.session.Stage {
	case DateSelection:
		if controller.inFlight != "" {
			return nil, ErrBusy
		}
		if controller.session.SelectedDate == 0 {
			return nil, controller.failLocked(invalid("please choose a date"))
		}
		eventID, ok := controller.session.EventID()
		if !ok {
			return nil, controller.failLocked(invalid("this ticket is not sold on " + catalog.FormatDay(controller.session.SelectedDate)))
		}
		pending := controller.reserveLocked(eventID)
		controller.notifyLocked()
		return pending, nil

	case ContactInfo:
		if err := validateContact(controller.session); err != nil {
			return nil, controller.failLocked(err)
		}
		controller.session.LastError = nil
		controller.setStageLocked(Confirmation)
		controller.notifyLocked()
		return completed(), nil
	}
	return nil, ErrInvalidTransition
}

// EditDetails returns from Confirmation to ContactInfo. The hold
// deadline keeps running.
func (controller *Controller) EditDetails() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.session.Stage != Confirmation {
		return ErrInvalidTransition
	}
	if controller.inFlight != "" {
		return ErrBusy
	}
	controller.setStageLocked(ContactInfo)
	controller.notifyLocked()
	return nil
}

// Confirm submits the order details upstream. Valid from
// Confirmation. Success moves to Payment with the payment code.
func (controller *Controller) Confirm() (*Pending, error) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.session.Stage != Confirmation {
		return nil, ErrInvalidTransition
	}
	if controller.inFlight != "" {
		return nil, ErrBusy
	}
	if err := validateContact(controller.session); err != nil {
		return nil, controller.failLocked(err)
	}
	pending := controller.finalizeLocked()
	controller.notifyLocked()
	return pending, nil
}

// CompletePayment asks the upstream whether the order has been paid.
// Valid from Payment. Moves to ThankYou when paid, PaymentNotDone when
// no payment has been recorded yet.
func (controller *Controller) CompletePayment() (*Pending, error) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.session.Stage != Payment {
		return nil, ErrInvalidTransition
	}
	if controller.inFlight != "" {
		return nil, ErrBusy
	}
	pending := controller.verifyPaymentLocked()
	controller.notifyLocked()
	return pending, nil
}

// AcknowledgeNotDone returns from PaymentNotDone to Payment.
func (controller *Controller) AcknowledgeNotDone() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.session.Stage != PaymentNotDone {
		return ErrInvalidTransition
	}
	controller.setStageLocked(Payment)
	controller.notifyLocked()
	return nil
}

// Close dismisses the current stage. From DateSelection it cancels the
// purchase; from ThankYou it finishes it. Both return to a fresh
// Browsing session. Stages holding an unpaid reservation cannot be
// closed: the buyer proceeds or lets the hold expire.
func (controller *Controller) Close() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	switch controller.session.Stage {
	case Browsing:
		return nil
	case DateSelection, ThankYou:
		controller.resetLocked()
		controller.notifyLocked()
		return nil
	}
	return ErrInvalidTransition
}

// failLocked records err as the session's last error and returns it.
func (controller *Controller) failLocked(err error) error {
	controller.session.LastError = err
	controller.notifyLocked()
	return err
}

func validateContact(session Session) error {
	contact := session.Contact
	if strings.TrimSpace(contact.Name) == "" ||
		strings.TrimSpace(contact.Email) == "" ||
		strings.TrimSpace(contact.WhatsApp) == "" {
		return invalid("please fill in every field")
	}
	if !emailPattern.MatchString(strings.TrimSpace(contact.Email)) {
		return invalid("email address is invalid")
	}
	if session.SelectedDate == 0 {
		return invalid("please choose a date")
	}
	return nil
}
