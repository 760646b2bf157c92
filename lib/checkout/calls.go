// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package checkout

import (
	"github.com/popuweekendclub/storefront/lib/catalog"
	"github.com/popuweekendclub/storefront/lib/ticketapi"
)

// Gateway operation names, recorded in inFlight and in logs.
const (
	opAvailability = "check availability"
	opReserve      = "create reservation"
	opFinalize     = "finalize order"
	opVerify       = "verify payment"
)

// callTag identifies the session a gateway call was started for.
type callTag struct {
	op      string
	attempt uint64
	orderID string
	stage   Stage
}

// beginLocked marks op as in flight and returns its tag.
func (controller *Controller) beginLocked(op string) callTag {
	controller.inFlight = op
	controller.session.LastError = nil
	return callTag{
		op:      op,
		attempt: controller.attempt,
		orderID: controller.session.Reservation.OrderID,
		stage:   controller.session.Stage,
	}
}

// finishLocked reports whether the response for tag still belongs to
// the live session. On true the call is no longer in flight; on false
// the response must be dropped.
func (controller *Controller) finishLocked(tag callTag) bool {
	current := controller.session
	if tag.attempt != controller.attempt ||
		tag.orderID != current.Reservation.OrderID ||
		tag.stage != current.Stage {
		controller.logger.Debug("discarding stale gateway response",
			"op", tag.op,
			"order_id", tag.orderID,
			"stage", current.Stage.String(),
		)
		return false
	}
	controller.inFlight = ""
	return true
}

func (controller *Controller) fetchAvailabilityLocked() *Pending {
	tag := controller.beginLocked(opAvailability)
	pending := newPending()
	controller.calls.Go(func() {
		availability, err := controller.gateway.CheckAvailability(controller.ctx)

		controller.mu.Lock()
		defer controller.mu.Unlock()
		if !controller.finishLocked(tag) {
			pending.complete(ErrStaleResponse)
			return
		}
		defer controller.notifyLocked()
		if err != nil {
			controller.session.LastError = err
			pending.complete(err)
			return
		}

		controller.session.Availability = availability
		controller.session.AvailabilityKnown = true
		if day := controller.session.SelectedDate; day != 0 {
			if record, ok := controller.session.AvailabilityFor(day); ok && (record.SoldOut || record.WaitingRoomFull) {
				controller.session.SelectedDate = 0
				controller.session.LastError = invalid(catalog.FormatDay(day) + " is no longer available")
			}
		}
		pending.complete(nil)
	})
	return pending
}

func (controller *Controller) reserveLocked(eventID int64) *Pending {
	tag := controller.beginLocked(opReserve)
	quantity := controller.session.Quantity
	pending := newPending()
	controller.calls.Go(func() {
		reservation, err := controller.gateway.CreateReservation(controller.ctx, eventID, quantity)

		controller.mu.Lock()
		defer controller.mu.Unlock()
		if !controller.finishLocked(tag) {
			pending.complete(ErrStaleResponse)
			return
		}
		defer controller.notifyLocked()
		if err != nil {
			controller.session.LastError = err
			pending.complete(err)
			return
		}

		controller.session.Reservation = reservation
		controller.startCountdownLocked()
		controller.setStageLocked(ContactInfo)
		pending.complete(nil)
	})
	return pending
}

func (controller *Controller) finalizeLocked() *Pending {
	tag := controller.beginLocked(opFinalize)
	session := controller.session
	eventID, _ := session.EventID()
	request := ticketapi.FinalizeRequest{
		Name:       session.Contact.Name,
		Email:      session.Contact.Email,
		WhatsApp:   session.Contact.WhatsApp,
		TicketType: catalog.TicketType(session.Category),
		Quantity:   session.Quantity,
		EventID:    eventID,
		DateTicket: catalog.FormatDay(session.SelectedDate),
		TotalPaid:  session.Total(),
	}
	pending := newPending()
	controller.calls.Go(func() {
		finalized, err := controller.gateway.FinalizeOrder(controller.ctx, tag.orderID, request)

		controller.mu.Lock()
		defer controller.mu.Unlock()
		if !controller.finishLocked(tag) {
			pending.complete(ErrStaleResponse)
			return
		}
		defer controller.notifyLocked()
		if err != nil {
			controller.session.LastError = err
			pending.complete(err)
			return
		}

		controller.session.PaymentCode = finalized.PaymentCode
		controller.setStageLocked(Payment)
		pending.complete(nil)
	})
	return pending
}

func (controller *Controller) verifyPaymentLocked() *Pending {
	tag := controller.beginLocked(opVerify)
	pending := newPending()
	controller.calls.Go(func() {
		status, err := controller.gateway.VerifyPayment(controller.ctx, tag.orderID)

		controller.mu.Lock()
		defer controller.mu.Unlock()
		if !controller.finishLocked(tag) {
			pending.complete(ErrStaleResponse)
			return
		}
		defer controller.notifyLocked()
		if err != nil {
			controller.session.LastError = err
			pending.complete(err)
			return
		}

		if !status.Paid {
			controller.setStageLocked(PaymentNotDone)
			pending.complete(nil)
			return
		}
		controller.session.PaymentMessage = status.Message
		controller.stopCountdownLocked()
		controller.setStageLocked(ThankYou)
		pending.complete(nil)
	})
	return pending
}
