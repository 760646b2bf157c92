// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package checkout

import (
	"context"
	"sync"

	"github.com/popuweekendclub/storefront/lib/ticketapi"
)

// fakeGateway is a scripted Gateway. Each method returns the
// configured result. A non-nil gate channel makes the matching method
// block until the channel is closed, so tests can act while a call is
// in flight.
type fakeGateway struct {
	mu sync.Mutex

	availability    []ticketapi.Availability
	availabilityErr error

	reservation    ticketapi.Reservation
	reservationErr error
	reserveGate    chan struct{}

	finalized   ticketapi.Finalized
	finalizeErr error

	payment     ticketapi.PaymentStatus
	paymentErr  error
	paymentGate chan struct{}

	calls         map[string]int
	reservedEvent int64
	reservedQty   int
	finalizedID   string
	finalizedBody ticketapi.FinalizeRequest
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		reservation: ticketapi.Reservation{ID: 42, OrderID: "ORD-42"},
		finalized:   ticketapi.Finalized{PaymentCode: "QR-PAYLOAD"},
		payment:     ticketapi.PaymentStatus{Paid: true, Message: "Payment verified"},
		calls:       make(map[string]int),
	}
}

func (gateway *fakeGateway) callCount(op string) int {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	return gateway.calls[op]
}

func (gateway *fakeGateway) CheckAvailability(ctx context.Context) ([]ticketapi.Availability, error) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	gateway.calls[opAvailability]++
	return gateway.availability, gateway.availabilityErr
}

func (gateway *fakeGateway) CreateReservation(ctx context.Context, eventID int64, quantity int) (ticketapi.Reservation, error) {
	gateway.mu.Lock()
	gateway.calls[opReserve]++
	gateway.reservedEvent = eventID
	gateway.reservedQty = quantity
	gate := gateway.reserveGate
	gateway.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ticketapi.Reservation{}, ctx.Err()
		}
	}

	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	return gateway.reservation, gateway.reservationErr
}

func (gateway *fakeGateway) FinalizeOrder(ctx context.Context, orderID string, request ticketapi.FinalizeRequest) (ticketapi.Finalized, error) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	gateway.calls[opFinalize]++
	gateway.finalizedID = orderID
	gateway.finalizedBody = request
	return gateway.finalized, gateway.finalizeErr
}

func (gateway *fakeGateway) VerifyPayment(ctx context.Context, orderID string) (ticketapi.PaymentStatus, error) {
	gateway.mu.Lock()
	gateway.calls[opVerify]++
	gate := gateway.paymentGate
	gateway.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ticketapi.PaymentStatus{}, ctx.Err()
		}
	}

	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	return gateway.payment, gateway.paymentErr
}
