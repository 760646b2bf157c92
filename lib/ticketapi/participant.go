// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package ticketapi

import (
	"context"
	"net/http"
	"net/url"
)

// Availability is the upstream's view of one event (one category on
// one day).
type Availability struct {
	EventID int64 `json:"event_id"`

	// Remaining is the number of unsold slots, or -1 when the upstream
	// did not report a count.
	Remaining    int `json:"remaining"`
	WaitingCount int `json:"waiting_count"`

	// SoldOut is true when the upstream says so or Remaining is 0.
	SoldOut bool `json:"sold_out"`

	// WaitingRoomFull is true when the upstream is not admitting new
	// holds for this event even though slots may remain.
	WaitingRoomFull bool `json:"waiting_room_full"`
}

// availabilityRecord is the wire form of Availability. Remaining is a
// pointer so an absent count is distinguishable from zero.
type availabilityRecord struct {
	EventID         int64 `json:"event_id"`
	Remaining       *int  `json:"remaining"`
	WaitingCount    int   `json:"waiting_count"`
	SoldOut         bool  `json:"sold_out"`
	WaitingRoomFull bool  `json:"waiting_room_full"`
}

// Reservation is a provisional hold created upstream.
type Reservation struct {
	ID      int64  `json:"id"`
	OrderID string `json:"order_id"`
}

// FinalizeRequest carries the buyer and order details that turn a
// reservation into a payable order.
type FinalizeRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	WhatsApp   string `json:"whatsapp"`
	TicketType string `json:"type_ticket"`
	Quantity   int    `json:"qty"`
	EventID    int64  `json:"event_id"`
	DateTicket string `json:"date_ticket"`
	TotalPaid  int64  `json:"total_paid"`
}

// Finalized is the upstream's answer to a successful FinalizeRequest.
type Finalized struct {
	// PaymentCode is the scannable payment code payload.
	PaymentCode string `json:"qr_code"`
}

// CheckAvailability fetches remaining counts for every event.
// Any failure is ErrUpstreamUnavailable.
func (client *Client) CheckAvailability(ctx context.Context) ([]Availability, error) {
	const op = "check availability"
	body, err := client.do(ctx, op, ErrUpstreamUnavailable, http.MethodGet, "/participant/status", nil)
	if err != nil {
		return nil, err
	}

	var records []availabilityRecord
	if err := decode(op, body, &records); err != nil {
		return nil, err
	}
	availability := make([]Availability, len(records))
	for index, record := range records {
		entry := Availability{
			EventID:         record.EventID,
			Remaining:       -1,
			WaitingCount:    record.WaitingCount,
			SoldOut:         record.SoldOut,
			WaitingRoomFull: record.WaitingRoomFull,
		}
		if record.Remaining != nil {
			entry.Remaining = max(*record.Remaining, 0)
			if entry.Remaining == 0 {
				entry.SoldOut = true
			}
		}
		availability[index] = entry
	}
	return availability, nil
}

// CreateReservation asks the upstream to hold quantity slots of
// eventID. A rejection is ErrReservationFailed carrying the upstream
// message. A success response without both identifiers is also
// ErrReservationFailed, since no later call could refer to the hold.
func (client *Client) CreateReservation(ctx context.Context, eventID int64, quantity int) (Reservation, error) {
	const op = "create reservation"
	requestBody := struct {
		EventID  int64 `json:"event_id"`
		Quantity int   `json:"qty"`
	}{eventID, quantity}

	body, err := client.do(ctx, op, ErrReservationFailed, http.MethodPost, "/participant", requestBody)
	if err != nil {
		return Reservation{}, err
	}

	var reservation Reservation
	if err := decode(op, body, &reservation); err != nil {
		return Reservation{}, err
	}
	if reservation.ID == 0 || reservation.OrderID == "" {
		return Reservation{}, &Error{Kind: ErrReservationFailed, Op: op, Message: "response is missing the reservation id or order id"}
	}
	return reservation, nil
}

// FinalizeOrder submits buyer and order details for orderID and
// returns the payment code. A rejection, or a success without a
// payment code, is ErrFinalizeFailed.
func (client *Client) FinalizeOrder(ctx context.Context, orderID string, request FinalizeRequest) (Finalized, error) {
	const op = "finalize order"
	body, err := client.do(ctx, op, ErrFinalizeFailed, http.MethodPut, "/participant/"+url.PathEscape(orderID), request)
	if err != nil {
		return Finalized{}, err
	}

	var finalized Finalized
	if err := decode(op, body, &finalized); err != nil {
		return Finalized{}, err
	}
	if finalized.PaymentCode == "" {
		return Finalized{}, &Error{Kind: ErrFinalizeFailed, Op: op, Message: "response is missing the payment code"}
	}
	return finalized, nil
}
