// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package ticketapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// PaymentStatus is the outcome of a payment verification that reached
// the upstream.
type PaymentStatus struct {
	// Paid is true once the upstream has a payment record for the
	// order.
	Paid bool

	// Message is the upstream's text: a confirmation when Paid, the
	// "no payment log" explanation otherwise.
	Message string
}

// VerifyPayment asks the upstream whether orderID has been paid.
//
// An upstream error whose message says there is no payment log yet is
// not a failure: it returns Paid false and a nil error. Every other
// failure is ErrUpstreamUnavailable carrying the upstream message.
func (client *Client) VerifyPayment(ctx context.Context, orderID string) (PaymentStatus, error) {
	const op = "verify payment"
	body, err := client.do(ctx, op, ErrUpstreamUnavailable, http.MethodGet, "/callback-payment/"+url.PathEscape(orderID), nil)
	if err != nil {
		var apiError *Error
		if errors.As(err, &apiError) && apiError.StatusCode != 0 && isNoPaymentLog(apiError.Message) {
			return PaymentStatus{Paid: false, Message: apiError.Message}, nil
		}
		return PaymentStatus{}, err
	}

	var result struct {
		Message string `json:"message"`
	}
	// The success body is informational; an unparseable one still
	// means the upstream accepted the payment.
	if err := decode(op, body, &result); err != nil {
		client.logger.Debug("payment confirmation body unreadable",
			"op", op, "order_id", orderID, "error", err)
	}
	return PaymentStatus{Paid: true, Message: result.Message}, nil
}
