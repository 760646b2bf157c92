// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package ticketapi

import (
	"context"
	"net/http"
	"strconv"
)

// Event is the upstream's metadata for one event identifier.
type Event struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Date  string `json:"date"`
	Price int64  `json:"price"`
	Quota int    `json:"quota"`

	// Description is free-form markdown.
	Description string `json:"description"`
}

// GetEvent fetches metadata for eventID. Any failure is
// ErrUpstreamUnavailable.
func (client *Client) GetEvent(ctx context.Context, eventID int64) (Event, error) {
	const op = "get event"
	body, err := client.do(ctx, op, ErrUpstreamUnavailable, http.MethodGet, "/event/"+strconv.FormatInt(eventID, 10), nil)
	if err != nil {
		return Event{}, err
	}
	var event Event
	if err := decode(op, body, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}
