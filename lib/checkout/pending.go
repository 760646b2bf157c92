// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package checkout

import "context"

// Pending tracks the outcome of an intent. Intents that only change
// local state return an already-completed Pending; intents that call
// the gateway complete once the response has been applied to the
// session (or discarded).
type Pending struct {
	done chan struct{}
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func completed() *Pending {
	pending := newPending()
	close(pending.done)
	return pending
}

// complete records the outcome. Called exactly once.
func (pending *Pending) complete(err error) {
	pending.err = err
	close(pending.done)
}

// Done returns a channel closed when the outcome is known.
func (pending *Pending) Done() <-chan struct{} {
	return pending.done
}

// Wait blocks until the outcome is known or ctx is done. Returns the
// gateway error, ErrStaleResponse if the response was discarded, or
// nil on success. "Not paid yet" is a success.
func (pending *Pending) Wait(ctx context.Context) error {
	select {
	case <-pending.done:
		return pending.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
