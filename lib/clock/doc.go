// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Types that wait on or measure time take a Clock field instead of
// calling the time package directly. Production code passes Real().
// Tests pass a FakeClock, whose time only moves when Advance is
// called:
//
//	fake := clock.Fake(time.Date(2026, 2, 7, 10, 0, 0, 0, time.UTC))
//	controller := checkout.New(checkout.Config{Clock: fake, ...})
//	// ... reach the contact stage ...
//	fake.Advance(15 * time.Minute) // hold expires deterministically
//
// AfterFunc callbacks on a FakeClock run synchronously inside Advance,
// so by the time Advance returns every callback due within the new
// time has completed. A callback may schedule further AfterFunc calls.
// Those fire in the same Advance only if their deadline also falls
// within it.
package clock
