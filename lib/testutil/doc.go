// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds the channel helpers the storefront tests
// share.
//
// [Receive] and [Closed] wrap the select-with-timeout pattern so tests
// never call time.After themselves; they are the only wall-clock
// waits in the suite, and all countdown behavior runs on clock.Fake.
// [Notified] and [Drain] check the controller's coalescing change
// channel without blocking.
//
// Helpers call Fatalf on failure rather than returning errors.
package testutil
