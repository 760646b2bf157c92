// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"time"
)

// Timeout bounds every wait in this package. It only trips when a
// test is already broken.
const Timeout = 5 * time.Second

// T is the part of testing.TB the helpers use.
type T interface {
	Helper()
	Fatalf(format string, args ...any)
}

// Receive returns the next value from ch, failing the test when ch is
// closed or nothing arrives within Timeout. what describes the wait
// and may be a format string followed by its arguments.
//
//	msg := testutil.Receive(t, delivered, "waiting for change")
func Receive[V any](t T, ch <-chan V, what string, args ...any) V {
	t.Helper()
	select {
	case value, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed without sending a value: %s", describe(what, args))
		}
		return value
	case <-time.After(Timeout): //nolint:realclock test hang prevention
		t.Fatalf("timed out after %v: %s", Timeout, describe(what, args))
	}
	panic("unreachable")
}

// Closed waits for ch to close or deliver, failing the test after
// Timeout. Pending.Done and timer callbacks signal this way.
func Closed(t T, ch <-chan struct{}, what string, args ...any) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(Timeout): //nolint:realclock test hang prevention
		t.Fatalf("timed out after %v waiting for channel close: %s", Timeout, describe(what, args))
	}
}

// Drain empties a notification channel such as Controller.Changes
// without blocking, so the next check sees only new notifications.
func Drain(ch <-chan struct{}) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

// Notified fails the test unless a notification is already waiting
// on ch. It never blocks: notifications under a fake clock are sent
// before Advance returns.
func Notified(t T, ch <-chan struct{}, what string, args ...any) {
	t.Helper()
	select {
	case <-ch:
	default:
		t.Fatalf("no notification: %s", describe(what, args))
	}
}

func describe(what string, args []any) string {
	if what == "" {
		return "(no message)"
	}
	if len(args) == 0 {
		return what
	}
	return fmt.Sprintf(what, args...)
}
