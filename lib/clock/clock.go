// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock is the time source for everything in the storefront that
// waits or measures: the hold countdown, gateway call durations, and
// the terminal UI's refresh. Production wires Real(); tests wire
// Fake() and move time by hand.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time once d
	// has elapsed. If d <= 0 the channel is ready immediately.
	After(d time.Duration) <-chan time.Time

	// AfterFunc calls f once d has elapsed and returns a Timer that
	// can cancel the call. On the real clock f runs on its own
	// goroutine. On the fake clock f runs synchronously inside
	// Advance, or inside AfterFunc itself when d <= 0.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a pending AfterFunc call.
type Timer struct {
	stop func() bool
}

// Stop cancels the pending call. Returns true if the call was
// cancelled, false if it already ran or was already stopped.
func (t *Timer) Stop() bool { return t.stop() }

// Since is the time elapsed on c since start.
func Since(c Clock, start time.Time) time.Duration {
	return c.Now().Sub(start)
}

// Until is the time left on c before deadline, never negative.
func Until(c Clock, deadline time.Time) time.Duration {
	return max(deadline.Sub(c.Now()), 0)
}

// WholeSeconds rounds d up to whole seconds, so a countdown shows
// 15:00 for the full first second and reaches 0 only when d does.
func WholeSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

// Real returns the wall clock.
func Real() Clock { return wallClock{} }

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

func (wallClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

func (wallClock) AfterFunc(d time.Duration, f func()) *Timer {
	timer := time.AfterFunc(d, f)
	return &Timer{stop: timer.Stop}
}
