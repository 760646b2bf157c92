// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

func TestSinceAndUntil(t *testing.T) {
	fake := Fake(epoch)
	deadline := epoch.Add(15 * time.Minute)

	fake.Advance(61 * time.Second)
	if got := Since(fake, epoch); got != 61*time.Second {
		t.Errorf("Since = %v, want 61s", got)
	}
	if got := Until(fake, deadline); got != 13*time.Minute+59*time.Second {
		t.Errorf("Until = %v, want 13m59s", got)
	}

	fake.Advance(time.Hour)
	if got := Until(fake, deadline); got != 0 {
		t.Errorf("Until past the deadline = %v, want 0", got)
	}
}

func TestWholeSeconds(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     int
	}{
		{-time.Second, 0},
		{0, 0},
		{time.Nanosecond, 1},
		{time.Second, 1},
		{time.Second + time.Millisecond, 2},
		{15 * time.Minute, 900},
	}
	for _, test := range tests {
		if got := WholeSeconds(test.duration); got != test.want {
			t.Errorf("WholeSeconds(%v) = %d, want %d", test.duration, got, test.want)
		}
	}
}
