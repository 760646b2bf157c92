// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
)

// ExitError ends the process with Code and no "error:" line; the
// command has already printed its result. payment-status exits 2 this
// way for an unpaid order.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Exit reports err on stderr and returns the process exit status: 0
// for nil, the requested code for an *ExitError anywhere in the
// chain, 1 otherwise.
func Exit(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var exitError *ExitError
	if errors.As(err, &exitError) {
		return exitError.Code
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}
