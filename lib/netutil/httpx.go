// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides HTTP response helpers for JSON API clients.
//
// Every body read is bounded at MaxResponseSize so a misbehaving
// upstream cannot exhaust memory. Error bodies are reduced to a single
// human-readable line by ErrorMessage, which understands the
// {"error", "details", "message"} envelope the ticketing API and its
// proxies use and falls back to the raw text otherwise.
package netutil

import (
	"encoding/json"
	"io"
	"strings"
)

// MaxResponseSize bounds JSON API response reads at 4 MB. Ticketing
// responses are a few kilobytes; payment codes are the largest field.
const MaxResponseSize int64 = 4 << 20

// ReadResponse reads a response body up to MaxResponseSize bytes.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// errorEnvelope is the error body shape of the ticketing API. Proxies
// in front of it wrap the upstream text in Details.
type errorEnvelope struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Message string `json:"message"`
}

// ErrorMessage extracts a one-line description from an error response
// body. For a JSON envelope it joins the error and details fields
// ("error: details"), using message when neither is set. A details
// field that is itself a JSON envelope is unwrapped. Any other body is
// returned as trimmed text. Returns "" for an empty body.
func ErrorMessage(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}

	var envelope errorEnvelope
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return text
	}

	details := strings.TrimSpace(envelope.Details)
	if strings.HasPrefix(details, "{") {
		details = ErrorMessage([]byte(details))
	}

	switch {
	case envelope.Error != "" && details != "":
		return envelope.Error + ": " + details
	case envelope.Error != "":
		return envelope.Error
	case details != "":
		return details
	case envelope.Message != "":
		return envelope.Message
	}
	return text
}
