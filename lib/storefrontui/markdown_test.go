// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package storefrontui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/popuweekendclub/storefront/lib/catalog"
)

func TestRenderMarkdownEmpty(t *testing.T) {
	if result := renderMarkdown("", DefaultTheme, 80); result != "" {
		t.Errorf("expected empty string for empty input, got %q", result)
	}
}

func TestRenderMarkdownReflowsBlurb(t *testing.T) {
	result := ansi.Strip(renderMarkdown(catalog.Blurb, DefaultTheme, 400))
	if strings.Contains(result, "\n") {
		t.Errorf("expected soft breaks joined at width 400, got:\n%s", result)
	}
	if !strings.Contains(result, "gamers, geeks, weebs, & art enthusiasts gather in one place") {
		t.Errorf("emphasis markers should be consumed, got:\n%s", result)
	}
	if strings.Contains(result, "**") || strings.Contains(result, "*POP") {
		t.Errorf("raw markdown leaked into output:\n%s", result)
	}
}

func TestRenderMarkdownWrapsToWidth(t *testing.T) {
	result := ansi.Strip(renderMarkdown(catalog.Blurb, DefaultTheme, 30))
	for _, line := range strings.Split(result, "\n") {
		if ansi.StringWidth(line) > 30 {
			t.Errorf("line exceeds width 30: %q", line)
		}
	}
}

func TestWrapLinesKeepsPunctuationWithinWidth(t *testing.T) {
	input := "Where all gamers, geeks, weebs, and artists gather - every one of them."
	for _, width := range []int{10, 20, 30, 31, 40} {
		for _, line := range wrapLines(input, width) {
			if got := ansi.StringWidth(line); got > width {
				t.Errorf("width %d: line %q is %d columns", width, line, got)
			}
		}
	}
	joined := strings.Join(wrapLines(input, 30), " ")
	if !strings.Contains(joined, "weebs,") {
		t.Errorf("punctuation lost while wrapping: %q", joined)
	}
}

func TestRenderMarkdownStyles(t *testing.T) {
	raw := renderMarkdown("plain **bold** `code`", DefaultTheme, 80)
	if raw == ansi.Strip(raw) {
		t.Error("expected ANSI styling in output")
	}
	if got := ansi.Strip(raw); got != "plain bold code" {
		t.Errorf("stripped = %q, want %q", got, "plain bold code")
	}
}

func TestRenderMarkdownParagraphsSeparated(t *testing.T) {
	result := ansi.Strip(renderMarkdown("# Title\n\nfirst\n\nsecond", DefaultTheme, 80))
	if result != "Title\n\nfirst\n\nsecond" {
		t.Errorf("unexpected block layout: %q", result)
	}
}
