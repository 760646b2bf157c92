// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package storefrontui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// copyParser parses event copy. CommonMark only; no extensions.
var copyParser = sync.OnceValue(func() goldmark.Markdown { return goldmark.New() })

// renderMarkdown renders the inline subset of markdown used by event
// copy (paragraphs, headings, emphasis, code spans) as styled terminal
// text wrapped to width. Soft line breaks become spaces so the source
// reflows at any width.
func renderMarkdown(input string, theme Theme, width int) string {
	if input == "" {
		return ""
	}
	source := []byte(input)
	document := copyParser().Parser().Parse(text.NewReader(source))

	// The profile is pinned so the blurb keeps its styling when the
	// output is not a terminal.
	styles := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	styles.SetColorProfile(termenv.ANSI256)

	renderer := &copyRenderer{
		source: source,
		theme:  theme,
		width:  max(width, 10),
		styles: styles,
	}
	ast.Walk(document, renderer.walk)
	return strings.TrimRight(renderer.blocks.String(), "\n")
}

// copyRenderer accumulates styled inline text per block and appends
// each finished block, wrapped, to blocks.
type copyRenderer struct {
	source []byte
	theme  Theme
	width  int
	styles *lipgloss.Renderer

	blocks  strings.Builder
	current strings.Builder

	strong   int
	emphasis int
}

func (renderer *copyRenderer) styled(content string) string {
	style := renderer.styles.NewStyle().Foreground(renderer.theme.NormalText)
	if renderer.strong > 0 {
		style = style.Bold(true)
	}
	if renderer.emphasis > 0 {
		style = style.Italic(true)
	}
	return style.Render(content)
}

// endBlock wraps the current block into blocks, restyled whole when
// style is set. Blocks are separated by a blank line.
func (renderer *copyRenderer) endBlock(style *lipgloss.Style) {
	content := renderer.current.String()
	renderer.current.Reset()
	if content == "" {
		return
	}
	if style != nil {
		content = style.Render(ansi.Strip(content))
	}
	if renderer.blocks.Len() > 0 {
		renderer.blocks.WriteString("\n")
	}
	for _, line := range wrapLines(content, renderer.width) {
		renderer.blocks.WriteString(line)
		renderer.blocks.WriteString("\n")
	}
}

// wrapLines wraps styled text to at most width columns. ansi.Wrap
// keeps a punctuation breakpoint at the end of the line it closes,
// one column past its limit, so it wraps one column short and any
// line still too wide is truncated.
func wrapLines(content string, width int) []string {
	lines := strings.Split(ansi.Wrap(content, width-1, " ,.;"), "\n")
	for index, line := range lines {
		if ansi.StringWidth(line) > width {
			lines[index] = ansi.Truncate(line, width, "")
		}
	}
	return lines
}

func (renderer *copyRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {
	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			renderer.current.Reset()
		} else {
			renderer.endBlock(nil)
		}

	case ast.KindHeading:
		if entering {
			renderer.current.Reset()
		} else {
			style := renderer.styles.NewStyle().Bold(true).Foreground(renderer.theme.HeaderForeground)
			renderer.endBlock(&style)
		}

	case ast.KindText:
		if entering {
			segment := node.(*ast.Text)
			renderer.current.WriteString(renderer.styled(string(segment.Segment.Value(renderer.source))))
			switch {
			case segment.HardLineBreak():
				renderer.current.WriteString("\n")
			case segment.SoftLineBreak():
				renderer.current.WriteString(" ")
			}
		}

	case ast.KindString:
		if entering {
			renderer.current.WriteString(renderer.styled(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		counter := &renderer.emphasis
		if node.(*ast.Emphasis).Level >= 2 {
			counter = &renderer.strong
		}
		if entering {
			*counter++
		} else {
			*counter--
		}

	case ast.KindCodeSpan:
		if entering {
			var code strings.Builder
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if segment, ok := child.(*ast.Text); ok {
					code.Write(segment.Segment.Value(renderer.source))
				}
			}
			style := renderer.styles.NewStyle().Foreground(renderer.theme.CodeForeground)
			renderer.current.WriteString(style.Render(code.String()))
			return ast.WalkSkipChildren, nil
		}
	}
	return ast.WalkContinue, nil
}
