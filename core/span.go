// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/span.go
// Summary: Styled span and line model shared by every view.

package core

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Span is a run of text rendered with a single style. A zero Style means
// "use the caller's fallback style" when the span is drawn.
type Span struct {
	Text  string
	Style tcell.Style
}

// RawSpan returns an unstyled span.
func RawSpan(text string) Span { return Span{Text: text} }

// StyledSpan returns a span with an explicit style.
func StyledSpan(text string, style tcell.Style) Span {
	return Span{Text: text, Style: style}
}

// Width returns the span's display width in cells, with tabs expanded.
func (s Span) Width() int { return StringWidth(s.Text) }

// Line is an ordered sequence of spans; their concatenated text is the
// line's plain text.
type Line struct {
	Spans []Span
}

// LineOf builds a line from spans, dropping empty ones.
func LineOf(spans ...Span) Line {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		out = append(out, s)
	}
	return Line{Spans: out}
}

// PlainLine builds a single-span unstyled line.
func PlainLine(text string) Line {
	if text == "" {
		return Line{}
	}
	return Line{Spans: []Span{{Text: text}}}
}

// Plain returns the line's concatenated text.
func (l Line) Plain() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Width returns the line's display width in cells.
func (l Line) Width() int {
	w := 0
	for _, s := range l.Spans {
		w += s.Width()
	}
	return w
}

// JoinPlain concatenates the plain text of a span slice.
func JoinPlain(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// SpansWidth returns the total display width of a span slice.
func SpansWidth(spans []Span) int {
	w := 0
	for _, s := range spans {
		w += s.Width()
	}
	return w
}

// PatchSpans overlays each span's explicit attributes on top of base.
// Spans with the zero style come out styled as base.
func PatchSpans(spans []Span, base tcell.Style) []Span {
	out := make([]Span, len(spans))
	for i, s := range spans {
		out[i] = Span{Text: s.Text, Style: PatchStyle(base, s.Style)}
	}
	return out
}

// PatchStyle returns overlay if it is non-zero, base otherwise. tcell
// styles are opaque values, so "patching" is a whole-style replacement
// with the zero value meaning "inherit".
func PatchStyle(base, overlay tcell.Style) tcell.Style {
	if overlay == (tcell.Style{}) {
		return base
	}
	return overlay
}
