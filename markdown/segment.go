// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: markdown/segment.go
// Summary: Inline segment model and style resolution.

package markdown

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/theme"
)

// Segment is a run of inline text with rendering attributes. Blocks are
// lists of logical lines; logical lines are lists of segments.
type Segment struct {
	Text string

	Bold   bool
	Italic bool
	Strike bool
	// Code marks inline code spans.
	Code bool
	// Muted renders with the theme's muted text style.
	Muted bool
	// Link holds the resolved destination URL; empty means no link.
	Link string
	// Heading is the heading level this segment belongs to, 0 outside
	// headings.
	Heading int
	// Quote marks segments inside blockquote or list structure, which
	// render muted.
	Quote bool
}

func seg(text string) Segment      { return Segment{Text: text} }
func mutedSeg(text string) Segment { return Segment{Text: text, Muted: true} }
func quoteSeg(text string) Segment { return Segment{Text: text, Quote: true} }

// Width returns the segment's display width.
func (s Segment) Width() int { return core.StringWidth(s.Text) }

// styleFor resolves a segment's attributes against the theme. Inline
// code and links override the contextual color; flags stack on top.
func styleFor(s Segment, th theme.Theme) tcell.Style {
	st := th.Text
	switch {
	case s.Muted || s.Quote:
		st = th.TextMuted
	case s.Heading == 1:
		st = th.Text.Bold(true).Underline(true)
	case s.Heading > 1:
		st = th.Text.Bold(true)
	}
	if s.Code {
		st = th.CodeInline
	}
	if s.Link != "" {
		st = th.Accent.Underline(true)
	}
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Italic {
		st = st.Italic(true)
	}
	if s.Strike {
		st = st.StrikeThrough(true)
	}
	return st
}

// segmentsToSpans converts segments to styled spans.
func segmentsToSpans(segs []Segment, th theme.Theme) []core.Span {
	out := make([]core.Span, 0, len(segs))
	for _, s := range segs {
		if s.Text == "" {
			continue
		}
		out = append(out, core.Span{Text: s.Text, Style: styleFor(s, th)})
	}
	return out
}

// segmentsWidth returns the summed display width of segments.
func segmentsWidth(segs []Segment) int {
	w := 0
	for _, s := range segs {
		w += s.Width()
	}
	return w
}

// segmentsPlain concatenates segment text.
func segmentsPlain(segs []Segment) string {
	out := ""
	for _, s := range segs {
		out += s.Text
	}
	return out
}
