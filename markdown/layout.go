// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: markdown/layout.go
// Summary: Block layout into rendered lines.

package markdown

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/theme"
)

// CodeRef ties a rendered code line back to its block's highlight cache
// entry, so highlights can be patched in after layout.
type CodeRef struct {
	// Key identifies the highlight cache entry for the whole block.
	Key uint64
	// LineIdx is the code line within the block.
	LineIdx int
	// ContentStart is the index of the content span within the rendered
	// line's span list (prefix, indent and gutter spans come before it).
	ContentStart int
}

// RenderedLine is one laid-out display line.
type RenderedLine struct {
	Spans []core.Span
	Code  *CodeRef
}

// Width returns the line's display width.
func (l RenderedLine) Width() int { return core.SpansWidth(l.Spans) }

// Plain returns the line's concatenated text.
func (l RenderedLine) Plain() string { return core.JoinPlain(l.Spans) }

// HighlightKey hashes a code block's language and content; it keys the
// per-block highlight cache.
func HighlightKey(language string, lines []string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(language))
	h.Write([]byte{0})
	for _, l := range lines {
		h.Write([]byte(l))
		h.Write([]byte{'\n'})
	}
	return h.Sum64()
}

// LayoutBlocks lays blocks out at the given width.
func LayoutBlocks(blocks []Block, width int, opts Options, th theme.Theme) []RenderedLine {
	if width < 1 {
		width = 1
	}
	var out []RenderedLine
	for i := range blocks {
		out = append(out, layoutBlock(&blocks[i], width, opts, th)...)
	}
	return out
}

func layoutBlock(b *Block, width int, opts Options, th theme.Theme) []RenderedLine {
	switch b.Kind {
	case BlockBlank:
		return []RenderedLine{{Spans: segmentsToSpans(b.InitialPrefix, th)}}
	case BlockRule:
		return layoutRule(b, width, th)
	case BlockCode:
		return layoutCode(b, opts, th)
	case BlockTable:
		return layoutTable(b, width, opts, th)
	default:
		return layoutProse(b, width, opts, th)
	}
}

func layoutRule(b *Block, width int, th theme.Theme) []RenderedLine {
	prefix := segmentsToSpans(b.InitialPrefix, th)
	n := width - segmentsWidth(b.InitialPrefix)
	if n < 1 {
		n = 1
	}
	if n > 8 {
		n = 8
	}
	spans := append(prefix, core.Span{Text: strings.Repeat("-", n), Style: th.TextMuted})
	return []RenderedLine{{Spans: spans}}
}

func layoutProse(b *Block, width int, opts Options, th theme.Theme) []RenderedLine {
	var out []RenderedLine
	ini, sub := b.InitialPrefix, b.SubsequentPrefix
	for li, line := range b.Lines {
		p := ini
		if li > 0 {
			p = sub
		}
		if opts.WrapText {
			for _, wrapped := range wrapSegments(line, p, sub, width) {
				out = append(out, RenderedLine{Spans: segmentsToSpans(wrapped, th)})
			}
		} else {
			spans := segmentsToSpans(append(append([]Segment{}, p...), line...), th)
			out = append(out, RenderedLine{Spans: spans})
		}
	}
	if len(out) == 0 {
		out = append(out, RenderedLine{Spans: segmentsToSpans(ini, th)})
	}
	return out
}

func layoutCode(b *Block, opts Options, th theme.Theme) []RenderedLine {
	key := HighlightKey(b.Language, b.Code)
	inQuote := len(b.SubsequentPrefix) > 0
	indent := opts.CodeBlockIndent
	if inQuote && !opts.CodeBlockIndentInQuote {
		indent = false
	}
	gutterW := 0
	if opts.CodeLineNumbers {
		gutterW = digits(len(b.Code))
	}
	var out []RenderedLine
	for i, line := range b.Code {
		prefix := b.InitialPrefix
		if i > 0 {
			prefix = b.SubsequentPrefix
		}
		spans := segmentsToSpans(prefix, th)
		contentStart := len(spans)
		if indent {
			spans = append(spans, core.Span{Text: " ", Style: th.CodeInline})
			contentStart++
		}
		if gutterW > 0 {
			g := fmt.Sprintf("%*d │ ", gutterW, i+1)
			spans = append(spans, core.Span{Text: g, Style: th.TextMuted})
			contentStart++
		}
		spans = append(spans, core.Span{Text: line, Style: th.CodeInline})
		out = append(out, RenderedLine{
			Spans: spans,
			Code:  &CodeRef{Key: key, LineIdx: i, ContentStart: contentStart},
		})
	}
	return out
}

func digits(n int) int {
	if n < 1 {
		return 1
	}
	d := 0
	for n > 0 {
		n /= 10
		d++
	}
	return d
}
