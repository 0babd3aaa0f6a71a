// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: markdown/document.go
// Summary: Parsed document with layout and highlight caches.

package markdown

import (
	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/highlight"
	"github.com/framegrace/texelview/theme"
)

// codeSource is what the highlight cache needs to recompute an entry.
type codeSource struct {
	language string
	lines    []string
}

// Document owns parsed blocks plus two caches: rendered lines keyed by
// layout width, and highlighted code lines keyed by block content hash.
// Committed text never changes under a Document; SetText resets it.
type Document struct {
	opts Options
	text string

	blocks []Block
	parsed bool

	cachedWidth int
	rendered    []RenderedLine

	hl      highlight.Highlighter
	hlCache map[uint64][]core.Line
	sources map[uint64]codeSource
}

// NewDocument returns an empty document.
func NewDocument(opts Options) *Document {
	return &Document{opts: opts, hlCache: map[uint64][]core.Line{}, sources: map[uint64]codeSource{}}
}

// Options returns the document's options.
func (d *Document) Options() Options { return d.opts }

// SetText replaces the source text and invalidates layout.
func (d *Document) SetText(text string) {
	if d.text == text && d.parsed {
		return
	}
	d.text = text
	d.parsed = false
	d.rendered = nil
	d.cachedWidth = 0
}

// Text returns the source text.
func (d *Document) Text() string { return d.text }

// SetHighlighter sets the highlighter and drops highlight caches.
func (d *Document) SetHighlighter(h highlight.Highlighter) {
	d.hl = h
	d.hlCache = map[uint64][]core.Line{}
}

// Blocks parses lazily and returns the block model.
func (d *Document) Blocks() []Block {
	if !d.parsed {
		d.blocks = ParseBlocks(d.text, d.opts)
		d.parsed = true
		d.sources = map[uint64]codeSource{}
		for i := range d.blocks {
			b := &d.blocks[i]
			if b.Kind == BlockCode {
				d.sources[HighlightKey(b.Language, b.Code)] = codeSource{b.Language, b.Code}
			}
		}
	}
	return d.blocks
}

// EnsureLayout lays the document out at width, reusing the cache when
// the width is unchanged.
func (d *Document) EnsureLayout(width int, th theme.Theme) []RenderedLine {
	blocks := d.Blocks()
	if d.rendered != nil && d.cachedWidth == width {
		return d.rendered
	}
	d.rendered = LayoutBlocks(blocks, width, d.opts, th)
	d.cachedWidth = width
	return d.rendered
}

// MaterializeHighlights patches highlighted spans into the rendered
// lines [start, end), computing at most the per-frame block budget
// synchronously and skipping blocks over the line budget.
func (d *Document) MaterializeHighlights(start, end int, th theme.Theme) {
	if d.hl == nil || d.rendered == nil {
		return
	}
	if start < 0 {
		start = 0
	}
	if end > len(d.rendered) {
		end = len(d.rendered)
	}
	budget := d.opts.MaxSyncHighlightBlocksPerFrame
	for i := start; i < end; i++ {
		ref := d.rendered[i].Code
		if ref == nil {
			continue
		}
		lines, ok := d.hlCache[ref.Key]
		if !ok {
			if budget <= 0 {
				continue
			}
			src, known := d.sources[ref.Key]
			if !known || len(src.lines) > d.opts.MaxSyncHighlightLines {
				continue
			}
			budget--
			lines = d.computeHighlight(ref.Key, src)
			if lines == nil {
				continue
			}
		}
		d.patchLine(i, ref, lines, th)
	}
}

// EnsureAllHighlights highlights every code block with no frame budget.
// Meant for one-shot rendering, not the interactive path.
func (d *Document) EnsureAllHighlights(th theme.Theme) {
	if d.hl == nil || d.rendered == nil {
		return
	}
	for i := range d.rendered {
		ref := d.rendered[i].Code
		if ref == nil {
			continue
		}
		lines, ok := d.hlCache[ref.Key]
		if !ok {
			src, known := d.sources[ref.Key]
			if !known {
				continue
			}
			lines = d.computeHighlight(ref.Key, src)
			if lines == nil {
				continue
			}
		}
		d.patchLine(i, ref, lines, th)
	}
}

func (d *Document) computeHighlight(key uint64, src codeSource) []core.Line {
	lines, ok := highlight.HighlightLines(d.hl, src.language, src.lines)
	if !ok {
		d.hlCache[key] = nil
		return nil
	}
	d.hlCache[key] = lines
	return lines
}

// patchLine replaces the content span of a rendered code line with its
// highlighted spans and drops the code ref so the work happens once per
// layout.
func (d *Document) patchLine(i int, ref *CodeRef, lines []core.Line, th theme.Theme) {
	if ref.LineIdx >= len(lines) {
		return
	}
	hlSpans := lines[ref.LineIdx].Spans
	if len(hlSpans) == 0 {
		return
	}
	rl := &d.rendered[i]
	keep := rl.Spans[:ref.ContentStart]
	rl.Spans = append(append([]core.Span{}, keep...), core.PatchSpans(hlSpans, th.CodeInline)...)
	rl.Code = nil
}

// ContentSize returns the laid-out width and height. Layout must have
// run already.
func (d *Document) ContentSize() (w, h int) {
	for _, l := range d.rendered {
		if lw := l.Width(); lw > w {
			w = lw
		}
	}
	return w, len(d.rendered)
}

// LinesForWidth lays out, fully highlights and returns plain styled
// lines; hosts composing documents into larger surfaces use this.
func (d *Document) LinesForWidth(width int, th theme.Theme) []core.Line {
	d.EnsureLayout(width, th)
	d.EnsureAllHighlights(th)
	out := make([]core.Line, len(d.rendered))
	for i, l := range d.rendered {
		out[i] = core.Line{Spans: l.Spans}
	}
	return out
}
