// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: mdstream/view.go
// Summary: Streaming markdown view with per-block layout caching.

package mdstream

import (
	"hash/fnv"
	"strings"

	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/highlight"
	"github.com/framegrace/texelview/input"
	"github.com/framegrace/texelview/markdown"
	"github.com/framegrace/texelview/scroll"
	"github.com/framegrace/texelview/theme"
)

// Options configures a streaming markdown view.
type Options struct {
	Markdown markdown.Options
	// PendingCodeFenceMaxLines truncates a still-open code fence in the
	// pending block to its last N lines. 0 disables truncation.
	PendingCodeFenceMaxLines int
}

// DefaultOptions returns the standard configuration. The embedded
// markdown engine draws no scrollbar of its own.
func DefaultOptions() Options {
	md := markdown.DefaultOptions()
	md.ShowScrollbar = false
	return Options{Markdown: md, PendingCodeFenceMaxLines: 10}
}

// View renders an append-only markdown stream. Committed blocks are laid
// out once per width; only the pending tail re-renders as text arrives.
type View struct {
	opts   Options
	stream Stream
	state  State
	hl     highlight.Highlighter

	// FollowTail keeps the viewport pinned to the bottom.
	FollowTail bool
	Scroll     scroll.State

	width          int
	laidTheme      theme.Theme
	committedLines [][]core.Line
	pendingKey     uint64
	pendingLines   []core.Line
}

// New returns an empty streaming view.
func New(opts Options) *View {
	return &View{opts: opts, FollowTail: true}
}

// SetHighlighter sets the code highlighter for newly laid-out blocks.
func (v *View) SetHighlighter(h highlight.Highlighter) {
	v.hl = h
	v.invalidateAll()
}

// Append feeds a delta of markdown text.
func (v *View) Append(delta string) {
	v.apply(v.stream.Append(delta))
}

// SetPendingDisplay overrides what the pending block shows.
func (v *View) SetPendingDisplay(display string) {
	v.apply(v.stream.SetPendingDisplay(display))
}

// Finalize commits the pending tail.
func (v *View) Finalize() {
	v.apply(v.stream.Finalize())
}

// Reset drops all content.
func (v *View) Reset() {
	v.apply(v.stream.Reset())
}

// Text returns the full accumulated markdown.
func (v *View) Text() string {
	out := strings.Join(v.state.Committed, "\n\n")
	if v.state.Pending != "" {
		if out != "" {
			out += "\n\n"
		}
		out += v.state.Pending
	}
	return out
}

func (v *View) apply(u Update) {
	if u.Reset {
		v.state = State{}
		v.invalidateAll()
		return
	}
	v.state.Apply(u)
	v.pendingKey = 0
	v.pendingLines = nil
}

func (v *View) invalidateAll() {
	v.committedLines = nil
	v.pendingKey = 0
	v.pendingLines = nil
	v.width = 0
}

// ensureLayout brings the per-block caches up to date for width.
func (v *View) ensureLayout(width int, th theme.Theme) {
	if width < 1 {
		width = 1
	}
	// The cache holds styled spans, so a theme change invalidates it just
	// like a width change.
	if width != v.width || th != v.laidTheme {
		v.committedLines = nil
		v.pendingKey = 0
		v.pendingLines = nil
		v.width = width
		v.laidTheme = th
	}
	for i := len(v.committedLines); i < len(v.state.Committed); i++ {
		v.committedLines = append(v.committedLines, v.renderBlock(v.state.Committed[i], width, th))
	}

	text := v.state.PendingText()
	if strings.TrimSpace(text) == "" {
		v.pendingKey = 0
		v.pendingLines = nil
		return
	}
	if v.opts.PendingCodeFenceMaxLines > 0 {
		text = truncatePendingFence(text, v.opts.PendingCodeFenceMaxLines)
	}
	h := fnv.New64a()
	h.Write([]byte(v.state.Pending))
	h.Write([]byte{0})
	h.Write([]byte(v.state.PendingDisplay))
	key := h.Sum64()
	if key == v.pendingKey && v.pendingLines != nil {
		return
	}
	v.pendingKey = key
	v.pendingLines = v.renderBlock(text, width, th)
}

func (v *View) renderBlock(raw string, width int, th theme.Theme) []core.Line {
	doc := markdown.NewDocument(v.opts.Markdown)
	doc.SetHighlighter(v.hl)
	doc.SetText(raw)
	return doc.LinesForWidth(width, th)
}

// SnapshotLines lays out at width and returns all lines: committed
// blocks separated by single blank lines, then the pending block.
func (v *View) SnapshotLines(width int, th theme.Theme) []core.Line {
	v.ensureLayout(width, th)
	var out []core.Line
	for i, block := range v.committedLines {
		if i > 0 {
			out = append(out, core.Line{})
		}
		out = append(out, block...)
	}
	if len(v.pendingLines) > 0 {
		if len(out) > 0 {
			out = append(out, core.Line{})
		}
		out = append(out, v.pendingLines...)
	}
	return out
}

// HandleKey applies the shared scroll bindings; manual scrolling up
// unpins the tail, scrolling to the bottom re-pins it.
func (v *View) HandleKey(ev input.KeyEvent) bool {
	before := v.Scroll.Y
	if !input.HandleScrollKey(ev, &v.Scroll) {
		return false
	}
	if v.Scroll.Y < before {
		v.FollowTail = false
	}
	if v.Scroll.AtBottom() {
		v.FollowTail = true
	}
	return true
}

// Render draws the stream into area.
func (v *View) Render(area core.Rect, buf core.Buffer, th theme.Theme) {
	if area.Empty() {
		return
	}
	lines := v.SnapshotLines(area.W, th)
	contentW := 0
	for _, l := range lines {
		if w := l.Width(); w > contentW {
			contentW = w
		}
	}
	v.Scroll.SetViewport(area.W, area.H)
	v.Scroll.SetContent(contentW, len(lines))
	if v.FollowTail {
		v.Scroll.ToBottom()
	}
	for row := 0; row < area.H; row++ {
		i := v.Scroll.Y + row
		if i >= len(lines) {
			break
		}
		core.RenderSpansClipped(buf, area.X, area.Y+row, v.Scroll.X, area.W, lines[i].Spans, th.Text)
	}
}
