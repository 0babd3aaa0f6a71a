// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: codeview/view.go
// Summary: Scrollable code view with gutter and async highlighting.

package codeview

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/highlight"
	"github.com/framegrace/texelview/input"
	"github.com/framegrace/texelview/scroll"
	"github.com/framegrace/texelview/theme"
)

// Options configures a code view.
type Options struct {
	LineNumbers           bool
	StartLine             int
	GutterSeparator       string
	ShowScrollbar         bool
	AsyncHighlighting     bool
	MaxSyncHighlightLines int
}

// DefaultOptions returns the standard configuration.
func DefaultOptions() Options {
	return Options{
		StartLine:             1,
		GutterSeparator:       " │ ",
		ShowScrollbar:         true,
		AsyncHighlighting:     true,
		MaxSyncHighlightLines: 200,
	}
}

// EventKind classifies what handling an input event produced.
type EventKind int

const (
	EventNone EventKind = iota
	EventHandled
	EventSelectionChanged
	// EventCopyRequested carries the selected text for the host to copy.
	EventCopyRequested
)

// Event is the outcome of handle-event calls.
type Event struct {
	Kind EventKind
	Text string
}

// View renders code with an optional line-number gutter. Highlighting is
// asynchronous; until the full result lands the visible window is
// highlighted synchronously when it fits the sync budget.
type View struct {
	opts     Options
	lines    []string
	language string
	hl       highlight.Highlighter

	Scroll scroll.State
	sel    input.Selection
	mouse  input.MouseTracker

	worker    *worker
	fullHash  uint64
	fullLines []core.Line
	fullOK    bool
	pending   bool

	syncKey   uint64
	syncLines []core.Line

	contentW int
}

// New returns an empty code view.
func New(opts Options) *View {
	return &View{opts: opts}
}

// SetCode replaces the content from a single string. Newlines are
// normalized, tabs expanded; a trailing newline yields a trailing empty
// line.
func (v *View) SetCode(code string) {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	code = strings.ReplaceAll(code, "\r", "\n")
	v.SetLines(strings.Split(code, "\n"))
}

// SetLines replaces the content with pre-split lines.
func (v *View) SetLines(lines []string) {
	v.lines = make([]string, len(lines))
	for i, l := range lines {
		v.lines[i] = strings.ReplaceAll(l, "\t", strings.Repeat(" ", core.TabWidth))
	}
	v.invalidate()
}

// SetLanguage sets the highlight language; empty means auto-detect.
func (v *View) SetLanguage(lang string) {
	v.language = lang
	v.invalidate()
}

// SetHighlighter sets the highlighter; nil disables highlighting.
func (v *View) SetHighlighter(h highlight.Highlighter) {
	v.hl = h
	if v.worker != nil {
		v.worker.stop()
		v.worker = nil
	}
	v.invalidate()
}

// Lines returns the raw content lines.
func (v *View) Lines() []string { return v.lines }

func (v *View) invalidate() {
	v.fullHash = v.inputsHash()
	v.fullLines, v.fullOK = nil, false
	v.syncLines, v.syncKey = nil, 0
	v.pending = false
	v.contentW = 0
	for _, l := range v.lines {
		if w := core.StringWidth(l); w > v.contentW {
			v.contentW = w
		}
	}
}

func (v *View) inputsHash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(v.language))
	h.Write([]byte{0})
	for _, l := range v.lines {
		h.Write([]byte(l))
		h.Write([]byte{'\n'})
	}
	return h.Sum64()
}

func windowHash(language string, lines []string, start, end int) uint64 {
	h := fnv.New64a()
	h.Write([]byte(language))
	h.Write([]byte{0})
	for _, l := range lines {
		h.Write([]byte(l))
		h.Write([]byte{'\n'})
	}
	fmt.Fprintf(h, "%d:%d", start, end)
	return h.Sum64()
}

// SelectedText returns the plain text of the current selection over the
// raw lines, or "" when nothing is selected.
func (v *View) SelectedText() string {
	if !v.sel.Active {
		return ""
	}
	var parts []string
	start, end := v.sel.NormalizedInclusive()
	for i := start.Line; i <= end.Line && i < len(v.lines); i++ {
		if i < 0 {
			continue
		}
		line := v.lines[i]
		from, to := 0, core.StringWidth(line)
		if i == start.Line {
			from = start.Col
		}
		if i == end.Line && end.Col < to {
			to = end.Col
		}
		bs, be, ok := core.ByteRangeForCols(line, from, to)
		if !ok {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, line[bs:be])
	}
	return strings.Join(parts, "\n")
}

// ClearSelection drops the selection.
func (v *View) ClearSelection() { v.sel.Clear() }

// HandleKey applies the shared bindings and reports what happened.
func (v *View) HandleKey(ev input.KeyEvent) Event {
	switch input.HandleViewKey(ev, &v.Scroll, &v.sel) {
	case input.ActionCopy:
		return Event{Kind: EventCopyRequested, Text: v.SelectedText()}
	case input.ActionSelectionCleared:
		return Event{Kind: EventSelectionChanged}
	case input.ActionHandled:
		return Event{Kind: EventHandled}
	}
	return Event{}
}

// HandleMouse updates selection and scroll from a mouse event. The event
// coordinates are relative to the view's last render area.
func (v *View) HandleMouse(ev input.MouseEvent, area core.Rect) Event {
	if input.HandleWheel(ev, &v.Scroll) {
		return Event{Kind: EventHandled}
	}
	content := v.contentArea(area)
	p := input.Point{
		Line: v.Scroll.Y + ev.Y - content.Y,
		Col:  v.Scroll.X + ev.X - content.X,
	}
	switch ev.Kind {
	case input.MouseDown:
		if !content.Contains(ev.X, ev.Y) {
			return Event{}
		}
		v.sel.Start(p)
		return Event{Kind: EventSelectionChanged}
	case input.MouseDrag:
		if !v.sel.Active {
			return Event{}
		}
		v.sel.Extend(p)
		return Event{Kind: EventSelectionChanged}
	case input.MouseUp:
		if !v.sel.Active {
			return Event{}
		}
		v.sel.Extend(p)
		return Event{Kind: EventSelectionChanged}
	}
	return Event{}
}

func (v *View) gutterWidth() int {
	if !v.opts.LineNumbers {
		return 0
	}
	last := v.opts.StartLine + len(v.lines) - 1
	return digits(last) + core.StringWidth(v.opts.GutterSeparator)
}

func (v *View) contentArea(area core.Rect) core.Rect {
	right := 0
	if v.opts.ShowScrollbar {
		right = 1
	}
	return area.InsetH(v.gutterWidth(), right)
}

// Render draws the view into area.
func (v *View) Render(area core.Rect, buf core.Buffer, th theme.Theme) {
	if area.Empty() {
		return
	}
	v.adoptResults()

	content := v.contentArea(area)
	v.Scroll.SetViewport(content.W, content.H)
	v.Scroll.SetContent(v.contentW, len(v.lines))

	start := v.Scroll.Y
	end := start + content.H
	if end > len(v.lines) {
		end = len(v.lines)
	}

	spansByLine := v.acquireSpans(start, end)

	base := th.Text
	if v.hl != nil {
		if bg, ok := v.hl.BackgroundColor(); ok {
			base = base.Background(bg)
		}
	}

	numW := 0
	if v.opts.LineNumbers {
		numW = digits(v.opts.StartLine + len(v.lines) - 1)
	}

	for row := 0; row < content.H; row++ {
		i := start + row
		y := area.Y + row
		buf.SetStyle(core.NewRect(content.X, y, content.W, 1), base)
		if i >= len(v.lines) {
			continue
		}
		if v.opts.LineNumbers {
			g := fmt.Sprintf("%*d%s", numW, v.opts.StartLine+i, v.opts.GutterSeparator)
			core.RenderStrClipped(buf, area.X, y, 0, v.gutterWidth(), g, th.TextMuted)
		}
		spans := spansByLine[i-start]
		spans = core.PatchSpans(spans, base)
		if from, to, ok := v.sel.LineCols(i); ok {
			spans = core.OverlaySpanCols(spans, from, to, base, func(s tcell.Style) tcell.Style {
				return s.Reverse(true)
			})
		}
		core.RenderSpansClipped(buf, content.X, y, v.Scroll.X, content.W, spans, base)
	}

	if v.opts.ShowScrollbar {
		core.RenderScrollbar(buf, area, v.Scroll.Y, content.H, len(v.lines), th.ScrollTrack, th.ScrollThumb)
	}
}

// acquireSpans returns one span list per line in [start, end).
func (v *View) acquireSpans(start, end int) [][]core.Span {
	n := end - start
	out := make([][]core.Span, n)
	raw := func() {
		for i := 0; i < n; i++ {
			out[i] = []core.Span{{Text: v.lines[start+i]}}
		}
	}

	if v.fullOK && len(v.fullLines) == len(v.lines) {
		for i := 0; i < n; i++ {
			out[i] = v.fullLines[start+i].Spans
		}
		return out
	}
	if v.hl == nil {
		raw()
		return out
	}

	if v.opts.AsyncHighlighting && !v.pending {
		if v.worker == nil {
			v.worker = newWorker(v.hl)
		}
		if v.worker.submit(highlightRequest{hash: v.fullHash, language: v.language, lines: v.lines}) {
			v.pending = true
		} else {
			v.worker.stop()
			v.worker = nil
		}
	}

	if n > v.opts.MaxSyncHighlightLines {
		raw()
		return out
	}
	window := v.lines[start:end]
	key := windowHash(v.language, window, start, end)
	if key != v.syncKey || v.syncLines == nil {
		hlLines, ok := highlight.HighlightLines(v.hl, v.language, window)
		if !ok || len(hlLines) != n {
			raw()
			return out
		}
		v.syncKey, v.syncLines = key, hlLines
	}
	for i := 0; i < n; i++ {
		out[i] = v.syncLines[i].Spans
	}
	return out
}

func (v *View) adoptResults() {
	if v.worker == nil {
		return
	}
	for _, r := range v.worker.drain() {
		if r.hash != v.fullHash {
			continue
		}
		v.pending = false
		if r.ok && len(r.lines) == len(v.lines) {
			v.fullLines, v.fullOK = r.lines, true
		}
	}
}

func digits(n int) int {
	if n < 0 {
		n = -n
	}
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}
