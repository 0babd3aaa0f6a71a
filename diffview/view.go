// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: diffview/view.go
// Summary: Scrollable unified-diff view with inline emphasis.

package diffview

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

// Options configures a diff view.
type Options struct {
	LineNumbers           bool
	ShowScrollbar         bool
	AsyncHighlighting     bool
	MaxSyncHighlightLines int
}

// DefaultOptions returns the standard configuration.
func DefaultOptions() Options {
	return Options{
		LineNumbers:           true,
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
	EventCopyRequested
)

// Event is the outcome of handle-event calls.
type Event struct {
	Kind EventKind
	Text string
}

// View renders a parsed unified diff with a two-number gutter, per-kind
// coloring, inline character emphasis and optional syntax highlighting.
type View struct {
	opts  Options
	lines []Line
	hl    highlight.Highlighter

	Scroll scroll.State
	sel    input.Selection

	worker  *worker
	hash    uint64
	hlSpans map[int][]core.Span
	pending bool

	syncKey   uint64
	syncSpans map[int][]core.Span

	contentW int
}

// New returns an empty diff view.
func New(opts Options) *View {
	return &View{opts: opts}
}

// SetDiff parses and replaces the content.
func (v *View) SetDiff(diff string) {
	v.lines = Parse(diff)
	v.invalidate()
}

// SetHighlighter sets the highlighter used for hunk content.
func (v *View) SetHighlighter(h highlight.Highlighter) {
	v.hl = h
	if v.worker != nil {
		v.worker.stop()
		v.worker = nil
	}
	v.invalidate()
}

// Lines exposes the parsed diff lines.
func (v *View) ParsedLines() []Line { return v.lines }

func (v *View) invalidate() {
	h := fnv.New64a()
	for _, l := range v.lines {
		fmt.Fprintf(h, "%d\x00%s\x00%s\n", l.Kind, l.LanguageHint, l.Content)
	}
	v.hash = h.Sum64()
	v.hlSpans = nil
	v.syncSpans, v.syncKey = nil, 0
	v.pending = false
	v.sel.Clear()
	v.contentW = 0
	for _, l := range v.lines {
		if w := core.StringWidth(l.Content); w > v.contentW {
			v.contentW = w
		}
	}
}

// SelectedText returns the selected content text, or "".
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
		content := v.lines[i].Content
		from, to := 0, core.StringWidth(content)
		if i == start.Line {
			from = start.Col
		}
		if i == end.Line && end.Col < to {
			to = end.Col
		}
		bs, be, ok := core.ByteRangeForCols(content, from, to)
		if !ok {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, content[bs:be])
	}
	return strings.Join(parts, "\n")
}

// ClearSelection drops the selection.
func (v *View) ClearSelection() { v.sel.Clear() }

// HandleKey applies the shared bindings.
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

// HandleMouse updates selection and scroll from a mouse event.
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
	case input.MouseDrag, input.MouseUp:
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
		return 2 // marker column plus a space
	}
	oldMax, newMax := 1, 1
	for _, l := range v.lines {
		if l.OldNo > oldMax {
			oldMax = l.OldNo
		}
		if l.NewNo > newMax {
			newMax = l.NewNo
		}
	}
	return digits(oldMax) + 1 + digits(newMax) + 3 // "old new m "
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
	v.scheduleHighlight()

	content := v.contentArea(area)
	v.Scroll.SetViewport(content.W, content.H)
	v.Scroll.SetContent(v.contentW, len(v.lines))

	start := v.Scroll.Y
	end := start + content.H
	if end > len(v.lines) {
		end = len(v.lines)
	}
	if v.hlSpans == nil {
		v.ensureSyncWindow(start, end)
	}

	for row := 0; row < content.H; row++ {
		i := v.Scroll.Y + row
		if i >= len(v.lines) {
			break
		}
		y := area.Y + row
		l := v.lines[i]
		core.RenderStrClipped(buf, area.X, y, 0, v.gutterWidth(), v.gutterText(l, th), th.TextMuted)
		spans := v.contentSpans(i, th)
		if from, to, ok := v.sel.LineCols(i); ok {
			spans = core.OverlaySpanCols(spans, from, to, th.Text, func(s tcell.Style) tcell.Style {
				return s.Reverse(true)
			})
		}
		core.RenderSpansClipped(buf, content.X, y, v.Scroll.X, content.W, spans, th.Text)
	}

	if v.opts.ShowScrollbar {
		core.RenderScrollbar(buf, area, v.Scroll.Y, content.H, len(v.lines), th.ScrollTrack, th.ScrollThumb)
	}
}

// RenderedLines returns the diff as styled lines, gutter included, for
// hosts that compose diffs into larger documents.
func (v *View) RenderedLines(th theme.Theme) []core.Line {
	out := make([]core.Line, len(v.lines))
	for i, l := range v.lines {
		spans := []core.Span{{Text: v.gutterText(l, th), Style: th.TextMuted}}
		spans = append(spans, v.contentSpans(i, th)...)
		out[i] = core.Line{Spans: spans}
	}
	return out
}

func (v *View) gutterText(l Line, th theme.Theme) string {
	marker := ' '
	switch l.Kind {
	case Add:
		marker = '+'
	case Del:
		marker = '-'
	case HunkHeader, FileHeader, Meta:
		if !v.opts.LineNumbers {
			return "  "
		}
		return strings.Repeat(" ", v.gutterWidth())
	}
	if !v.opts.LineNumbers {
		return string(marker) + " "
	}
	oldMax, newMax := 1, 1
	for _, ln := range v.lines {
		if ln.OldNo > oldMax {
			oldMax = ln.OldNo
		}
		if ln.NewNo > newMax {
			newMax = ln.NewNo
		}
	}
	oldS, newS := "", ""
	if l.OldNo > 0 {
		oldS = fmt.Sprintf("%d", l.OldNo)
	}
	if l.NewNo > 0 {
		newS = fmt.Sprintf("%d", l.NewNo)
	}
	return fmt.Sprintf("%*s %*s %c ", digits(oldMax), oldS, digits(newMax), newS, marker)
}

func (v *View) kindStyle(k LineKind, th theme.Theme) tcell.Style {
	switch k {
	case Add:
		return th.DiffAdd
	case Del:
		return th.DiffDel
	case HunkHeader:
		return th.DiffHunk
	case FileHeader:
		return th.TextMuted.Bold(true)
	case Meta:
		return th.TextMuted
	}
	return th.Text
}

// contentSpans builds the styled content spans for line i: highlighted
// spans when available, per-kind color otherwise, with inline emphasis
// reversed on top.
func (v *View) contentSpans(i int, th theme.Theme) []core.Span {
	l := v.lines[i]
	base := v.kindStyle(l.Kind, th)
	m := v.hlSpans
	if m == nil {
		m = v.syncSpans
	}
	var spans []core.Span
	if hl, ok := m[i]; ok {
		spans = core.PatchSpans(hl, base)
	} else {
		spans = []core.Span{{Text: l.Content, Style: base}}
	}
	for _, r := range l.Emphasis {
		spans = overlayByteRange(spans, r[0], r[1], base)
	}
	return spans
}

// overlayByteRange reverses the byte interval [from, to) of the spans'
// concatenated text.
func overlayByteRange(spans []core.Span, from, to int, fallback tcell.Style) []core.Span {
	out := make([]core.Span, 0, len(spans)+2)
	pos := 0
	for _, sp := range spans {
		n := len(sp.Text)
		lo, hi := from-pos, to-pos
		pos += n
		if lo < 0 {
			lo = 0
		}
		if hi > n {
			hi = n
		}
		if lo >= hi {
			out = append(out, sp)
			continue
		}
		if lo > 0 {
			out = append(out, core.Span{Text: sp.Text[:lo], Style: sp.Style})
		}
		st := core.PatchStyle(fallback, sp.Style).Reverse(true)
		out = append(out, core.Span{Text: sp.Text[lo:hi], Style: st})
		if hi < n {
			out = append(out, core.Span{Text: sp.Text[hi:], Style: sp.Style})
		}
	}
	return out
}

// scheduleHighlight hands the full input to the view's worker, once per
// content hash.
func (v *View) scheduleHighlight() {
	if v.hl == nil || !v.opts.AsyncHighlighting || v.pending || v.hlSpans != nil {
		return
	}
	if v.worker == nil {
		v.worker = newWorker(v.hl)
	}
	if v.worker.submit(highlightRequest{hash: v.hash, lines: v.lines}) {
		v.pending = true
	} else {
		v.worker.stop()
		v.worker = nil
	}
}

func (v *View) adoptResults() {
	if v.worker == nil {
		return
	}
	for _, r := range v.worker.drain() {
		if r.hash != v.hash {
			continue
		}
		v.pending = false
		v.hlSpans = r.spans
	}
}

// ensureSyncWindow highlights just the visible rows while the full
// result is still pending, within the sync budget.
func (v *View) ensureSyncWindow(start, end int) {
	if v.hl == nil || end <= start || end-start > v.opts.MaxSyncHighlightLines {
		return
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%d:%d:%d", v.hash, start, end)
	key := h.Sum64()
	if key == v.syncKey && v.syncSpans != nil {
		return
	}
	v.syncKey = key
	spans := highlightAll(v.lines[start:end], v.hl)
	if start != 0 {
		shifted := make(map[int][]core.Span, len(spans))
		for i, s := range spans {
			shifted[i+start] = s
		}
		spans = shifted
	}
	v.syncSpans = spans
}

// highlightAll highlights hunk content grouped by language hint and
// contiguous kind, so each group is tokenized once.
func highlightAll(lines []Line, hl highlight.Highlighter) map[int][]core.Span {
	out := make(map[int][]core.Span)
	i := 0
	for i < len(lines) {
		k := lines[i].Kind
		if k != Context && k != Add && k != Del {
			i++
			continue
		}
		hint := lines[i].LanguageHint
		j := i
		for j < len(lines) && lines[j].Kind == k && lines[j].LanguageHint == hint {
			j++
		}
		var sb strings.Builder
		for m := i; m < j; m++ {
			if m > i {
				sb.WriteByte('\n')
			}
			sb.WriteString(lines[m].Content)
		}
		if hlLines, ok := hl.HighlightText(hint, sb.String()); ok && len(hlLines) == j-i {
			for m := i; m < j; m++ {
				out[m] = hlLines[m-i].Spans
			}
		}
		i = j
	}
	return out
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
