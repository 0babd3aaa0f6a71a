// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: transcript/view.go
// Summary: Heterogeneous conversation transcript with virtual layout.

package transcript

import (
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/ansiview"
	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/diffview"
	"github.com/framegrace/texelview/highlight"
	"github.com/framegrace/texelview/input"
	"github.com/framegrace/texelview/markdown"
	"github.com/framegrace/texelview/mdstream"
	"github.com/framegrace/texelview/scroll"
	"github.com/framegrace/texelview/theme"
)

// EntryKind says how an entry's text is rendered.
type EntryKind int

const (
	Markdown EntryKind = iota
	Diff
	Ansi
	Plain
)

// Entry is one transcript item: a role label and its content.
type Entry struct {
	Label string
	Kind  EntryKind
	Text  string
}

// Metrics is the laid-out size of one entry at the current width.
type Metrics struct {
	Height   int
	MaxWidth int
}

// Options configures a transcript view.
type Options struct {
	FollowTail bool
	// MaxEntries trims the oldest entries past this count; 0 disables.
	MaxEntries int
	// MaxTotalLines trims oldest entries while the total rendered height
	// exceeds this; 0 disables.
	MaxTotalLines int
	// CacheEntries is the rendered-lines LRU capacity.
	CacheEntries int
}

// DefaultOptions returns the standard configuration.
func DefaultOptions() Options {
	return Options{FollowTail: true, CacheEntries: 48}
}

// EventKind classifies what handling an input event produced.
type EventKind int

const (
	EventNone EventKind = iota
	EventHandled
	EventFollowTailToggled
)

// Event is the outcome of handle-event calls.
type Event struct {
	Kind       EventKind
	FollowTail bool
}

// View renders an append-only list of entries with one spacer row
// between neighbors and a role-label gutter. Layout is virtual: only
// entries intersecting the viewport are rendered, through an LRU.
type View struct {
	opts    Options
	entries []Entry
	metrics []Metrics
	// offsets[i] is the global starting row of entry i; len(entries)+1
	// entries, one spacer row counted between neighbors.
	offsets []int
	cache   *linesLRU
	hl      highlight.Highlighter

	Scroll        scroll.State
	followTail    bool
	forceToBottom bool

	dirtyFrom  int // -1 none, 0.. incremental start; full rebuild when metrics are stale
	lastWidth  int
	lastGutter int

	streamIdx  int
	streamView *mdstream.View
}

// New returns an empty transcript.
func New(opts Options) *View {
	return &View{
		opts:       opts,
		cache:      newLinesLRU(opts.CacheEntries),
		followTail: opts.FollowTail,
		dirtyFrom:  -1,
		streamIdx:  -1,
	}
}

// SetHighlighter sets the code highlighter used by markdown entries.
func (v *View) SetHighlighter(h highlight.Highlighter) {
	v.hl = h
	v.cache.clear()
}

// Entries returns the current entries.
func (v *View) Entries() []Entry { return v.entries }

// Push appends an entry.
func (v *View) Push(e Entry) {
	v.dropCompanion()
	v.entries = append(v.entries, e)
	v.markDirty(len(v.entries) - 1)
	if v.followTail {
		v.forceToBottom = true
	}
}

// PushMarkdown appends a markdown entry.
func (v *View) PushMarkdown(label, text string) { v.Push(Entry{label, Markdown, text}) }

// PushDiff appends a unified-diff entry.
func (v *View) PushDiff(label, text string) { v.Push(Entry{label, Diff, text}) }

// PushAnsi appends an ANSI-styled text entry.
func (v *View) PushAnsi(label, text string) { v.Push(Entry{label, Ansi, text}) }

// PushPlain appends a plain word-wrapped entry.
func (v *View) PushPlain(label, text string) { v.Push(Entry{label, Plain, text}) }

// AppendToLastMarkdown appends text to the last entry when it is a
// markdown entry with the same label, invalidating only that entry's
// layout. Returns false otherwise.
func (v *View) AppendToLastMarkdown(label, delta string) bool {
	n := len(v.entries)
	if n == 0 {
		return false
	}
	last := &v.entries[n-1]
	if last.Kind != Markdown || last.Label != label {
		return false
	}
	if v.streamView == nil || v.streamIdx != n-1 {
		v.streamView = mdstream.New(mdstream.DefaultOptions())
		v.streamView.SetHighlighter(v.hl)
		v.streamView.Append(last.Text)
		v.streamIdx = n - 1
	}
	last.Text += delta
	v.streamView.Append(delta)
	v.markDirty(n - 1)
	if v.followTail {
		v.forceToBottom = true
	}
	return true
}

func (v *View) dropCompanion() {
	v.streamView = nil
	v.streamIdx = -1
}

func (v *View) markDirty(idx int) {
	if v.dirtyFrom < 0 || idx < v.dirtyFrom {
		v.dirtyFrom = idx
	}
}

// gutterWidth is the label column width: at least 4, wide enough for
// every label.
func (v *View) gutterWidth() int {
	w := 4
	for _, e := range v.entries {
		if lw := core.StringWidth(e.Label); lw > w {
			w = lw
		}
	}
	return w
}

// prefixWidth includes the " │ " divider after the label column.
func (v *View) prefixWidth() int { return v.gutterWidth() + 3 }

func (v *View) makePrefix(label string, first bool) string {
	g := v.gutterWidth()
	if !first {
		return strings.Repeat(" ", g) + " │ "
	}
	pad := g - core.StringWidth(label)
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + label + " │ "
}

// TotalLines returns the transcript's rendered height, spacers included.
func (v *View) TotalLines() int {
	if len(v.offsets) == 0 {
		return 0
	}
	t := v.offsets[len(v.offsets)-1] - 1
	if t < 0 {
		t = 0
	}
	return t
}

// Locate maps a global row to an entry index and line within it.
// spacer is true for the row separating entry idx from its successor.
func (v *View) Locate(global int) (idx, line int, spacer bool) {
	if len(v.entries) == 0 {
		return 0, 0, false
	}
	// First offset strictly greater than global, minus one.
	i := sort.Search(len(v.offsets), func(i int) bool { return v.offsets[i] > global }) - 1
	if i < 0 {
		i = 0
	}
	if i >= len(v.entries) {
		i = len(v.entries) - 1
	}
	line = global - v.offsets[i]
	if line >= v.metrics[i].Height {
		return i, 0, true
	}
	return i, line, false
}

// renderEntryLines lays out one entry's content at width.
func (v *View) renderEntryLines(idx, width int, th theme.Theme, hl highlight.Highlighter) []core.Line {
	if width < 1 {
		width = 1
	}
	e := v.entries[idx]
	if idx == v.streamIdx && v.streamView != nil {
		return v.streamView.SnapshotLines(width, th)
	}
	switch e.Kind {
	case Markdown:
		opts := markdown.DefaultOptions()
		opts.ShowScrollbar = false
		doc := markdown.NewDocument(opts)
		doc.SetHighlighter(hl)
		doc.SetText(e.Text)
		return doc.LinesForWidth(width, th)
	case Diff:
		opts := diffview.DefaultOptions()
		opts.ShowScrollbar = false
		opts.AsyncHighlighting = false
		dv := diffview.New(opts)
		dv.SetDiff(e.Text)
		return dv.RenderedLines(th)
	case Ansi:
		return ansiview.ParseText(e.Text)
	default:
		text := strings.ReplaceAll(e.Text, "\t", strings.Repeat(" ", core.TabWidth))
		wrapped := core.WrapPlain(text, width)
		out := make([]core.Line, len(wrapped))
		for i, l := range wrapped {
			out[i] = core.PlainLine(l)
		}
		return out
	}
}

// ensureLayout brings metrics and offsets up to date for contentW.
// Metrics render with the live theme so the streaming companion's
// per-block cache is not laid out twice per frame; the highlighter is
// skipped here because it never changes line counts.
func (v *View) ensureLayout(contentW int, th theme.Theme) {
	g := v.gutterWidth()
	full := contentW != v.lastWidth || g != v.lastGutter || len(v.metrics) > len(v.entries)
	start := v.dirtyFrom
	if full {
		start = 0
	} else if start < 0 && len(v.metrics) == len(v.entries) {
		return
	} else if start < 0 {
		start = len(v.metrics)
	}
	v.lastWidth, v.lastGutter = contentW, g
	v.dirtyFrom = -1

	v.metrics = v.metrics[:start]
	v.cache.removeFrom(start)
	for i := start; i < len(v.entries); i++ {
		lines := v.renderEntryLines(i, contentW, th, nil)
		m := Metrics{Height: len(lines)}
		for _, l := range lines {
			if w := l.Width(); w > m.MaxWidth {
				m.MaxWidth = w
			}
		}
		if m.Height == 0 {
			m.Height = 1
		}
		v.metrics = append(v.metrics, m)
	}
	v.rebuildOffsets()
	v.trim(contentW)
}

func (v *View) rebuildOffsets() {
	v.offsets = v.offsets[:0]
	off := 0
	for _, m := range v.metrics {
		v.offsets = append(v.offsets, off)
		off += m.Height + 1
	}
	v.offsets = append(v.offsets, off)
}

// trim drops oldest entries while over the configured bounds. Trimming
// invalidates the whole cache.
func (v *View) trim(contentW int) {
	trimmed := false
	for len(v.entries) > 0 {
		over := v.opts.MaxEntries > 0 && len(v.entries) > v.opts.MaxEntries
		if !over && v.opts.MaxTotalLines > 0 && v.TotalLines() > v.opts.MaxTotalLines {
			over = true
		}
		if !over {
			break
		}
		v.entries = v.entries[1:]
		v.metrics = v.metrics[1:]
		if v.streamIdx == 0 {
			v.dropCompanion()
		} else if v.streamIdx > 0 {
			v.streamIdx--
		}
		v.rebuildOffsets()
		trimmed = true
	}
	if trimmed {
		v.cache.clear()
	}
}

func (v *View) scrollYBy(d int) {
	if d < 0 {
		v.followTail = false
	}
	v.Scroll.ScrollYBy(d)
	if v.Scroll.AtBottom() {
		v.followTail = true
	}
}

// FollowTail reports whether the view is pinned to the newest content.
func (v *View) FollowTail() bool { return v.followTail }

// HandleKey applies the transcript bindings.
func (v *View) HandleKey(ev input.KeyEvent) Event {
	vh := v.Scroll.ViewportH
	switch {
	case ev.IsRune('j') || ev.Key == tcell.KeyDown:
		v.scrollYBy(1)
	case ev.IsRune('k') || ev.Key == tcell.KeyUp:
		v.scrollYBy(-1)
	case ev.Key == tcell.KeyPgDn:
		v.scrollYBy(maxInt(1, vh-1))
	case ev.Key == tcell.KeyPgUp:
		v.scrollYBy(-maxInt(1, vh-1))
	case ev.IsCtrl('d'):
		v.scrollYBy(maxInt(1, vh/2))
	case ev.IsCtrl('u'):
		v.scrollYBy(-maxInt(1, vh/2))
	case ev.IsRune('g') || ev.Key == tcell.KeyHome:
		v.Scroll.ToTop()
		v.followTail = false
	case ev.IsRune('G') || ev.Key == tcell.KeyEnd:
		v.followTail = true
		v.forceToBottom = true
	case ev.IsRune('h') || ev.Key == tcell.KeyLeft:
		v.Scroll.ScrollXBy(-input.HScrollStep)
	case ev.IsRune('l') || ev.Key == tcell.KeyRight:
		v.Scroll.ScrollXBy(input.HScrollStep)
	case ev.IsRune('f'):
		v.followTail = !v.followTail
		if v.followTail {
			v.forceToBottom = true
		}
		return Event{Kind: EventFollowTailToggled, FollowTail: v.followTail}
	default:
		return Event{}
	}
	return Event{Kind: EventHandled}
}

// HandleMouse applies wheel scrolling.
func (v *View) HandleMouse(ev input.MouseEvent) Event {
	switch ev.Kind {
	case input.MouseWheelUp:
		v.scrollYBy(-input.WheelLines)
	case input.MouseWheelDown:
		v.scrollYBy(input.WheelLines)
	default:
		return Event{}
	}
	return Event{Kind: EventHandled}
}

// Render draws the transcript into area.
func (v *View) Render(area core.Rect, buf core.Buffer, th theme.Theme) {
	if area.Empty() {
		return
	}
	content := area.InsetH(0, 1) // scrollbar column
	prefixW := v.prefixWidth()
	entryW := content.W - prefixW
	if entryW < 1 {
		entryW = 1
	}
	v.ensureLayout(entryW, th)

	total := v.TotalLines()
	maxW := 0
	for _, m := range v.metrics {
		if m.MaxWidth > maxW {
			maxW = m.MaxWidth
		}
	}
	v.Scroll.SetViewport(content.W, content.H)
	v.Scroll.SetContent(prefixW+maxW, total)
	if v.followTail || v.forceToBottom {
		v.Scroll.ToBottom()
	}
	v.forceToBottom = false

	for row := 0; row < content.H; row++ {
		global := v.Scroll.Y + row
		if global >= total || len(v.entries) == 0 {
			break
		}
		idx, line, spacer := v.Locate(global)
		if spacer {
			continue
		}
		y := area.Y + row
		lines, ok := v.cache.get(idx)
		if !ok {
			lines = v.renderEntryLines(idx, entryW, th, v.hl)
			v.cache.put(idx, lines)
		}
		prefix := v.makePrefix(v.entries[idx].Label, line == 0)
		core.RenderStrClipped(buf, content.X, y, 0, prefixW, prefix, th.TextMuted)
		if line < len(lines) {
			core.RenderSpansClipped(buf, content.X+prefixW, y, v.Scroll.X, content.W-prefixW, lines[line].Spans, th.Text)
		}
	}

	core.RenderScrollbar(buf, area, v.Scroll.Y, content.H, total, th.ScrollTrack, th.ScrollThumb)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
