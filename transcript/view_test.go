// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/input"
	"github.com/framegrace/texelview/theme"
)

func renderRows(v *View, w, h int) []string {
	buf := core.NewMemBuffer(w, h)
	v.Render(core.NewRect(0, 0, w, h), buf, theme.Default())
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		rows[y] = strings.TrimRight(buf.Row(y), " ")
	}
	return rows
}

func TestLayoutOffsetsAndLocate(t *testing.T) {
	v := New(DefaultOptions())
	v.PushPlain("user", "hello")
	v.PushPlain("bot", "world")
	renderRows(v, 30, 5)

	if got := v.TotalLines(); got != 3 {
		t.Fatalf("TotalLines = %d, want 3", got)
	}

	idx, line, spacer := v.Locate(0)
	if idx != 0 || line != 0 || spacer {
		t.Fatalf("Locate(0) = (%d,%d,%v)", idx, line, spacer)
	}
	idx, _, spacer = v.Locate(1)
	if idx != 0 || !spacer {
		t.Fatalf("Locate(1) = (%d,_,%v), want spacer of entry 0", idx, spacer)
	}
	idx, line, spacer = v.Locate(2)
	if idx != 1 || line != 0 || spacer {
		t.Fatalf("Locate(2) = (%d,%d,%v)", idx, line, spacer)
	}
}

func TestRenderGutterAndSpacer(t *testing.T) {
	v := New(DefaultOptions())
	v.PushPlain("user", "hello")
	v.PushPlain("bot", "world")
	rows := renderRows(v, 30, 5)

	if rows[0] != "user │ hello" {
		t.Fatalf("row 0 = %q", rows[0])
	}
	if rows[1] != "" {
		t.Fatalf("spacer row = %q", rows[1])
	}
	if rows[2] != " bot │ world" {
		t.Fatalf("row 2 = %q", rows[2])
	}
}

func TestGutterWidthFollowsLabels(t *testing.T) {
	v := New(DefaultOptions())
	if got := v.gutterWidth(); got != 4 {
		t.Fatalf("empty gutter = %d, want 4", got)
	}
	v.PushPlain("assistant", "hi")
	if got := v.gutterWidth(); got != 9 {
		t.Fatalf("gutter = %d, want 9", got)
	}
}

func TestMultiLineEntryContinuationPrefix(t *testing.T) {
	v := New(DefaultOptions())
	v.PushPlain("user", "one\ntwo")
	rows := renderRows(v, 30, 4)
	if rows[0] != "user │ one" {
		t.Fatalf("row 0 = %q", rows[0])
	}
	if rows[1] != "     │ two" {
		t.Fatalf("row 1 = %q", rows[1])
	}
}

func TestAppendToLastMarkdown(t *testing.T) {
	v := New(DefaultOptions())
	v.PushMarkdown("bot", "hello")
	if !v.AppendToLastMarkdown("bot", " world") {
		t.Fatal("append to matching entry failed")
	}
	if v.Entries()[0].Text != "hello world" {
		t.Fatalf("entry text = %q", v.Entries()[0].Text)
	}
	if v.AppendToLastMarkdown("user", "x") {
		t.Fatal("append with mismatched label succeeded")
	}

	rows := renderRows(v, 30, 3)
	if rows[0] != " bot │ hello world" {
		t.Fatalf("row 0 = %q", rows[0])
	}

	// A new push drops the streaming companion.
	v.PushPlain("user", "next")
	if v.AppendToLastMarkdown("bot", "y") {
		t.Fatal("append past a newer entry succeeded")
	}
}

func TestStreamingEntryUsesRenderTheme(t *testing.T) {
	v := New(DefaultOptions())
	v.PushMarkdown("bot", "hello")
	if !v.AppendToLastMarkdown("bot", " world") {
		t.Fatal("append failed")
	}

	th := theme.Default()
	th.Text = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	buf := core.NewMemBuffer(30, 3)
	v.Render(core.NewRect(0, 0, 30, 3), buf, th)

	// First content cell after the " bot │ " prefix.
	c, ok := buf.Cell(v.prefixWidth(), 0)
	if !ok || c.Rune != 'h' {
		t.Fatalf("cell = %+v, ok=%v", c, ok)
	}
	if c.Style != th.Text {
		t.Fatal("streaming entry rendered with a stale theme")
	}
}

func TestTrimMaxEntries(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxEntries = 2
	v := New(opts)
	v.PushPlain("a", "1")
	v.PushPlain("b", "2")
	v.PushPlain("c", "3")
	renderRows(v, 30, 8)

	entries := v.Entries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Label != "b" || entries[1].Label != "c" {
		t.Fatalf("kept labels = %q, %q", entries[0].Label, entries[1].Label)
	}
}

func TestTrimMaxTotalLines(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxTotalLines = 3
	v := New(opts)
	v.PushPlain("a", "1\n2")
	v.PushPlain("b", "3")
	renderRows(v, 30, 8)

	if len(v.Entries()) != 1 || v.Entries()[0].Label != "b" {
		t.Fatalf("entries after trim = %+v", v.Entries())
	}
}

func TestFollowTailToggle(t *testing.T) {
	v := New(DefaultOptions())
	for i := 0; i < 20; i++ {
		v.PushPlain("a", "line")
	}
	renderRows(v, 30, 5)
	if !v.FollowTail() {
		t.Fatal("not following tail initially")
	}
	if !v.Scroll.AtBottom() {
		t.Fatal("follow tail did not scroll to bottom")
	}

	ev := v.HandleKey(input.KeyEvent{Key: tcell.KeyRune, Rune: 'k'})
	if ev.Kind != EventHandled || v.FollowTail() {
		t.Fatalf("scroll up: event %v, follow %v", ev.Kind, v.FollowTail())
	}

	ev = v.HandleKey(input.KeyEvent{Key: tcell.KeyRune, Rune: 'f'})
	if ev.Kind != EventFollowTailToggled || !ev.FollowTail {
		t.Fatalf("toggle event = %+v", ev)
	}
	renderRows(v, 30, 5)
	if !v.Scroll.AtBottom() {
		t.Fatal("re-pinning did not scroll to bottom")
	}
}

func TestDiffEntryRenders(t *testing.T) {
	v := New(DefaultOptions())
	v.PushDiff("git", "@@ -1 +1 @@\n-a\n+b\n")
	rows := renderRows(v, 40, 4)
	found := false
	for _, r := range rows {
		if strings.Contains(r, "@@ -1 +1 @@") {
			found = true
		}
	}
	if !found {
		t.Fatalf("hunk header not rendered: %q", rows)
	}
}
