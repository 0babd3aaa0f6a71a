// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/theme"
)

// stubHighlighter paints every line with one fixed style.
type stubHighlighter struct {
	style tcell.Style
	calls int
}

func (s *stubHighlighter) HighlightText(language, text string) ([]core.Line, bool) {
	s.calls++
	var lines []core.Line
	for _, l := range strings.Split(text, "\n") {
		lines = append(lines, core.Line{Spans: []core.Span{{Text: l, Style: s.style}}})
	}
	return lines, true
}

func (s *stubHighlighter) BackgroundColor() (tcell.Color, bool) { return 0, false }

const twoBlocks = "```go\nfirst\n```\n\ntext\n\n```go\nsecond\n```\n"

func codeRefCount(lines []RenderedLine) int {
	n := 0
	for _, l := range lines {
		if l.Code != nil {
			n++
		}
	}
	return n
}

func TestMaterializeHighlightsBudget(t *testing.T) {
	hl := &stubHighlighter{style: tcell.StyleDefault.Foreground(tcell.ColorRed)}
	doc := NewDocument(DefaultOptions())
	doc.SetHighlighter(hl)
	doc.SetText(twoBlocks)

	th := theme.Default()
	lines := doc.EnsureLayout(40, th)
	if got := codeRefCount(lines); got != 2 {
		t.Fatalf("code lines before = %d, want 2", got)
	}

	// One block per frame.
	doc.MaterializeHighlights(0, len(lines), th)
	if got := codeRefCount(doc.EnsureLayout(40, th)); got != 1 {
		t.Fatalf("code lines after first frame = %d, want 1", got)
	}
	if hl.calls != 1 {
		t.Fatalf("highlighter calls = %d, want 1", hl.calls)
	}

	doc.MaterializeHighlights(0, len(lines), th)
	if got := codeRefCount(doc.EnsureLayout(40, th)); got != 0 {
		t.Fatalf("code lines after second frame = %d, want 0", got)
	}
}

func TestMaterializeHighlightsLineBudget(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxSyncHighlightLines = 1
	hl := &stubHighlighter{style: tcell.StyleDefault.Foreground(tcell.ColorRed)}
	doc := NewDocument(opts)
	doc.SetHighlighter(hl)
	doc.SetText("```go\na\nb\n```\n")

	th := theme.Default()
	lines := doc.EnsureLayout(40, th)
	doc.MaterializeHighlights(0, len(lines), th)
	if hl.calls != 0 {
		t.Fatalf("over-budget block was highlighted synchronously")
	}
}

func TestLinesForWidthHighlightsEverything(t *testing.T) {
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)
	hl := &stubHighlighter{style: red}
	doc := NewDocument(DefaultOptions())
	doc.SetHighlighter(hl)
	doc.SetText(twoBlocks)

	lines := doc.LinesForWidth(40, theme.Default())
	var styled int
	for _, l := range lines {
		for _, sp := range l.Spans {
			if sp.Style == red {
				styled++
			}
		}
	}
	if styled != 2 {
		t.Fatalf("highlighted spans = %d, want 2", styled)
	}
	if hl.calls != 2 {
		t.Fatalf("highlighter calls = %d, want 2", hl.calls)
	}
}

func TestHighlightKey(t *testing.T) {
	a := HighlightKey("go", []string{"x"})
	if b := HighlightKey("go", []string{"x"}); b != a {
		t.Fatal("same inputs hash differently")
	}
	if b := HighlightKey("rs", []string{"x"}); b == a {
		t.Fatal("language not part of the key")
	}
	if b := HighlightKey("go", []string{"y"}); b == a {
		t.Fatal("content not part of the key")
	}
}
