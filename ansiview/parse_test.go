// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package ansiview

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestParseTextPlain(t *testing.T) {
	lines := ParseText("hello\nworld")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0].Plain() != "hello" || lines[1].Plain() != "world" {
		t.Fatalf("plain = %q, %q", lines[0].Plain(), lines[1].Plain())
	}
	// Unstyled runs keep the zero style so the view's fallback applies.
	if lines[0].Spans[0].Style != (tcell.Style{}) {
		t.Fatal("plain run carries an explicit style")
	}
}

func TestParseTextSGR(t *testing.T) {
	lines := ParseText("\x1b[1;31mred\x1b[0m plain")
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	spans := lines[0].Spans
	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}
	if spans[0].Text != "red" {
		t.Fatalf("span 0 = %q", spans[0].Text)
	}
	fg, _, attrs := spans[0].Style.Decompose()
	if fg != tcell.PaletteColor(1) {
		t.Errorf("fg = %v, want red", fg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Error("bold attribute missing")
	}
	if spans[1].Text != " plain" || spans[1].Style != (tcell.Style{}) {
		t.Errorf("reset run = %+v", spans[1])
	}
}

func TestParseTextExtendedColors(t *testing.T) {
	lines := ParseText("\x1b[38;5;99mx\x1b[48;2;10;20;30my")
	spans := lines[0].Spans
	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}
	fg, _, _ := spans[0].Style.Decompose()
	if fg != tcell.PaletteColor(99) {
		t.Errorf("256-color fg = %v", fg)
	}
	_, bg, _ := spans[1].Style.Decompose()
	if bg != tcell.NewRGBColor(10, 20, 30) {
		t.Errorf("truecolor bg = %v", bg)
	}
}

func TestParseTextBrightAndResetParams(t *testing.T) {
	lines := ParseText("\x1b[91ma\x1b[39mb")
	spans := lines[0].Spans
	fg, _, _ := spans[0].Style.Decompose()
	if fg != tcell.PaletteColor(9) {
		t.Errorf("bright fg = %v", fg)
	}
	if spans[1].Style != (tcell.Style{}) {
		t.Errorf("fg reset did not return to the zero style")
	}
}

func TestParseTextIgnoresOtherEscapes(t *testing.T) {
	// Cursor movement and an unterminated sequence must not corrupt text.
	lines := ParseText("a\x1b[2Jb\r\nc\x1b[")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0].Plain() != "ab" || lines[1].Plain() != "c" {
		t.Fatalf("plain = %q, %q", lines[0].Plain(), lines[1].Plain())
	}
}

func TestParseTextAttributeToggles(t *testing.T) {
	lines := ParseText("\x1b[4;9mx\x1b[24;29my")
	spans := lines[0].Spans
	_, _, attrs := spans[0].Style.Decompose()
	if attrs&tcell.AttrUnderline == 0 || attrs&tcell.AttrStrikeThrough == 0 {
		t.Fatalf("attrs = %v", attrs)
	}
	if spans[1].Style != (tcell.Style{}) {
		t.Fatal("clearing both attributes should return to the zero style")
	}
}
