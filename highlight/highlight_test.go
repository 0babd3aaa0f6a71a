// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package highlight

import "testing"

func TestDetectLanguage(t *testing.T) {
	if got := DetectLanguage("main.go", []byte("package main")); got != "go" {
		t.Fatalf("DetectLanguage = %q, want %q", got, "go")
	}
	if got := DetectLanguage("mystery.zzz", nil); got != "" {
		t.Fatalf("unknown file = %q, want empty", got)
	}
}

func TestLanguageForExtension(t *testing.T) {
	if got := LanguageForExtension(".go"); got != "go" {
		t.Fatalf("LanguageForExtension(.go) = %q", got)
	}
	if got := LanguageForExtension(".nosuchext"); got != "" {
		t.Fatalf("unknown ext = %q, want empty", got)
	}
}

func TestChromaHighlightLineCount(t *testing.T) {
	h := NewChroma("")
	code := "package main\n\nfunc main() {}"
	lines, ok := h.HighlightText("go", code)
	if !ok {
		t.Fatal("highlight failed")
	}
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	for i, l := range lines {
		want := []string{"package main", "", "func main() {}"}[i]
		if l.Plain() != want {
			t.Fatalf("line %d = %q, want %q", i, l.Plain(), want)
		}
	}
}

func TestChromaTrailingNewline(t *testing.T) {
	h := NewChroma("")
	lines, ok := h.HighlightText("go", "package main\n")
	if !ok || len(lines) != 1 {
		t.Fatalf("lines = %d ok = %v, want 1 line", len(lines), ok)
	}
}

func TestChromaBackgroundColor(t *testing.T) {
	h := NewChroma("")
	if _, ok := h.BackgroundColor(); !ok {
		t.Fatal("default style reports no background")
	}
}

func TestHighlightLines(t *testing.T) {
	h := NewChroma("")
	lines, ok := HighlightLines(h, "go", []string{"package main", "", "func main() {}"})
	if !ok || len(lines) != 3 {
		t.Fatalf("lines = %d ok = %v, want 3", len(lines), ok)
	}
	if lines[2].Plain() != "func main() {}" {
		t.Fatalf("line 2 = %q", lines[2].Plain())
	}
}
