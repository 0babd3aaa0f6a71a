// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package core

import (
	"reflect"
	"testing"
)

func TestWrapPlain(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{"simple", "hello world", 5, []string{"hello", "world"}},
		{"fits", "hello world", 20, []string{"hello world"}},
		{"blank lines survive", "a\n\nb", 10, []string{"a", "", "b"}},
		{"long word splits", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"collapses spaces", "a   b", 10, []string{"a b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WrapPlain(tt.in, tt.width); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WrapPlain(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrapPlainMonotonic(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog near a riverbank"
	prev := -1
	for width := 30; width >= 3; width-- {
		n := len(WrapPlain(text, width))
		if prev >= 0 && n < prev {
			t.Fatalf("width %d wrapped to %d lines, fewer than width %d's %d", width, n, width+1, prev)
		}
		prev = n
	}
}

func TestSplitURLToWidth(t *testing.T) {
	head, tail := SplitURLToWidth("https://example.com/path/stuff", 22)
	if head+tail != "https://example.com/path/stuff" {
		t.Fatalf("split lost text: %q + %q", head, tail)
	}
	if head[len(head)-1] != '/' && head[len(head)-1] != '.' && head[len(head)-1] != '-' {
		t.Errorf("head %q does not end at a URL break char", head)
	}

	// No break char that fits: plain column split.
	head, tail = SplitURLToWidth("abcdefgh", 4)
	if head != "abcd" || tail != "efgh" {
		t.Errorf("fallback split = %q, %q", head, tail)
	}
}

func TestLooksLikeURL(t *testing.T) {
	if !LooksLikeURL("https://x.dev") || LooksLikeURL("hello") {
		t.Error("URL detection wrong")
	}
}
