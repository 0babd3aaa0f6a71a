// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package core

import "testing"

func TestStringWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"a\tb", 6},
		{"日本", 4},
		{"a日b", 4},
		{"é", 1}, // combining accent
	}
	for _, tt := range tests {
		if got := StringWidth(tt.in); got != tt.want {
			t.Errorf("StringWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestByteRangeForCols(t *testing.T) {
	tests := []struct {
		s          string
		start, end int
		wantText   string
		wantOK     bool
	}{
		{"hello", 1, 3, "el", true},
		{"hello", 0, 5, "hello", true},
		{"hello", 5, 7, "", false},
		{"hello", 3, 3, "", false},
		{"hello", 4, 2, "", false},
		// Wide glyph fully inside.
		{"a日b", 1, 3, "日", true},
		// Interval starting in the middle of a wide glyph snaps outward.
		{"a日b", 2, 4, "日b", true},
		// Interval ending in the middle of a wide glyph snaps outward.
		{"a日b", 0, 2, "a日", true},
	}
	for _, tt := range tests {
		bs, be, ok := ByteRangeForCols(tt.s, tt.start, tt.end)
		if ok != tt.wantOK {
			t.Errorf("ByteRangeForCols(%q, %d, %d) ok = %v, want %v", tt.s, tt.start, tt.end, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if got := tt.s[bs:be]; got != tt.wantText {
			t.Errorf("ByteRangeForCols(%q, %d, %d) = %q, want %q", tt.s, tt.start, tt.end, got, tt.wantText)
		}
	}
}

func TestByteRangeCoversRequestedCols(t *testing.T) {
	s := "x日本語y"
	for start := 0; start < 8; start++ {
		for end := start + 1; end <= 8; end++ {
			bs, be, ok := ByteRangeForCols(s, start, end)
			if !ok {
				continue
			}
			if w := StringWidth(s[bs:be]); w < end-start-2 {
				t.Errorf("range [%d,%d) -> %q narrower than requested", start, end, s[bs:be])
			}
		}
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 3, "hel"},
		{"hello", 10, "hello"},
		{"hello", 0, ""},
		// Never split a wide glyph.
		{"a日b", 2, "a"},
		{"a日b", 3, "a日"},
	}
	for _, tt := range tests {
		if got := TruncateToWidth(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateToWidth(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
