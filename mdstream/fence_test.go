// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package mdstream

import "testing"

func TestParseFenceOpening(t *testing.T) {
	tests := []struct {
		line string
		ok   bool
	}{
		{"```", true},
		{"````go", true},
		{"~~~", true},
		{"  ```", true},
		{"``", false},
		{"text", false},
		{"", false},
	}
	for _, tt := range tests {
		if _, ok := parseFenceOpening(tt.line); ok != tt.ok {
			t.Errorf("parseFenceOpening(%q) = %v, want %v", tt.line, ok, tt.ok)
		}
	}
}

func TestFenceCloses(t *testing.T) {
	f, _ := parseFenceOpening("````go")
	tests := []struct {
		line string
		want bool
	}{
		{"````", true},
		{"`````", true},
		{"```", false},
		{"```` trailing", false},
		{"  ````", false},
	}
	for _, tt := range tests {
		if got := f.closes(tt.line); got != tt.want {
			t.Errorf("closes(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestTruncatePendingFence(t *testing.T) {
	got := truncatePendingFence("```go\n1\n2\n3\n4\n", 2)
	want := "```go\n… generating more …\n3\n4\n```\n"
	if got != want {
		t.Fatalf("truncated = %q, want %q", got, want)
	}
}

func TestTruncatePendingFenceShortPassesThrough(t *testing.T) {
	in := "```go\nx\n"
	if got := truncatePendingFence(in, 2); got != in {
		t.Fatalf("short fence changed: %q", got)
	}
	if got := truncatePendingFence("plain text\nmore\nlines\n", 2); got != "plain text\nmore\nlines\n" {
		t.Fatalf("prose changed: %q", got)
	}
}

func TestTruncatePendingFenceWithinBudgetGetsClosed(t *testing.T) {
	got := truncatePendingFence("```go\na\nb", 5)
	want := "```go\na\nb\n```\n"
	if got != want {
		t.Fatalf("closed fence = %q, want %q", got, want)
	}
}

func TestTruncatePendingFenceDropsExistingClosing(t *testing.T) {
	got := truncatePendingFence("```\na\nb\n```\n", 5)
	want := "```\na\nb\n```\n"
	if got != want {
		t.Fatalf("already closed = %q, want %q", got, want)
	}
}
