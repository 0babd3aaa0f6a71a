// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package help

import (
	"strings"
	"testing"

	"github.com/framegrace/texelview/core"
	"github.com/framegrace/texelview/theme"
)

func TestBarSpans(t *testing.T) {
	b := New([]Binding{{"j/k", "scroll"}, {"q", "quit"}})
	spans := b.Spans(theme.Default())
	if got := core.JoinPlain(spans); got != "j/k scroll  q quit" {
		t.Fatalf("plain = %q", got)
	}
	if spans[0].Style != theme.Default().Accent {
		t.Error("key hint not accented")
	}
}

func TestBarRenderClips(t *testing.T) {
	b := New([]Binding{{"j/k", "scroll"}, {"q", "quit"}})
	buf := core.NewMemBuffer(10, 1)
	b.Render(core.NewRect(0, 0, 10, 1), buf, theme.Default())
	if got := strings.TrimRight(buf.Row(0), " "); got != "j/k scroll" {
		t.Fatalf("row = %q", got)
	}
}
