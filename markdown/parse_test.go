// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"reflect"
	"testing"
)

func TestParseFencedCode(t *testing.T) {
	blocks := ParseBlocks("```rs\nfn main() {}\n```\n", DefaultOptions())
	if len(blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(blocks))
	}
	b := blocks[0]
	if b.Kind != BlockCode || b.Language != "rs" {
		t.Fatalf("block = kind %v language %q", b.Kind, b.Language)
	}
	if !reflect.DeepEqual(b.Code, []string{"fn main() {}"}) {
		t.Fatalf("code = %q", b.Code)
	}
}

func TestParseHeadingAndParagraph(t *testing.T) {
	blocks := ParseBlocks("# Title\n\nbody text\n", DefaultOptions())
	if len(blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(blocks))
	}
	if blocks[0].Kind != BlockHeading || blocks[0].Level != 1 {
		t.Fatalf("heading = %+v", blocks[0])
	}
	if blocks[1].Kind != BlockBlank {
		t.Fatalf("separator = %v", blocks[1].Kind)
	}
	if blocks[2].Kind != BlockParagraph || segmentsPlain(blocks[2].Lines[0]) != "body text" {
		t.Fatalf("paragraph = %q", segmentsPlain(blocks[2].Lines[0]))
	}
}

func TestParseBlockquotePrefixes(t *testing.T) {
	blocks := ParseBlocks("> quoted\n>\n> more\n", DefaultOptions())
	if len(blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(blocks))
	}
	for i, b := range blocks {
		if segmentsPlain(b.InitialPrefix) != "| " {
			t.Errorf("block %d initial prefix = %q", i, segmentsPlain(b.InitialPrefix))
		}
	}
	// Blank between quoted paragraphs keeps the bar.
	if blocks[1].Kind != BlockBlank {
		t.Fatalf("middle block = %v", blocks[1].Kind)
	}
}

func TestParseOrderedListNumbering(t *testing.T) {
	blocks := ParseBlocks("3. three\n4. four\n", DefaultOptions())
	var prefixes []string
	for _, b := range blocks {
		if b.Kind == BlockParagraph {
			prefixes = append(prefixes, segmentsPlain(b.InitialPrefix))
		}
	}
	if !reflect.DeepEqual(prefixes, []string{"3. ", "4. "}) {
		t.Fatalf("prefixes = %q", prefixes)
	}
}

func TestParseNestedListContinuation(t *testing.T) {
	blocks := ParseBlocks("- outer\n  - inner\n", DefaultOptions())
	var got []string
	for _, b := range blocks {
		if b.Kind == BlockParagraph {
			got = append(got, segmentsPlain(b.InitialPrefix)+segmentsPlain(b.Lines[0]))
		}
	}
	want := []string{"• outer", "  • inner"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("items = %q, want %q", got, want)
	}
}

func TestParseTaskList(t *testing.T) {
	blocks := ParseBlocks("- [x] done\n- [ ] todo\n", DefaultOptions())
	var got []string
	for _, b := range blocks {
		if b.Kind == BlockParagraph {
			got = append(got, segmentsPlain(b.InitialPrefix)+segmentsPlain(b.Lines[0]))
		}
	}
	want := []string{"[✓] done", "[ ] todo"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("items = %q, want %q", got, want)
	}
}

func TestParseTable(t *testing.T) {
	src := "| a | b |\n|:--|--:|\n| 1 | 2 |\n"
	blocks := ParseBlocks(src, DefaultOptions())
	if len(blocks) != 1 || blocks[0].Kind != BlockTable {
		t.Fatalf("blocks = %+v", blocks)
	}
	b := blocks[0]
	if len(b.Head) != 2 || segmentsPlain(b.Head[0]) != "a" {
		t.Fatalf("head = %+v", b.Head)
	}
	if len(b.Rows) != 1 || segmentsPlain(b.Rows[0][1]) != "2" {
		t.Fatalf("rows = %+v", b.Rows)
	}
	if !reflect.DeepEqual(b.Aligns, []Alignment{AlignLeft, AlignRight}) {
		t.Fatalf("aligns = %v", b.Aligns)
	}
}

func TestParseTrailingBlanksDropped(t *testing.T) {
	blocks := ParseBlocks("one\n\ntwo\n", DefaultOptions())
	if blocks[len(blocks)-1].Kind == BlockBlank {
		t.Fatal("trailing blank survived")
	}
}

func TestNormalizeFencedLang(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"go", "go"},
		{"go linenums", "go"},
		{"language-python", "python"},
		{"{ruby}", "ruby"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeFencedLang(tt.in); got != tt.want {
			t.Errorf("normalizeFencedLang(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInlineEmphasisSegments(t *testing.T) {
	blocks := ParseBlocks("**bold** and *it* and `code` and ~~gone~~\n", DefaultOptions())
	segs := blocks[0].Lines[0]
	var bold, italic, code, strike bool
	for _, s := range segs {
		switch s.Text {
		case "bold":
			bold = s.Bold
		case "it":
			italic = s.Italic
		case "code":
			code = s.Code
		case "gone":
			strike = s.Strike
		}
	}
	if !bold || !italic || !code || !strike {
		t.Fatalf("flags: bold=%v italic=%v code=%v strike=%v", bold, italic, code, strike)
	}
}

func TestInlineLinkAnnotation(t *testing.T) {
	opts := DefaultOptions()
	opts.ShowLinkDestinations = true

	blocks := ParseBlocks("[site](https://x.dev)\n", opts)
	segs := blocks[0].Lines[0]
	if segs[0].Text != "site" || segs[0].Link != "https://x.dev" {
		t.Fatalf("link segment = %+v", segs[0])
	}
	if got := segmentsPlain(segs); got != "site (https://x.dev)" {
		t.Fatalf("plain = %q", got)
	}

	opts.LinkDestinationStyle = LinkDestSpace
	blocks = ParseBlocks("[site](https://x.dev)\n", opts)
	if got := segmentsPlain(blocks[0].Lines[0]); got != "site https://x.dev" {
		t.Fatalf("space style plain = %q", got)
	}

	// Text equal to the destination gets no annotation.
	blocks = ParseBlocks("<https://x.dev>\n", opts)
	if got := segmentsPlain(blocks[0].Lines[0]); got != "https://x.dev" {
		t.Fatalf("autolink plain = %q", got)
	}

	// Destinations stay hidden by default.
	blocks = ParseBlocks("[site](https://x.dev)\n", DefaultOptions())
	if got := segmentsPlain(blocks[0].Lines[0]); got != "site" {
		t.Fatalf("default plain = %q", got)
	}
}

func TestShowHeadingMarkers(t *testing.T) {
	opts := DefaultOptions()
	opts.ShowHeadingMarkers = true
	blocks := ParseBlocks("## title\n", opts)
	if got := segmentsPlain(blocks[0].Lines[0]); got != "## title" {
		t.Fatalf("plain = %q", got)
	}
	if blocks[0].Lines[0][0].Heading != 2 {
		t.Fatalf("marker segment = %+v", blocks[0].Lines[0][0])
	}
}

func TestQuoteListWrapDropsBars(t *testing.T) {
	src := "> - item text\n"

	blocks := ParseBlocks(src, DefaultOptions())
	para := blocks[len(blocks)-1]
	if got := segmentsPlain(para.InitialPrefix); got != "| • " {
		t.Fatalf("initial prefix = %q", got)
	}
	// The continuation prefix loses the bar but keeps the indent.
	if got := segmentsPlain(para.SubsequentPrefix); got != "  " {
		t.Fatalf("subsequent prefix = %q", got)
	}

	opts := DefaultOptions()
	opts.GlowCompatQuoteListWrap = false
	blocks = ParseBlocks(src, opts)
	para = blocks[len(blocks)-1]
	if got := segmentsPlain(para.SubsequentPrefix); got != "|   " {
		t.Fatalf("subsequent prefix without compat = %q", got)
	}
}

func TestLooseListJoin(t *testing.T) {
	src := "- first para\n\n  second para\n"

	blocks := ParseBlocks(src, DefaultOptions())
	if len(blocks) != 3 || blocks[1].Kind != BlockBlank {
		t.Fatalf("expected blank-separated paragraphs, got %d blocks", len(blocks))
	}

	opts := DefaultOptions()
	opts.GlowCompatLooseListJoin = true
	blocks = ParseBlocks(src, opts)
	if len(blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(blocks))
	}
	if len(blocks[0].Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(blocks[0].Lines))
	}
	if got := segmentsPlain(blocks[0].Lines[1]); got != "second para" {
		t.Fatalf("joined line = %q", got)
	}
}

func TestPostListBlankLines(t *testing.T) {
	src := "- item\n\nafter\n"

	blocks := ParseBlocks(src, DefaultOptions())
	base := 0
	for _, b := range blocks {
		if b.Kind == BlockBlank {
			base++
		}
	}

	opts := DefaultOptions()
	opts.GlowCompatPostListBlankLines = 2
	blocks = ParseBlocks(src, opts)
	got := 0
	for _, b := range blocks {
		if b.Kind == BlockBlank {
			got++
		}
	}
	if got != base+2 {
		t.Fatalf("blank blocks = %d, want %d", got, base+2)
	}
}

func TestFootnoteHangingIndent(t *testing.T) {
	src := "text[^1]\n\n[^1]: note line\n"

	blocks := ParseBlocks(src, DefaultOptions())
	def := blocks[len(blocks)-1]
	if got := segmentsPlain(def.InitialPrefix); got != "[^1]: " {
		t.Fatalf("label = %q", got)
	}
	if got := segmentsPlain(def.SubsequentPrefix); got != "      " {
		t.Fatalf("hanging indent = %q", got)
	}

	opts := DefaultOptions()
	opts.FootnoteHangingIndent = false
	blocks = ParseBlocks(src, opts)
	def = blocks[len(blocks)-1]
	if got := segmentsPlain(def.SubsequentPrefix); got != "" {
		t.Fatalf("subsequent prefix = %q", got)
	}
}

func TestHTMLBlockStripped(t *testing.T) {
	blocks := ParseBlocks("<div>\n<b>hi</b> there\n</div>\n", DefaultOptions())
	if len(blocks) != 1 || blocks[0].Kind != BlockParagraph {
		t.Fatalf("blocks = %+v", blocks)
	}
	if got := segmentsPlain(blocks[0].Lines[0]); got != "hi there" {
		t.Fatalf("plain = %q", got)
	}
}
