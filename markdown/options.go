// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: markdown/options.go
// Summary: Markdown rendering options.

package markdown

// TableStyle selects the table chrome.
type TableStyle int

const (
	// TableGlow renders header, a light separator row and column bars.
	TableGlow TableStyle = iota
	// TableBox renders full box-drawing borders with cell padding.
	TableBox
)

// LinkDestinationStyle selects how a link destination is appended after
// the link text when ShowLinkDestinations is set.
type LinkDestinationStyle int

const (
	// LinkDestParen appends " (url)".
	LinkDestParen LinkDestinationStyle = iota
	// LinkDestSpace appends " url".
	LinkDestSpace
)

// Options configures parsing and layout.
type Options struct {
	// WrapText wraps prose to the layout width; when false logical lines
	// render verbatim and overflow is clipped by the viewport.
	WrapText bool
	// PreserveNewLines turns soft breaks into new logical lines instead
	// of spaces.
	PreserveNewLines bool

	BlockquotePrefix string
	BulletMarker     string

	// CodeBlockIndent adds one indent column in front of code blocks.
	CodeBlockIndent bool
	// CodeBlockIndentInQuote keeps that indent inside blockquotes.
	CodeBlockIndentInQuote bool
	// CodeLineNumbers adds a line-number gutter inside code blocks.
	CodeLineNumbers bool

	// ShowLinkDestinations appends each link's resolved URL after its
	// text, muted, unless the text already is the URL.
	ShowLinkDestinations bool
	LinkDestinationStyle LinkDestinationStyle
	// ShowHeadingMarkers keeps the "#" run in front of headings.
	ShowHeadingMarkers bool

	BaseURL string
	// GlowCompatRelativePaths rewrites "./x" destinations to "/x" when no
	// base URL is set.
	GlowCompatRelativePaths bool
	// GlowCompatQuoteListWrap drops blockquote bars from continuation
	// lines of prose inside list items, as glow does.
	GlowCompatQuoteListWrap bool
	// GlowCompatLooseListJoin joins trailing paragraphs inside a list
	// item to the first one instead of separating them with a blank.
	GlowCompatLooseListJoin bool
	// GlowCompatPostListBlankLines inserts extra blank lines between a
	// top-level list and a following paragraph.
	GlowCompatPostListBlankLines int

	// FootnoteHangingIndent indents footnote continuation lines under
	// the definition label.
	FootnoteHangingIndent bool

	TableStyle TableStyle

	// MaxSyncHighlightLines is the per-block line budget above which a
	// code block is never highlighted synchronously during a frame.
	MaxSyncHighlightLines int
	// MaxSyncHighlightBlocksPerFrame bounds how many code blocks get
	// highlighted synchronously in one render pass.
	MaxSyncHighlightBlocksPerFrame int

	ShowScrollbar bool
}

// DefaultOptions returns the standard configuration.
func DefaultOptions() Options {
	return Options{
		WrapText:                       true,
		BlockquotePrefix:               "| ",
		BulletMarker:                   "• ",
		CodeBlockIndent:                true,
		CodeBlockIndentInQuote:         true,
		GlowCompatQuoteListWrap:        true,
		FootnoteHangingIndent:          true,
		TableStyle:                     TableGlow,
		MaxSyncHighlightLines:          200,
		MaxSyncHighlightBlocksPerFrame: 1,
		ShowScrollbar:                  true,
	}
}
