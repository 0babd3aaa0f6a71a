// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: markdown/block.go
// Summary: Block-level document model.

package markdown

// BlockKind discriminates block types.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockCode
	BlockBlank
	BlockRule
	BlockTable
)

// Alignment is a table column alignment.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Block is one laid-out unit of the document. The prefix segments carry
// accumulated blockquote bars and list indentation; the initial prefix
// applies to the block's first rendered line, the subsequent prefix to
// every following line.
type Block struct {
	Kind BlockKind

	// Prose content for paragraphs and headings, one entry per logical
	// line (hard breaks split lines).
	Lines [][]Segment
	// Level is the heading level.
	Level int

	// Code content.
	Language string
	Code     []string

	// Table content.
	Head   [][]Segment
	Rows   [][][]Segment
	Aligns []Alignment

	InitialPrefix    []Segment
	SubsequentPrefix []Segment
}

// blank returns a Blank block with the given continuation prefix, so
// blank lines inside quotes keep their bars.
func blank(prefix []Segment) Block {
	return Block{Kind: BlockBlank, InitialPrefix: prefix, SubsequentPrefix: prefix}
}
