// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: diffview/parse.go
// Summary: Unified diff parsing with running line counters.

package diffview

import (
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/framegrace/texelview/highlight"
)

// LineKind classifies one parsed diff line.
type LineKind int

const (
	Context LineKind = iota
	Add
	Del
	HunkHeader
	FileHeader
	Meta
)

// Line is one parsed diff line. OldNo and NewNo are 1-based and 0 when
// the side does not apply. Content excludes the leading marker for hunk
// content lines and is the raw text otherwise. Emphasis holds merged
// byte ranges within Content to draw reversed (inline character diff).
type Line struct {
	Kind         LineKind
	OldNo, NewNo int
	Content      string
	LanguageHint string
	Emphasis     [][2]int
}

var hunkRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

var fileHeaderPrefixes = []string{
	"index ", "--- ", "+++ ", "new file mode", "deleted file mode",
	"similarity index", "rename from", "rename to", "old mode", "new mode",
}

// Parse splits a unified diff into classified lines and computes the
// inline character-diff emphasis for paired del/add runs.
func Parse(diff string) []Line {
	diff = strings.ReplaceAll(diff, "\r\n", "\n")
	var out []Line
	inHunk := false
	oldNo, newNo := 0, 0
	hint := ""

	for _, raw := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		if m := hunkRe.FindStringSubmatch(raw); m != nil {
			oldNo, _ = strconv.Atoi(m[1])
			newNo, _ = strconv.Atoi(m[3])
			inHunk = true
			out = append(out, Line{Kind: HunkHeader, Content: raw, LanguageHint: hint})
			continue
		}
		if strings.HasPrefix(raw, "diff --git") {
			inHunk = false
			hint = hintFromPath(raw[strings.LastIndex(raw, " ")+1:])
			out = append(out, Line{Kind: FileHeader, Content: raw})
			continue
		}
		// File headers take priority over hunk content and close the
		// current hunk, so a following file's "--- a/…" is never read
		// as a deletion.
		if isFileHeader(raw) {
			inHunk = false
			if p, ok := strings.CutPrefix(raw, "+++ "); ok {
				if h := hintFromPath(p); h != "" {
					hint = h
				}
			}
			out = append(out, Line{Kind: FileHeader, Content: raw})
			continue
		}
		if !inHunk {
			out = append(out, Line{Kind: Meta, Content: raw})
			continue
		}
		switch {
		case strings.HasPrefix(raw, "+"):
			out = append(out, Line{Kind: Add, NewNo: newNo, Content: raw[1:], LanguageHint: hint})
			newNo++
		case strings.HasPrefix(raw, "-"):
			out = append(out, Line{Kind: Del, OldNo: oldNo, Content: raw[1:], LanguageHint: hint})
			oldNo++
		case strings.HasPrefix(raw, " "):
			out = append(out, Line{Kind: Context, OldNo: oldNo, NewNo: newNo, Content: raw[1:], LanguageHint: hint})
			oldNo++
			newNo++
		default:
			// Covers "\ No newline at end of file" and anything else.
			out = append(out, Line{Kind: Meta, Content: raw, LanguageHint: hint})
		}
	}

	computeInline(out)
	return out
}

func isFileHeader(raw string) bool {
	for _, p := range fileHeaderPrefixes {
		if strings.HasPrefix(raw, p) {
			return true
		}
	}
	return false
}

// hintFromPath maps a diff header path like "b/cmd/main.go" to a
// language name for highlighting, or "".
func hintFromPath(p string) string {
	p = strings.TrimPrefix(strings.TrimPrefix(p, "a/"), "b/")
	p = strings.TrimSpace(p)
	if p == "" || p == "/dev/null" {
		return ""
	}
	ext := path.Ext(p)
	if ext == "" {
		return ""
	}
	return highlight.LanguageForExtension(ext)
}
