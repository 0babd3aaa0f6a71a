// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: mdstream/fence.go
// Summary: Code fence detection and pending-block truncation.

package mdstream

import "strings"

type fenceInfo struct {
	indent string
	char   byte
	length int
}

// parseFenceOpening recognizes a code fence opening: any leading
// whitespace followed by at least three backticks or tildes.
func parseFenceOpening(line string) (fenceInfo, bool) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	indent := line[:i]
	rest := line[i:]
	if rest == "" {
		return fenceInfo{}, false
	}
	ch := rest[0]
	if ch != '`' && ch != '~' {
		return fenceInfo{}, false
	}
	n := 0
	for n < len(rest) && rest[n] == ch {
		n++
	}
	if n < 3 {
		return fenceInfo{}, false
	}
	return fenceInfo{indent: indent, char: ch, length: n}, true
}

// closes reports whether line closes this fence: same char at the same
// indent, at least the opening length, nothing else on the line.
func (f fenceInfo) closes(line string) bool {
	if !strings.HasPrefix(line, f.indent) {
		return false
	}
	rest := line[len(f.indent):]
	n := 0
	for n < len(rest) && rest[n] == f.char {
		n++
	}
	return n >= f.length && strings.TrimSpace(rest[n:]) == ""
}

func (f fenceInfo) closing() string {
	return f.indent + strings.Repeat(string(f.char), f.length)
}

// truncatePendingFence limits a pending code fence to its last maxLines
// content lines, inserting a marker after the opening and a synthetic
// closing fence so the tail renders as valid markdown. Non-fence text
// passes through untouched.
func truncatePendingFence(raw string, maxLines int) string {
	if maxLines <= 0 {
		return raw
	}
	lines := strings.SplitAfter(raw, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) <= 2 {
		return raw
	}
	fence, ok := parseFenceOpening(strings.TrimRight(lines[0], "\n"))
	if !ok {
		return raw
	}
	content := lines[1:]
	if n := len(content); n > 0 && fence.closes(strings.TrimRight(content[n-1], "\n")) {
		content = content[:n-1]
	}
	var out []string
	if len(content) <= maxLines {
		out = append(append([]string{lines[0]}, content...), "")
	} else {
		out = []string{lines[0], fence.indent + "… generating more …\n"}
		out = append(out, content[len(content)-maxLines:]...)
		out = append(out, "")
	}
	joined := strings.Join(out, "")
	if joined != "" && !strings.HasSuffix(joined, "\n") {
		joined += "\n"
	}
	return joined + fence.closing() + "\n"
}
