// Copyright © 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: markdown/url.go
// Summary: Link resolution and HTML-to-text stripping.

package markdown

import (
	"net/url"
	"strings"
)

// ResolveURL joins a link destination against an optional base. Absolute
// destinations pass through. With no base, glowCompat rewrites "./x" to
// "/x" the way glow does for repository-relative paths.
func ResolveURL(base, dest string, glowCompat bool) string {
	if isAbsoluteDest(dest) {
		return dest
	}
	if base == "" {
		if glowCompat && strings.HasPrefix(dest, "./") {
			return dest[1:]
		}
		return dest
	}
	if u, err := url.Parse(base); err == nil && u.Scheme != "" {
		if ref, err2 := url.Parse(dest); err2 == nil {
			return u.ResolveReference(ref).String()
		}
	}
	b := strings.TrimRight(base, "/\\")
	d := strings.TrimPrefix(strings.TrimPrefix(dest, "./"), "/")
	return b + "/" + d
}

func isAbsoluteDest(dest string) bool {
	for _, p := range []string{"#", "mailto:", "http://", "https://", "file://", "/"} {
		if strings.HasPrefix(dest, p) {
			return true
		}
	}
	return false
}

// htmlToText strips tags, decodes the basic entities and collapses
// whitespace.
func htmlToText(s string) string {
	var sb strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	out := sb.String()
	for _, e := range [][2]string{
		{"&lt;", "<"}, {"&gt;", ">"}, {"&quot;", "\""}, {"&apos;", "'"}, {"&amp;", "&"},
	} {
		out = strings.ReplaceAll(out, e[0], e[1])
	}
	return strings.Join(strings.Fields(out), " ")
}
