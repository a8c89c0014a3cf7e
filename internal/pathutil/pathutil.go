// Package pathutil provides string-level path cleanup. It never touches
// the filesystem: inputs may name paths that do not exist yet, so
// realpath-style resolution is off the table.
package pathutil

import "strings"

// Clean collapses every run of consecutive slashes into a single slash
// and strips one trailing slash, unless that would leave an empty string
// or reduce the root to nothing.
func Clean(path string) string {
	var b strings.Builder
	b.Grow(len(path))

	prevSlash := false
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteByte(c)
	}

	s := b.String()
	if len(s) > 1 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
