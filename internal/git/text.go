// SPDX-License-Identifier: AGPL-3.0-or-later

package git

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"
)

// decodeText turns raw bytes into text. Valid UTF-8 is kept as is; anything
// else is read as Latin-1 so no byte is lost.
func decodeText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}

// splitLines splits on newlines, drops a trailing carriage return from each
// line and ignores the empty piece after a final newline.
func splitLines(b []byte) [][]byte {
	if len(b) == 0 {
		return nil
	}
	b = bytes.TrimSuffix(b, []byte("\n"))
	parts := bytes.Split(b, []byte("\n"))
	for i, p := range parts {
		parts[i] = bytes.TrimSuffix(p, []byte("\r"))
	}
	return parts
}

// unquotePath undoes the C-style quoting git applies to paths holding
// control, quote, backslash or non-ASCII bytes. Octal escapes decode to raw
// bytes, so the result is the path as stored in the tree.
func unquotePath(p string) (string, error) {
	if !strings.HasPrefix(p, `"`) {
		return p, nil
	}
	return strconv.Unquote(p)
}
