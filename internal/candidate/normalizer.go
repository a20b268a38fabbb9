package candidate

import (
	"strings"
	"unicode"
)

// Normalize returns the comparison form of text: trimmed, LF line endings,
// no trailing whitespace on any line, and at most one blank line in a row.
// Indentation and content are left alone, so functions that differ in logic
// never normalize to the same form. Normalize is idempotent.
func Normalize(text string) NormalizedForm {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}

	return NormalizedForm(strings.Join(out, "\n"))
}

// Equivalent reports whether a and b normalize to the same form.
func Equivalent(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
