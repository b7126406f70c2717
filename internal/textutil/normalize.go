// Package textutil provides small text normalization helpers shared by the
// extraction and segmentation layers.
package textutil

import "strings"

// Normalize converts Windows line endings to Unix and trims surrounding
// whitespace. It is applied to every extracted document before segmentation.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
}

// NonBlankLines splits s on newlines and drops lines that are empty after
// trimming.
func NonBlankLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
