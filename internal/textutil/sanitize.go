package textutil

import (
	"strings"
	"unicode"
)

var separatorReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
)

// SanitizeFileName keeps a display name usable as one path segment while
// changing as little as possible. Path separators become dashes, control
// runes (NUL included) are removed, and surrounding whitespace is trimmed.
// Leading dots are dropped so a title cannot produce a hidden file or "..".
// Other punctuation, such as "Mission: Impossible", is kept as written.
func SanitizeFileName(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	name = separatorReplacer.Replace(name)
	return strings.TrimLeft(strings.TrimSpace(name), ".")
}

// Underscore replaces spaces with underscores.
func Underscore(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}
