package valueobjects

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const maxNameLength = 100

// NormalizeName trims a display name and collapses inner whitespace.
func NormalizeName(value string) (string, error) {
	normalized := strings.Join(strings.Fields(value), " ")
	if normalized == "" {
		return "", fmt.Errorf("name cannot be empty")
	}
	if utf8.RuneCountInString(normalized) > maxNameLength {
		return "", fmt.Errorf("name cannot exceed %d characters", maxNameLength)
	}
	return normalized, nil
}

// Avatar returns the upper-cased initials of the first two words of name,
// e.g. "Sarah Chen" -> "SC", "cher" -> "C".
func Avatar(name string) string {
	caser := cases.Upper(language.Und)

	var initials strings.Builder
	for i, part := range strings.Fields(name) {
		if i == 2 {
			break
		}
		r, _ := utf8.DecodeRuneInString(part)
		initials.WriteString(caser.String(string(r)))
	}
	return initials.String()
}
