// Package sanitize strips markup from user-supplied plain-text fields and
// checks markdown fields for visible text.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

type Sanitizer interface {
	// Text removes every HTML element and returns trimmed plain text.
	Text(input string) string
	// HasText reports whether input keeps any visible text once markup is
	// removed. It never rewrites input.
	HasText(input string) bool
}

type strictSanitizer struct {
	policy *bluemonday.Policy
}

func NewStrictSanitizer() Sanitizer {
	return &strictSanitizer{policy: bluemonday.StrictPolicy()}
}

func (s *strictSanitizer) Text(input string) string {
	// StrictPolicy entity-encodes what it keeps; stored text is plain.
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(input)))
}

func (s *strictSanitizer) HasText(input string) bool {
	return s.Text(input) != ""
}
