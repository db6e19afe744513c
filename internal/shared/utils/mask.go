package utils

import (
	"strings"
	"unicode/utf8"
)

// MaskEmail hides all but the first character of the local part so an
// address can be logged, e.g. "tom@acme.example" -> "t***@acme.example".
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || domain == "" {
		return "***"
	}
	if local == "" {
		return "***@" + domain
	}
	_, size := utf8.DecodeRuneInString(local)
	return local[:size] + "***@" + domain
}
