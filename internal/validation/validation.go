package validation

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// MaxSearchTermLength is the longest search term, in characters, that is logged.
const MaxSearchTermLength = 200

// MaxListLimit caps how many rows a listing endpoint returns.
const MaxListLimit = 1000

// ValidateSearchTerm checks that a raw search term is safe to log.
// Blank terms are valid here; they are skipped, not rejected.
func ValidateSearchTerm(term string) (bool, string) {
	if !utf8.ValidString(term) {
		return false, "Search term must be valid UTF-8"
	}

	if utf8.RuneCountInString(term) > MaxSearchTermLength {
		return false, "Search term must be at most 200 characters"
	}

	for _, r := range term {
		// Tabs and newlines get trimmed or folded away; other control
		// characters would end up in the workbook verbatim.
		if unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r' {
			return false, "Search term contains control characters"
		}
	}

	return true, ""
}

// ParseLimit parses a limit query parameter. Empty or invalid values fall
// back to fallback; values are clamped to [1, MaxListLimit].
func ParseLimit(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if raw == "" || err != nil {
		n = fallback
	}
	if n < 1 {
		n = 1
	}
	if n > MaxListLimit {
		n = MaxListLimit
	}
	return n
}
