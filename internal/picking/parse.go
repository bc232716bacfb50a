package picking

import (
	"strings"
	"unicode"
)

// parseLeadingInt reads an optionally signed run of ASCII digits at the start
// of s, after leading whitespace, and ignores whatever follows ("3個" → 3).
// ok is false when no digit is found or the value overflows.
func parseLeadingInt(s string) (n int, ok bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	const maxInt = int(^uint(0) >> 1)
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		d := int(s[digits] - '0')
		if n > (maxInt-d)/10 {
			return 0, false
		}
		n = n*10 + d
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// ParseQuantity parses an order quantity. Anything unparseable is 0, which
// makes the line a no-op for aggregation.
func ParseQuantity(s string) int {
	n, ok := parseLeadingInt(s)
	if !ok {
		return 0
	}
	return n
}

// parseMultiplier parses a set-count cell. Blank, unparseable and
// non-positive values all mean 1.
func parseMultiplier(s string) int {
	n, ok := parseLeadingInt(s)
	if !ok || n < 1 {
		return 1
	}
	return n
}
