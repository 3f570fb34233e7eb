package attendance

import (
	"strconv"
	"strings"
	"unicode"
)

// parseInt reads the leading base 10 integer of s, like JavaScript's parseInt:
// surrounding whitespace is skipped, anything after the digits is ignored.
// ok is false when s does not start with a number.
func parseInt(s string) (n int, ok bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
