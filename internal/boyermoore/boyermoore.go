// Package boyermoore finds every occurrence of a pattern in a text with the
// bad-character rule of the Boyer-Moore algorithm. Offsets are byte offsets.
package boyermoore

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type options struct {
	caseSensitive bool
}

type Option func(*options)

// WithCaseSensitive toggles case sensitive matching. Matching is case
// insensitive by default.
func WithCaseSensitive(on bool) Option {
	return func(o *options) {
		o.caseSensitive = on
	}
}

// Fold lowers s the same way Search does for case insensitive matching.
func Fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Normalize returns text and pattern in the byte layout Search reports offsets
// and match lengths in. When matching case insensitively the pattern is
// folded. The text keeps its original case if it is all ASCII, since folding
// ASCII moves no bytes, and is folded otherwise.
func Normalize(text, pattern string, opts ...Option) (string, string) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.caseSensitive {
		return text, pattern
	}
	if !isASCII(text) {
		text = Fold(text)
	}
	return text, Fold(pattern)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// BadCharTable maps every byte value to the last index at which it occurs in
// pattern, or -1.
func BadCharTable(pattern string) [256]int {
	var table [256]int
	for i := range table {
		table[i] = -1
	}
	for i := 0; i < len(pattern); i++ {
		table[pattern[i]] = i
	}
	return table
}

// Search returns the ascending start offsets of all occurrences of pattern in
// text. When matching case insensitively the offsets refer to Fold(text).
func Search(text, pattern string, opts ...Option) []int {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if !o.caseSensitive {
		text, pattern = Fold(text), Fold(pattern)
	}

	occurrences := []int{}
	n, m := len(text), len(pattern)
	if m == 0 || m > n {
		return occurrences
	}

	badChar := BadCharTable(pattern)

	s := 0
	for s <= n-m {
		j := m - 1
		for j >= 0 && pattern[j] == text[s+j] {
			j--
		}

		if j < 0 {
			occurrences = append(occurrences, s)
			// align the byte after the match with its last occurrence in
			// the pattern
			if s+m < n {
				s += m - badChar[text[s+m]]
			} else {
				s++
			}
			continue
		}

		s += max(1, j-badChar[text[s+j]])
	}
	return occurrences
}
