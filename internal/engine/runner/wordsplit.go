package runner

import (
	"strings"

	"go.trai.ch/zerr"
)

// SplitWords performs POSIX shell word splitting: single and double quotes
// group words (double quotes honour backslash escapes for `"`, `\`, `$`,
// and backtick; single quotes take everything literally), and unquoted
// whitespace separates words. No globbing or variable expansion is
// performed — by the time an interpreter string reaches here, the resolver
// has already substituted every placeholder.
func SplitWords(s string) ([]string, error) {
	var words []string
	var cur strings.Builder
	inWord := false

	runes := []rune(s)
	i := 0
	for i < len(runes) {
		c := runes[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
			i++
		case c == '\'':
			inWord = true
			j := i + 1
			for j < len(runes) && runes[j] != '\'' {
				cur.WriteRune(runes[j])
				j++
			}
			if j >= len(runes) {
				return nil, zerr.With(zerr.New("unterminated single quote"), "expression", s)
			}
			i = j + 1
		case c == '"':
			inWord = true
			j := i + 1
			for j < len(runes) && runes[j] != '"' {
				if runes[j] == '\\' && j+1 < len(runes) && isDoubleQuoteEscapable(runes[j+1]) {
					cur.WriteRune(runes[j+1])
					j += 2
					continue
				}
				cur.WriteRune(runes[j])
				j++
			}
			if j >= len(runes) {
				return nil, zerr.With(zerr.New("unterminated double quote"), "expression", s)
			}
			i = j + 1
		case c == '\\' && i+1 < len(runes):
			inWord = true
			cur.WriteRune(runes[i+1])
			i += 2
		default:
			inWord = true
			cur.WriteRune(c)
			i++
		}
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words, nil
}

func isDoubleQuoteEscapable(c rune) bool {
	switch c {
	case '"', '\\', '$', '`':
		return true
	default:
		return false
	}
}
