package ddl

import (
	"unicode"
	"unicode/utf8"
)

var identifierStart = []*unicode.RangeTable{
	unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo, unicode.Nl,
}

var identifierPart = []*unicode.RangeTable{
	unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo, unicode.Nl,
	unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc,
}

// IsValidIdentifier reports whether s is a regular (unquoted) SQL identifier:
// a letter or underscore followed by letters, marks, digits, connector
// punctuation or the middle dot.
func IsValidIdentifier(s string) bool {
	if s == "" || !utf8.ValidString(s) {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if r != '_' && !unicode.IsOneOf(identifierStart, r) {
				return false
			}
			continue
		}
		if r != '·' && !unicode.IsOneOf(identifierPart, r) {
			return false
		}
	}

	return true
}
