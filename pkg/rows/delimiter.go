package rows

import (
	"unicode/utf8"

	"github.com/ajitpratap0/dataprep/pkg/errors"
)

// delimiterAliases maps named delimiters to their character.
var delimiterAliases = map[string]rune{
	"t":         '\t',
	`\t`:        '\t',
	`\\t`:       '\t',
	"tab":       '\t',
	"comma":     ',',
	"pipe":      '|',
	"semicolon": ';',
	"space":     ' ',
}

// ParseDelimiter resolves a delimiter option to a single character. Named
// aliases such as "tab" are accepted, as is any single character other than
// a quote or line break.
func ParseDelimiter(s string) (rune, error) {
	if r, ok := delimiterAliases[s]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.Newf(errors.ErrorTypeConfig, "delimiter %q must be a single character or one of tab, comma, pipe, semicolon, space", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	switch r {
	case '"', '\r', '\n', utf8.RuneError:
		return 0, errors.Newf(errors.ErrorTypeConfig, "delimiter %q is not allowed", s)
	}
	return r, nil
}
