package lang

import (
	"strings"
	"unicode"
)

// allowedPunct is the punctuation kept when stripping extra characters.
var allowedPunct = map[rune]bool{
	'.':  true,
	',':  true,
	'!':  true,
	'?':  true,
	';':  true,
	':':  true,
	'\'': true,
	'"':  true,
	'-':  true,
}

// hausaExtra lists the extended-alphabet characters Hausa orthography needs.
// The hooked letters and the glottal apostrophe must survive stripping;
// losing them silently corrupts Hausa text.
var hausaExtra = map[rune]bool{
	'ƙ': true,
	'ɗ': true,
	'ƴ': true,
	'ʼ': true,
	'Ƙ': true,
	'Ɗ': true,
	'Ƴ': true,
}

// Normalize cleans raw input text before translation. It trims leading and
// trailing whitespace and collapses internal whitespace runs to a single
// space. When stripExtra is true it additionally removes every character that
// is not a letter, digit, underscore, whitespace, allowed punctuation, or one
// of the Hausa extended-alphabet characters.
//
// Normalize never fails; unusable input degrades to an empty string.
// It is idempotent: Normalize(Normalize(s, b), b) == Normalize(s, b).
func Normalize(text string, stripExtra bool) string {
	if text == "" {
		return ""
	}

	if stripExtra {
		var b strings.Builder
		b.Grow(len(text))
		for _, r := range text {
			if keepRune(r) {
				b.WriteRune(r)
			}
		}
		text = b.String()
	}

	// Fields splits on any whitespace run, so joining with a single space
	// both trims and collapses.
	return strings.Join(strings.Fields(text), " ")
}

func keepRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
		return true
	}
	if unicode.IsSpace(r) {
		return true
	}
	return allowedPunct[r] || hausaExtra[r]
}
