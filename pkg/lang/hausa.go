package lang

import "strings"

// hausaDiacritics are characters unique to Hausa in the en/ha pair. Seeing
// any one of them is taken as proof of Hausa input.
var hausaDiacritics = map[rune]bool{
	'ƙ': true,
	'ɗ': true,
	'ƴ': true,
	'ʼ': true,
}

// hausaFunctionWords is a closed list of short, high-frequency Hausa
// pronouns and conjunctions used by the ratio check below. The list and the
// 0.2 threshold are load-bearing; changing either changes which requests get
// their direction auto-corrected.
var hausaFunctionWords = map[string]bool{
	"da":  true,
	"na":  true,
	"ya":  true,
	"ta":  true,
	"su":  true,
	"mu":  true,
	"ku":  true,
	"shi": true,
	"ita": true,
}

// LooksLikeHausa reports whether text is probably written in Hausa.
//
// It first scans for Hausa-specific diacritics, then falls back to counting
// whitespace-delimited tokens that exactly match the function-word list: the
// text is flagged when matches/total > 0.2 (strictly greater).
//
// This is a heuristic, not a classifier. It accepts both false positives and
// false negatives, and it is unreliable for short inputs (fewer than five
// tokens) because the ratio is unstable at low token counts.
func LooksLikeHausa(text string) bool {
	lower := strings.ToLower(text)

	for _, r := range lower {
		if hausaDiacritics[r] {
			return true
		}
	}

	words := strings.Fields(lower)
	if len(words) == 0 {
		return false
	}

	matches := 0
	for _, w := range words {
		if hausaFunctionWords[w] {
			matches++
		}
	}

	return float64(matches)/float64(len(words)) > 0.2
}
