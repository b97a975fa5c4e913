package dataset

import (
	"unicode"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"

	"github.com/dasmlab/fassara/pkg/lang"
)

// Options controls pair preprocessing. Zero values get the documented
// defaults from DefaultOptions.
type Options struct {
	// MinChars drops pairs where either side is shorter. Default 5.
	MinChars int
	// MaxChars drops pairs where either side is longer. Default 200.
	MaxChars int
	// StripExtraChars applies the aggressive normalizer filter to both
	// sides. Hausa diacritics survive it.
	StripExtraChars bool
	// KeepDuplicates disables deduplication.
	KeepDuplicates bool
	// SkipScriptCheck disables the Latin-script sanity check on the
	// English side.
	SkipScriptCheck bool
}

// DefaultOptions returns the standard preprocessing configuration.
func DefaultOptions() Options {
	return Options{MinChars: 5, MaxChars: 200}
}

// Preprocess cleans, filters, and dedupes sentence pairs, preserving input
// order. Pairs whose English side is not Latin-script are dropped as
// probable column mixups or encoding damage.
func Preprocess(pairs []Pair, opts Options) []Pair {
	if opts.MinChars == 0 {
		opts.MinChars = 5
	}
	if opts.MaxChars == 0 {
		opts.MaxChars = 200
	}

	seen := make(map[Pair]bool, len(pairs))
	out := make([]Pair, 0, len(pairs))

	for _, p := range pairs {
		cleaned := Pair{
			English: lang.Normalize(p.English, opts.StripExtraChars),
			Hausa:   lang.Normalize(p.Hausa, opts.StripExtraChars),
		}

		if tooShort(cleaned, opts.MinChars) || tooLong(cleaned, opts.MaxChars) {
			continue
		}
		if !opts.SkipScriptCheck && !latinScript(cleaned.English) {
			continue
		}
		if !opts.KeepDuplicates {
			if seen[cleaned] {
				continue
			}
			seen[cleaned] = true
		}

		out = append(out, cleaned)
	}

	return out
}

func tooShort(p Pair, min int) bool {
	return utf8.RuneCountInString(p.English) < min || utf8.RuneCountInString(p.Hausa) < min
}

func tooLong(p Pair, max int) bool {
	return utf8.RuneCountInString(p.English) > max || utf8.RuneCountInString(p.Hausa) > max
}

// latinScript reports whether text is detected as Latin-script. Detection
// can fail on very short inputs; those pass through.
func latinScript(text string) bool {
	info := whatlanggo.Detect(text)
	if info.Script == nil {
		return true
	}
	return info.Script == unicode.Latin
}
