package lang

import "fmt"

// Code is an ISO 639-1 language code from the supported two-language set.
type Code string

const (
	// English is the primary language of the pair.
	English Code = "en"
	// Hausa is the secondary language of the pair.
	Hausa Code = "ha"
)

// ParseCode validates a caller-supplied language code.
func ParseCode(s string) (Code, error) {
	switch Code(s) {
	case English:
		return English, nil
	case Hausa:
		return Hausa, nil
	default:
		return "", fmt.Errorf("unsupported language: %q (supported: en, ha)", s)
	}
}

// Direction is the (source, target) pair for a single translation.
type Direction struct {
	Source Code
	Target Code
}

// ResolveDirection determines the effective translation direction for a
// request. When the caller declared English input but the text looks like
// Hausa, the declared pair is treated as mis-labeled and swapped.
//
// The correction is deliberately one-directional: a declared Hausa source is
// never swapped, even when the text looks like English. Callers labeling
// Hausa correctly is the common case worth protecting; the reverse swap
// would misfire on Hausa loanwords and proper nouns.
func ResolveDirection(source, target Code, normalizedText string) Direction {
	if source == English && LooksLikeHausa(normalizedText) {
		return Direction{Source: target, Target: source}
	}
	return Direction{Source: source, Target: target}
}
