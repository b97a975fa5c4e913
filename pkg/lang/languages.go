package lang

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language describes one supported language for API metadata.
type Language struct {
	Code       Code   `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
}

// Supported returns metadata for the supported language set, with English
// and self (native) display names rendered via x/text.
func Supported() []Language {
	codes := []Code{English, Hausa}
	out := make([]Language, 0, len(codes))
	for _, c := range codes {
		tag := language.MustParse(string(c))
		out = append(out, Language{
			Code:       c,
			Name:       display.English.Languages().Name(tag),
			NativeName: display.Self.Name(tag),
		})
	}
	return out
}

// Pairs returns the valid translation directions.
func Pairs() []Direction {
	return []Direction{
		{Source: English, Target: Hausa},
		{Source: Hausa, Target: English},
	}
}
