package service

import "strings"

// DemoPrefix marks synthesized demo-mode output. Callers can detect demo
// mode programmatically by checking for this prefix.
const DemoPrefix = "[DEMO] Translated: "

type demoKey struct {
	text   string
	source string
	target string
}

// demoTranslations is the fixed phrasebook served when no engine is loaded.
var demoTranslations = map[demoKey]string{
	{"Hello, how are you?", "en", "ha"}: "Sannu, yaya kuke?",
	{"Good morning", "en", "ha"}:        "Barka da safe",
	{"Thank you", "en", "ha"}:           "Na gode",
	{"Sannu, yaya kuke?", "ha", "en"}:   "Hello, how are you?",
	{"Barka da safe", "ha", "en"}:       "Good morning",
	{"Na gode", "ha", "en"}:             "Thank you",
}

// demoTranslate serves a translation without an engine. The lookup key is
// the trimmed original text, matched exactly: no normalization is applied,
// so a trailing punctuation difference falls through to the placeholder.
func demoTranslate(text, sourceLang, targetLang string) string {
	key := demoKey{strings.TrimSpace(text), sourceLang, targetLang}
	if translation, ok := demoTranslations[key]; ok {
		demoLookupsTotal.WithLabelValues("hit").Inc()
		return translation
	}
	demoLookupsTotal.WithLabelValues("placeholder").Inc()
	return DemoPrefix + text
}
