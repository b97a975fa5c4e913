package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// fakeEngine records generate calls and returns canned output.
type fakeEngine struct {
	calls    []fakeCall
	output   string
	failText string // inputs containing this substring fail
}

type fakeCall struct {
	text       string
	sourceLang string
	targetLang string
	maxLength  int
	numBeams   int
}

func (f *fakeEngine) Generate(ctx context.Context, text, sourceLang, targetLang string, maxLength, numBeams int) (string, error) {
	f.calls = append(f.calls, fakeCall{text, sourceLang, targetLang, maxLength, numBeams})
	if f.failText != "" && strings.Contains(text, f.failText) {
		return "", errors.New("model blew up")
	}
	if f.output != "" {
		return f.output, nil
	}
	return "translated:" + text, nil
}

func (f *fakeEngine) CheckHealth(ctx context.Context) error {
	return nil
}

func (f *fakeEngine) ModelInfo(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{"model_path": "/models/test"}, nil
}

func TestTranslateDemoModeExactMatch(t *testing.T) {
	svc := New(nil, nil)

	res, err := svc.Translate(context.Background(), Request{
		Text:       "Hello, how are you?",
		SourceLang: "en",
		TargetLang: "ha",
	})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if res.Translation != "Sannu, yaya kuke?" {
		t.Errorf("Translation = %q, want %q", res.Translation, "Sannu, yaya kuke?")
	}
	if res.OriginalText != "Hello, how are you?" {
		t.Errorf("OriginalText = %q, want verbatim input", res.OriginalText)
	}
}

func TestTranslateDemoModeTrimsLookupKey(t *testing.T) {
	svc := New(nil, nil)

	// Leading/trailing whitespace is trimmed before the lookup, so this
	// still hits the phrasebook. OriginalText stays verbatim.
	res, err := svc.Translate(context.Background(), Request{
		Text:       "  Good morning  ",
		SourceLang: "en",
		TargetLang: "ha",
	})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if res.Translation != "Barka da safe" {
		t.Errorf("Translation = %q, want %q", res.Translation, "Barka da safe")
	}
	if res.OriginalText != "  Good morning  " {
		t.Errorf("OriginalText = %q, want verbatim input", res.OriginalText)
	}
}

func TestTranslateDemoModePlaceholder(t *testing.T) {
	svc := New(nil, nil)

	// A trailing punctuation difference must miss the phrasebook: the key
	// is matched exactly, with no normalization.
	res, err := svc.Translate(context.Background(), Request{
		Text:       "Good morning!",
		SourceLang: "en",
		TargetLang: "ha",
	})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	want := DemoPrefix + "Good morning!"
	if res.Translation != want {
		t.Errorf("Translation = %q, want %q", res.Translation, want)
	}
}

func TestTranslateEngineDirectionSwap(t *testing.T) {
	eng := &fakeEngine{output: "good morning"}
	svc := New(eng, nil)

	_, err := svc.Translate(context.Background(), Request{
		Text:       "su na zuwa da safe",
		SourceLang: "en",
		TargetLang: "ha",
	})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if len(eng.calls) != 1 {
		t.Fatalf("engine called %d times, want 1", len(eng.calls))
	}
	call := eng.calls[0]
	if call.sourceLang != "ha" || call.targetLang != "en" {
		t.Errorf("engine direction = %s->%s, want ha->en (auto-corrected)", call.sourceLang, call.targetLang)
	}
}

func TestTranslateEngineNoReverseSwap(t *testing.T) {
	eng := &fakeEngine{}
	svc := New(eng, nil)

	_, err := svc.Translate(context.Background(), Request{
		Text:       "the quick brown fox jumps over the dog",
		SourceLang: "ha",
		TargetLang: "en",
	})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	call := eng.calls[0]
	if call.sourceLang != "ha" || call.targetLang != "en" {
		t.Errorf("engine direction = %s->%s, want ha->en unchanged", call.sourceLang, call.targetLang)
	}
}

func TestTranslateEngineNormalizesInput(t *testing.T) {
	eng := &fakeEngine{}
	svc := New(eng, nil)

	res, err := svc.Translate(context.Background(), Request{
		Text:       "  Good   morning  ",
		SourceLang: "en",
		TargetLang: "ha",
	})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if eng.calls[0].text != "Good morning" {
		t.Errorf("engine input = %q, want normalized text", eng.calls[0].text)
	}
	if res.OriginalText != "  Good   morning  " {
		t.Errorf("OriginalText = %q, want verbatim input", res.OriginalText)
	}
}

func TestTranslateEngineDefaults(t *testing.T) {
	eng := &fakeEngine{}
	svc := New(eng, nil)

	_, err := svc.Translate(context.Background(), Request{
		Text:       "hello",
		SourceLang: "en",
		TargetLang: "ha",
	})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	call := eng.calls[0]
	if call.maxLength != DefaultMaxLength || call.numBeams != DefaultNumBeams {
		t.Errorf("defaults = (%d, %d), want (%d, %d)",
			call.maxLength, call.numBeams, DefaultMaxLength, DefaultNumBeams)
	}
}

func TestTranslateGenerationErrorSurfaced(t *testing.T) {
	eng := &fakeEngine{failText: "boom"}
	svc := New(eng, nil)

	_, err := svc.Translate(context.Background(), Request{
		Text:       "boom please",
		SourceLang: "en",
		TargetLang: "ha",
	})
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("err = %v, want GenerationError", err)
	}
}

func TestTranslateValidation(t *testing.T) {
	svc := New(nil, nil)

	tests := []struct {
		name string
		req  Request
	}{
		{"unsupported source", Request{Text: "hi", SourceLang: "fr", TargetLang: "ha"}},
		{"unsupported target", Request{Text: "hi", SourceLang: "en", TargetLang: "yo"}},
		{"same pair", Request{Text: "hi", SourceLang: "en", TargetLang: "en"}},
		{"empty text", Request{Text: "", SourceLang: "en", TargetLang: "ha"}},
		{"text too long", Request{Text: strings.Repeat("a", 1001), SourceLang: "en", TargetLang: "ha"}},
		{"max_length too small", Request{Text: "hi", SourceLang: "en", TargetLang: "ha", MaxLength: 10}},
		{"max_length too large", Request{Text: "hi", SourceLang: "en", TargetLang: "ha", MaxLength: 2048}},
		{"beams too large", Request{Text: "hi", SourceLang: "en", TargetLang: "ha", NumBeams: 11}},
		{"beams negative", Request{Text: "hi", SourceLang: "en", TargetLang: "ha", NumBeams: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Translate(context.Background(), tt.req)
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Errorf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestTranslateBatchOrderAndCardinality(t *testing.T) {
	eng := &fakeEngine{}
	svc := New(eng, nil)

	texts := []string{"one", "two", "three", "four"}
	results, err := svc.TranslateBatch(context.Background(), BatchRequest{
		Texts:      texts,
		SourceLang: "en",
		TargetLang: "ha",
	})
	if err != nil {
		t.Fatalf("TranslateBatch: %v", err)
	}
	if len(results) != len(texts) {
		t.Fatalf("got %d results, want %d", len(results), len(texts))
	}
	for i, res := range results {
		if res.OriginalText != texts[i] {
			t.Errorf("results[%d].OriginalText = %q, want %q", i, res.OriginalText, texts[i])
		}
		if res.Translation != "translated:"+texts[i] {
			t.Errorf("results[%d].Translation = %q, out of order", i, res.Translation)
		}
	}
}

func TestTranslateBatchPartialFailure(t *testing.T) {
	eng := &fakeEngine{failText: "bad"}
	svc := New(eng, nil)

	results, err := svc.TranslateBatch(context.Background(), BatchRequest{
		Texts:      []string{"good one", "bad apple", "another good"},
		SourceLang: "en",
		TargetLang: "ha",
	})
	if err != nil {
		t.Fatalf("TranslateBatch: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Translation == ErrorMarker || results[2].Translation == ErrorMarker {
		t.Errorf("sibling items should not fail: %+v", results)
	}
	if results[1].Translation != "Error: Unable to translate text" {
		t.Errorf("results[1].Translation = %q, want %q", results[1].Translation, ErrorMarker)
	}
}

func TestTranslateBatchDemoMode(t *testing.T) {
	svc := New(nil, nil)

	results, err := svc.TranslateBatch(context.Background(), BatchRequest{
		Texts:      []string{"a", "b", "c"},
		SourceLang: "en",
		TargetLang: "ha",
	})
	if err != nil {
		t.Fatalf("TranslateBatch: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, res := range results {
		want := DemoPrefix + res.OriginalText
		if res.Translation != want {
			t.Errorf("results[%d].Translation = %q, want %q", i, res.Translation, want)
		}
	}
}

func TestTranslateBatchValidation(t *testing.T) {
	svc := New(nil, nil)

	tests := []struct {
		name string
		req  BatchRequest
	}{
		{"empty batch", BatchRequest{Texts: nil, SourceLang: "en", TargetLang: "ha"}},
		{"too many texts", BatchRequest{Texts: manyTexts(51), SourceLang: "en", TargetLang: "ha"}},
		{"empty item", BatchRequest{Texts: []string{"ok", ""}, SourceLang: "en", TargetLang: "ha"}},
		{"bad language", BatchRequest{Texts: []string{"ok"}, SourceLang: "sw", TargetLang: "ha"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.TranslateBatch(context.Background(), tt.req)
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Errorf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestModelInfo(t *testing.T) {
	demo := New(nil, nil)
	info, status, err := demo.ModelInfo(context.Background())
	if err != nil {
		t.Fatalf("ModelInfo: %v", err)
	}
	if status != "demo" {
		t.Errorf("status = %q, want demo", status)
	}
	if info["status"] != "demo_mode" {
		t.Errorf("info[status] = %v, want demo_mode", info["status"])
	}

	loaded := New(&fakeEngine{}, nil)
	info, status, err = loaded.ModelInfo(context.Background())
	if err != nil {
		t.Fatalf("ModelInfo: %v", err)
	}
	if status != "loaded" {
		t.Errorf("status = %q, want loaded", status)
	}
	if info["model_path"] != "/models/test" {
		t.Errorf("info = %v, want engine metadata", info)
	}
}

func manyTexts(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("text %d", i)
	}
	return out
}
