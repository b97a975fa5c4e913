package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/dasmlab/fassara/pkg/engine"
	"github.com/dasmlab/fassara/pkg/lang"
)

// Request parameter bounds and defaults.
const (
	MaxTextChars = 1000
	MaxBatchSize = 50

	MinMaxLength = 50
	MaxMaxLength = 1024
	MinNumBeams  = 1
	MaxNumBeams  = 10

	DefaultSourceLang = "en"
	DefaultTargetLang = "ha"
	DefaultMaxLength  = 512
	DefaultNumBeams   = 5
)

// Request is a single translation request.
type Request struct {
	Text       string
	SourceLang string
	TargetLang string
	MaxLength  int
	NumBeams   int
}

// BatchRequest translates an ordered list of texts with shared parameters.
type BatchRequest struct {
	Texts      []string
	SourceLang string
	TargetLang string
	MaxLength  int
	NumBeams   int
}

// Result is one completed translation. SourceLang and TargetLang echo the
// caller's declared direction even when the resolver swapped it internally,
// and OriginalText is the caller's input verbatim.
type Result struct {
	Translation  string
	SourceLang   string
	TargetLang   string
	OriginalText string
}

// TranslationService is the facade the transport layer talks to. It owns
// request validation, text normalization, direction resolution, and the
// demo-mode fallback. The engine handle is injected once at construction and
// read-only afterwards; a nil handle selects demo mode for the life of the
// process.
type TranslationService struct {
	engine engine.Engine
	logger *logrus.Logger
}

// New creates a TranslationService. Pass a nil engine to run in demo mode.
func New(eng engine.Engine, logger *logrus.Logger) *TranslationService {
	if logger == nil {
		logger = logrus.New()
	}
	return &TranslationService{
		engine: eng,
		logger: logger,
	}
}

// DemoMode reports whether the service runs without a loaded model.
func (s *TranslationService) DemoMode() bool {
	return s.engine == nil
}

// Translate handles one translation request end to end.
func (s *TranslationService) Translate(ctx context.Context, req Request) (Result, error) {
	applyDefaults(&req.SourceLang, &req.TargetLang, &req.MaxLength, &req.NumBeams)

	if err := validateParams(req.SourceLang, req.TargetLang, req.MaxLength, req.NumBeams); err != nil {
		return Result{}, err
	}
	if err := validateText("text", req.Text); err != nil {
		return Result{}, err
	}

	translation, err := s.translateOne(ctx, req.Text, req.SourceLang, req.TargetLang, req.MaxLength, req.NumBeams)
	if err != nil {
		translationsTotal.WithLabelValues(s.mode(), "error").Inc()
		return Result{}, err
	}

	translationsTotal.WithLabelValues(s.mode(), "success").Inc()
	return Result{
		Translation:  translation,
		SourceLang:   req.SourceLang,
		TargetLang:   req.TargetLang,
		OriginalText: req.Text,
	}, nil
}

// TranslateBatch applies the single-item path to every text in order. One
// item's failure does not abort its siblings: the failed slot carries
// ErrorMarker, so the output always has one entry per input.
func (s *TranslationService) TranslateBatch(ctx context.Context, req BatchRequest) ([]Result, error) {
	applyDefaults(&req.SourceLang, &req.TargetLang, &req.MaxLength, &req.NumBeams)

	if err := validateParams(req.SourceLang, req.TargetLang, req.MaxLength, req.NumBeams); err != nil {
		return nil, err
	}
	if len(req.Texts) == 0 {
		return nil, &ValidationError{Field: "texts", Reason: "must not be empty"}
	}
	if len(req.Texts) > MaxBatchSize {
		return nil, &ValidationError{Field: "texts", Reason: fmt.Sprintf("at most %d texts per batch", MaxBatchSize)}
	}
	for i, text := range req.Texts {
		if err := validateText(fmt.Sprintf("texts[%d]", i), text); err != nil {
			return nil, err
		}
	}

	results := make([]Result, 0, len(req.Texts))
	for i, text := range req.Texts {
		translation, err := s.translateOne(ctx, text, req.SourceLang, req.TargetLang, req.MaxLength, req.NumBeams)
		if err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"batch_index": i,
			}).Error("Batch item failed")
			translationsTotal.WithLabelValues(s.mode(), "error").Inc()
			translation = ErrorMarker
		} else {
			translationsTotal.WithLabelValues(s.mode(), "success").Inc()
		}
		results = append(results, Result{
			Translation:  translation,
			SourceLang:   req.SourceLang,
			TargetLang:   req.TargetLang,
			OriginalText: text,
		})
	}

	return results, nil
}

// translateOne is the single-item path shared by Translate and
// TranslateBatch: demo fallback, or normalize -> resolve direction -> engine.
func (s *TranslationService) translateOne(ctx context.Context, text, sourceLang, targetLang string, maxLength, numBeams int) (string, error) {
	if s.DemoMode() {
		return demoTranslate(text, sourceLang, targetLang), nil
	}

	cleaned := lang.Normalize(text, false)
	if cleaned == "" {
		return "", nil
	}

	declared := lang.Direction{Source: lang.Code(sourceLang), Target: lang.Code(targetLang)}
	dir := lang.ResolveDirection(declared.Source, declared.Target, cleaned)
	if dir != declared {
		directionSwapsTotal.Inc()
		s.logger.WithFields(logrus.Fields{
			"declared_source": declared.Source,
			"declared_target": declared.Target,
		}).Info("Auto-detected Hausa input, switching translation direction")
	}

	translation, err := s.engine.Generate(ctx, cleaned, string(dir.Source), string(dir.Target), maxLength, numBeams)
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	return strings.TrimSpace(translation), nil
}

// ModelInfo returns model metadata and a status string ("loaded" or "demo").
func (s *TranslationService) ModelInfo(ctx context.Context) (map[string]interface{}, string, error) {
	if s.DemoMode() {
		return map[string]interface{}{
			"status":              "demo_mode",
			"message":             "No trained model loaded. API running in demo mode.",
			"supported_languages": []string{"en", "ha"},
		}, "demo", nil
	}

	info, err := s.engine.ModelInfo(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("model info: %w", err)
	}
	return info, "loaded", nil
}

func (s *TranslationService) mode() string {
	if s.DemoMode() {
		return "demo"
	}
	return "engine"
}

func applyDefaults(sourceLang, targetLang *string, maxLength, numBeams *int) {
	if *sourceLang == "" {
		*sourceLang = DefaultSourceLang
	}
	if *targetLang == "" {
		*targetLang = DefaultTargetLang
	}
	if *maxLength == 0 {
		*maxLength = DefaultMaxLength
	}
	if *numBeams == 0 {
		*numBeams = DefaultNumBeams
	}
}

// validateParams checks the shared request parameters. A same-language pair
// is rejected; the model prompt cannot express it.
func validateParams(sourceLang, targetLang string, maxLength, numBeams int) error {
	if _, err := lang.ParseCode(sourceLang); err != nil {
		return &ValidationError{Field: "source_lang", Reason: err.Error()}
	}
	if _, err := lang.ParseCode(targetLang); err != nil {
		return &ValidationError{Field: "target_lang", Reason: err.Error()}
	}
	if sourceLang == targetLang {
		return &ValidationError{Field: "target_lang", Reason: "source and target languages must differ"}
	}
	if maxLength < MinMaxLength || maxLength > MaxMaxLength {
		return &ValidationError{
			Field:  "max_length",
			Reason: fmt.Sprintf("must be between %d and %d", MinMaxLength, MaxMaxLength),
		}
	}
	if numBeams < MinNumBeams || numBeams > MaxNumBeams {
		return &ValidationError{
			Field:  "num_beams",
			Reason: fmt.Sprintf("must be between %d and %d", MinNumBeams, MaxNumBeams),
		}
	}
	return nil
}

func validateText(field, text string) error {
	if text == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(text) > MaxTextChars {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("at most %d characters", MaxTextChars)}
	}
	return nil
}
