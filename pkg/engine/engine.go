package engine

import "context"

// Engine is the boundary to the pretrained seq2seq translation model. The
// service layer only ever talks to the model through this interface, which
// lets us swap the in-process worker pool for a remote inference server
// without touching request handling.
//
// Implementations are not assumed reentrant. The worker pool serializes
// generation per worker; callers should treat a handle as safe for
// concurrent use only because the implementation arranges it, not because
// the underlying model is.
type Engine interface {
	// Generate produces one translated string for the given text and
	// direction. sourceLang and targetLang are ISO 639-1 codes ("en", "ha").
	// maxLength bounds the generated sequence; numBeams sets the beam
	// search width.
	Generate(ctx context.Context, text, sourceLang, targetLang string, maxLength, numBeams int) (string, error)

	// CheckHealth verifies the engine is ready to serve generations.
	CheckHealth(ctx context.Context) error

	// ModelInfo returns descriptive metadata about the loaded model.
	ModelInfo(ctx context.Context) (map[string]interface{}, error)
}
