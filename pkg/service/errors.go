package service

import "fmt"

// ErrorMarker fills a batch slot whose item failed, so the batch always
// returns one output per input.
const ErrorMarker = "Error: Unable to translate text"

// ValidationError reports a malformed request. It is a caller error; the
// translation is never attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// GenerationError reports an engine failure during an attempted real
// translation. It is never converted to a demo-mode result.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("translation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
