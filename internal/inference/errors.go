package inference

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

// ErrNoProviders is returned by a Chain with nothing to try.
var ErrNoProviders = errors.New("no generation providers configured")

// ErrEmptyImage is reported when a provider returns no error and no bytes.
var ErrEmptyImage = errors.New("provider returned an empty image")

// GenerationError describes why one model did not produce an image. Either
// Err is set (transport failure or timeout) or Status/Body describe the
// upstream response.
type GenerationError struct {
	Model  string
	Status int
	Body   any
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model %s: %v", e.Model, e.Err)
	}
	return fmt.Sprintf("model %s: status %d", e.Model, e.Status)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Retryable is false only for 4xx responses other than 429; the next model
// would reject the same request.
func (e *GenerationError) Retryable() bool {
	if e.Err != nil {
		return true
	}
	if e.Status == http.StatusTooManyRequests {
		return true
	}
	return e.Status < 400 || e.Status >= 500
}

func newClassifiedError(model string, c Classification) *GenerationError {
	var body any = c.Detail
	if body == nil && len(c.Body) > 0 {
		body = truncate(string(c.Body), 512)
	}
	return &GenerationError{Model: model, Status: c.Status, Body: body}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// Back off to a rune boundary so the cut never splits a character.
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
