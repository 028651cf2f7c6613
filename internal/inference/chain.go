package inference

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Result is the accepted image and the provider that produced it.
type Result struct {
	Model string
	Image []byte
}

// Chain tries providers in priority order, one at a time.
type Chain struct {
	providers []Provider
	log       zerolog.Logger
}

func NewChain(providers []Provider, log zerolog.Logger) *Chain {
	return &Chain{providers: providers, log: log}
}

func (c *Chain) Providers() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return names
}

// Generate returns the first image any provider produces. It stops early on a
// non-retryable error. When no image is obtained the returned error is the
// last *GenerationError seen.
func (c *Chain) Generate(ctx context.Context, prompt string) (*Result, error) {
	if len(c.providers) == 0 {
		return nil, ErrNoProviders
	}

	var lastErr *GenerationError
	for _, p := range c.providers {
		log := c.log.With().Str("model", p.Name()).Logger()
		log.Info().Msg("trying model")

		image, err := generate(ctx, p, prompt)
		if err == nil {
			log.Info().Int("bytes", len(image)).Msg("model produced image")
			return &Result{Model: p.Name(), Image: image}, nil
		}

		var genErr *GenerationError
		if !errors.As(err, &genErr) {
			genErr = &GenerationError{Model: p.Name(), Err: err}
		}
		lastErr = genErr

		if !genErr.Retryable() {
			log.Warn().Err(genErr).Int("status", genErr.Status).Msg("non-retryable model error, stopping")
			break
		}
		log.Warn().Err(genErr).Int("status", genErr.Status).Msg("model failed, trying next")
	}

	return nil, lastErr
}

// generate converts a provider panic or an empty image into a retryable
// failure for that provider only.
func generate(ctx context.Context, p Provider, prompt string) (image []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			image = nil
			err = &GenerationError{Model: p.Name(), Err: fmt.Errorf("provider panic: %v", r)}
		}
	}()

	image, err = p.Generate(ctx, prompt)
	if err == nil && len(image) == 0 {
		return nil, &GenerationError{Model: p.Name(), Err: ErrEmptyImage}
	}
	return image, err
}
