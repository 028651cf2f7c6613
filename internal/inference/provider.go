package inference

import (
	"context"

	"github.com/rs/zerolog"
)

// Provider is one text-to-image capability. Generate returns the image bytes
// or an error; a *GenerationError tells the Chain whether to move on.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// ModelProvider calls a single hosted model through the Client and classifies
// its response.
type ModelProvider struct {
	model  string
	client *Client
	log    zerolog.Logger
}

func NewModelProvider(client *Client, model string, log zerolog.Logger) *ModelProvider {
	return &ModelProvider{
		model:  model,
		client: client,
		log:    log.With().Str("model", model).Logger(),
	}
}

// ModelProviders builds one provider per model, keeping the order.
func ModelProviders(client *Client, models []string, log zerolog.Logger) []Provider {
	providers := make([]Provider, 0, len(models))
	for _, m := range models {
		providers = append(providers, NewModelProvider(client, m, log))
	}
	return providers
}

func (p *ModelProvider) Name() string { return p.model }

func (p *ModelProvider) Generate(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := p.client.TextToImage(ctx, p.model, prompt)
	if err != nil {
		return nil, &GenerationError{Model: p.model, Err: err}
	}

	c := Classify(resp.StatusCode, resp.Header, resp.Body)
	if c.Kind != KindImage {
		return nil, newClassifiedError(p.model, c)
	}

	if !c.KnownSignature() {
		p.log.Warn().Str("format", c.Format).Int("bytes", len(c.Body)).Msg("accepting image with unrecognized signature")
	} else {
		p.log.Debug().Str("format", c.Format).Int("bytes", len(c.Body)).Msg("model returned image")
	}

	return c.Body, nil
}
