package recognition

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BISU-Projects/bamboo/internal/providers"
)

// ProviderRecognizer classifies images by prompting a vision LLM instead of
// calling the classification endpoint. The model's JSON answer goes through
// the same decoder as endpoint responses.
type ProviderRecognizer struct {
	Provider    providers.Provider
	Model       string
	Temperature float64

	// Labels restricts the answer to known species names when non-empty
	Labels []string
}

func (p *ProviderRecognizer) Recognize(ctx context.Context, imageRef string) (*Result, error) {
	img, err := LoadImage(imageRef)
	if err != nil {
		return nil, err
	}

	text, err := p.Provider.ExtractText(ctx, providers.Config{
		Model:       p.Model,
		Temperature: p.Temperature,
		Prompt:      providers.BuildRecognitionPrompt(p.Labels),
		Image:       img.Data,
		MIMEType:    img.ContentType,
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Provider answered", "model", p.Model, "length", len(text))

	result, err := ParseResult([]byte(providers.ExtractJSON(text)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode model answer: %w", err)
	}
	return result, nil
}
