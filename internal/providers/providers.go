package providers

import (
	"context"
	"fmt"
	"strings"
)

// Config represents the configuration for a vision provider call
type Config struct {
	Model       string
	Temperature float64
	Prompt      string

	// Image is sent alongside the prompt
	Image    []byte
	MIMEType string
}

// Provider defines the interface for a vision-capable LLM provider
type Provider interface {
	ExtractText(ctx context.Context, config Config) (string, error)
}

// BuildRecognitionPrompt asks the model to classify a bamboo photo into one
// of the given species names and to answer with a single JSON object.
func BuildRecognitionPrompt(names []string) string {
	var b strings.Builder
	b.WriteString("You are a botanist specializing in bamboo identification.\n\n")
	b.WriteString("Identify the bamboo species shown in the attached photo.\n")
	if len(names) > 0 {
		b.WriteString("Choose exactly one of the following species names:\n")
		for _, n := range names {
			fmt.Fprintf(&b, "- %s\n", n)
		}
		b.WriteString("If none of them fits, use the closest common name you know.\n")
	}
	b.WriteString(`
Respond with a single JSON object and nothing else, using this shape:
{"class": "<species name>", "confidence": <number between 0 and 1>}

If the photo does not show bamboo, respond with:
{"error": "no bamboo detected"}`)
	return b.String()
}

// ExtractJSON strips markdown code fences and surrounding prose from a model
// answer, returning the outermost JSON object when one is present.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end < start {
		return text
	}
	return text[start : end+1]
}
