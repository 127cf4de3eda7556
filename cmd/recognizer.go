package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BISU-Projects/bamboo/internal/gemini"
	"github.com/BISU-Projects/bamboo/internal/images"
	"github.com/BISU-Projects/bamboo/internal/ollama"
	"github.com/BISU-Projects/bamboo/internal/openai"
	"github.com/BISU-Projects/bamboo/internal/providers"
	"github.com/BISU-Projects/bamboo/internal/recognition"
	"github.com/BISU-Projects/bamboo/internal/species"
	"github.com/spf13/cobra"
)

var supportedProviders = []string{"remote", "gemini", "ollama", "openai"}

// recognizerOptions selects and configures the recognition backend
type recognizerOptions struct {
	provider    string
	model       string
	endpoint    string
	temperature float64
}

func addRecognizerFlags(cmd *cobra.Command, o *recognizerOptions) {
	cmd.Flags().StringVar(&o.provider, "provider", "", "Recognition backend: remote, gemini, ollama or openai (defaults to $BAMBOO_PROVIDER, then remote)")
	cmd.Flags().StringVar(&o.model, "model", "", "Model name for LLM providers (defaults to the provider's default)")
	cmd.Flags().StringVar(&o.endpoint, "endpoint", "", "Classification endpoint for the remote provider (defaults to $BAMBOO_API_ENDPOINT)")
	cmd.Flags().Float64Var(&o.temperature, "temperature", 0, "Sampling temperature for LLM providers")
}

// resolve fills unset options from the environment and defaults
func (o *recognizerOptions) resolve() error {
	if o.provider == "" {
		o.provider = os.Getenv("BAMBOO_PROVIDER")
	}
	if o.provider == "" {
		o.provider = "remote"
	}
	o.provider = strings.ToLower(o.provider)
	if !slices.Contains(supportedProviders, o.provider) {
		return fmt.Errorf("unsupported provider %q (expected %s)", o.provider, strings.Join(supportedProviders, ", "))
	}

	switch o.provider {
	case "remote":
		if o.endpoint == "" {
			o.endpoint = os.Getenv("BAMBOO_API_ENDPOINT")
		}
		if o.endpoint == "" {
			o.endpoint = recognition.DefaultEndpoint
		}
	case "gemini":
		o.model = modelOrDefault(o.model, "GEMINI_MODEL", "gemini-1.5-flash")
	case "ollama":
		o.model = modelOrDefault(o.model, "OLLAMA_MODEL", "llava")
	case "openai":
		o.model = modelOrDefault(o.model, "OPENAI_MODEL", "gpt-4o-mini")
	}
	return nil
}

// build returns the recognizer for the resolved options. LLM providers are
// told the catalog's species names.
func (o *recognizerOptions) build(catalog *species.Catalog) (recognition.Recognizer, error) {
	if err := o.resolve(); err != nil {
		return nil, err
	}

	var provider providers.Provider
	switch o.provider {
	case "remote":
		return remoteImages(recognition.NewHTTPRecognizer(o.endpoint)), nil
	case "gemini":
		provider = gemini.New()
	case "ollama":
		provider = ollama.New()
	case "openai":
		provider = openai.New()
	}

	return remoteImages(&recognition.ProviderRecognizer{
		Provider:    provider,
		Model:       o.model,
		Temperature: o.temperature,
		Labels:      catalog.Names(),
	}), nil
}

// remoteImages lets every command accept http(s) image URLs
func remoteImages(next recognition.Recognizer) recognition.Recognizer {
	return &images.Recognizer{Next: next, Fetcher: images.NewFetcher()}
}

func modelOrDefault(model, envVar, fallback string) string {
	if model != "" {
		return model
	}
	if m := os.Getenv(envVar); m != "" {
		return m
	}
	return fallback
}
