package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/BISU-Projects/bamboo/internal/providers"
)

const defaultURL = "http://localhost:11434"

// Ollama is a provider for Ollama vision models
type Ollama struct {
	HTTPClient *http.Client
}

// New returns a new Ollama provider
func New() *Ollama {
	return &Ollama{HTTPClient: &http.Client{}}
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Images  []string       `json:"images,omitempty"`
	Stream  bool           `json:"stream"`
	Format  string         `json:"format"`
	Options map[string]any `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// baseURL honors OLLAMA_URL, then the OLLAMA_HOST variable the ollama CLI uses
func baseURL() string {
	for _, key := range []string{"OLLAMA_URL", "OLLAMA_HOST"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return defaultURL
}

// ExtractText sends the prompt and image to Ollama and returns its answer
func (o *Ollama) ExtractText(ctx context.Context, config providers.Config) (string, error) {
	payload := generateRequest{
		Model:   config.Model,
		Prompt:  config.Prompt,
		Stream:  false,
		Format:  "json",
		Options: map[string]any{"temperature": config.Temperature},
	}
	if len(config.Image) > 0 {
		payload.Images = []string{base64.StdEncoding.EncodeToString(config.Image)}
	}

	requestBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", baseURL()+"/api/generate", bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var response generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	return response.Response, nil
}
