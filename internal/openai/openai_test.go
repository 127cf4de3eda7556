package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BISU-Projects/bamboo/internal/providers"
)

func TestExtractText(t *testing.T) {
	var auth string
	var received struct {
		Model    string `json:"model"`
		Messages []struct {
			Content []map[string]any `json:"content"`
		} `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"class\":\"Golden Bamboo\"}"}}]}`))
	}))
	defer server.Close()

	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", server.URL)

	text, err := New().ExtractText(context.Background(), providers.Config{
		Model:    "gpt-4o-mini",
		Prompt:   "identify",
		Image:    []byte{0xff, 0xd8},
		MIMEType: "image/jpeg",
	})
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}

	if text != `{"class":"Golden Bamboo"}` {
		t.Errorf("Unexpected response text: %s", text)
	}
	if auth != "Bearer test-key" {
		t.Errorf("Expected bearer auth, got %q", auth)
	}
	if received.Model != "gpt-4o-mini" {
		t.Errorf("Expected model gpt-4o-mini, got %s", received.Model)
	}
	if len(received.Messages) != 1 || len(received.Messages[0].Content) != 2 {
		t.Fatalf("Expected one message with text and image parts, got %+v", received.Messages)
	}
	imagePart, _ := received.Messages[0].Content[1]["image_url"].(map[string]any)
	if url, _ := imagePart["url"].(string); !strings.HasPrefix(url, "data:image/jpeg;base64,") {
		t.Errorf("Expected data URL for image, got %v", imagePart)
	}
}

func TestExtractTextNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", server.URL)

	if _, err := New().ExtractText(context.Background(), providers.Config{}); err == nil {
		t.Error("Expected error for empty choices, got nil")
	}
}

func TestExtractTextRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := New().ExtractText(context.Background(), providers.Config{}); err == nil {
		t.Error("Expected error without API key, got nil")
	}
}
