package recognition

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/BISU-Projects/bamboo/internal/providers"
)

type stubProvider struct {
	answer string
	err    error
	got    providers.Config
}

func (s *stubProvider) ExtractText(ctx context.Context, config providers.Config) (string, error) {
	s.got = config
	return s.answer, s.err
}

func TestProviderRecognizer(t *testing.T) {
	path := writeImage(t, "clump.png", "png bytes")
	stub := &stubProvider{answer: "```json\n{\"class\": \"Buddha Belly\", \"confidence\": 0.66, \"reason\": \"swollen internodes\"}\n```"}

	rec := &ProviderRecognizer{
		Provider:    stub,
		Model:       "test-model",
		Temperature: 0.1,
		Labels:      []string{"Buddha Belly", "Moso Bamboo"},
	}

	result, err := rec.Recognize(context.Background(), path)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}

	if result.DisplayLabel() != "Buddha Belly" {
		t.Errorf("Expected Buddha Belly, got %s", result.DisplayLabel())
	}
	if result.Extra["reason"] != "swollen internodes" {
		t.Errorf("Expected passthrough reason, got %v", result.Extra)
	}
	if stub.got.Model != "test-model" || stub.got.MIMEType != "image/png" || string(stub.got.Image) != "png bytes" {
		t.Errorf("Unexpected provider config: %+v", stub.got)
	}
	if !strings.Contains(stub.got.Prompt, "- Moso Bamboo") {
		t.Error("Expected prompt to list the species names")
	}
}

func TestProviderRecognizerErrors(t *testing.T) {
	path := writeImage(t, "clump.png", "png bytes")

	tests := []struct {
		name string
		stub *stubProvider
	}{
		{name: "provider failure", stub: &stubProvider{err: errors.New("quota exceeded")}},
		{name: "non-json answer", stub: &stubProvider{answer: "It looks like bamboo to me."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(&ProviderRecognizer{Provider: tt.stub})
			st := client.Submit(context.Background(), path)
			if st.Error == "" || st.Result.Error != st.Error {
				t.Errorf("Expected recorded failure, got %+v", st)
			}
		})
	}
}
