package recognition

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestImageFilename(t *testing.T) {
	tests := []struct {
		ref      string
		expected string
	}{
		{ref: "/tmp/photos/bamboo.JPG", expected: "bamboo.JPG"},
		{ref: "file:///data/user/0/cache/IMG_001.png", expected: "IMG_001.png"},
		{ref: "relative.jpeg", expected: "relative.jpeg"},
		{ref: "/tmp/photos/", expected: "image.jpg"},
		{ref: "", expected: "image.jpg"},
	}

	for _, tt := range tests {
		if got := ImageFilename(tt.ref); got != tt.expected {
			t.Errorf("ImageFilename(%q): expected %s, got %s", tt.ref, tt.expected, got)
		}
	}
}

func TestImageContentType(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{filename: "bamboo.JPG", expected: "image/jpg"},
		{filename: "leaf.png", expected: "image/png"},
		{filename: "archive.tar.gz", expected: "image/gz"},
		{filename: "noextension", expected: "image"},
		{filename: "trailingdot.", expected: "image"},
	}

	for _, tt := range tests {
		if got := ImageContentType(tt.filename); got != tt.expected {
			t.Errorf("ImageContentType(%q): expected %s, got %s", tt.filename, tt.expected, got)
		}
	}
}

func TestLoadImage(t *testing.T) {
	path := writeImage(t, "culm.png", "png bytes")

	for _, ref := range []string{path, "file://" + path} {
		img, err := LoadImage(ref)
		if err != nil {
			t.Fatalf("LoadImage(%q) failed: %v", ref, err)
		}
		if img.Filename != "culm.png" || img.ContentType != "image/png" || string(img.Data) != "png bytes" {
			t.Errorf("Unexpected image for %q: %+v", ref, img)
		}
	}

	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.jpg")); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestHTTPRecognizerUpload(t *testing.T) {
	path := writeImage(t, "shoot.jpeg", "jpeg bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.RawQuery != "" {
			t.Errorf("Expected no query parameters, got %s", r.URL.RawQuery)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("Expected no authorization header")
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("Failed to parse multipart form: %v", err)
			return
		}
		if len(r.MultipartForm.File) != 1 || len(r.MultipartForm.Value) != 0 {
			t.Errorf("Expected exactly one file part, got %v", r.MultipartForm)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("Expected file part: %v", err)
			return
		}
		defer file.Close()

		if header.Filename != "shoot.jpeg" {
			t.Errorf("Expected filename shoot.jpeg, got %s", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "image/jpeg" {
			t.Errorf("Expected content type image/jpeg, got %s", ct)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "jpeg bytes" {
			t.Errorf("Expected payload 'jpeg bytes', got %q", data)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"predicted_class":"Golden Bamboo","probability":0.75}`))
	}))
	defer server.Close()

	result, err := NewHTTPRecognizer(server.URL).Recognize(context.Background(), path)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if result.DisplayLabel() != "Golden Bamboo" {
		t.Errorf("Expected Golden Bamboo, got %s", result.DisplayLabel())
	}
	if c, ok := result.DisplayConfidence(); !ok || FormatConfidence(c) != "75.0%" {
		t.Errorf("Expected 75.0%%, got %v (%v)", c, ok)
	}
}

func TestHTTPRecognizerFailures(t *testing.T) {
	path := writeImage(t, "leaf.jpg", "bytes")

	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: "server error: 500 Internal Server Error",
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			wantErr: "404",
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>oops</html>`))
			},
			wantErr: "failed to decode response body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := NewHTTPRecognizer(server.URL).Recognize(context.Background(), path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestHTTPRecognizerTransportFailure(t *testing.T) {
	path := writeImage(t, "leaf.jpg", "bytes")

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewHTTPRecognizer(url).Recognize(context.Background(), path)
	if err == nil || !strings.Contains(err.Error(), "failed to send request") {
		t.Errorf("Expected transport error, got %v", err)
	}
}

func TestNewHTTPRecognizerDefaultEndpoint(t *testing.T) {
	if got := NewHTTPRecognizer("").Endpoint; got != DefaultEndpoint {
		t.Errorf("Expected %s, got %s", DefaultEndpoint, got)
	}
}

func writeImage(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}
	return path
}
