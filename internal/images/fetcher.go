package images

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/BISU-Projects/bamboo/internal/recognition"
)

// MaxImageSize caps downloads at the same size the upload API accepts
const MaxImageSize = 10 * 1024 * 1024

// Fetcher downloads remote photos so they can be recognized like local files
type Fetcher struct {
	HTTPClient *http.Client
}

// NewFetcher creates a new image fetcher
func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// IsRemote reports whether ref is an http(s) URL
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Fetch downloads rawURL into dir, keeping the URL's file name so the
// content type derived from the extension matches the original.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, dir string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid image URL: %w", err)
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		name = "image.jpg"
	}

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image URL returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}
	if len(imageData) > MaxImageSize {
		return "", fmt.Errorf("image too large (max %d bytes)", MaxImageSize)
	}
	if len(imageData) == 0 {
		return "", fmt.Errorf("image URL returned no data")
	}

	outputPath := filepath.Join(dir, name)
	if err := os.WriteFile(outputPath, imageData, 0644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	slog.Debug("Downloaded image", "url", rawURL, "path", outputPath, "size", len(imageData))
	return outputPath, nil
}

// Recognizer lets Next handle remote image references by downloading each
// one to a temporary directory that is removed after recognition.
type Recognizer struct {
	Next    recognition.Recognizer
	Fetcher *Fetcher
}

func (r *Recognizer) Recognize(ctx context.Context, imageRef string) (*recognition.Result, error) {
	if !IsRemote(imageRef) {
		return r.Next.Recognize(ctx, imageRef)
	}

	fetcher := r.Fetcher
	if fetcher == nil {
		fetcher = NewFetcher()
	}

	dir, err := os.MkdirTemp("", "bamboo-image-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(dir)

	local, err := fetcher.Fetch(ctx, imageRef, dir)
	if err != nil {
		return nil, err
	}
	return r.Next.Recognize(ctx, local)
}
