package recognition

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"regexp"
	"strings"
)

// DefaultEndpoint is the hosted bamboo classifier
const DefaultEndpoint = "https://bamboo-6xoh.onrender.com/predict"

const (
	defaultFilename = "image.jpg"
	genericImage    = "image"
	uploadField     = "file"
)

var extPattern = regexp.MustCompile(`\.(\w+)$`)

// Image is a local image read into memory and named for upload
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImageFilename returns the trailing path segment of ref, or image.jpg when
// there is none.
func ImageFilename(ref string) string {
	name := ref[strings.LastIndex(ref, "/")+1:]
	if name == "" {
		return defaultFilename
	}
	return name
}

// ImageContentType derives image/<ext> from the filename extension, falling
// back to the generic "image" type.
func ImageContentType(filename string) string {
	m := extPattern.FindStringSubmatch(filename)
	if m == nil {
		return genericImage
	}
	return genericImage + "/" + strings.ToLower(m[1])
}

// LoadImage reads the bytes behind a local path or file:// URI.
// The content itself is not validated.
func LoadImage(ref string) (*Image, error) {
	path := ref
	if strings.HasPrefix(ref, "file://") {
		u, err := url.Parse(ref)
		if err != nil {
			return nil, fmt.Errorf("invalid image URI %q: %w", ref, err)
		}
		path = u.Path
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	filename := ImageFilename(ref)
	return &Image{
		Filename:    filename,
		ContentType: ImageContentType(filename),
		Data:        data,
	}, nil
}

// HTTPRecognizer uploads images to a classification endpoint as
// multipart/form-data with a single "file" part.
type HTTPRecognizer struct {
	Endpoint   string
	HTTPClient *http.Client
}

// NewHTTPRecognizer creates a recognizer for endpoint. The HTTP client has no
// timeout; callers bound requests through the context.
func NewHTTPRecognizer(endpoint string) *HTTPRecognizer {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &HTTPRecognizer{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{},
	}
}

// Recognize uploads the image behind imageRef and decodes the JSON response
func (h *HTTPRecognizer) Recognize(ctx context.Context, imageRef string) (*Result, error) {
	img, err := LoadImage(imageRef)
	if err != nil {
		return nil, err
	}

	body, contentType, err := multipartBody(img)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", h.Endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	slog.Debug("Uploading image", "endpoint", h.Endpoint, "filename", img.Filename, "type", img.ContentType, "bytes", len(img.Data))

	resp, err := h.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("server error: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	result, err := ParseResult(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return result, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func multipartBody(img *Image) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	// CreateFormFile would force application/octet-stream
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		uploadField, quoteEscaper.Replace(img.Filename)))
	header.Set("Content-Type", img.ContentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write image data: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
