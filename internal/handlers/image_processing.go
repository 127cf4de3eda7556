package handlers

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BISU-Projects/bamboo/internal/images"
)

type savedImage struct {
	Filename          string
	Path              string
	Width             int
	Height            int
	ThumbnailFilename string
}

// saveImageFile stores the upload under a content hash, keeping the
// original extension so the recognizer derives the same content type.
func (h *Handler) saveImageFile(fileData []byte, filename string) (*savedImage, error) {
	sum := md5.Sum(fileData)
	ext := strings.ToLower(filepath.Ext(filename))
	imageFilename := hex.EncodeToString(sum[:]) + ext
	imageFilePath := filepath.Join(h.uploadsDir, imageFilename)

	if err := os.WriteFile(imageFilePath, fileData, 0644); err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	slog.Info("Image saved", "filename", imageFilename, "original", filename)

	width, height, err := getImageDimensions(imageFilePath)
	if err != nil {
		slog.Warn("Failed to get image dimensions", "error", err)
		width, height = 0, 0
	}

	saved := &savedImage{
		Filename: imageFilename,
		Path:     imageFilePath,
		Width:    width,
		Height:   height,
	}

	thumbFilename := "thumb_" + hex.EncodeToString(sum[:]) + ".jpg"
	if _, _, err := images.WriteThumbnail(imageFilePath, filepath.Join(h.uploadsDir, thumbFilename), images.ThumbnailSize); err != nil {
		slog.Warn("Failed to create thumbnail", "filename", imageFilename, "error", err)
	} else {
		saved.ThumbnailFilename = thumbFilename
	}

	return saved, nil
}

func getImageDimensions(imagePath string) (int, int, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	img, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, err
	}

	return img.Width, img.Height, nil
}
