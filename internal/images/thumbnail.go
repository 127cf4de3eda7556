package images

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"

	"github.com/nfnt/resize"
)

// ThumbnailSize bounds both sides of generated thumbnails
const ThumbnailSize = 256

// WriteThumbnail decodes the image at src and writes a JPEG no larger than
// maxSize on either side to dst, preserving aspect ratio. Smaller images are
// re-encoded at their original size.
func WriteThumbnail(src, dst string, maxSize uint) (width, height int, err error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image: %w", err)
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := resize.Thumbnail(maxSize, maxSize, img, resize.Lanczos3)

	out, err := os.Create(dst)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create thumbnail: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, thumb, &jpeg.Options{Quality: 85}); err != nil {
		return 0, 0, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	b := thumb.Bounds()
	return b.Dx(), b.Dy(), nil
}
