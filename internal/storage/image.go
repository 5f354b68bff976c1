package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const maxImageWidth = 1600

// ReencodeWebP decodes a PNG/JPEG upload, downscales anything wider than
// maxImageWidth and re-encodes it as lossy WebP.
func ReencodeWebP(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("storage: decode image: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Dx() > maxImageWidth {
		height := bounds.Dy() * maxImageWidth / bounds.Dx()
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, height))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("storage: encode webp: %w", err)
	}

	return buf.Bytes(), nil
}

// IsImageContentType reports whether an upload goes through re-encoding.
func IsImageContentType(ct string) bool {
	return ct == "image/png" || ct == "image/jpeg"
}
