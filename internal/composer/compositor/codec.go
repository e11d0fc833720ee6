package compositor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"birl/internal/composer/models"
)

// DefaultJPEGQuality is used when no quality is configured.
const DefaultJPEGQuality = 90

// Codec implements ports.Codec with the standard library JPEG and PNG codecs.
type Codec struct {
	jpegQuality int
	png         png.Encoder
}

// NewCodec creates a codec encoding JPEG at quality (1-100). Out of range
// values fall back to DefaultJPEGQuality.
func NewCodec(quality int) *Codec {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &Codec{
		jpegQuality: quality,
		png:         png.Encoder{CompressionLevel: png.DefaultCompression},
	}
}

// Decode sniffs the format and decodes data.
func (c *Codec) Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrDecode, err)
	}
	return img, nil
}

// Encode writes img in format.
func (c *Codec) Encode(img image.Image, format models.Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case models.FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: c.jpegQuality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	case models.FormatPNG:
		if err := c.png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidFormat, format)
	}
	return buf.Bytes(), nil
}
