package encoder

import (
	"image"
)

// Encoder writes a rendered placeholder in one image format.
type Encoder interface {
	// Format returns the output format name (e.g. "jpeg", "webp", "png").
	Format() string

	// Encode converts the image to bytes at the given quality (1-100).
	// Lossless formats ignore quality.
	Encode(img image.Image, quality int) ([]byte, error)

	// Available returns true if the encoder is ready to use.
	// External encoders (cwebp, avifenc) may not be installed.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string
}

// normQuality maps out-of-range quality to the default.
func normQuality(q int) int {
	if q <= 0 || q > 100 {
		return 80
	}
	return q
}
