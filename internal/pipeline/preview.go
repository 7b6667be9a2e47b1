package pipeline

import (
	"image"

	"github.com/AnyUserName/blurhash"
	"github.com/nfnt/resize"
)

// renderSize bounds the resolution a hash is decoded at; larger previews
// are upscaled bilinearly from that render.
const renderSize = 32

// RenderPreview decodes hash and returns a w × h image.
func RenderPreview(hash string, w, h int, punch float64) (image.Image, error) {
	rw, rh := w, h
	if w > renderSize || h > renderSize {
		if w >= h {
			rw, rh = renderSize, max(1, h*renderSize/w)
		} else {
			rw, rh = max(1, w*renderSize/h), renderSize
		}
	}

	small, err := blurhash.DecodeImage(hash, rw, rh, punch)
	if err != nil {
		return nil, err
	}
	if rw == w && rh == h {
		return small, nil
	}
	return resize.Resize(uint(w), uint(h), small, resize.Bilinear), nil
}
