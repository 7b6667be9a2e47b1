package blurhash

import (
	"image"
	"image/color"
)

// Pixels flattens img into a non-premultiplied RGBA buffer, row-major,
// 4 bytes per pixel, starting at img.Bounds().Min.
//
// Fast paths: NRGBA, RGBA, YCbCr, Gray.  Anything else goes through At.
func Pixels(img image.Image) []byte {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	out := make([]byte, w*h*4)

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(out[y*w*4:(y+1)*w*4], src.Pix[off:off+w*4])
		}
	case *image.RGBA:
		di := 0
		for y := 0; y < h; y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			for x := 0; x < w; x++ {
				a := uint32(src.Pix[off+3])
				if a == 255 {
					copy(out[di:di+4], src.Pix[off:off+4])
				} else if a > 0 {
					out[di] = uint8(uint32(src.Pix[off]) * 255 / a)
					out[di+1] = uint8(uint32(src.Pix[off+1]) * 255 / a)
					out[di+2] = uint8(uint32(src.Pix[off+2]) * 255 / a)
					out[di+3] = uint8(a)
				}
				off += 4
				di += 4
			}
		}
	case *image.YCbCr:
		di := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				yi := src.YOffset(x, y)
				ci := src.COffset(x, y)
				r, g, b := color.YCbCrToRGB(src.Y[yi], src.Cb[ci], src.Cr[ci])
				out[di] = r
				out[di+1] = g
				out[di+2] = b
				out[di+3] = 255
				di += 4
			}
		}
	case *image.Gray:
		di := 0
		for y := 0; y < h; y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			for _, v := range src.Pix[off : off+w] {
				out[di] = v
				out[di+1] = v
				out[di+2] = v
				out[di+3] = 255
				di += 4
			}
		}
	default:
		di := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				out[di] = c.R
				out[di+1] = c.G
				out[di+2] = c.B
				out[di+3] = c.A
				di += 4
			}
		}
	}
	return out
}
