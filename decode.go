package blurhash

import "image"

// Decode renders hash as a width × height RGBA buffer (alpha always 255).
// A zero width or height yields an empty buffer; negative sizes are an error.
//
// punch multiplies the AC terms: values above 1 raise contrast, values
// below lower it, 0 leaves only the average color and negative values
// invert the detail.
func Decode(hash string, width, height int, punch float64) ([]byte, error) {
	nx, ny, err := Components(hash)
	if err != nil {
		return nil, err
	}
	if width < 0 || height < 0 {
		return nil, ErrInvalidDimensions
	}

	factors, err := decodeFactors(hash, nx, ny, punch)
	if err != nil {
		return nil, err
	}

	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, nil
	}
	render(nx, ny, width, height, factors, pixels)
	return pixels, nil
}

// DecodeImage is Decode wrapped as an *image.NRGBA.
func DecodeImage(hash string, width, height int, punch float64) (*image.NRGBA, error) {
	pix, err := Decode(hash, width, height, punch)
	if err != nil {
		return nil, err
	}
	return &image.NRGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// decodeFactors parses every coefficient.  The hash length has already
// been checked against nx × ny.
func decodeFactors(hash string, nx, ny int, punch float64) ([]Color, error) {
	q, err := DecodeBase83(hash[1:2])
	if err != nil {
		return nil, err
	}
	maxValue := maximumFromQuantized(q) * punch

	factors := make([]Color, nx*ny)
	dc, err := DecodeBase83(hash[2:dcEnd])
	if err != nil {
		return nil, err
	}
	factors[0] = decodeDC(dc)

	for i := 1; i < len(factors); i++ {
		off := 4 + 2*i
		v, err := DecodeBase83(hash[off : off+2])
		if err != nil {
			return nil, err
		}
		factors[i] = decodeAC(v, maxValue)
	}
	return factors, nil
}

// render sums the cosine terms for every pixel.  Rows are split into
// bands; each band writes only its own rows of pixels.
func render(nx, ny, w, h int, factors []Color, pixels []byte) {
	cosX := cosTable(nx, w)
	cosY := cosTable(ny, h)
	stride := w * 4

	parallelRange(h, w*h*len(factors), func(lo, hi int) {
		for y := lo; y < hi; y++ {
			row := pixels[y*stride : (y+1)*stride]
			for x := 0; x < w; x++ {
				var r, g, b float64
				for j := 0; j < ny; j++ {
					fy := cosY[j*h+y]
					for i := 0; i < nx; i++ {
						basis := cosX[i*w+x] * fy
						c := factors[i+j*nx]
						r += c.R * basis
						g += c.G * basis
						b += c.B * basis
					}
				}
				p := row[x*4 : x*4+4]
				p[0] = LinearToSRGB(r)
				p[1] = LinearToSRGB(g)
				p[2] = LinearToSRGB(b)
				p[3] = 255
			}
		}
	})
}
