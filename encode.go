package blurhash

import (
	"image"
	"math"
)

// Encode computes the hash of an RGBA pixel buffer (row-major, 4 bytes per
// pixel, alpha ignored) using xComponents × yComponents cosine terms.
func Encode(xComponents, yComponents, width, height int, pixels []byte) (string, error) {
	if xComponents < 1 || xComponents > 9 || yComponents < 1 || yComponents > 9 {
		return "", ErrComponentsOutOfRange
	}
	if width <= 0 || height <= 0 {
		return "", ErrInvalidDimensions
	}
	if want := width * height * 4; len(pixels) != want {
		return "", &Error{Kind: KindInvalidDimensions, Expected: want, Actual: len(pixels)}
	}

	factors := transform(xComponents, yComponents, width, height, pixels)
	return assembleHash(xComponents, yComponents, factors), nil
}

// EncodeImage flattens img to RGBA and encodes it.
func EncodeImage(xComponents, yComponents int, img image.Image) (string, error) {
	b := img.Bounds()
	return Encode(xComponents, yComponents, b.Dx(), b.Dy(), Pixels(img))
}

// transform projects the image onto the first nx × ny cosine bands.
// factors[0] is DC; the rest are AC in row-major (y outer) order.
func transform(nx, ny, w, h int, pixels []byte) []Color {
	// Linearize once: the same pixel feeds every coefficient.
	lin := make([]float64, w*h*3)
	for i, j := 0, 0; j < len(pixels); i, j = i+3, j+4 {
		lin[i] = srgbToLinear[pixels[j]]
		lin[i+1] = srgbToLinear[pixels[j+1]]
		lin[i+2] = srgbToLinear[pixels[j+2]]
	}

	cosX := cosTable(nx, w)
	cosY := cosTable(ny, h)
	factors := make([]Color, nx*ny)

	parallelRange(len(factors), w*h*len(factors), func(lo, hi int) {
		for k := lo; k < hi; k++ {
			factors[k] = project(k%nx, k/nx, w, h, lin, cosX, cosY)
		}
	})
	return factors
}

// project computes a single coefficient.  The summation order is fixed
// per coefficient, so the result is independent of scheduling.
func project(cx, cy, w, h int, lin, cosX, cosY []float64) Color {
	var r, g, b float64
	xs := cosX[cx*w : cx*w+w]
	ys := cosY[cy*h : cy*h+h]
	for y, fy := range ys {
		row := lin[y*w*3 : (y+1)*w*3]
		for x, fx := range xs {
			basis := fx * fy
			r += basis * row[x*3]
			g += basis * row[x*3+1]
			b += basis * row[x*3+2]
		}
	}

	norm := 2.0
	if cx == 0 && cy == 0 {
		norm = 1
	}
	scale := norm / float64(w*h)
	return Color{R: r * scale, G: g * scale, B: b * scale}
}

// assembleHash quantizes the coefficients and serializes them.  The AC
// scale depends on every AC term, so it is reduced before any term is
// quantized.
func assembleHash(nx, ny int, factors []Color) string {
	buf := make([]byte, 0, HashLen(nx, ny))
	buf = appendBase83(buf, (nx-1)+(ny-1)*9, 1)

	ac := factors[1:]
	maxValue := 1.0
	if len(ac) > 0 {
		var actual float64
		for _, c := range ac {
			actual = max(actual, math.Abs(c.R), math.Abs(c.G), math.Abs(c.B))
		}
		var q int
		q, maxValue = quantizeMaximum(actual)
		buf = appendBase83(buf, q, 1)
	} else {
		buf = appendBase83(buf, 0, 1)
	}

	buf = appendBase83(buf, encodeDC(factors[0]), 4)
	for _, c := range ac {
		buf = appendBase83(buf, encodeAC(c, maxValue), 2)
	}
	return string(buf)
}
