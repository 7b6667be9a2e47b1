package blurhash

import "math"

// Color is one linear-light coefficient triple.
type Color struct {
	R, G, B float64
}

// acLevels is the number of quantization steps per AC channel.
const acLevels = 19

// encodeDC packs the average color as 24-bit gamma-encoded RGB.
func encodeDC(c Color) int {
	return int(LinearToSRGB(c.R))<<16 | int(LinearToSRGB(c.G))<<8 | int(LinearToSRGB(c.B))
}

func decodeDC(v int) Color {
	return Color{
		R: SRGBToLinear(uint8(v >> 16)),
		G: SRGBToLinear(uint8(v >> 8)),
		B: SRGBToLinear(uint8(v)),
	}
}

// encodeAC quantizes c relative to maxValue into three base-19 digits.
func encodeAC(c Color, maxValue float64) int {
	r := quantizeAC(c.R, maxValue)
	g := quantizeAC(c.G, maxValue)
	b := quantizeAC(c.B, maxValue)
	return (r*acLevels+g)*acLevels + b
}

func quantizeAC(v, maxValue float64) int {
	n := clamp(v/maxValue, -1, 1)
	q := math.Floor((signPow(n, 0.5) + 1) / 2 * acLevels)
	return int(clamp(q, 0, acLevels-1))
}

func decodeAC(v int, maxValue float64) Color {
	return Color{
		R: dequantizeAC(v/(acLevels*acLevels), maxValue),
		G: dequantizeAC((v/acLevels)%acLevels, maxValue),
		B: dequantizeAC(v%acLevels, maxValue),
	}
}

func dequantizeAC(q int, maxValue float64) float64 {
	return signPow(float64(q-9)/9, 2) * maxValue
}

// signPow raises |x| to e and restores the sign.  sign(0) is +1.
func signPow(x, e float64) float64 {
	if x < 0 {
		return -math.Pow(-x, e)
	}
	return math.Pow(x, e)
}

// quantizeMaximum maps the largest AC magnitude to the 0..82 header value
// and returns the scale that both sides use for every AC term.
func quantizeMaximum(actual float64) (int, float64) {
	q := int(clamp(math.Floor(actual*166-0.5), 0, 82))
	return q, maximumFromQuantized(q)
}

func maximumFromQuantized(q int) float64 {
	return float64(q+1) / 166
}
