package blurhash

import "math"

// srgbToLinear is the sRGB decode curve for every 8-bit value.
// Pre-computed at init; the encoder reads it once per pixel channel.
var srgbToLinear [256]float64

func init() {
	for i := range srgbToLinear {
		v := float64(i) / 255
		if v <= 0.04045 {
			srgbToLinear[i] = v / 12.92
		} else {
			srgbToLinear[i] = math.Pow((v+0.055)/1.055, 2.4)
		}
	}
}

// SRGBToLinear converts a gamma-encoded channel to linear light in [0, 1].
func SRGBToLinear(v uint8) float64 {
	return srgbToLinear[v]
}

// LinearToSRGB converts linear light to a gamma-encoded channel.
// Input outside [0, 1] is clamped; NaN maps to 0.
func LinearToSRGB(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	v = clamp(v, 0, 1)
	var f float64
	if v <= 0.0031308 {
		f = math.Round(v * 12.92 * 255)
	} else {
		f = math.Round((1.055*math.Pow(v, 1/2.4) - 0.055) * 255)
	}
	return uint8(clamp(f, 0, 255))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
