package blurhash

import "image/color"

// Hash layout (all fields base83):
//
//	[0]      size flag = (x-1) + (y-1)*9
//	[1]      quantized maximum AC magnitude, 0..82
//	[2:6]    DC term, 24-bit gamma RGB
//	[6:]     one 2-char AC term per remaining cell, row-major (y outer)
const (
	minHashLen = 6
	dcEnd      = 6
	maxDC      = 1 << 24
	maxAC      = acLevels * acLevels * acLevels
)

// HashLen returns the exact hash length for the given component counts.
func HashLen(xComponents, yComponents int) int {
	return 4 + 2*xComponents*yComponents
}

// Components reads the component counts from the size flag and checks
// the hash length against them.
func Components(hash string) (x, y int, err error) {
	if len(hash) < minHashLen {
		return 0, 0, ErrHashTooShort
	}
	flag, err := DecodeBase83(hash[:1])
	if err != nil {
		return 0, 0, err
	}
	y = flag/9 + 1
	x = flag%9 + 1
	if want := HashLen(x, y); len(hash) != want {
		return 0, 0, &Error{Kind: KindLengthMismatch, Expected: want, Actual: len(hash)}
	}
	return x, y, nil
}

// Validate checks the full structure of a hash: length, alphabet, and that
// every packed field lies inside its value range.
func Validate(hash string) error {
	x, y, err := Components(hash)
	if err != nil {
		return err
	}
	if _, err := DecodeBase83(hash[1:2]); err != nil {
		return err
	}
	dc, err := DecodeBase83(hash[2:dcEnd])
	if err != nil {
		return err
	}
	if dc >= maxDC {
		return &Error{Kind: KindInvalidBase83, Char: hash[2]}
	}
	for i := 1; i < x*y; i++ {
		off := 4 + 2*i
		v, err := DecodeBase83(hash[off : off+2])
		if err != nil {
			return err
		}
		if v >= maxAC {
			return &Error{Kind: KindInvalidBase83, Char: hash[off]}
		}
	}
	return nil
}

// AverageColor returns the DC term of a hash as an opaque color.
func AverageColor(hash string) (color.NRGBA, error) {
	if _, _, err := Components(hash); err != nil {
		return color.NRGBA{}, err
	}
	v, err := DecodeBase83(hash[2:dcEnd])
	if err != nil {
		return color.NRGBA{}, err
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
