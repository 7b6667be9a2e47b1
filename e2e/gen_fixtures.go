//go:build ignore

// gen_fixtures creates a small input tree for a manual smoke test of
// `blurhash build`.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	for _, sub := range []string{"cards", "posters", ".cache"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "[gen_fixtures] %v\n", err)
			os.Exit(1)
		}
	}

	n := 0
	write := func(name string, img image.Image, enc func(io.Writer, image.Image) error) {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			panic(err)
		}
		defer f.Close()
		if err := enc(f, img); err != nil {
			panic(err)
		}
		n++
	}
	jpegQ85 := func(w io.Writer, img image.Image) error {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 85})
	}
	tiffDeflate := func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}

	// Landscape banner: smooth gradient, mostly DC and first AC terms.
	write("banner.jpg", gradient(400, 225), jpegQ85)

	// Portrait poster: exercises component auto-orientation.
	write("posters/tall.png", gradient(180, 320), png.Encode)

	// Cards with stripes: energy in higher-frequency AC terms.
	for i := 1; i <= 3; i++ {
		write(fmt.Sprintf("cards/card-%d.png", i), stripes(200, 150, i*2, uint8(i*60)), png.Encode)
	}

	// Extra decoders.
	write("cards/legacy.bmp", stripes(64, 64, 1, 30), bmp.Encode)
	write("posters/scan.tiff", gradient(120, 160), tiffDeflate)

	// Transparent logo: alpha is ignored by the hash but reported.
	write("logo.png", alphaGradient(100, 100), png.Encode)

	// Hidden directory: must be skipped by the scanner.
	write(".cache/ignored.png", gradient(8, 8), png.Encode)

	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("not an image\n"), 0o644); err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created %d fixtures in %s (1 hidden)\n", n, dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

// stripes draws periods horizontal cosine waves over a tinted base.
func stripes(w, h, periods int, base uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := 0.5 + 0.5*math.Cos(2*math.Pi*float64(periods*x)/float64(w))
			l := uint8(float64(base) + v*float64(255-base))
			img.SetNRGBA(x, y, color.NRGBA{R: l, G: base, B: 255 - l, A: 255})
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}
