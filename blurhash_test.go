package blurhash

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
)

// ─── test image generators ───────────────────────────────────

func gradientPixels(w, h int) []byte {
	pix := make([]byte, 0, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix = append(pix,
				uint8(x*255/max(w-1, 1)),
				uint8(y*255/max(h-1, 1)),
				128,
				255,
			)
		}
	}
	return pix
}

func solidPixels(w, h int, c color.NRGBA) []byte {
	pix := make([]byte, 0, w*h*4)
	for k := 0; k < w*h; k++ {
		pix = append(pix, c.R, c.G, c.B, c.A)
	}
	return pix
}

func mustEncode(t testing.TB, nx, ny, w, h int, pix []byte) string {
	t.Helper()
	hash, err := Encode(nx, ny, w, h, pix)
	if err != nil {
		t.Fatalf("Encode(%d, %d, %dx%d): %v", nx, ny, w, h, err)
	}
	return hash
}

// ─── encode ──────────────────────────────────────────────────

func TestEncode_HashLength(t *testing.T) {
	pix := gradientPixels(12, 9)
	for ny := 1; ny <= 9; ny++ {
		for nx := 1; nx <= 9; nx++ {
			hash := mustEncode(t, nx, ny, 12, 9, pix)
			if want := 4 + 2*nx*ny; len(hash) != want {
				t.Errorf("%dx%d: length %d, want %d", nx, ny, len(hash), want)
			}
			gx, gy, err := Components(hash)
			if err != nil {
				t.Fatalf("%dx%d: Components: %v", nx, ny, err)
			}
			if gx != nx || gy != ny {
				t.Errorf("%dx%d: Components = %dx%d", nx, ny, gx, gy)
			}
		}
	}
}

func TestEncode_ComponentsOutOfRange(t *testing.T) {
	pix := gradientPixels(4, 4)
	cases := [][2]int{{0, 5}, {10, 5}, {5, 0}, {5, 10}, {-1, 1}}
	for _, c := range cases {
		hash, err := Encode(c[0], c[1], 4, 4, pix)
		if !errors.Is(err, ErrComponentsOutOfRange) {
			t.Errorf("Encode(%d, %d): got %v, want components out of range", c[0], c[1], err)
		}
		if hash != "" {
			t.Errorf("Encode(%d, %d): partial hash %q", c[0], c[1], hash)
		}
	}
}

func TestEncode_ComponentsCheckedFirst(t *testing.T) {
	// Range check precedes the buffer check.
	_, err := Encode(0, 5, 10, 10, nil)
	if !errors.Is(err, ErrComponentsOutOfRange) {
		t.Fatalf("got %v", err)
	}
}

func TestEncode_InvalidDimensions(t *testing.T) {
	if _, err := Encode(4, 3, 0, 10, nil); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("zero width: got %v", err)
	}
	_, err := Encode(4, 3, 4, 4, make([]byte, 10))
	var be *Error
	if !errors.As(err, &be) || be.Kind != KindInvalidDimensions {
		t.Fatalf("short buffer: got %v", err)
	}
	if be.Expected != 64 || be.Actual != 10 {
		t.Errorf("short buffer: expected=%d actual=%d", be.Expected, be.Actual)
	}
}

func TestEncode_MidGraySinglePixel(t *testing.T) {
	gray := color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	hash := mustEncode(t, 1, 1, 1, 1, solidPixels(1, 1, gray))

	if hash[:1] != EncodeBase83(0, 1) {
		t.Errorf("size flag %q, want %q", hash[:1], EncodeBase83(0, 1))
	}
	if hash != "00Eyb[" {
		t.Errorf("hash = %q, want %q", hash, "00Eyb[")
	}

	for _, size := range [][2]int{{1, 1}, {7, 5}, {32, 32}} {
		pix, err := Decode(hash, size[0], size[1], 1)
		if err != nil {
			t.Fatalf("Decode %v: %v", size, err)
		}
		want := solidPixels(size[0], size[1], gray)
		if !bytes.Equal(pix, want) {
			t.Errorf("Decode %v: not a uniform mid-gray buffer", size)
		}
	}
}

func TestEncode_AlphaIgnored(t *testing.T) {
	a := gradientPixels(16, 16)
	b := append([]byte(nil), a...)
	for i := 3; i < len(b); i += 4 {
		b[i] = uint8(i)
	}
	if mustEncode(t, 4, 3, 16, 16, a) != mustEncode(t, 4, 3, 16, 16, b) {
		t.Error("alpha channel changed the hash")
	}
}

func TestEncode_Deterministic(t *testing.T) {
	pix := gradientPixels(200, 150)
	ref := mustEncode(t, 5, 4, 200, 150, pix)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Encode(5, 4, 200, 150, pix)
		}(i)
	}
	wg.Wait()

	for i, h := range results {
		if h != ref {
			t.Errorf("run %d: %q != %q", i, h, ref)
		}
	}
}

func TestEncodeImage_MatchesBuffer(t *testing.T) {
	w, h := 24, 18
	pix := gradientPixels(w, h)
	img := &image.NRGBA{Pix: pix, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}

	got, err := EncodeImage(4, 3, img)
	if err != nil {
		t.Fatal(err)
	}
	if want := mustEncode(t, 4, 3, w, h, pix); got != want {
		t.Errorf("EncodeImage = %q, Encode = %q", got, want)
	}
}

func TestEncode_NegativeACSetsMaximum(t *testing.T) {
	// Black left half, white right half: the only AC term is about -0.5,
	// so the scale must come from its magnitude, not its signed value.
	const w = 8
	pix := make([]byte, w*4)
	for x := 0; x < w; x++ {
		v := byte(0)
		if x >= w/2 {
			v = 255
		}
		copy(pix[x*4:], []byte{v, v, v, 255})
	}
	hash := mustEncode(t, 2, 1, w, 1, pix)
	q, err := DecodeBase83(hash[1:2])
	if err != nil {
		t.Fatal(err)
	}
	if q != 82 {
		t.Errorf("max field = %d, want 82 (hash %q)", q, hash)
	}
	if hash[6:8] != "00" {
		t.Errorf("AC term = %q, want fully negative \"00\"", hash[6:8])
	}
}

func TestEncodeImage_Empty(t *testing.T) {
	_, err := EncodeImage(4, 3, image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	if !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("got %v", err)
	}
}

// ─── decode ──────────────────────────────────────────────────

func TestDecode_HashTooShort(t *testing.T) {
	pix, err := Decode("ab", 10, 10, 1)
	if !errors.Is(err, ErrHashTooShort) {
		t.Fatalf("got %v, want hash too short", err)
	}
	if pix != nil {
		t.Error("partial output on error")
	}
}

func TestDecode_LengthMismatch(t *testing.T) {
	// "L" declares 4x3 → 28 characters.
	_, err := Decode("LEHV6nWB2yk8", 10, 10, 1)
	var be *Error
	if !errors.As(err, &be) || be.Kind != KindLengthMismatch {
		t.Fatalf("got %v, want length mismatch", err)
	}
	if be.Expected != 28 || be.Actual != 12 {
		t.Errorf("expected=%d actual=%d", be.Expected, be.Actual)
	}
}

func TestDecode_InvalidCharacter(t *testing.T) {
	valid := "LEHV6nWB2yk8pyo0adR*.7kCMdnj"
	for _, pos := range []int{0, 1, 3, 10, len(valid) - 1} {
		bad := []byte(valid)
		bad[pos] = '"'
		_, err := Decode(string(bad), 8, 8, 1)
		var be *Error
		if !errors.As(err, &be) || be.Kind != KindInvalidBase83 {
			t.Fatalf("pos %d: got %v, want invalid base83", pos, err)
		}
		if be.Char != '"' {
			t.Errorf("pos %d: Char = %q", pos, be.Char)
		}
	}
}

func TestDecode_InvalidDimensions(t *testing.T) {
	for _, s := range [][2]int{{-1, 5}, {5, -1}} {
		if _, err := Decode("00Eyb[", s[0], s[1], 1); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("%v: got %v", s, err)
		}
	}
}

func TestDecode_ZeroDimensions(t *testing.T) {
	for _, s := range [][2]int{{0, 10}, {10, 0}, {0, 0}} {
		pix, err := Decode("LEHV6nWB2yk8pyo0adR*.7kCMdnj", s[0], s[1], 1)
		if err != nil {
			t.Fatalf("%v: %v", s, err)
		}
		if pix == nil || len(pix) != 0 {
			t.Errorf("%v: got %d bytes, want empty buffer", s, len(pix))
		}
	}
	// The hash is still checked.
	if _, err := Decode("LEHV6nWB2yk8pyo0adR*.7kCMdn\"", 0, 0, 1); !errors.Is(err, ErrInvalidBase83) {
		t.Errorf("got %v, want invalid base83", err)
	}
}

func TestDecode_BufferShape(t *testing.T) {
	pix, err := Decode("LEHV6nWB2yk8pyo0adR*.7kCMdnj", 13, 7, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(pix) != 13*7*4 {
		t.Fatalf("len = %d", len(pix))
	}
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 255 {
			t.Fatalf("alpha at %d = %d", i, pix[i])
		}
	}
}

func TestDecode_Deterministic(t *testing.T) {
	const hash = "LEHV6nWB2yk8pyo0adR*.7kCMdnj"
	ref, err := Decode(hash, 256, 192, 1)
	if err != nil {
		t.Fatal(err)
	}

	const workers = 8
	var wg sync.WaitGroup
	errCh := make(chan string, workers*4)
	for k := 0; k < workers; k++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 4; k++ {
				pix, err := Decode(hash, 256, 192, 1)
				if err != nil || !bytes.Equal(pix, ref) {
					errCh <- "mismatch"
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)
	if n := len(errCh); n > 0 {
		t.Fatalf("%d/%d decodes differed", n, workers*4)
	}
}

func TestDecode_Punch(t *testing.T) {
	const hash = "LEHV6nWB2yk8pyo0adR*.7kCMdnj"
	neutral, _ := Decode(hash, 32, 32, 1)

	// Punch 0 drops every AC term: a flat image of the average color.
	flat, err := Decode(hash, 32, 32, 0)
	if err != nil {
		t.Fatal(err)
	}
	avg, _ := AverageColor(hash)
	for i := 0; i < len(flat); i += 4 {
		if flat[i] != avg.R || flat[i+1] != avg.G || flat[i+2] != avg.B || flat[i+3] != 255 {
			t.Fatalf("pixel %d = %v, want %v", i/4, flat[i:i+4], avg)
		}
	}

	inverted, _ := Decode(hash, 32, 32, -1)
	if bytes.Equal(inverted, neutral) {
		t.Error("punch -1 rendered identically to punch 1")
	}
	strong, _ := Decode(hash, 32, 32, 3)
	if bytes.Equal(strong, neutral) {
		t.Error("punch 3 rendered identically to punch 1")
	}
}

func TestDecodeImage(t *testing.T) {
	img, err := DecodeImage("00Eyb[", 5, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 4 {
		t.Fatalf("bounds %v", b)
	}
	if c := img.NRGBAAt(4, 3); c != (color.NRGBA{128, 128, 128, 255}) {
		t.Errorf("pixel = %v", c)
	}
}

// ─── round trip ──────────────────────────────────────────────

func TestRoundTrip_ReEncodeStable(t *testing.T) {
	w, h := 32, 32
	h1 := mustEncode(t, 4, 3, w, h, gradientPixels(w, h))
	pix, err := Decode(h1, w, h, 1)
	if err != nil {
		t.Fatal(err)
	}
	h2 := mustEncode(t, 4, 3, w, h, pix)

	if h1[0] != h2[0] || len(h1) != len(h2) {
		t.Fatalf("shape changed: %q → %q", h1, h2)
	}
	c1, _ := AverageColor(h1)
	c2, _ := AverageColor(h2)
	for _, d := range []int{
		int(c1.R) - int(c2.R), int(c1.G) - int(c2.G), int(c1.B) - int(c2.B),
	} {
		if d < -6 || d > 6 {
			t.Errorf("average color drifted: %v → %v", c1, c2)
			break
		}
	}
	q1, _ := DecodeBase83(h1[1:2])
	q2, _ := DecodeBase83(h2[1:2])
	if d := q1 - q2; d < -8 || d > 8 {
		t.Errorf("maximum drifted: %d → %d", q1, q2)
	}
}

// ─── hash helpers ────────────────────────────────────────────

func TestComponents(t *testing.T) {
	x, y, err := Components("LEHV6nWB2yk8pyo0adR*.7kCMdnj")
	if err != nil {
		t.Fatal(err)
	}
	if x != 4 || y != 3 {
		t.Errorf("got %dx%d, want 4x3", x, y)
	}
	if _, _, err := Components("00000"); !errors.Is(err, ErrHashTooShort) {
		t.Errorf("short: got %v", err)
	}
}

func TestAverageColor(t *testing.T) {
	c, err := AverageColor("LEHV6nWB2yk8pyo0adR*.7kCMdnj")
	if err != nil {
		t.Fatal(err)
	}
	if want := (color.NRGBA{151, 150, 149, 255}); c != want {
		t.Errorf("got %v, want %v", c, want)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate("LEHV6nWB2yk8pyo0adR*.7kCMdnj"); err != nil {
		t.Errorf("valid hash: %v", err)
	}
	if err := Validate("00Eyb["); err != nil {
		t.Errorf("valid hash: %v", err)
	}
	// "~~~~" is 83^4-1, beyond 24 bits.
	if err := Validate("00~~~~"); !errors.Is(err, ErrInvalidBase83) {
		t.Errorf("DC overflow: got %v", err)
	}
	// "~~" is 6888, beyond 19^3.
	if err := Validate("10Eyb[~~"); !errors.Is(err, ErrInvalidBase83) {
		t.Errorf("AC overflow: got %v", err)
	}
	if err := Validate("ab"); !errors.Is(err, ErrHashTooShort) {
		t.Errorf("short: got %v", err)
	}
}

func TestError_Is(t *testing.T) {
	err := error(&Error{Kind: KindLengthMismatch, Expected: 8, Actual: 6})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Error("length mismatch not matched by sentinel")
	}
	if errors.Is(err, ErrHashTooShort) {
		t.Error("matched the wrong sentinel")
	}
	if got := err.Error(); got != "blurhash: length mismatch: length is 6 but it should be 8" {
		t.Errorf("message %q", got)
	}
}
