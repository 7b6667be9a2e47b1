package encoder

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

// ExternalEncoder shells out to a command-line encoder that reads a PNG
// file and writes its output file.  This avoids CGO.
type ExternalEncoder struct {
	format string
	ext    string
	tool   string
	hint   string
	// args builds the argument list for one invocation.
	args func(quality int, src, dst string) []string

	once sync.Once
	path string
}

// NewWebPEncoder uses cwebp.  Install: brew install webp / apt install webp
func NewWebPEncoder() *ExternalEncoder {
	return &ExternalEncoder{
		format: "webp",
		ext:    "webp",
		tool:   "cwebp",
		hint:   "brew install webp",
		args: func(q int, src, dst string) []string {
			return []string{"-q", fmt.Sprint(q), "-m", "6", "-quiet", src, "-o", dst}
		},
	}
}

// NewAVIFEncoder uses avifenc.  Install: brew install libavif / apt install libavif-bin
func NewAVIFEncoder() *ExternalEncoder {
	return &ExternalEncoder{
		format: "avif",
		ext:    "avif",
		tool:   "avifenc",
		hint:   "brew install libavif",
		args: func(q int, src, dst string) []string {
			// avifenc quantizer: lower = better, 0-63.
			aq := fmt.Sprint(63 - q*63/100)
			return []string{"--min", aq, "--max", aq, "--speed", "6", src, dst}
		},
	}
}

func (e *ExternalEncoder) Format() string    { return e.format }
func (e *ExternalEncoder) Extension() string { return e.ext }

func (e *ExternalEncoder) Available() bool {
	e.once.Do(func() {
		if path, err := exec.LookPath(e.tool); err == nil {
			e.path = path
		}
	})
	return e.path != ""
}

func (e *ExternalEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	if !e.Available() {
		return nil, fmt.Errorf("%s not found in PATH; install with: %s", e.tool, e.hint)
	}

	dir, err := os.MkdirTemp("", "blurhash_"+e.format+"_*")
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "src.png")
	dst := filepath.Join(dir, "out."+e.ext)

	f, err := os.Create(src)
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return nil, fmt.Errorf("encode temp png: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close temp png: %w", err)
	}

	cmd := exec.Command(e.path, e.args(normQuality(quality), src, dst)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", e.tool, err, string(out))
	}
	return os.ReadFile(dst)
}
