package pipeline

import (
	"bytes"
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/AnyUserName/blurhash"
	"github.com/AnyUserName/blurhash/internal/encoder"
	"github.com/AnyUserName/blurhash/internal/hasher"
	"github.com/AnyUserName/blurhash/internal/manifest"
	"github.com/AnyUserName/blurhash/internal/profile"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key    string
	asset  manifest.Asset
	err    error
	reused bool // carried over from the previous manifest
}

// Params returns the fingerprint parameters for a profile.  PreviewW is
// zeroed when previews are off so toggling them invalidates old entries.
func Params(p profile.Profile, previews bool) hasher.Params {
	hp := hasher.Params{
		ComponentsX: p.ComponentsX,
		ComponentsY: p.ComponentsY,
		SampleSize:  p.SampleSize,
		Punch:       p.Punch,
		Formats:     p.Formats,
	}
	if previews {
		hp.PreviewW = p.PreviewW
	}
	return hp
}

// processImage handles a single source image: read, fingerprint, decode,
// sample, hash, previews.
func processImage(src Source, cfg Config, registry *encoder.Registry) processResult {
	result := processResult{key: src.Key}

	data, err := os.ReadFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("read %s: %w", src.RelPath, err)
		return result
	}
	fp := hasher.Fingerprint(data, Params(cfg.Profile, cfg.Previews))

	if prev, ok := reusable(src.Key, fp, cfg); ok {
		result.asset = prev
		result.reused = true
		return result
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}

	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()
	nx, ny := cfg.Profile.Components(origW, origH)

	hash, err := blurhash.EncodeImage(nx, ny, Sample(img, cfg.Profile.SampleSize))
	if err != nil {
		result.err = fmt.Errorf("encode %s: %w", src.RelPath, err)
		return result
	}
	avg, err := blurhash.AverageColor(hash)
	if err != nil {
		result.err = fmt.Errorf("average color %s: %w", src.RelPath, err)
		return result
	}

	result.asset = manifest.Asset{
		Original: manifest.OriginalInfo{
			Width:    origW,
			Height:   origH,
			Format:   src.Format,
			Size:     src.Size,
			HasAlpha: HasAlpha(img),
		},
		BlurHash:    hash,
		ComponentsX: nx,
		ComponentsY: ny,
		AspectRatio: float64(origW) / float64(origH),
		AvgColor:    &[3]uint8{avg.R, avg.G, avg.B},
		Fingerprint: fp,
	}

	if cfg.Previews {
		previews, err := writePreviews(src, hash, origW, origH, cfg, registry)
		if err != nil {
			result.err = err
			return result
		}
		result.asset.Punch = cfg.Profile.Punch
		result.asset.Previews = previews
	}
	return result
}

// reusable returns the previous manifest entry for key when its
// fingerprint matches and all of its preview files are still on disk.
func reusable(key, fp string, cfg Config) (manifest.Asset, bool) {
	if cfg.Previous == nil {
		return manifest.Asset{}, false
	}
	prev, ok := cfg.Previous.Assets[key]
	if !ok || prev.Fingerprint != fp {
		return manifest.Asset{}, false
	}
	for _, p := range prev.Previews {
		info, err := os.Stat(filepath.Join(cfg.OutputDir, p.Path))
		if err != nil || info.Size() != p.Size {
			return manifest.Asset{}, false
		}
	}
	return prev, true
}

// writePreviews renders the placeholder once and writes it in every
// resolved format.  Output filenames are content-addressed:
// <key>.<w>.<h>.<hash8>.<ext>
func writePreviews(src Source, hash string, origW, origH int, cfg Config, registry *encoder.Registry) ([]manifest.Preview, error) {
	w, h := cfg.Profile.PreviewSize(origW, origH)
	if w == 0 {
		return nil, nil
	}
	img, err := RenderPreview(hash, w, h, cfg.Profile.Punch)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", src.RelPath, err)
	}

	keyDir := filepath.Dir(filepath.FromSlash(src.Key))
	if err := os.MkdirAll(filepath.Join(cfg.OutputDir, keyDir), 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", keyDir, err)
	}

	var previews []manifest.Preview
	for _, format := range registry.ResolveFormats(cfg.Profile.Formats) {
		enc := registry.Get(format)
		data, err := enc.Encode(img, cfg.Profile.Quality)
		if err != nil {
			cfg.logf("warn: encode %s preview as %s: %v", src.Key, format, err)
			continue
		}

		contentHash := hasher.ContentHash(data, 16)
		fileName := fmt.Sprintf("%s.%d.%d.%s.%s",
			filepath.Base(src.Key), w, h, contentHash[:8], enc.Extension())
		relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

		if err := os.WriteFile(filepath.Join(cfg.OutputDir, filepath.FromSlash(relPath)), data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", relPath, err)
		}

		previews = append(previews, manifest.Preview{
			Format: format,
			Width:  w,
			Height: h,
			Size:   int64(len(data)),
			Hash:   contentHash,
			Path:   relPath,
		})
	}
	return previews, nil
}
