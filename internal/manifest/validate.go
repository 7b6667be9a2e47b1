package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/blurhash"
	"github.com/AnyUserName/blurhash/internal/hasher"
)

// Validate checks the manifest against itself and, when baseDir is not
// empty, against the preview files on disk (presence, size, content hash).  Problems are returned in
// asset-key order.
func (m *Manifest) Validate(baseDir string) []string {
	var errs []string

	if m.Version != SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	keys := make([]string, 0, len(m.Assets))
	for key := range m.Assets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	previewCount := 0
	for _, key := range keys {
		asset := m.Assets[key]
		previewCount += len(asset.Previews)

		if asset.Original.Width <= 0 || asset.Original.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid original dimensions %dx%d",
				key, asset.Original.Width, asset.Original.Height))
		}
		if asset.AspectRatio <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid aspect ratio %.4f", key, asset.AspectRatio))
		}

		if asset.BlurHash == "" {
			errs = append(errs, fmt.Sprintf("asset %q: missing blurhash", key))
		} else if err := blurhash.Validate(asset.BlurHash); err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: %v", key, err))
		} else {
			x, y, _ := blurhash.Components(asset.BlurHash)
			if x != asset.ComponentsX || y != asset.ComponentsY {
				errs = append(errs, fmt.Sprintf("asset %q: hash is %dx%d, manifest says %dx%d",
					key, x, y, asset.ComponentsX, asset.ComponentsY))
			}
			if asset.AvgColor != nil {
				c, _ := blurhash.AverageColor(asset.BlurHash)
				if *asset.AvgColor != [3]uint8{c.R, c.G, c.B} {
					errs = append(errs, fmt.Sprintf("asset %q: avg_color %v does not match hash", key, *asset.AvgColor))
				}
			}
		}

		seenPaths := map[string]bool{}
		for i, p := range asset.Previews {
			if p.Format == "" {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: empty format", key, i))
			}
			if p.Width <= 0 || p.Height <= 0 {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: invalid dimensions %dx%d",
					key, i, p.Width, p.Height))
			}
			if p.Hash == "" {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: missing hash", key, i))
			}
			if p.Path == "" {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: missing path", key, i))
				continue
			}

			if seenPaths[p.Path] {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: duplicate path %q", key, i, p.Path))
			}
			seenPaths[p.Path] = true

			if baseDir == "" {
				continue
			}
			fullPath := filepath.Join(baseDir, filepath.FromSlash(p.Path))
			info, err := os.Stat(fullPath)
			if err != nil {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: file not found: %s", key, i, p.Path))
				continue
			}
			if p.Size > 0 && info.Size() != p.Size {
				errs = append(errs, fmt.Sprintf("asset %q preview[%d]: size mismatch: manifest=%d, disk=%d",
					key, i, p.Size, info.Size()))
				continue
			}
			if p.Hash != "" {
				if sum, err := fileHash(fullPath, len(p.Hash)); err != nil {
					errs = append(errs, fmt.Sprintf("asset %q preview[%d]: %v", key, i, err))
				} else if sum != p.Hash {
					errs = append(errs, fmt.Sprintf("asset %q preview[%d]: hash mismatch: manifest=%s, disk=%s",
						key, i, p.Hash, sum))
				}
			}
		}
	}

	if m.Stats.TotalAssets != len(m.Assets) {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d", m.Stats.TotalAssets, len(m.Assets)))
	}
	if m.Stats.TotalPreviews != previewCount {
		errs = append(errs, fmt.Sprintf("stats.total_previews mismatch: %d != %d", m.Stats.TotalPreviews, previewCount))
	}

	return errs
}

// fileHash streams path through xxhash, truncated to hexLen hex chars.
func fileHash(path string, hexLen int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return hasher.ContentHashReader(f, hexLen)
}
