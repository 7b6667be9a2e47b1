package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

// DefaultName is the manifest file name inside an output directory.
const DefaultName = "blurhash.manifest.json"

// New creates an empty manifest with defaults.
func New(profileName string) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:     profileName,
		BasePath:    "./",
		Assets:      make(map[string]Asset),
	}
}

// ComputeStats recalculates aggregate statistics from assets.  Reused is
// set by the pipeline and carried over.
func (m *Manifest) ComputeStats() {
	s := Stats{Reused: m.Stats.Reused}
	s.TotalAssets = len(m.Assets)
	for _, a := range m.Assets {
		s.TotalInputBytes += a.Original.Size
		s.TotalHashBytes += int64(len(a.BlurHash))
		s.TotalPreviews += len(a.Previews)
		for _, p := range a.Previews {
			s.TotalPreviewBytes += p.Size
		}
	}
	m.Stats = s
}

// IsCompressed reports whether path names a zstd-compressed manifest.
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, ".zst")
}

// WriteFile serializes the manifest with stable ordering.  A ".zst"
// suffix selects zstd compression.
func WriteFile(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if IsCompressed(path) {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return fmt.Errorf("zstd writer: %w", err)
		}
		data = enc.EncodeAll(data, nil)
		enc.Close()
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile loads a manifest written by WriteFile.
func ReadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, IsCompressed(path))
}

// Read decodes a manifest, decompressing zstd when compressed is set.
func Read(r io.Reader, compressed bool) (*Manifest, error) {
	if compressed {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Assets == nil {
		m.Assets = make(map[string]Asset)
	}
	return &m, nil
}
