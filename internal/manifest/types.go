package manifest

// Manifest is the top-level output of a blurhash build.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	BasePath    string           `json:"base_path"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers     int `json:"workers"`
	SampleSize  int `json:"sample_size"`  // longest side fed to the encoder
	ComponentsX int `json:"components_x"` // profile default before auto-orientation
	ComponentsY int `json:"components_y"`
}

// Asset describes a single source image and its placeholder.
type Asset struct {
	Original    OriginalInfo `json:"original"`
	BlurHash    string       `json:"blurhash"`
	ComponentsX int          `json:"components_x"`
	ComponentsY int          `json:"components_y"`
	AspectRatio float64      `json:"aspect_ratio"`        // width / height
	AvgColor    *[3]uint8    `json:"avg_color,omitempty"` // DC term as [R,G,B]
	Punch       float64      `json:"punch,omitempty"`     // used for previews
	Fingerprint string       `json:"fingerprint"`         // source bytes + parameters
	Previews    []Preview    `json:"previews,omitempty"`
}

// OriginalInfo holds metadata about the source image.
type OriginalInfo struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
	HasAlpha bool   `json:"has_alpha"`
}

// Preview is a rendered placeholder image written next to the manifest.
type Preview struct {
	Format string `json:"format"` // "webp", "jpeg", "png"
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"` // bytes on disk
	Hash   string `json:"hash"` // 16 hex chars of xxhash64
	Path   string `json:"path"` // relative to base_path
}

// Stats aggregates build metrics.
type Stats struct {
	TotalInputBytes   int64 `json:"total_input_bytes"`
	TotalPreviewBytes int64 `json:"total_preview_bytes"`
	TotalHashBytes    int64 `json:"total_hash_bytes"`
	TotalAssets       int   `json:"total_assets"`
	TotalPreviews     int   `json:"total_previews"`
	Reused            int   `json:"reused,omitempty"` // assets carried over by an incremental build
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1
