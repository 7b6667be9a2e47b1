package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/blurhash/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a built manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	m, _, err := loadManifest(args[0])
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), m)
	return nil
}

// loadManifest reads a manifest file, or the manifest inside a build
// output directory (plain first, then zstd).
func loadManifest(path string) (*manifest.Manifest, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		dir := path
		path = filepath.Join(dir, manifest.DefaultName)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			path = filepath.Join(dir, manifest.DefaultName+".zst")
		}
	}

	m, err := manifest.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read manifest: %w", err)
	}
	return m, path, nil
}

func printStats(w io.Writer, m *manifest.Manifest) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Manifest version: %d\n", m.Version)
	fmt.Fprintf(w, "  Generated:        %s\n", m.GeneratedAt)
	fmt.Fprintf(w, "  Profile:          %s\n", m.Profile)
	if m.BuildInfo != nil {
		fmt.Fprintf(w, "  Workers:          %d\n", m.BuildInfo.Workers)
		fmt.Fprintf(w, "  Components:       %dx%d (sample %dpx)\n",
			m.BuildInfo.ComponentsX, m.BuildInfo.ComponentsY, m.BuildInfo.SampleSize)
	}
	fmt.Fprintln(w)

	s := m.Stats
	fmt.Fprintf(w, "  Total assets:     %d\n", s.TotalAssets)
	fmt.Fprintf(w, "  Total previews:   %d\n", s.TotalPreviews)
	fmt.Fprintf(w, "  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Fprintf(w, "  Hash bytes:       %s\n", formatBytes(s.TotalHashBytes))
	if s.TotalAssets > 0 {
		fmt.Fprintf(w, "  Avg hash length:  %.1f chars\n", float64(s.TotalHashBytes)/float64(s.TotalAssets))
	}
	fmt.Fprintf(w, "  Preview size:     %s\n", formatBytes(s.TotalPreviewBytes))
	if s.Reused > 0 {
		fmt.Fprintf(w, "  Reused:           %d\n", s.Reused)
	}
	fmt.Fprintln(w)

	// Per-format breakdown.
	formatStats := map[string]struct {
		count int
		bytes int64
	}{}
	for _, a := range m.Assets {
		for _, p := range a.Previews {
			fs := formatStats[p.Format]
			fs.count++
			fs.bytes += p.Size
			formatStats[p.Format] = fs
		}
	}
	if len(formatStats) > 0 {
		fmt.Fprintln(w, "  Preview formats:")
		for _, f := range []string{"avif", "webp", "jpeg", "png"} {
			if fs, ok := formatStats[f]; ok {
				fmt.Fprintf(w, "    %-6s  %4d files  %s\n", f, fs.count, formatBytes(fs.bytes))
			}
		}
		fmt.Fprintln(w)
	}

	// Component breakdown.
	compStats := map[[2]int]int{}
	for _, a := range m.Assets {
		compStats[[2]int{a.ComponentsX, a.ComponentsY}]++
	}
	var comps [][2]int
	for c := range compStats {
		comps = append(comps, c)
	}
	sort.Slice(comps, func(i, j int) bool {
		if comps[i][0] != comps[j][0] {
			return comps[i][0] < comps[j][0]
		}
		return comps[i][1] < comps[j][1]
	})
	fmt.Fprintln(w, "  Components:")
	for _, c := range comps {
		fmt.Fprintf(w, "    %dx%d  %4d assets\n", c[0], c[1], compStats[c])
	}
	fmt.Fprintln(w)

	// Warnings.
	var warnings []string
	for key, a := range m.Assets {
		if a.BlurHash == "" {
			warnings = append(warnings, fmt.Sprintf("asset %q missing blurhash", key))
		}
		if a.Original.HasAlpha {
			warnings = append(warnings, fmt.Sprintf("asset %q has transparency; the hash ignores alpha", key))
		}
	}
	sort.Strings(warnings)
	if len(warnings) > 0 {
		fmt.Fprintf(w, "  Warnings (%d):\n", len(warnings))
		for _, msg := range warnings {
			fmt.Fprintf(w, "    ⚠ %s\n", msg)
		}
		fmt.Fprintln(w)
	}
}
