package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/AnyUserName/blurhash/internal/manifest"
	"github.com/AnyUserName/blurhash/internal/pipeline"
	"github.com/AnyUserName/blurhash/internal/profile"
	"github.com/spf13/cobra"
)

var (
	buildOutDir      string
	buildProfile     string
	buildWorkers     int
	buildX           int
	buildY           int
	buildPreviews    bool
	buildIncremental bool
	buildCompress    bool
)

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Hash every image in a directory and write a manifest",
	Long: `Scans input directory for images (png, jpg, jpeg, webp, gif, bmp, tiff),
computes a placeholder hash per image and writes a manifest file.

With --previews each hash is also rendered to small preview images.
Preview filenames are content-addressed: <key>.<w>.<h>.<hash>.ext

With --incremental, entries of an existing manifest in the output directory
are reused when neither the source bytes nor the settings changed.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "./blurhash_out", "output directory")
	buildCmd.Flags().StringVarP(&buildProfile, "profile", "p", "default", "processing profile ("+strings.Join(profile.Names(), ", ")+")")
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	buildCmd.Flags().IntVar(&buildX, "x", 0, "horizontal components 1-9 (0 = profile)")
	buildCmd.Flags().IntVar(&buildY, "y", 0, "vertical components 1-9 (0 = profile)")
	buildCmd.Flags().BoolVar(&buildPreviews, "previews", false, "write rendered preview images")
	buildCmd.Flags().BoolVar(&buildIncremental, "incremental", false, "reuse unchanged entries from the previous manifest")
	buildCmd.Flags().BoolVar(&buildCompress, "compress", false, "write the manifest zstd-compressed (.zst)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	// Resolve absolute paths.
	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	// Load profile.
	prof := profile.Get(buildProfile)
	if buildX > 0 {
		prof.ComponentsX = buildX
	}
	if buildY > 0 {
		prof.ComponentsY = buildY
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (components=%dx%d, sample=%d, punch=%g)",
		prof.Name, prof.ComponentsX, prof.ComponentsY, prof.SampleSize, prof.Punch)

	// Create output dir.
	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	manifestName := manifest.DefaultName
	if buildCompress {
		manifestName += ".zst"
	}
	manifestPath := filepath.Join(absOutput, manifestName)

	var previous *manifest.Manifest
	if buildIncremental {
		previous, err = manifest.ReadFile(manifestPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			logVerbose("no previous manifest at %s, building from scratch", manifestPath)
		case err != nil:
			return fmt.Errorf("read previous manifest: %w", err)
		default:
			logVerbose("previous manifest: %d assets", len(previous.Assets))
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Run pipeline.
	p := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Profile:   prof,
		Workers:   buildWorkers,
		Verbose:   verbose,
		Previews:  buildPreviews,
		Previous:  previous,
	})

	m, err := p.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("build interrupted")
	}
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	if err := manifest.WriteFile(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printBuildReport(m, manifestPath, time.Since(start))
	return nil
}

func printBuildReport(m *manifest.Manifest, manifestPath string, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║            blurhash build complete               ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	stats := m.Stats
	fmt.Printf("  Assets:      %d\n", stats.TotalAssets)
	if stats.Reused > 0 {
		fmt.Printf("  Reused:      %d (unchanged since last build)\n", stats.Reused)
	}
	fmt.Printf("  Input size:  %s\n", formatBytes(stats.TotalInputBytes))
	fmt.Printf("  Hash bytes:  %s\n", formatBytes(stats.TotalHashBytes))
	if stats.TotalPreviews > 0 {
		fmt.Printf("  Previews:    %d (%s)\n", stats.TotalPreviews, formatBytes(stats.TotalPreviewBytes))
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:     %d\n", m.BuildInfo.Workers)
	}
	fmt.Println()

	// Largest sources with their hashes.
	if len(m.Assets) > 0 {
		keys := make([]string, 0, len(m.Assets))
		for key := range m.Assets {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool {
			si, sj := m.Assets[keys[i]].Original.Size, m.Assets[keys[j]].Original.Size
			if si != sj {
				return si > sj
			}
			return keys[i] < keys[j]
		})
		n := min(len(keys), 10)
		fmt.Printf("  Top %d heaviest:\n", n)
		for _, key := range keys[:n] {
			a := m.Assets[key]
			fmt.Printf("    %-40s %8s  %s\n", truncKey(key, 40), formatBytes(a.Original.Size), a.BlurHash)
		}
		fmt.Println()
	}

	if fmts := detectPreviewFormats(m); len(fmts) > 0 {
		fmt.Printf("  Formats:     %s\n", strings.Join(fmts, ", "))
	}

	var size int64
	if info, err := os.Stat(manifestPath); err == nil {
		size = info.Size()
	}
	fmt.Printf("  Manifest:    %s (%s)\n", filepath.Base(manifestPath), formatBytes(size))
	fmt.Println()
}

func detectPreviewFormats(m *manifest.Manifest) []string {
	set := map[string]bool{}
	for _, a := range m.Assets {
		for _, p := range a.Previews {
			set[p.Format] = true
		}
	}
	var out []string
	for _, f := range []string{"avif", "webp", "jpeg", "png"} {
		if set[f] {
			out = append(out, f)
		}
	}
	return out
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
