package cli

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/blurhash"
	"github.com/AnyUserName/blurhash/internal/encoder"
	"github.com/AnyUserName/blurhash/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	decodeWidth   int
	decodeHeight  int
	decodePunch   float64
	decodeFormat  string
	decodeQuality int
	decodeUpscale bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode <hash> <out>",
	Short: "Render a hash into an image file",
	Long: `Renders the placeholder at --width x --height and writes it to <out>.
The format follows the file extension unless --format is given.

With --upscale the hash is rendered at a small size and bilinearly
upscaled, which is much faster for large outputs.`,
	Args: cobra.ExactArgs(2),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().IntVar(&decodeWidth, "width", 32, "output width in pixels")
	decodeCmd.Flags().IntVar(&decodeHeight, "height", 0, "output height (0 = keep the component aspect)")
	decodeCmd.Flags().Float64Var(&decodePunch, "punch", 1, "contrast multiplier for the AC terms")
	decodeCmd.Flags().StringVarP(&decodeFormat, "format", "f", "", "output format (png, jpeg, webp, avif)")
	decodeCmd.Flags().IntVarP(&decodeQuality, "quality", "q", 0, "quality 1-100 (0 = encoder default)")
	decodeCmd.Flags().BoolVar(&decodeUpscale, "upscale", false, "render small and upscale")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	hash, out := args[0], args[1]

	x, y, err := blurhash.Components(hash)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	w, h := decodeWidth, decodeHeight
	if h <= 0 && w > 0 {
		h = max(1, w*y/x)
	}

	format := decodeFormat
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(out), ".")
	}
	enc := encoder.NewRegistry().Get(format)
	if enc == nil {
		return fmt.Errorf("no encoder available for format %q", format)
	}

	var img image.Image
	if decodeUpscale {
		img, err = pipeline.RenderPreview(hash, w, h, decodePunch)
	} else {
		img, err = blurhash.DecodeImage(hash, w, h, decodePunch)
	}
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	data, err := enc.Encode(img, decodeQuality)
	if err != nil {
		return fmt.Errorf("encode %s: %w", enc.Format(), err)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	logVerbose("wrote %s (%dx%d %s, %s)", out, w, h, enc.Format(), formatBytes(int64(len(data))))
	return nil
}
