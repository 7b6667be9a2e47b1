package cli

import (
	"fmt"

	"github.com/AnyUserName/blurhash"
	"github.com/AnyUserName/blurhash/internal/pipeline"
	"github.com/AnyUserName/blurhash/internal/profile"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
)

var (
	encodeX       int
	encodeY       int
	encodeProfile string
	encodeSample  int
)

var encodeCmd = &cobra.Command{
	Use:   "encode <image>",
	Short: "Print the placeholder hash of an image file",
	Long: `Decodes the image (png, jpeg, gif, webp, bmp, tiff), applies EXIF
orientation, box-filters it down to the sampling size and prints the hash.

Component counts default to the profile's, swapped for portrait sources
when the profile auto-orients.`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().IntVarP(&encodeX, "x", "x", 0, "horizontal components 1-9 (0 = profile)")
	encodeCmd.Flags().IntVarP(&encodeY, "y", "y", 0, "vertical components 1-9 (0 = profile)")
	encodeCmd.Flags().StringVarP(&encodeProfile, "profile", "p", "default", "encoding profile")
	encodeCmd.Flags().IntVar(&encodeSample, "sample", 0, "sampling size in pixels (0 = profile)")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	prof := profile.Get(encodeProfile)
	if encodeSample > 0 {
		prof.SampleSize = encodeSample
	}

	img, err := imaging.Open(args[0], imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	b := img.Bounds()

	x, y := prof.Components(b.Dx(), b.Dy())
	if encodeX > 0 {
		x = encodeX
	}
	if encodeY > 0 {
		y = encodeY
	}

	sampled := pipeline.Sample(img, prof.SampleSize)
	logVerbose("source %dx%d, sampled %dx%d, components %dx%d",
		b.Dx(), b.Dy(), sampled.Bounds().Dx(), sampled.Bounds().Dy(), x, y)

	hash, err := blurhash.EncodeImage(x, y, sampled)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
