package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate a manifest, its hashes and the preview files it references",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	m, path, err := loadManifest(args[0])
	if err != nil {
		return err
	}
	logVerbose("validating %s", path)

	out := cmd.OutOrStdout()
	problems := m.Validate(filepath.Dir(path))
	if len(problems) == 0 {
		fmt.Fprintln(out, "  ✓ Manifest is valid")
		fmt.Fprintf(out, "  ✓ %d assets, %d previews, all files present\n", m.Stats.TotalAssets, m.Stats.TotalPreviews)
		return nil
	}

	fmt.Fprintf(out, "  ✗ Manifest has %d error(s):\n", len(problems))
	for _, p := range problems {
		fmt.Fprintf(out, "    • %s\n", p)
	}
	return fmt.Errorf("validation failed with %d errors", len(problems))
}
