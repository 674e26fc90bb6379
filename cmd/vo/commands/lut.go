package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/vo/asset"
)

var lutCmd = &cobra.Command{
	Use:   "lut FILE",
	Short: "Check a .cube LUT file",
	Long:  `Parse a .cube LUT file the way the pipeline does and summarize it.`,
	Example: `  # Check a 3D grading LUT
  vo lut ~/luts/film.cube`,
	Args: cobra.ExactArgs(1),
	RunE: runLUT,
}

func init() {
	rootCmd.AddCommand(lutCmd)
}

func runLUT(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	lut, err := asset.ParseCube(data)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if lut.Title != "" {
		fmt.Fprintf(out, "title:   %s\n", lut.Title)
	}
	fmt.Fprintf(out, "kind:    %s\n", lut.Kind)
	fmt.Fprintf(out, "size:    %d (%d entries)\n", lut.Size, lut.Entries())
	fmt.Fprintf(out, "domain:  %v .. %v\n", lut.DomainMin, lut.DomainMax)
	return nil
}
