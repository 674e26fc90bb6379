package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/vo/asset"
)

var shaderCmd = &cobra.Command{
	Use:   "shader FILE",
	Short: "Check a hook shader file",
	Long: `Parse a hook shader, compile every pass and list the passes.

A pass that fails to compile is reported with its line number, which is
the same error that disables the shader during playback.`,
	Args: cobra.ExactArgs(1),
	RunE: runShader,
}

func init() {
	rootCmd.AddCommand(shaderCmd)
}

func runShader(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	sh, err := asset.ParseShader(data)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tHOOK\tDESC\tBIND\tSAVE\tSPIR-V")
	for i, p := range sh.Passes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d bytes\n", i, strings.Join(p.Hooks, ","), p.Desc, strings.Join(p.Binds, ","), p.Save, len(p.SPIRV))
	}
	return w.Flush()
}
