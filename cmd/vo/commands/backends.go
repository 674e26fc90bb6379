package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/vo/backend"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List GPU backends",
	Long: `List the registered GPU backends in probe order.

AVAILABLE tells whether the backend's system library can be loaded;
AUTO tells whether "auto" selection tries it.`,
	Args: cobra.NoArgs,
	RunE: runBackends,
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}

func runBackends(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPRIORITY\tAVAILABLE\tAUTO")
	for _, in := range backend.List() {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", in.Name, in.Priority, yesNo(in.Available), yesNo(in.AutoProbe))
	}
	return w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
