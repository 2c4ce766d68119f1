package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"modelguard/internal/llm"
)

// Version is set at build time via -ldflags "-X modelguard/internal/cli.Version=...".
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "modelguard %s (%s, llama=%t)\n", Version, runtime.Version(), llm.RuntimeBuilt())
			return nil
		},
	}
}
