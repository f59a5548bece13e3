package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check IDENTIFIER",
		Short: "Check whether a model fits in this machine's memory",
		Long: `Check lists the model's published weight files, estimates the memory each
quantization needs, and compares the estimates against local RAM and VRAM.
Nothing is downloaded.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf(
					"'modelfit check' requires 1 argument.\n\n" +
						"Usage:  modelfit check IDENTIFIER\n\n" +
						"See 'modelfit check --help' for more information",
				)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return newRuntime(opts).checkOne(cmd, args[0])
		},
	}
}
