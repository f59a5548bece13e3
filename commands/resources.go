package commands

import (
	"github.com/spf13/cobra"

	"github.com/modelfit/modelfit/pkg/memory"
)

func newResourcesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "Show the RAM and VRAM this machine offers for inference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := newRuntime(opts)
			var res memory.Resources
			err := withSpinner("Probing system resources...", !opts.noColor, func() error {
				var perr error
				res, perr = rt.probe()
				return perr
			})
			if err != nil {
				return err
			}
			cmd.Print(resourceTable(res))
			return nil
		},
	}
}
