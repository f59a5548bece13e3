package commands

import "github.com/spf13/cobra"

// Version is the version of the tool, set at link time with
// -ldflags "-X github.com/modelfit/modelfit/commands.Version=...".
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the modelfit version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("modelfit version %s\n", Version)
		},
	}
}
