package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd wires every subcommand under the streetsweeper root.
func newRootCmd() *cobra.Command {
	var debugFlag bool

	rootCmd := &cobra.Command{
		Use:           "streetsweeper",
		Short:         "US street address parser",
		Long:          `Parse free-form US street, PO Box, informal and intersection addresses into structured records`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "trace which grammar matched each input")

	rootCmd.AddCommand(createParseCmd(&debugFlag))
	rootCmd.AddCommand(createServeCmd(&debugFlag))
	rootCmd.AddCommand(createBatchCmd(&debugFlag))
	rootCmd.AddCommand(createCompareCmd())

	return rootCmd
}
