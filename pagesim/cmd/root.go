// Package cmd provides the command-line interface of pagesim.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// NewRootCmd builds the pagesim command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pagesim",
		Short: "pagesim replays page reference strings against a set of frames.",
		Long: `pagesim replays page reference strings against a fixed number of ` +
			`physical frames under FIFO, LRU, MRU or OPTIMAL replacement and ` +
			`reports every hit and fault.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			return applyEnvDefaults(cmd, envFile)
		},
	}

	rootCmd.PersistentFlags().String("env-file", ".env",
		"File with PAGESIM_* defaults; ignored if missing")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newBenchCmd())
	rootCmd.AddCommand(newShowCmd())

	return rootCmd
}

// Execute runs the command line and exits. Exit handlers, such as the ones
// that flush trace databases, run before the process ends.
func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
