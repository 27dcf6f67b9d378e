// Command pythia is the command-line front end for the parser toolkit:
// tree dumps, syntax checking, watch mode, and an interactive session.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pythia-lang/pythia/internal/cli"
)

var (
	flagConfig        string
	flagPythonVersion string

	cfg *cli.Config
)

func main() {
	root := &cobra.Command{
		Use:           "pythia",
		Short:         "Tolerant Python parser toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := flagConfig
			if path == "" {
				path = cli.FindConfig(".")
			}
			var err error
			cfg, err = cli.LoadConfig(path)
			return err
		},
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to .pythia.yaml")
	root.PersistentFlags().StringVar(&flagPythonVersion, "python-version", "", "gate syntax newer than this release (e.g. 3.10)")

	root.AddCommand(
		newParseCmd(),
		newCheckCmd(),
		newWatchCmd(),
		newReplCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pythia: %v\n", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.PrintVersion(cmd.OutOrStdout(), jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}
