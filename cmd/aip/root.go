package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/aip/internal/output"
	"github.com/jackzampolin/aip/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "aip",
	Short: "Download the AIP documents of an airport as a single PDF",
	Long: `aip downloads the aeronautical information publication (AIP) documents
published for an airport and concatenates them into one PDF.

The AIP menu page is parsed into its section tree, the airport is looked up
by ICAO code inside the aerodromes section, and every document linked from
the airport's section is downloaded in menu order and merged.`,
	Version:      version.GitRelease,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}
		output.SetFormat(format)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.aip/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "aip home directory (default: ~/.aip)",
	)
	rootCmd.PersistentFlags().StringVar(
		&outputFormat, "format", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	rootCmd.AddCommand(versionCmd)
}
