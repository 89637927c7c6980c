package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/aip/internal/output"
	"github.com/jackzampolin/aip/internal/pdfmerge"
)

var (
	fetchAirport string
	fetchOutput  string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download all AIP documents of an airport into one PDF",
	Long: `Download every AIP document linked from an airport's section and merge
them into a single PDF.

The airport is matched by title prefix inside the aerodromes section; the
first matching section wins. Documents are downloaded one at a time and the
run stops at the first failure without writing any output.

Examples:
  aip fetch --airport UUEE                  # Writes UUEE.pdf
  aip fetch --airport UUEE --output sh.pdf  # Custom output file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		out := fetchOutput
		if out == "" {
			out = fetchAirport + ".pdf"
		}

		result, err := a.builder.Build(cmd.Context(), fetchAirport, out, pdfmerge.New(a.logger))
		if err != nil {
			return err
		}
		return output.To(cmd.OutOrStdout(), output.GetFormat(), result)
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchAirport, "airport", "", "airport ICAO code, matched as a title prefix (required)")
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "output file (default: <airport>.pdf)")
	_ = fetchCmd.MarkFlagRequired("airport")

	rootCmd.AddCommand(fetchCmd)
}
