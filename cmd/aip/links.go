package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/aip/internal/bundle"
	"github.com/jackzampolin/aip/internal/output"
)

var linksAirport string

// linksResult is the output of the links command.
type linksResult struct {
	Airport   string            `json:"airport" yaml:"airport"`
	Number    string            `json:"number" yaml:"number"`
	Section   string            `json:"section" yaml:"section"`
	Documents []bundle.Document `json:"documents" yaml:"documents"`
}

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "List the AIP documents of an airport without downloading them",
	Long: `Resolve an airport in the AIP menu and print its documents in the order
fetch would download them.

Examples:
  aip links --airport UUEE
  aip links --airport UUEE --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		section, docs, err := a.builder.Documents(cmd.Context(), linksAirport)
		if err != nil {
			return err
		}

		return output.To(cmd.OutOrStdout(), output.GetFormat(), linksResult{
			Airport:   linksAirport,
			Number:    section.Number,
			Section:   section.Title,
			Documents: docs,
		})
	},
}

func init() {
	linksCmd.Flags().StringVar(&linksAirport, "airport", "", "airport ICAO code, matched as a title prefix (required)")
	_ = linksCmd.MarkFlagRequired("airport")

	rootCmd.AddCommand(linksCmd)
}
