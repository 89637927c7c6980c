package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/aip/internal/menu"
	"github.com/jackzampolin/aip/internal/output"
)

var menuTitle string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Print the parsed AIP menu tree",
	Long: `Fetch the AIP menu page and print its section tree.

Use --title to print only the subtree of the section with that exact title,
e.g. the aerodromes section, to find the title an airport is listed under.

Examples:
  aip menu
  aip menu --title "AD 2. Аэродромы"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		sections, err := a.builder.Menu(cmd.Context())
		if err != nil {
			return err
		}

		if menuTitle != "" {
			section, err := menu.FindSectionByTitle(sections, menuTitle)
			if err != nil {
				return err
			}
			sections = []*menu.Section{section}
		}

		return output.To(cmd.OutOrStdout(), output.GetFormat(), sections)
	},
}

func init() {
	menuCmd.Flags().StringVar(&menuTitle, "title", "", "only print the section with this exact title")

	rootCmd.AddCommand(menuCmd)
}
