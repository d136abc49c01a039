package cmd

import (
	"strings"

	"github.com/fhsmendes/weather-widget/view"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newLookupCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lookup <city>",
		Short: "Look up the current weather for a city once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot := a.controller.Search(cmd.Context(), strings.Join(args, " "))
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(snapshot)
			}
			return view.Text(cmd.OutOrStdout(), snapshot)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
