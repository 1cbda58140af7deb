package cmd

import (
	"context"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/tonneli-cli/tonneli/export"
	"github.com/tonneli-cli/tonneli/inline"
	"github.com/tonneli-cli/tonneli/provider"
	"github.com/tonneli-cli/tonneli/provider/custom"
	"github.com/tonneli-cli/tonneli/service"
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("query", "q", "", "Search addresses with the script after loading it")
	runCmd.Flags().StringP("address", "a", "", "Address selector, prints the schedule of the selected address")
	runCmd.Flags().StringP("format", "f", string(export.Text), "Output format: text, json or ics")
}

// runCmd loads a single Lua provider script, optionally querying it.
var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Load a Lua provider script and optionally query it",
	Long: `Load a Lua provider script the same way custom providers are loaded, reporting any error.
With --query the script is searched like a regular city, which helps while developing a provider.`,
	Args:    cobra.ExactArgs(1),
	Example: "  tonneli run ./bonn.lua --query \"Markt 1\" --address first",
	Run: func(cmd *cobra.Command, args []string) {
		p, err := custom.Load(args[0])
		handleErr(err)
		defer p.Close()

		q := lo.Must(cmd.Flags().GetString("query"))
		if q == "" {
			cmd.Printf("%s (%s) loaded\n", p.City().Name, p.City().ID)
			return
		}

		format, err := export.ParseFormat(lo.Must(cmd.Flags().GetString("format")))
		handleErr(err)

		registry := provider.NewRegistry()
		handleErr(registry.Register(p))

		options := &inline.Options{
			Out:    cmd.OutOrStdout(),
			City:   p.City().ID,
			Query:  q,
			Format: format,
			Picker: mo.None[inline.AddressPicker](),
		}

		if selector := lo.Must(cmd.Flags().GetString("address")); selector != "" {
			picker, err := inline.ParseAddressPicker(selector)
			handleErr(err)
			options.Picker = mo.Some(picker)
		}

		handleErr(inline.Run(context.Background(), service.New(registry), options))
	},
}
