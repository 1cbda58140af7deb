package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tonneli-cli/tonneli/export"
	"github.com/tonneli-cli/tonneli/filesystem"
	"github.com/tonneli-cli/tonneli/inline"
	"github.com/tonneli-cli/tonneli/key"
	"github.com/tonneli-cli/tonneli/query"
	"github.com/tonneli-cli/tonneli/util"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "Street and house number to search")
	inlineCmd.Flags().StringP("address", "a", "", "Address selector, prints the schedule of the selected address")
	inlineCmd.Flags().StringP("format", "f", string(export.Text), "Output format: text, json or ics")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output, the format extension is added when missing")
	lo.Must0(inlineCmd.MarkFlagRequired("query"))

	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(viper.GetString(key.DefaultCity), toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(export.Formats(), func(f export.Format, _ int) string {
			return string(f)
		}), cobra.ShellCompDirectiveNoFileComp
	}))
}

// inlineCmd looks up a schedule without any interaction.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Look up addresses or a schedule in non-interactive, scriptable mode",
	Long: `Search the addresses of a city and print them, or print the pickup schedule of one of them.

Address selectors:
  first - first address in the list
  last - last address in the list
  [number] - select address by index (starting from 0)
  exact:[label] - select the address with this label, case-insensitive

Without an address selector the matching addresses are listed.`,
	Example: "  tonneli inline --city cologne --query \"Marktplatz 1\" --address first --format ics -o pickups.ics",
	PreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetString(key.DefaultCity) == "" {
			handleErr(errMissingCity)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		svc := newService()
		city := viper.GetString(key.DefaultCity)
		checkCity(svc, city)

		format, err := export.ParseFormat(lo.Must(cmd.Flags().GetString("format")))
		handleErr(err)

		picker := mo.None[inline.AddressPicker]()
		if selector := lo.Must(cmd.Flags().GetString("address")); selector != "" {
			fn, err := inline.ParseAddressPicker(selector)
			handleErr(err)
			picker = mo.Some(fn)
		}

		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			if filepath.Ext(output) == "" {
				output += format.Extension()
			}
			f, err := filesystem.API().Create(output)
			handleErr(err)
			defer util.Ignore(f.Close)
			writer = f
		}

		q := strings.TrimSpace(lo.Must(cmd.Flags().GetString("query")))
		options := &inline.Options{
			Out:    writer,
			City:   city,
			Query:  q,
			Format: format,
			Picker: picker,
		}

		handleErr(inline.Run(context.Background(), svc, options))

		if err := query.Remember(city, q, 1); err != nil {
			handleErr(err)
		}
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)

	inlineSchemaCmd.Flags().BoolP("addresses", "a", false, "Generate the JSON Schema of the address list instead of the schedule")
}

// inlineSchemaCmd generates JSON schemas for structured inline mode outputs.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas for structured inline mode outputs",
	Run: func(cmd *cobra.Command, args []string) {
		var v any = &export.Document{}
		if lo.Must(cmd.Flags().GetBool("addresses")) {
			v = &inline.Output{}
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(export.Schema(v)))
	},
}
