// Package cmd implements the command-line interface for tonneli.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tonneli-cli/tonneli/color"
	"github.com/tonneli-cli/tonneli/constant"
	"github.com/tonneli-cli/tonneli/icon"
	"github.com/tonneli-cli/tonneli/key"
	"github.com/tonneli-cli/tonneli/log"
	"github.com/tonneli-cli/tonneli/network"
	"github.com/tonneli-cli/tonneli/provider/builtin"
	"github.com/tonneli-cli/tonneli/schedule"
	"github.com/tonneli-cli/tonneli/service"
	"github.com/tonneli-cli/tonneli/style"
	"github.com/tonneli-cli/tonneli/tui"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("city", "C", "", "Open the address search of this city ID directly")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("city", completeCities))
	lo.Must0(viper.BindPFlag(key.DefaultCity, rootCmd.PersistentFlags().Lookup("city")))
}

// rootCmd defines the entry point for the tonneli application.
var rootCmd = &cobra.Command{
	Use:   constant.Tonneli,
	Short: "Look up waste collection dates from the terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Look up waste collection dates from the terminal"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		svc := newService()
		options := tui.Options{
			City: viper.GetString(key.DefaultCity),
		}
		checkCity(svc, options.City)
		handleErr(tui.Run(svc, &options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var errMissingCity = errors.New("no city given, use --city or set " + key.DefaultCity)

// newService builds the registry of built-in and scripted providers.
func newService() *service.Service {
	registry, err := builtin.NewRegistry(network.Default())
	handleErr(err)
	return service.New(registry)
}

// checkCity fails with a suggestion when id is not a registered city.
func checkCity(svc *service.Service, id string) {
	if id == "" {
		return
	}

	if _, err := svc.City(id); err != nil {
		if closest, ok := svc.Closest(id); ok {
			err = fmt.Errorf("%w\nDid you mean %s?", err, style.Fg(color.Yellow)(closest.ID))
		}
		handleErr(err)
	}
}

func completeCities(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	registry, err := builtin.NewRegistry(network.Default())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	return lo.Map(registry.List(), func(c schedule.City, _ int) string {
		return c.ID
	}), cobra.ShellCompDirectiveNoFileComp
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
