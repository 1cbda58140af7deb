package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tonneli-cli/tonneli/key"
	"github.com/tonneli-cli/tonneli/mini"
)

func init() {
	rootCmd.AddCommand(miniCmd)
}

// miniCmd runs the lookup as a sequence of prompts instead of the full screen interface.
var miniCmd = &cobra.Command{
	Use:   "mini",
	Short: "Look up a schedule through simple prompts",
	Long:  `Ask for the city, then the address, then print its pickup schedule. Works in terminals without full screen support.`,
	Run: func(cmd *cobra.Command, args []string) {
		svc := newService()
		options := mini.Options{
			City: viper.GetString(key.DefaultCity),
		}
		checkCity(svc, options.City)
		handleErr(mini.Run(svc, &options))
	},
}
