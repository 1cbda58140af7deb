package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/user"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tonneli-cli/tonneli/color"
	"github.com/tonneli-cli/tonneli/constant"
	"github.com/tonneli-cli/tonneli/filesystem"
	"github.com/tonneli-cli/tonneli/icon"
	"github.com/tonneli-cli/tonneli/internal/scraper"
	"github.com/tonneli-cli/tonneli/network"
	"github.com/tonneli-cli/tonneli/provider/builtin"
	"github.com/tonneli-cli/tonneli/provider/custom"
	"github.com/tonneli-cli/tonneli/style"
	"github.com/tonneli-cli/tonneli/util"
	"github.com/tonneli-cli/tonneli/where"
)

func init() {
	rootCmd.AddCommand(citiesCmd)
}

// citiesCmd provides a parent command for managing city providers.
var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "Manage built-in and custom city providers",
}

func init() {
	citiesCmd.AddCommand(citiesListCmd)

	citiesListCmd.Flags().BoolP("raw", "r", false, "Suppress header and metadata descriptions in the output")
	citiesListCmd.Flags().BoolP("custom", "c", false, "Display only user-installed custom Lua providers")
	citiesListCmd.Flags().BoolP("builtin", "b", false, "Display only built-in providers")

	citiesListCmd.MarkFlagsMutuallyExclusive("custom", "builtin")
	citiesListCmd.SetOut(os.Stdout)
}

// citiesListCmd displays the cities of every registered provider.
var citiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Display the cities of all registered providers",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader := !lo.Must(cmd.Flags().GetBool("raw"))
		headerStyle := style.New().Foreground(color.HiBlue).Bold(true).Render
		h := func(s string) {
			if printHeader {
				cmd.Println(headerStyle(s))
			}
		}
		line := func(id, name string) {
			if printHeader {
				cmd.Printf("%s %s\n", id, style.Faint(name))
			} else {
				cmd.Println(id)
			}
		}

		printBuiltin := func() {
			h("Builtin:")
			for _, p := range builtin.Providers(network.Default()) {
				line(p.City().ID, p.City().Name)
			}
		}

		printCustom := func() {
			h("Custom:")
			customs, err := custom.LoadAll(where.Providers())
			handleErr(err)
			for _, p := range customs {
				line(p.City().ID, p.City().Name)
				p.Close()
			}
		}

		switch {
		case lo.Must(cmd.Flags().GetBool("builtin")):
			printBuiltin()
		case lo.Must(cmd.Flags().GetBool("custom")):
			printCustom()
		default:
			printBuiltin()
			if printHeader {
				cmd.Println()
			}
			printCustom()
		}
	},
}

func init() {
	citiesCmd.AddCommand(citiesRemoveCmd)

	citiesRemoveCmd.Flags().StringArrayP("name", "n", []string{}, "Specify the file name of the custom provider(s) to uninstall")
	lo.Must0(citiesRemoveCmd.RegisterFlagCompletionFunc("name", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		scripts, err := filesystem.API().ReadDir(where.Providers())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		return lo.FilterMap(scripts, func(item os.FileInfo, _ int) (string, bool) {
			name := item.Name()
			if !strings.HasSuffix(name, custom.Extension) {
				return "", false
			}

			return util.FileStem(filepath.Base(name)), true
		}), cobra.ShellCompDirectiveNoFileComp
	}))
}

// citiesRemoveCmd uninstalls custom Lua providers.
var citiesRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Permanently uninstall specified custom Lua providers",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range lo.Must(cmd.Flags().GetStringArray("name")) {
			target := filepath.Join(where.Providers(), name+custom.Extension)
			handleErr(filesystem.API().Remove(target))
			fmt.Printf("%s successfully removed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
		}
	},
}

func init() {
	citiesCmd.AddCommand(citiesInstallCmd)
}

// citiesInstallCmd downloads a Lua provider script into the providers directory.
var citiesInstallCmd = &cobra.Command{
	Use:   "install [url]",
	Short: "Download a Lua provider script",
	Long: `Download a Lua provider script and verify it loads. Installing the same URL again updates the script
when its content changed.`,
	Args:    cobra.ExactArgs(1),
	Example: "  tonneli cities install https://example.org/providers/bonn.lua",
	Run: func(cmd *cobra.Command, args []string) {
		remote, err := url.Parse(args[0])
		handleErr(err)

		name := path.Base(remote.Path)
		if !strings.HasSuffix(name, custom.Extension) {
			handleErr(fmt.Errorf("not a lua script: %s", args[0]))
		}

		_, err = scraper.Clean(where.Providers())
		handleErr(err)

		target := filepath.Join(where.Providers(), util.SanitizeFilename(util.FileStem(name))+custom.Extension)
		erase := util.PrintErasable(fmt.Sprintf("%s Downloading %s...", icon.Get(icon.Progress), name))
		changed, err := scraper.Fetch(context.Background(), network.Default(), remote.String(), target)
		erase()
		handleErr(err)

		p, err := custom.Load(target)
		if err != nil {
			_ = filesystem.API().Remove(target)
			handleErr(err)
		}
		defer p.Close()

		if !changed {
			fmt.Printf("%s %s is up to date\n", icon.Get(icon.Success), style.Fg(color.Yellow)(p.City().Name))
			return
		}
		fmt.Printf("%s installed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(p.City().Name))
	},
}

func init() {
	citiesCmd.AddCommand(citiesGenCmd)

	citiesGenCmd.Flags().StringP("name", "n", "", "The display name of the city")
	citiesGenCmd.Flags().StringP("id", "i", "", "The city ID, derived from the name when empty")
	citiesGenCmd.Flags().StringP("url", "u", "", "The base URL of the municipal waste service")

	lo.Must0(citiesGenCmd.MarkFlagRequired("name"))
	lo.Must0(citiesGenCmd.MarkFlagRequired("url"))
}

// citiesGenCmd scaffolds a boilerplate Lua provider script.
var citiesGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Scaffold a new Lua provider script using a predefined template",
	Long:  `Generate a boilerplate Lua provider script with core functions and metadata.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SetOut(os.Stdout)

		var author string
		usr, err := user.Current()
		if err == nil {
			author = usr.Username
		} else {
			author = "Anonymous"
		}

		name := lo.Must(cmd.Flags().GetString("name"))
		id := lo.Must(cmd.Flags().GetString("id"))
		if id == "" {
			id = strings.ToLower(util.SanitizeFilename(name))
		}

		s := struct {
			Name              string
			URL               string
			Author            string
			ID                string
			CityIDVar         string
			CityNameVar       string
			SearchAddressesFn string
			PickupScheduleFn  string
		}{
			Name:              name,
			URL:               lo.Must(cmd.Flags().GetString("url")),
			Author:            author,
			ID:                id,
			CityIDVar:         constant.CityIDVar,
			CityNameVar:       constant.CityNameVar,
			SearchAddressesFn: constant.SearchAddressesFn,
			PickupScheduleFn:  constant.PickupScheduleFn,
		}

		funcMap := template.FuncMap{
			"repeat": strings.Repeat,
			"plus":   func(a, b int) int { return a + b },
			"max":    util.Max[int],
		}

		tmpl, err := template.New("provider").Funcs(funcMap).Parse(constant.ProviderTemplate)
		handleErr(err)

		target := filepath.Join(where.Providers(), id+custom.Extension)
		f, err := filesystem.API().Create(target)
		handleErr(err)

		defer util.Ignore(f.Close)

		err = tmpl.Execute(f, s)
		handleErr(err)

		cmd.Println(target)
	},
}
