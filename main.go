// Package main is the entry point for the tonneli application.
package main

import (
	"github.com/samber/lo"
	"github.com/tonneli-cli/tonneli/cmd"
	"github.com/tonneli-cli/tonneli/config"
	"github.com/tonneli-cli/tonneli/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
