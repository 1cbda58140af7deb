// Package custom loads city providers written in Lua.
package custom

import (
	"fmt"
	"path/filepath"
	"strings"

	libs "github.com/metafates/mangal-lua-libs"
	"github.com/tonneli-cli/tonneli/constant"
	"github.com/tonneli-cli/tonneli/filesystem"
	"github.com/tonneli-cli/tonneli/internal/scraper"
	"github.com/tonneli-cli/tonneli/network"
	"github.com/tonneli-cli/tonneli/schedule"
	"github.com/tonneli-cli/tonneli/util"
	lua "github.com/yuin/gopher-lua"
)

// Extension of provider scripts.
const Extension = ".lua"

// Load executes the script at path and validates the globals a provider must define.
// The city identifier defaults to the file name when CityID is not set.
func Load(path string) (*Provider, error) {
	state := lua.NewState()
	libs.Preload(state)

	p := &Provider{state: state, client: network.Default()}
	registerHTTP(state, p)

	if err := scraper.PreCompileAndLoad(state, path); err != nil {
		state.Close()
		return nil, err
	}

	name := util.FileStem(path)
	for _, fn := range []string{constant.SearchAddressesFn, constant.PickupScheduleFn} {
		if state.GetGlobal(fn).Type() != lua.LTFunction {
			state.Close()
			return nil, fmt.Errorf("function %s is required but not defined in %s", fn, name)
		}
	}

	id := globalString(state, constant.CityIDVar, name)
	p.city = schedule.City{
		ID:   id,
		Name: globalString(state, constant.CityNameVar, id),
	}

	return p, nil
}

// LoadAll loads every script in dir, ordered by file name.
// It stops at the first broken script.
func LoadAll(dir string) ([]*Provider, error) {
	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var providers []*Provider
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}

		p, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			for _, loaded := range providers {
				loaded.Close()
			}
			return nil, fmt.Errorf("load %s: %w", entry.Name(), err)
		}

		providers = append(providers, p)
	}

	return providers, nil
}

func globalString(state *lua.LState, name, fallback string) string {
	if value := state.GetGlobal(name); value.Type() == lua.LTString && value.String() != "" {
		return value.String()
	}
	return fallback
}
