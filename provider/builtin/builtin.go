// Package builtin assembles the registry of every city tonneli can serve.
package builtin

import (
	"net/http"

	"github.com/spf13/viper"
	"github.com/tonneli-cli/tonneli/key"
	"github.com/tonneli-cli/tonneli/log"
	"github.com/tonneli-cli/tonneli/provider"
	"github.com/tonneli-cli/tonneli/provider/cologne"
	"github.com/tonneli-cli/tonneli/provider/custom"
	"github.com/tonneli-cli/tonneli/provider/regioit"
	"github.com/tonneli-cli/tonneli/where"
)

// Providers returns the compiled-in providers, ordered by city identifier.
func Providers(client *http.Client) []provider.Provider {
	return []provider.Provider{
		regioit.Aachen(client),
		cologne.New(client),
		regioit.Nuremberg(client),
	}
}

// Customs loads the Lua providers from the providers directory when enabled.
func Customs() ([]*custom.Provider, error) {
	if !viper.GetBool(key.ProvidersCustom) {
		return nil, nil
	}
	return custom.LoadAll(where.Providers())
}

// NewRegistry registers the built-in providers followed by the Lua ones.
// The registry is left writable; the service freezes it.
func NewRegistry(client *http.Client) (*provider.Registry, error) {
	registry := provider.NewRegistry()

	for _, p := range Providers(client) {
		if err := registry.Register(p); err != nil {
			return nil, err
		}
	}

	customs, err := Customs()
	if err != nil {
		return nil, err
	}

	for _, p := range customs {
		if err := registry.Register(p); err != nil {
			return nil, err
		}
	}

	log.Infof("registered %d cities", registry.Len())
	return registry, nil
}
