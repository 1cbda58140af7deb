package provider

import (
	"fmt"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/tonneli-cli/tonneli/schedule"
)

// Registry resolves city identifiers to providers.
// It is filled once at startup and frozen before use; reads need no locking afterwards.
type Registry struct {
	providers map[string]Provider
	cities    []schedule.City
	frozen    bool
}

// NewRegistry returns an empty, writable registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds p under its city identifier.
// An identifier can only be registered once; the first provider is kept.
func (r *Registry) Register(p Provider) error {
	if r.frozen {
		return ErrRegistryFrozen
	}

	city := p.City()
	if city.ID == "" {
		return fmt.Errorf("register %q: empty city id", city.Name)
	}

	if _, ok := r.providers[city.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCity, city.ID)
	}

	r.providers[city.ID] = p
	r.cities = append(r.cities, city)
	return nil
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Get returns the provider registered for id.
func (r *Registry) Get(id string) (Provider, error) {
	p, ok := r.providers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCity, id)
	}
	return p, nil
}

// List returns the registered cities in registration order.
func (r *Registry) List() []schedule.City {
	cities := make([]schedule.City, len(r.cities))
	copy(cities, r.cities)
	return cities
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	return len(r.cities)
}

// Closest returns the registered city whose identifier is nearest to id.
func (r *Registry) Closest(id string) (schedule.City, bool) {
	if len(r.cities) == 0 {
		return schedule.City{}, false
	}

	return lo.MinBy(r.cities, func(a, b schedule.City) bool {
		return levenshtein.Distance(id, a.ID) < levenshtein.Distance(id, b.ID)
	}), true
}
