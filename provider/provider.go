// Package provider defines the capability every city module implements and the registry resolving cities to providers.
package provider

import (
	"context"
	"errors"

	"github.com/tonneli-cli/tonneli/schedule"
)

// Provider answers address searches and schedule requests for a single city.
type Provider interface {
	// City returns the city served by this provider.
	City() schedule.City

	// SearchAddress returns addresses matching a free-text fragment, case-insensitively.
	// Results carry unique references, ordered by relevance or alphabetically.
	SearchAddress(ctx context.Context, query string) ([]schedule.Address, error)

	// FetchSchedule returns the pickups of an address inside window, sorted ascending by date.
	// ref must come from a previous SearchAddress of the same provider.
	FetchSchedule(ctx context.Context, ref string, window schedule.DateRange) ([]schedule.PickupEvent, error)
}

// Registry misuse.
var (
	ErrUnknownCity    = errors.New("unknown city")
	ErrDuplicateCity  = errors.New("duplicate city")
	ErrRegistryFrozen = errors.New("registry is read-only")
)

// Provider failures. Implementations wrap one of these with %w.
var (
	ErrNetwork          = errors.New("network failure")
	ErrUpstreamFormat   = errors.New("malformed upstream response")
	ErrRateLimited      = errors.New("rate limited")
	ErrInvalidReference = errors.New("invalid address reference")
)
