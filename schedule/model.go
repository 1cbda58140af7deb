// Package schedule defines the data shared by every city provider and the interface: cities, addresses and pickups.
package schedule

import (
	"strings"
	"time"
)

// City identifies a municipality served by exactly one provider.
type City struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c City) String() string {
	if c.Name == "" {
		return c.ID
	}
	return c.Name
}

// Address is a single search result of a provider.
// Ref is opaque outside the provider that produced it.
type Address struct {
	Ref    string `json:"ref"`
	City   string `json:"city"`
	Street string `json:"street"`
	Number string `json:"number"`
	Suffix string `json:"suffix,omitempty"`
	Label  string `json:"label"`
}

// Display returns the label, falling back to street, number and suffix.
func (a Address) Display() string {
	if a.Label != "" {
		return a.Label
	}

	parts := []string{a.Street, a.Number + a.Suffix}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func (a Address) String() string {
	return a.Display()
}

// PickupEvent is one scheduled collection of a waste type at an address.
type PickupEvent struct {
	Date  time.Time `json:"date"`
	Type  WasteType `json:"type"`
	Label string    `json:"label,omitempty"`
	Note  string    `json:"note,omitempty"`
	Ref   string    `json:"ref"`
}

// Display returns the provider label when present, otherwise the waste type label.
func (e PickupEvent) Display() string {
	if e.Type == Other && e.Label != "" {
		return e.Label
	}
	return e.Type.Label()
}
