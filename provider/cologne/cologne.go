// Package cologne implements the provider for Köln backed by the AWB Köln web API.
package cologne

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/tonneli-cli/tonneli/log"
	"github.com/tonneli-cli/tonneli/provider"
	"github.com/tonneli-cli/tonneli/schedule"
)

// BaseURL is the AWB Köln API root.
const BaseURL = "https://www.awbkoeln.de/api"

// ID is the city identifier of Köln.
const ID = "cologne"

type streetsResponse struct {
	Data []streetEntry `json:"data"`
}

type streetEntry struct {
	StreetName             string `json:"street_name"`
	BuildingNumber         string `json:"building_number"`
	BuildingNumberAddition string `json:"building_number_addition"`
	StreetCode             string `json:"street_code"`
	UserStreetName         string `json:"user_street_name"`
	UserBuildingNumber     string `json:"user_building_number"`
}

type calendarResponse struct {
	Data []calendarEntry `json:"data"`
}

type calendarEntry struct {
	Day   int    `json:"day"`
	Month int    `json:"month"`
	Year  int    `json:"year"`
	Type  string `json:"type"`
}

// Provider serves Köln.
type Provider struct {
	client  *http.Client
	baseURL string
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL overrides the API root.
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) {
		p.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// New returns the Köln provider using client for all requests.
func New(client *http.Client, options ...Option) *Provider {
	p := &Provider{client: client, baseURL: BaseURL}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *Provider) City() schedule.City {
	return schedule.City{ID: ID, Name: "Köln"}
}

// SearchAddress asks AWB for the street and house number parsed from query.
func (p *Provider) SearchAddress(ctx context.Context, query string) ([]schedule.Address, error) {
	q := schedule.ParseQuery(query)
	if q.IsEmpty() {
		return nil, nil
	}

	params := url.Values{
		"street_name":              {q.Street},
		"building_number":          {q.Number},
		"building_number_addition": {""},
		"form":                     {"json"},
	}

	var resp streetsResponse
	if err := provider.GetJSON(ctx, p.client, p.baseURL+"/streets", params, &resp); err != nil {
		return nil, err
	}

	addresses := lo.Map(resp.Data, func(entry streetEntry, _ int) schedule.Address {
		street := lo.Ternary(entry.UserStreetName == "", entry.StreetName, entry.UserStreetName)
		number := lo.Ternary(entry.UserBuildingNumber == "", entry.BuildingNumber, entry.UserBuildingNumber)

		return schedule.Address{
			Ref:    encodeRef(entry.StreetCode, entry.BuildingNumber, entry.BuildingNumberAddition),
			City:   ID,
			Street: street,
			Number: number,
			Suffix: entry.BuildingNumberAddition,
			Label:  fmt.Sprintf("%s %s", street, number),
		}
	})

	addresses = lo.UniqBy(addresses, func(a schedule.Address) string { return a.Ref })
	log.City(ID).Infof("%d addresses for %q", len(addresses), query)
	return addresses, nil
}

// FetchSchedule requests the AWB calendar covering window.
func (p *Provider) FetchSchedule(ctx context.Context, ref string, window schedule.DateRange) ([]schedule.PickupEvent, error) {
	streetCode, number, addition, err := decodeRef(ref)
	if err != nil {
		return nil, err
	}

	years := window.Years()
	if len(years) == 0 {
		return nil, nil
	}

	// the calendar applies the month bounds to every year of the request
	startMonth, endMonth := int(window.Start.Month()), int(window.End.Month())
	if len(years) > 1 {
		startMonth, endMonth = 1, 12
	}

	params := url.Values{
		"building_number": {number},
		"street_code":     {streetCode},
		"start_year":      {strconv.Itoa(years[0])},
		"end_year":        {strconv.Itoa(years[len(years)-1])},
		"start_month":     {strconv.Itoa(startMonth)},
		"end_month":       {strconv.Itoa(endMonth)},
		"form":            {"json"},
	}
	if addition != "" {
		params.Set("building_number_addition", addition)
	}

	var resp calendarResponse
	if err := provider.GetJSON(ctx, p.client, p.baseURL+"/calendar", params, &resp); err != nil {
		return nil, err
	}

	events := make([]schedule.PickupEvent, 0, len(resp.Data))
	for _, entry := range resp.Data {
		date := time.Date(entry.Year, time.Month(entry.Month), entry.Day, 0, 0, 0, 0, time.Local)
		if date.Year() != entry.Year || int(date.Month()) != entry.Month || date.Day() != entry.Day {
			return nil, fmt.Errorf("%w: invalid date %d-%d-%d", provider.ErrUpstreamFormat, entry.Year, entry.Month, entry.Day)
		}

		typ, label := mapType(entry.Type)
		events = append(events, schedule.PickupEvent{
			Date:  date,
			Type:  typ,
			Label: label,
		})
	}

	return schedule.Normalize(events, ref, window), nil
}

func encodeRef(streetCode, number, addition string) string {
	return strings.Join([]string{streetCode, number, addition}, ":")
}

func decodeRef(ref string) (streetCode, number, addition string, err error) {
	parts := strings.SplitN(ref, ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", fmt.Errorf("%w: %q", provider.ErrInvalidReference, ref)
	}

	if len(parts) == 3 {
		addition = parts[2]
	}

	return parts[0], parts[1], addition, nil
}

// mapType translates AWB bin colours into waste types with their German names.
func mapType(raw string) (schedule.WasteType, string) {
	switch strings.ToLower(raw) {
	case "grey":
		return schedule.Residual, "Restabfall"
	case "blue":
		return schedule.Paper, "Papier / Pappe"
	case "wertstoff":
		return schedule.Packaging, "Leichtverpackungen / Wertstoffe"
	case "brown":
		return schedule.Organic, "Bioabfall"
	default:
		return schedule.NormalizeWasteType(raw), "Fraktion " + raw
	}
}
