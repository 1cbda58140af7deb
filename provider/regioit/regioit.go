// Package regioit implements providers for municipalities running the RegioIT waste collection app.
// One client serves every such city; cities differ by API root and place.
package regioit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/tonneli-cli/tonneli/log"
	"github.com/tonneli-cli/tonneli/provider"
	"github.com/tonneli-cli/tonneli/schedule"
)

// City describes one RegioIT installation.
// When PlaceID is zero the place is looked up by PlaceName on first use.
type City struct {
	ID        string
	Name      string
	BaseURL   string
	PlaceID   int64
	PlaceName string
}

// NurembergCity is the Nürnberg installation.
var NurembergCity = City{
	ID:      "nuremberg",
	Name:    "Nürnberg",
	BaseURL: "https://nuernberg-abfallapp.regioit.de/abfall-app-nuernberg/rest",
	PlaceID: 6756817,
}

// AachenCity is the Aachen installation.
var AachenCity = City{
	ID:        "aachen",
	Name:      "Aachen",
	BaseURL:   "https://aachen-abfallapp.regioit.de/abfall-app-aachen/rest",
	PlaceName: "Aachen",
}

// maxStreets bounds the street detail requests issued by one search.
const maxStreets = 10

type place struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type street struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type streetDetail struct {
	HouseNumbers []houseNumber `json:"hausNrList"`
}

type houseNumber struct {
	ID     int64  `json:"id"`
	Number string `json:"nr"`
}

type fraction struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type pickup struct {
	Date     string    `json:"datum"`
	District *district `json:"bezirk"`
}

type district struct {
	FractionID int64 `json:"fraktionId"`
}

// Provider serves one RegioIT city.
type Provider struct {
	city   City
	client *http.Client
	now    func() time.Time

	mu      sync.Mutex
	placeID int64
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL overrides the API root of the city.
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) {
		p.city.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithClock sets the clock used to pick the street directory year.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		p.now = now
	}
}

// New returns a provider for city.
func New(client *http.Client, city City, options ...Option) *Provider {
	p := &Provider{
		city:    city,
		client:  client,
		now:     time.Now,
		placeID: city.PlaceID,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Nuremberg returns the Nürnberg provider.
func Nuremberg(client *http.Client, options ...Option) *Provider {
	return New(client, NurembergCity, options...)
}

// Aachen returns the Aachen provider.
func Aachen(client *http.Client, options ...Option) *Provider {
	return New(client, AachenCity, options...)
}

func (p *Provider) City() schedule.City {
	return schedule.City{ID: p.city.ID, Name: p.city.Name}
}

func (p *Provider) endpoint(format string, args ...any) string {
	return p.city.BaseURL + fmt.Sprintf(format, args...)
}

// place returns the place identifier, resolving it by name once it is needed.
func (p *Provider) place(ctx context.Context) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.placeID != 0 {
		return p.placeID, nil
	}

	var places []place
	if err := provider.GetJSON(ctx, p.client, p.endpoint("/orte"), nil, &places); err != nil {
		return 0, err
	}

	found, ok := lo.Find(places, func(pl place) bool {
		return strings.EqualFold(pl.Name, p.city.PlaceName)
	})
	if !ok {
		return 0, fmt.Errorf("%w: place %q not listed", provider.ErrUpstreamFormat, p.city.PlaceName)
	}

	p.placeID = found.ID
	return found.ID, nil
}

// SearchAddress lists the streets of the current year matching the street part of query
// and expands them into house numbers, filtered by the number part.
func (p *Provider) SearchAddress(ctx context.Context, query string) ([]schedule.Address, error) {
	q := schedule.ParseQuery(query)
	if q.IsEmpty() {
		return nil, nil
	}

	placeID, err := p.place(ctx)
	if err != nil {
		return nil, err
	}

	var streets []street
	params := url.Values{"jahr": {strconv.Itoa(p.now().Year())}}
	if err := provider.GetJSON(ctx, p.client, p.endpoint("/orte/%d/strassen", placeID), params, &streets); err != nil {
		return nil, err
	}

	needle := strings.ToLower(q.Street)
	streets = lo.Filter(streets, func(s street, _ int) bool {
		return strings.Contains(strings.ToLower(s.Name), needle)
	})
	rankStreets(streets, needle)
	if len(streets) > maxStreets {
		streets = streets[:maxStreets]
	}

	numberFilter := strings.ToLower(q.Number)
	var addresses []schedule.Address
	for _, s := range streets {
		var detail streetDetail
		if err := provider.GetJSON(ctx, p.client, p.endpoint("/strassen/%d", s.ID), nil, &detail); err != nil {
			return nil, err
		}

		numbers := lo.Filter(detail.HouseNumbers, func(h houseNumber, _ int) bool {
			return strings.Contains(strings.ToLower(h.Number), numberFilter)
		})
		sort.SliceStable(numbers, func(i, j int) bool {
			return lessHouseNumber(numbers[i].Number, numbers[j].Number)
		})

		for _, h := range numbers {
			addresses = append(addresses, schedule.Address{
				Ref:    strconv.FormatInt(h.ID, 10),
				City:   p.city.ID,
				Street: s.Name,
				Number: h.Number,
				Label:  strings.TrimSpace(s.Name + " " + h.Number),
			})
		}
	}

	addresses = lo.UniqBy(addresses, func(a schedule.Address) string { return a.Ref })
	log.City(p.city.ID).Infof("%d addresses for %q", len(addresses), query)
	return addresses, nil
}

// FetchSchedule requests every fraction of the house number and returns the pickups inside window.
func (p *Provider) FetchSchedule(ctx context.Context, ref string, window schedule.DateRange) ([]schedule.PickupEvent, error) {
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: %q", provider.ErrInvalidReference, ref)
	}

	var fractions []fraction
	if err := provider.GetJSON(ctx, p.client, p.endpoint("/hausnummern/%d/fraktionen", id), nil, &fractions); err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(fractions))
	params := url.Values{}
	for _, f := range fractions {
		names[f.ID] = f.Name
		params.Add("fraktion", strconv.FormatInt(f.ID, 10))
	}

	var pickups []pickup
	if err := provider.GetJSON(ctx, p.client, p.endpoint("/hausnummern/%d/termine", id), params, &pickups); err != nil {
		return nil, err
	}

	events := make([]schedule.PickupEvent, 0, len(pickups))
	for _, pu := range pickups {
		date, err := time.ParseInLocation(schedule.DateLayout, pu.Date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", provider.ErrUpstreamFormat, err)
		}

		event := schedule.PickupEvent{Date: date, Type: schedule.Other, Label: "Unknown fraction"}
		if pu.District != nil {
			if name, ok := names[pu.District.FractionID]; ok {
				event.Type = schedule.NormalizeWasteType(name)
				event.Label = name
			} else {
				event.Label = fmt.Sprintf("Fraction %d", pu.District.FractionID)
			}
		}

		events = append(events, event)
	}

	return schedule.Normalize(events, ref, window), nil
}

// rankStreets orders streets starting with needle first, then alphabetically.
func rankStreets(streets []street, needle string) {
	sort.SliceStable(streets, func(i, j int) bool {
		a, b := strings.ToLower(streets[i].Name), strings.ToLower(streets[j].Name)
		ap, bp := strings.HasPrefix(a, needle), strings.HasPrefix(b, needle)
		if ap != bp {
			return ap
		}
		return a < b
	})
}

// lessHouseNumber compares house numbers by their numeric part, then by suffix.
func lessHouseNumber(a, b string) bool {
	an, as := splitHouseNumber(a)
	bn, bs := splitHouseNumber(b)
	if an != bn {
		return an < bn
	}
	return as < bs
}

func splitHouseNumber(s string) (int, string) {
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(s)
	}
	n, _ := strconv.Atoi(s[:end])
	return n, strings.ToLower(strings.TrimSpace(s[end:]))
}
