// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tonneli-cli/tonneli/export"
	"github.com/tonneli-cli/tonneli/log"
	"github.com/tonneli-cli/tonneli/schedule"
	"github.com/tonneli-cli/tonneli/service"
)

// ErrNoAddress is returned when the picker matches none of the search results.
var ErrNoAddress = errors.New("no matching address")

// Output is the JSON rendering of a search without a picker.
type Output struct {
	City      schedule.City      `json:"city"`
	Query     string             `json:"query"`
	Addresses []schedule.Address `json:"addresses"`
}

// Run searches addresses and writes either the results or the schedule of the picked address.
func Run(ctx context.Context, svc *service.Service, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}
	if options.Format == "" {
		options.Format = export.Text
	}

	city, err := svc.City(options.City)
	if err != nil {
		return err
	}

	addresses, err := svc.Search(ctx, city.ID, options.Query)
	if err != nil {
		return err
	}
	log.Infof("found %d addresses for %q in %s", len(addresses), options.Query, city.ID)

	picker, ok := options.Picker.Get()
	if !ok {
		return writeAddresses(options.Out, options.Format, &Output{City: city, Query: options.Query, Addresses: addresses})
	}

	address := picker(addresses)
	if address == nil {
		return fmt.Errorf("%s: %w for %q", city, ErrNoAddress, options.Query)
	}

	events, err := svc.Schedule(ctx, city.ID, address.Ref)
	if err != nil {
		return err
	}

	return export.Write(options.Out, options.Format, &export.Document{
		City:      city,
		Address:   *address,
		Window:    svc.Window(),
		Generated: time.Now(),
		Events:    events,
	})
}

func writeAddresses(out io.Writer, format export.Format, output *Output) error {
	switch format {
	case export.JSON:
		if output.Addresses == nil {
			output.Addresses = []schedule.Address{}
		}
		return json.NewEncoder(out).Encode(output)
	case export.ICS:
		return errors.New("ics output needs an address selector")
	}

	for i, a := range output.Addresses {
		if _, err := fmt.Fprintf(out, "%d\t%s\n", i, a.Display()); err != nil {
			return err
		}
	}
	return nil
}
