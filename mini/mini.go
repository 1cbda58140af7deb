// Package mini implements a lightweight prompt-driven interface for looking up pickup schedules.
package mini

import (
	"context"
	"io"
	"os"

	"github.com/tonneli-cli/tonneli/nav"
	"github.com/tonneli-cli/tonneli/service"
	"github.com/tonneli-cli/tonneli/util"
)

var (
	truncateAt = 100
)

type Options struct {
	// City skips the city prompt.
	City string
}

type mini struct {
	machine *nav.Machine
	service *service.Service
	prompt  prompter
	out     io.Writer

	// searched is true once the current query has results to choose from.
	searched bool
}

func newMini(svc *service.Service, prompt prompter, out io.Writer) *mini {
	return &mini{
		machine: nav.New(svc.Cities()),
		service: svc,
		prompt:  prompt,
		out:     out,
	}
}

// Run starts the prompt loop on the terminal.
func Run(svc *service.Service, options *Options) error {
	if w, _, err := util.TerminalSize(); err == nil {
		truncateAt = w
	}

	return run(context.Background(), newMini(svc, surveyPrompter{}, os.Stdout), options)
}

func run(ctx context.Context, m *mini, options *Options) error {
	if options.City != "" {
		city, err := m.service.City(options.City)
		if err != nil {
			return err
		}
		m.machine.Dispatch(nav.EnterCity{City: city})
	}

	for !m.machine.Done() {
		if err := m.handleState(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (m *mini) handleState(ctx context.Context) error {
	if m.machine.Overlay() == nav.Error {
		m.fail(m.machine.ErrorMessage())
		m.machine.Dispatch(nav.Dismiss{})
		return nil
	}

	switch m.machine.Screen() {
	case nav.CitySelect:
		return m.handleCitySelect()
	case nav.AddressSearch:
		if !m.searched {
			return m.handleAddressSearch(ctx)
		}
		return m.handleAddressSelect(ctx)
	case nav.ScheduleView:
		return m.handleSchedule(ctx)
	}

	return nil
}

// execute runs the request synchronously and applies its result.
func (m *mini) execute(ctx context.Context, request *nav.Request) {
	if request == nil {
		return
	}

	erase := m.progress(request)
	result := nav.Result{Seq: request.Seq, Kind: request.Kind}

	switch request.Kind {
	case nav.SearchRequest:
		result.Addresses, result.Err = m.service.Search(ctx, request.City.ID, request.Query)
	case nav.ScheduleRequest:
		result.Events, result.Err = m.service.Schedule(ctx, request.City.ID, request.Ref)
	}

	erase()
	m.machine.Apply(result)
}
