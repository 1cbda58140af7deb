package mini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/tonneli-cli/tonneli/export"
	"github.com/tonneli-cli/tonneli/log"
	"github.com/tonneli-cli/tonneli/nav"
	"github.com/tonneli-cli/tonneli/query"
	"github.com/tonneli-cli/tonneli/schedule"
)

const (
	optionSearchAgain = "Search again"
	optionRefresh     = "Refresh"
	optionBack        = "Back to results"
	optionChangeCity  = "Change city"
	optionQuit        = "Quit"
)

func (m *mini) handleCitySelect() error {
	cities := m.machine.Cities()
	options := lo.Map(cities, func(c schedule.City, _ int) string {
		return c.String()
	})

	m.title("Select City")
	i, err := m.prompt.Select("City", append(options, optionQuit))
	if err != nil {
		return m.interrupted(err)
	}

	if i >= len(cities) {
		m.machine.Dispatch(nav.Quit{})
		return nil
	}

	m.searched = false
	m.machine.Dispatch(nav.EnterCity{City: cities[i]})
	return nil
}

func (m *mini) handleAddressSearch(ctx context.Context) error {
	city := m.machine.City()

	m.title(fmt.Sprintf("Search in %s", city))
	in, err := m.prompt.Input("Street and house number", func(s string) []string {
		return query.SuggestMany(city.ID, s)
	})
	if err != nil {
		return m.interrupted(err)
	}

	if strings.TrimSpace(in) == "" {
		m.fail("Enter a street to search for")
		return nil
	}

	m.machine.Dispatch(nav.EditQuery{Text: in})
	m.execute(ctx, m.machine.Dispatch(nav.Submit{}))

	if m.machine.Overlay() == nav.Error {
		return nil
	}

	if len(m.machine.Search().Results) == 0 {
		m.fail("No addresses found")
		return nil
	}

	if err := query.Remember(city.ID, in, 1); err != nil {
		log.Error(err)
	}

	m.searched = true
	return nil
}

func (m *mini) handleAddressSelect(ctx context.Context) error {
	search := m.machine.Search()
	options := lo.Map(search.Results, func(a schedule.Address, _ int) string {
		return truncate(a.Display())
	})
	options = append(options, optionSearchAgain, optionChangeCity, optionQuit)

	m.title("Addresses >>")
	i, err := m.prompt.Select(fmt.Sprintf("Results for %q", search.Query), options)
	if err != nil {
		return m.interrupted(err)
	}

	if i < len(search.Results) {
		m.machine.Dispatch(nav.MoveSelection{Delta: i - search.Selected})
		m.execute(ctx, m.machine.Dispatch(nav.OpenSelected{}))
		return nil
	}

	switch options[i] {
	case optionSearchAgain:
		m.searched = false
	case optionChangeCity:
		m.searched = false
		m.machine.Dispatch(nav.Back{})
	case optionQuit:
		m.machine.Dispatch(nav.Quit{})
	}

	return nil
}

func (m *mini) handleSchedule(ctx context.Context) error {
	view := m.machine.View()

	err := export.Write(m.out, export.Text, &export.Document{
		City:      m.machine.City(),
		Address:   view.Address,
		Window:    m.service.Window(),
		Generated: time.Now(),
		Events:    view.Events,
	})
	if err != nil {
		return err
	}

	options := []string{optionRefresh, optionBack, optionChangeCity, optionQuit}
	i, err := m.prompt.Select("Next", options)
	if err != nil {
		return m.interrupted(err)
	}

	switch options[i] {
	case optionRefresh:
		m.execute(ctx, m.machine.Dispatch(nav.Refresh{}))
	case optionBack:
		m.machine.Dispatch(nav.Back{})
	case optionChangeCity:
		m.searched = false
		m.machine.Dispatch(nav.Back{})
		m.machine.Dispatch(nav.Back{})
	case optionQuit:
		m.machine.Dispatch(nav.Quit{})
	}

	return nil
}
