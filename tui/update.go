package tui

import (
	"strings"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/tonneli-cli/tonneli/internal/ui"
	"github.com/tonneli-cli/tonneli/log"
	"github.com/tonneli-cli/tonneli/nav"
	"github.com/tonneli-cli/tonneli/query"
	"github.com/tonneli-cli/tonneli/util"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, cmd
	case spinner.TickMsg:
		if b.machine.Overlay() != nav.Loading {
			return b, cmd
		}
		var tick tea.Cmd
		b.spinnerC, tick = b.spinnerC.Update(msg)
		return b, tea.Batch(cmd, tick)
	case resultMsg:
		return b, tea.Batch(cmd, b.onResult(msg))
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			return b, b.dispatch(nav.Quit{})
		case b.machine.Overlay() != nav.NoOverlay && bubblesKey.Matches(msg, b.keymap.dismiss):
			return b, b.dispatch(nav.Dismiss{})
		}

		switch b.machine.Screen() {
		case nav.CitySelect:
			return b, tea.Batch(cmd, b.updateCitySelect(msg))
		case nav.AddressSearch:
			return b, tea.Batch(cmd, b.updateAddressSearch(msg))
		case nav.ScheduleView:
			return b, tea.Batch(cmd, b.updateScheduleView(msg))
		}
	}

	if b.machine.Screen() == nav.AddressSearch {
		var inputCmd tea.Cmd
		b.inputC, inputCmd = b.inputC.Update(msg)
		cmd = tea.Batch(cmd, inputCmd)
	}

	return b, cmd
}

func (b *statefulBubble) onResult(msg resultMsg) tea.Cmd {
	if !b.machine.Apply(msg.result) {
		log.Debugf("dropping stale result %d", msg.result.Seq)
		return nil
	}

	b.cancel = nil
	b.sync()

	if msg.result.Err != nil {
		return nil
	}

	switch msg.request.Kind {
	case nav.SearchRequest:
		b.submitted = msg.request.Query
		b.searchSuggestion = mo.None[string]()

		city, q := msg.request.City.ID, msg.request.Query
		remember := func() tea.Msg {
			if err := query.Remember(city, q, 1); err != nil {
				log.Error(err)
			}
			return nil
		}

		if len(msg.result.Addresses) == 0 {
			return tea.Batch(remember, ui.Notify("No addresses found"))
		}
		return tea.Batch(remember, ui.Notify(util.Quantify(len(msg.result.Addresses), "address", "addresses")))
	case nav.ScheduleRequest:
		return ui.Notify(util.Quantify(len(msg.result.Events), "pickup", "pickups"))
	}

	return nil
}

func (b *statefulBubble) updateCitySelect(msg tea.KeyMsg) tea.Cmd {
	switch {
	case bubblesKey.Matches(msg, b.keymap.up):
		return b.dispatch(nav.MoveCity{Delta: -1})
	case bubblesKey.Matches(msg, b.keymap.down):
		return b.dispatch(nav.MoveCity{Delta: 1})
	case bubblesKey.Matches(msg, b.keymap.confirm):
		return b.dispatch(nav.SelectCity{})
	case bubblesKey.Matches(msg, b.keymap.quit):
		return b.dispatch(nav.Quit{})
	}
	return nil
}

func (b *statefulBubble) updateAddressSearch(msg tea.KeyMsg) tea.Cmd {
	search := b.machine.Search()

	switch {
	case bubblesKey.Matches(msg, b.keymap.open):
		if len(search.Results) > 0 && strings.TrimSpace(b.inputC.Value()) == b.submitted {
			return b.dispatch(nav.OpenSelected{})
		}
		return b.dispatch(nav.Submit{})
	case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion) && b.searchSuggestion.IsPresent():
		b.inputC.SetValue(b.searchSuggestion.MustGet())
		b.inputC.CursorEnd()
		b.searchSuggestion = mo.None[string]()
		return b.dispatch(nav.EditQuery{Text: b.inputC.Value()})
	case bubblesKey.Matches(msg, b.keymap.resultUp):
		return b.dispatch(nav.MoveSelection{Delta: -1})
	case bubblesKey.Matches(msg, b.keymap.resultDown):
		return b.dispatch(nav.MoveSelection{Delta: 1})
	case bubblesKey.Matches(msg, b.keymap.escape):
		b.searchSuggestion = mo.None[string]()
		return b.dispatch(nav.Back{})
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)

	value := b.inputC.Value()
	if value == search.Query && b.machine.Overlay() != nav.Error {
		return cmd
	}

	b.suggest(value)
	return tea.Batch(cmd, b.dispatch(nav.EditQuery{Text: value}))
}

func (b *statefulBubble) suggest(value string) {
	if strings.TrimSpace(value) == "" {
		b.searchSuggestion = mo.None[string]()
		return
	}

	if suggestion, ok := query.Suggest(b.machine.City().ID, value).Get(); ok && suggestion != strings.ToLower(value) {
		b.searchSuggestion = mo.Some(suggestion)
	} else {
		b.searchSuggestion = mo.None[string]()
	}
}

func (b *statefulBubble) updateScheduleView(msg tea.KeyMsg) tea.Cmd {
	switch {
	case bubblesKey.Matches(msg, b.keymap.up):
		return b.dispatch(nav.MoveSelection{Delta: -1})
	case bubblesKey.Matches(msg, b.keymap.down):
		return b.dispatch(nav.MoveSelection{Delta: 1})
	case bubblesKey.Matches(msg, b.keymap.refresh):
		return b.dispatch(nav.Refresh{})
	case bubblesKey.Matches(msg, b.keymap.back):
		return b.dispatch(nav.Back{})
	case bubblesKey.Matches(msg, b.keymap.quit):
		return b.dispatch(nav.Quit{})
	}
	return nil
}
