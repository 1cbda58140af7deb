package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/tonneli-cli/tonneli/color"
	"github.com/tonneli-cli/tonneli/nav"
	"github.com/tonneli-cli/tonneli/style"
)

// statefulKeymap defines the keyboard interactions available on each screen.
type statefulKeymap struct {
	screen  nav.Screen
	overlay nav.Overlay

	quit, forceQuit,
	confirm, open,
	acceptSearchSuggestion,
	refresh,
	back, escape, dismiss,
	up, down,
	resultUp, resultDown,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(screen nav.Screen, overlay nav.Overlay) {
	k.screen = screen
	k.overlay = overlay
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("search / open")),
		),
		acceptSearchSuggestion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "accept search suggestion"),
		),
		refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		back: key.NewBinding(
			key.WithKeys("esc", "left", "b"),
			key.WithHelp("esc", "back"),
		),
		// letter keys belong to the search input
		escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		resultUp: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous"),
		),
		resultDown: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.overlay {
	case nav.Loading:
		return to2(h(withDescription(k.dismiss, "cancel"), k.forceQuit))
	case nav.Error:
		return to2(h(k.dismiss, k.forceQuit))
	}

	switch k.screen {
	case nav.CitySelect:
		return h(k.confirm, k.quit), h(k.up, k.down, k.confirm, k.quit, k.forceQuit)
	case nav.AddressSearch:
		return h(k.open, k.acceptSearchSuggestion, k.escape), h(k.open, k.resultUp, k.resultDown, k.acceptSearchSuggestion, k.escape, k.forceQuit)
	case nav.ScheduleView:
		return h(k.refresh, k.back, k.quit), h(k.up, k.down, k.refresh, k.back, k.quit)
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func withDescription(k key.Binding, description string) key.Binding {
	return key.NewBinding(
		key.WithKeys(k.Keys()...),
		key.WithHelp(k.Help().Key, description),
	)
}
