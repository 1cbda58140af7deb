package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tonneli-cli/tonneli/nav"
	"github.com/tonneli-cli/tonneli/service"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// City opens the address search of this city ID directly.
	City string
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(svc *service.Service, options *Options) error {
	bubble := newBubble(svc, options)

	if options.City != "" {
		city, err := svc.City(options.City)
		if err != nil {
			return err
		}
		bubble.dispatch(nav.EnterCity{City: city})
	}

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	bubble.stop()
	return err
}

func (b *statefulBubble) Init() tea.Cmd {
	return textinput.Blink
}
