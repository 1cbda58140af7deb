// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/tonneli-cli/tonneli/constant"
	"github.com/tonneli-cli/tonneli/internal/ui"
	"github.com/tonneli-cli/tonneli/key"
	"github.com/tonneli-cli/tonneli/nav"
	"github.com/tonneli-cli/tonneli/service"
	"github.com/tonneli-cli/tonneli/style"
	"github.com/tonneli-cli/tonneli/util"
)

// statefulBubble owns the navigation machine and turns its requests into service calls.
type statefulBubble struct {
	machine *nav.Machine
	service *service.Service

	keymap *statefulKeymap

	// components
	spinnerC spinner.Model
	inputC   textinput.Model
	helpC    help.Model

	// submitted is the query of the results currently listed.
	submitted        string
	searchSuggestion mo.Option[string]
	cancel           context.CancelFunc
	now              func() time.Time

	width, height int
	notifier      *ui.Model

	options *Options
}

func newBubble(svc *service.Service, options *Options) *statefulBubble {
	bubble := statefulBubble{
		machine:  nav.New(svc.Cities()),
		service:  svc,
		keymap:   newStatefulKeymap(),
		notifier: &ui.Model{},
		now:      time.Now,
		options:  options,
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Street and house number (v%s)", constant.Version)
	bubble.inputC.CharLimit = 80
	bubble.inputC.Prompt = viper.GetString(key.TUISearchPromptString)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y
	b.inputC.Width = b.width - len(b.inputC.Prompt) - 1
	b.helpC.Width = b.width
}

// dispatch feeds an action into the machine and starts the request it issued.
func (b *statefulBubble) dispatch(a nav.Action) tea.Cmd {
	request := b.machine.Dispatch(a)
	b.sync()

	if b.machine.Done() {
		b.stop()
		return tea.Quit
	}

	if request == nil {
		if b.machine.Pending() == nil {
			b.stop()
		}
		return nil
	}

	return tea.Batch(b.execute(*request), b.spinnerC.Tick)
}

// sync aligns the components with the machine after a transition.
func (b *statefulBubble) sync() {
	b.keymap.setState(b.machine.Screen(), b.machine.Overlay())

	if b.machine.Screen() != nav.AddressSearch {
		b.inputC.Blur()
		return
	}

	if query := b.machine.Search().Query; b.inputC.Value() != query {
		b.inputC.SetValue(query)
		b.inputC.CursorEnd()
	}
	if len(b.machine.Search().Results) == 0 {
		b.submitted = ""
	}
	b.inputC.Focus()
}

// stop cancels the service call in flight.
func (b *statefulBubble) stop() {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}
