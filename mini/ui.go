package mini

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/tonneli-cli/tonneli/color"
	"github.com/tonneli-cli/tonneli/icon"
	"github.com/tonneli-cli/tonneli/nav"
	"github.com/tonneli-cli/tonneli/style"
)

func (m *mini) title(t string) {
	_, _ = fmt.Fprintln(m.out, style.Fg(color.Purple)(style.Bold(t)))
}

func (m *mini) fail(t string) {
	_, _ = fmt.Fprintln(m.out, style.Fg(color.Red)(icon.Get(icon.Fail)+" "+t))
}

func (m *mini) progress(request *nav.Request) (erase func()) {
	msg := icon.Get(icon.Progress) + " Loading pickup schedule.."
	if request.Kind == nav.SearchRequest {
		msg = icon.Get(icon.Search) + " Searching addresses.."
	}

	_, _ = fmt.Fprintf(m.out, "\r%s", msg)
	return func() {
		_, _ = fmt.Fprintf(m.out, "\r%s\r", strings.Repeat(" ", len(msg)))
	}
}

// interrupted ends the session on ctrl+c and passes other prompt errors through.
func (m *mini) interrupted(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		m.machine.Dispatch(nav.Quit{})
		return nil
	}
	return err
}

func truncate(s string) string {
	if len([]rune(s)) <= truncateAt {
		return s
	}
	return string([]rune(s)[:truncateAt-1]) + "…"
}
