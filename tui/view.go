package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
	"github.com/tonneli-cli/tonneli/color"
	"github.com/tonneli-cli/tonneli/icon"
	"github.com/tonneli-cli/tonneli/key"
	"github.com/tonneli-cli/tonneli/nav"
	"github.com/tonneli-cli/tonneli/schedule"
	"github.com/tonneli-cli/tonneli/style"
	"github.com/tonneli-cli/tonneli/util"
)

var (
	paddingStyle  = lipgloss.NewStyle().Padding(1, 2)
	selectedStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
	normalStyle = lipgloss.NewStyle().Padding(0, 0, 0, 2)
)

func (b *statefulBubble) View() string {
	var output string

	if b.machine.Overlay() == nav.Error {
		output = b.viewError()
	} else {
		switch b.machine.Screen() {
		case nav.CitySelect:
			output = b.viewCities()
		case nav.AddressSearch:
			output = b.viewSearch()
		case nav.ScheduleView:
			output = b.viewSchedule()
		case nav.Exit:
			return ""
		default:
			output = "Unknown screen"
		}
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewCities() string {
	cities := b.machine.Cities()
	lines := []string{
		style.Title("Cities"),
		"",
	}

	if len(cities) == 0 {
		lines = append(lines, style.Faint("No cities available"))
		return b.renderLines(true, lines)
	}

	from, to := b.page(b.machine.CityIndex(), len(cities), len(lines))
	for i := from; i < to; i++ {
		city := cities[i]
		line := fmt.Sprintf("%s %s", city.Name, style.Faint(city.ID))
		lines = append(lines, item(line, i == b.machine.CityIndex()))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewSearch() string {
	search := b.machine.Search()
	lines := []string{
		style.Title("Search in " + b.machine.City().String()),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok {
		lines = append(lines, style.Faint(fmt.Sprintf("%s %s (tab)", icon.Get(icon.Search), suggestion)))
	} else {
		lines = append(lines, "")
	}

	lines = append(lines, b.viewLoading()...)
	lines = append(lines, "")

	switch {
	case len(search.Results) > 0:
		from, to := b.page(search.Selected, len(search.Results), len(lines))
		for i := from; i < to; i++ {
			line := icon.Get(icon.Home) + " " + search.Results[i].Display()
			lines = append(lines, item(line, i == search.Selected))
		}
	case b.submitted != "":
		lines = append(lines, style.Faint("No addresses found"))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewSchedule() string {
	view := b.machine.View()
	lines := []string{
		style.Title(b.machine.City().String()),
		"",
		style.Bold(icon.Get(icon.Home) + " " + view.Address.Display()),
	}
	lines = append(lines, b.viewLoading()...)
	lines = append(lines, "")

	if len(view.Events) == 0 {
		lines = append(lines, style.Faint("No pickups scheduled"))
		return b.renderLines(true, lines)
	}

	rows := b.scheduleRows(view.Events)[view.Offset:]
	if size := b.height - len(lines) - 2; size > 0 && size < len(rows) {
		rows = rows[:size]
	}
	lines = append(lines, rows...)

	return b.renderLines(true, lines)
}

func (b *statefulBubble) scheduleRows(events []schedule.PickupEvent) []string {
	today := b.now()
	layout := viper.GetString(key.TUIDateFormat)
	if layout == "" {
		layout = schedule.DateLayout
	}

	relativeWidth := 0
	for _, e := range events {
		relativeWidth = util.Max(relativeWidth, len(schedule.RelativeDay(e.Date, today)))
	}

	rows := make([]string, len(events))
	for i, e := range events {
		relative := schedule.RelativeDay(e.Date, today)
		date := fmt.Sprintf("%s %s", e.Date.Format(layout), e.Date.Format("Mon"))
		if relative == "today" || relative == "tomorrow" {
			date = style.Fg(style.SoonColor)(date)
		}

		fraction := style.Waste(e.Type)(e.Display())
		if e.Note != "" {
			fraction += " " + style.Faint("("+e.Note+")")
		}

		prefix := "  "
		if relative == "today" {
			prefix = icon.Get(icon.Today) + " "
		}

		rows[i] = fmt.Sprintf("%s%s  %-*s  %s", prefix, date, relativeWidth, relative, fraction)
	}

	return rows
}

// viewLoading is the loading overlay line, empty when idle.
func (b *statefulBubble) viewLoading() []string {
	pending := b.machine.Pending()
	if b.machine.Overlay() != nav.Loading || pending == nil {
		return []string{""}
	}

	status := "Loading pickup schedule..."
	if pending.Kind == nav.SearchRequest {
		status = fmt.Sprintf("Searching for %s...", pending.Query)
	}

	return []string{style.Truncate(b.width)(b.spinnerC.View() + " " + status)}
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(color.Red).Bold(true)
	errorMsg := wrap.String(errorStyle.Render(b.machine.ErrorMessage()), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

// page returns the window of n rows around cursor that fits below used lines.
func (b *statefulBubble) page(cursor, n, used int) (from, to int) {
	size := b.height - used - 2
	if size <= 0 || size >= n {
		return 0, n
	}

	from = util.Max(0, cursor-size+1)
	return from, util.Min(n, from+size)
}

func item(line string, selected bool) string {
	if selected {
		return selectedStyle.Render(line)
	}
	return normalStyle.Render(line)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
