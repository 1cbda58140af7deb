package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tonneli-cli/tonneli/color"
	"github.com/tonneli-cli/tonneli/schedule"
)

var (
	Mauve = lipgloss.Color("#cba6f7")
	Peach = lipgloss.Color("#fab387")

	AccentColor = Mauve
	SoonColor   = Peach
)

// binColors follow the bin colours used by German municipalities.
var binColors = map[schedule.WasteType]lipgloss.Color{
	schedule.Residual:  color.Gray,
	schedule.Organic:   color.New("#a0522d"),
	schedule.Paper:     color.Blue,
	schedule.Packaging: color.Yellow,
	schedule.Glass:     color.Green,
	schedule.Metal:     color.Cyan,
	schedule.Bulky:     color.Orange,
	schedule.Hazardous: color.Red,
}

// Waste renders s in the bin colour of t. Other is left uncoloured.
func Waste(t schedule.WasteType) func(string) string {
	c, ok := binColors[t]
	if !ok {
		return func(s string) string { return s }
	}
	return Fg(c)
}
