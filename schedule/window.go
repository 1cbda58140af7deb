package schedule

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// DateLayout is the wire layout of a calendar day.
const DateLayout = "2006-01-02"

// Day truncates t to midnight of its calendar day in t's location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Window returns the range from today minus lookBack days to today plus horizon days.
func Window(today time.Time, lookBack, horizon int) DateRange {
	today = Day(today)
	if lookBack < 0 {
		lookBack = 0
	}
	if horizon < 0 {
		horizon = 0
	}
	return DateRange{
		Start: today.AddDate(0, 0, -lookBack),
		End:   today.AddDate(0, 0, horizon),
	}
}

// Contains reports whether the calendar day of t lies within the range.
func (r DateRange) Contains(t time.Time) bool {
	day := Day(t)
	return !day.Before(Day(r.Start)) && !day.After(Day(r.End))
}

// Years returns every calendar year touched by the range, ascending.
func (r DateRange) Years() []int {
	var years []int
	for y := r.Start.Year(); y <= r.End.Year(); y++ {
		years = append(years, y)
	}
	return years
}

// Normalize keeps the events inside window, stamps them with ref and sorts them ascending by date.
// Events on the same day are ordered by waste type, then label.
func Normalize(events []PickupEvent, ref string, window DateRange) []PickupEvent {
	kept := make([]PickupEvent, 0, len(events))
	for _, e := range events {
		if !window.Contains(e.Date) {
			continue
		}
		e.Date = Day(e.Date)
		e.Ref = ref
		kept = append(kept, e)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.Label < b.Label
	})

	return kept
}

// RelativeDay describes date relative to today: "today", "tomorrow", "in N days", "yesterday" or "N days ago".
func RelativeDay(date, today time.Time) string {
	a, b := Day(date), Day(today)
	days := int(math.Round(a.Sub(b).Hours() / 24))
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days < 0:
		return fmt.Sprintf("%d days ago", -days)
	default:
		return fmt.Sprintf("in %d days", days)
	}
}
