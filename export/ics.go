package export

import (
	"fmt"
	"io"
	"strings"

	ics "github.com/arran4/golang-ical"
	"github.com/tonneli-cli/tonneli/constant"
	"github.com/tonneli-cli/tonneli/schedule"
)

const (
	icsProductID = "-//" + constant.Tonneli + "//Pickup Calendar//EN"
	icsDate      = "20060102"
)

// writeICS renders all-day events. UIDs are stable across exports so calendar imports update in place.
func writeICS(w io.Writer, doc *Document) error {
	cal := ics.NewCalendarFor(constant.Tonneli)
	cal.SetProductId(icsProductID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName("Pickups " + doc.Address.Display())

	location := fmt.Sprintf("%s, %s", doc.Address.Display(), doc.City)
	stamp := doc.Generated.UTC()
	seen := make(map[string]int)

	for _, e := range doc.Events {
		event := cal.AddEvent(eventUID(doc, e, seen))
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(e.Date)
		event.SetAllDayEndAt(e.Date.AddDate(0, 0, 1))
		event.SetSummary(e.Display())
		if e.Note != "" {
			event.SetDescription(e.Note)
		}
		event.SetLocation(location)
		event.SetTimeTransparency(ics.TransparencyTransparent)
	}

	return cal.SerializeTo(w, ics.WithNewLineWindows)
}

// eventUID identifies a pickup by day, type, provider label, city and address.
// Pickups that still collide are numbered in document order.
func eventUID(doc *Document, e schedule.PickupEvent, seen map[string]int) string {
	parts := []string{e.Date.Format(icsDate), e.Type.String()}
	if label := uidPart(strings.ToLower(e.Label)); label != "" {
		parts = append(parts, label)
	}
	parts = append(parts, doc.City.ID, uidPart(e.Ref))

	id := strings.Join(parts, "-")
	seen[id]++
	if n := seen[id]; n > 1 {
		id = fmt.Sprintf("%s-%d", id, n)
	}

	return id + "@" + constant.Tonneli
}

func uidPart(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, s)
}
