package schedule

import (
	"encoding/json"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNormalizeWasteType(t *testing.T) {
	Convey("NormalizeWasteType", t, func() {
		Convey("Should map german and colour names", func() {
			So(NormalizeWasteType("Restmüll"), ShouldEqual, Residual)
			So(NormalizeWasteType("grey"), ShouldEqual, Residual)
			So(NormalizeWasteType("Biotonne"), ShouldEqual, Organic)
			So(NormalizeWasteType("brown"), ShouldEqual, Organic)
			So(NormalizeWasteType("Papier / Pappe"), ShouldEqual, Paper)
			So(NormalizeWasteType("BLUE"), ShouldEqual, Paper)
			So(NormalizeWasteType("Gelber Sack"), ShouldEqual, Packaging)
			So(NormalizeWasteType("wertstoff"), ShouldEqual, Packaging)
			So(NormalizeWasteType("Altglas"), ShouldEqual, Glass)
			So(NormalizeWasteType("Schrott"), ShouldEqual, Metal)
			So(NormalizeWasteType("Sperrmüll"), ShouldEqual, Bulky)
		})

		Convey("Should accept its own keys", func() {
			for _, typ := range WasteTypes() {
				So(NormalizeWasteType(typ.String()), ShouldEqual, typ)
			}
		})

		Convey("Should fall back to other", func() {
			So(NormalizeWasteType("Weihnachtsbaum"), ShouldEqual, Other)
			So(NormalizeWasteType(""), ShouldEqual, Other)
			So(NormalizeWasteType("   "), ShouldEqual, Other)
		})

		Convey("Should encode as its key", func() {
			data, err := json.Marshal(Organic)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `"organic"`)

			var typ WasteType
			So(json.Unmarshal([]byte(`"Papier"`), &typ), ShouldBeNil)
			So(typ, ShouldEqual, Paper)
		})
	})
}

func TestWindow(t *testing.T) {
	Convey("Given today is 2026-10-19", t, func() {
		today := day("2026-10-19").Add(15 * time.Hour)

		Convey("A window without look-back starts today", func() {
			w := Window(today, 0, 60)
			So(w.Start.Equal(day("2026-10-19")), ShouldBeTrue)
			So(w.End.Equal(day("2026-12-18")), ShouldBeTrue)
			So(w.Contains(day("2026-10-18")), ShouldBeFalse)
			So(w.Contains(day("2026-10-19").Add(23*time.Hour)), ShouldBeTrue)
			So(w.Contains(day("2026-12-18")), ShouldBeTrue)
			So(w.Contains(day("2026-12-19")), ShouldBeFalse)
		})

		Convey("A look-back window includes recent days", func() {
			w := Window(today, 2, 0)
			So(w.Contains(day("2026-10-17")), ShouldBeTrue)
			So(w.Contains(day("2026-10-16")), ShouldBeFalse)
		})

		Convey("Years spans year boundaries", func() {
			w := Window(day("2026-12-20"), 0, 30)
			So(w.Years(), ShouldResemble, []int{2026, 2027})
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("Given unsorted events around today", t, func() {
		window := Window(day("2026-10-19"), 0, 60)
		events := []PickupEvent{
			{Date: day("2026-11-02"), Type: Paper},
			{Date: day("2026-10-18"), Type: Residual},
			{Date: day("2026-10-20"), Type: Organic},
			{Date: day("2026-10-20"), Type: Residual},
			{Date: day("2027-03-01"), Type: Glass},
		}

		Convey("Normalize drops past and out of range events and sorts the rest", func() {
			got := Normalize(events, "ref-1", window)
			So(got, ShouldHaveLength, 3)
			So(got[0].Type, ShouldEqual, Residual)
			So(got[1].Type, ShouldEqual, Organic)
			So(got[2].Type, ShouldEqual, Paper)

			for i, e := range got {
				So(e.Ref, ShouldEqual, "ref-1")
				So(e.Date.Before(window.Start), ShouldBeFalse)
				if i > 0 {
					So(e.Date.Before(got[i-1].Date), ShouldBeFalse)
				}
			}
		})
	})
}

func TestParseQuery(t *testing.T) {
	Convey("ParseQuery", t, func() {
		So(ParseQuery("Marktplatz 1"), ShouldResemble, Query{Street: "Marktplatz", Number: "1"})
		So(ParseQuery("  Am   Weiher 12a "), ShouldResemble, Query{Street: "Am Weiher", Number: "12a"})
		So(ParseQuery("Hauptstraße"), ShouldResemble, Query{Street: "Hauptstraße"})
		So(ParseQuery("17"), ShouldResemble, Query{Street: "17"})
		So(ParseQuery("").IsEmpty(), ShouldBeTrue)
	})
}

func TestAddressDisplay(t *testing.T) {
	Convey("Address.Display", t, func() {
		So(Address{Label: "Marktplatz 1"}.Display(), ShouldEqual, "Marktplatz 1")
		So(Address{Street: "Marktplatz", Number: "1", Suffix: "a"}.Display(), ShouldEqual, "Marktplatz 1a")
	})
}

func TestRelativeDay(t *testing.T) {
	Convey("RelativeDay", t, func() {
		today := day("2026-10-19").Add(20 * time.Hour)
		So(RelativeDay(day("2026-10-19"), today), ShouldEqual, "today")
		So(RelativeDay(day("2026-10-20"), today), ShouldEqual, "tomorrow")
		So(RelativeDay(day("2026-10-26"), today), ShouldEqual, "in 7 days")
		So(RelativeDay(day("2026-10-18"), today), ShouldEqual, "yesterday")
		So(RelativeDay(day("2026-10-16"), today), ShouldEqual, "3 days ago")
	})
}
