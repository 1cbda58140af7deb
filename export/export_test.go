package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tonneli-cli/tonneli/schedule"
)

func day(s string) time.Time {
	t, _ := time.ParseInLocation(schedule.DateLayout, s, time.Local)
	return t
}

func document() *Document {
	return &Document{
		City:      schedule.City{ID: "cologne", Name: "Köln"},
		Address:   schedule.Address{Ref: "1234:1:", Label: "Marktplatz 1"},
		Window:    schedule.Window(day("2026-10-19"), 0, 60),
		Generated: day("2026-10-19").Add(8 * time.Hour),
		Events: []schedule.PickupEvent{
			{Date: day("2026-10-20"), Type: schedule.Residual, Label: "Restabfall", Ref: "1234:1:"},
			{Date: day("2026-10-23"), Type: schedule.Other, Label: "Weihnachtsbäume, Sammlung", Note: "bis 7 Uhr", Ref: "1234:1:"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	Convey("ParseFormat", t, func() {
		f, err := ParseFormat(" ICS ")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, ICS)
		So(f.Extension(), ShouldEqual, ".ics")

		_, err = ParseFormat("csv")
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "text, json, ics")
	})
}

func TestWrite(t *testing.T) {
	Convey("Given a schedule", t, func() {
		var buf bytes.Buffer
		doc := document()

		Convey("Text lists one row per pickup", func() {
			So(Write(&buf, Text, doc), ShouldBeNil)
			out := buf.String()
			So(out, ShouldStartWith, "Marktplatz 1, Köln\n")
			So(out, ShouldContainSubstring, "20.10.2026")
			So(out, ShouldContainSubstring, "tomorrow")
			So(out, ShouldContainSubstring, "Residual waste")
			So(out, ShouldContainSubstring, "Weihnachtsbäume, Sammlung (bis 7 Uhr)")
		})

		Convey("Text reports an empty schedule", func() {
			doc.Events = nil
			So(Write(&buf, Text, doc), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "No pickups scheduled")
		})

		Convey("JSON keeps waste types as names", func() {
			So(Write(&buf, JSON, doc), ShouldBeNil)

			var decoded Document
			So(json.Unmarshal(buf.Bytes(), &decoded), ShouldBeNil)
			So(decoded.City.ID, ShouldEqual, "cologne")
			So(decoded.Events, ShouldHaveLength, 2)
			So(decoded.Events[0].Type, ShouldEqual, schedule.Residual)
			So(buf.String(), ShouldContainSubstring, `"type": "residual"`)
		})

		Convey("JSON writes an empty list, not null", func() {
			doc.Events = nil
			So(Write(&buf, JSON, doc), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, `"events": []`)
		})

		Convey("ICS writes all-day events", func() {
			So(Write(&buf, ICS, doc), ShouldBeNil)
			out := buf.String()

			So(out, ShouldStartWith, "BEGIN:VCALENDAR\r\n")
			So(out, ShouldEndWith, "END:VCALENDAR\r\n")
			So(strings.Count(out, "BEGIN:VEVENT"), ShouldEqual, 2)
			So(out, ShouldContainSubstring, "DTSTART;VALUE=DATE:20261020\r\n")
			So(out, ShouldContainSubstring, "DTEND;VALUE=DATE:20261021\r\n")
			So(out, ShouldContainSubstring, "SUMMARY:Residual waste\r\n")
			So(out, ShouldContainSubstring, `SUMMARY:Weihnachtsbäume\, Sammlung`)
			So(out, ShouldContainSubstring, "UID:20261020-residual-restabfall-cologne-1234-1-@tonneli\r\n")
			So(out, ShouldContainSubstring, `LOCATION:Marktplatz 1\, Köln`)
		})

		Convey("ICS keeps distinct pickups of one day apart", func() {
			doc.Events = []schedule.PickupEvent{
				{Date: day("2026-10-20"), Type: schedule.Other, Label: "Weihnachtsbaum", Ref: "111"},
				{Date: day("2026-10-20"), Type: schedule.Other, Label: "Grünschnitt", Ref: "111"},
				{Date: day("2026-10-20"), Type: schedule.Other, Label: "Grünschnitt", Ref: "111"},
			}
			So(Write(&buf, ICS, doc), ShouldBeNil)

			var uids []string
			for _, line := range strings.Split(buf.String(), "\r\n") {
				if strings.HasPrefix(line, "UID:") {
					uids = append(uids, line)
				}
			}
			So(uids, ShouldHaveLength, 3)
			So(uids[0], ShouldNotEqual, uids[1])
			So(uids[1], ShouldNotEqual, uids[2])
			So(uids[2], ShouldEndWith, "-2@tonneli")
		})

		Convey("ICS folds long lines", func() {
			doc.Events[0].Note = strings.Repeat("x", 120)
			So(Write(&buf, ICS, doc), ShouldBeNil)
			for _, line := range strings.Split(buf.String(), "\r\n") {
				So(len(line), ShouldBeLessThanOrEqualTo, 75)
			}
		})

		Convey("An unknown format fails", func() {
			So(Write(&buf, Format("pdf"), doc), ShouldNotBeNil)
		})
	})
}

func TestSchema(t *testing.T) {
	Convey("Schema describes waste types as strings", t, func() {
		data, err := json.Marshal(Schema(&Document{}))
		So(err, ShouldBeNil)
		So(string(data), ShouldContainSubstring, `"residual"`)
		So(string(data), ShouldContainSubstring, `"events"`)
	})
}
