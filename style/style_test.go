package style

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tonneli-cli/tonneli/schedule"
)

func TestWaste(t *testing.T) {
	Convey("Given the bin palette", t, func() {
		Convey("Every known waste type has a bin colour", func() {
			for _, typ := range schedule.WasteTypes() {
				if typ == schedule.Other {
					continue
				}
				_, ok := binColors[typ]
				So(ok, ShouldBeTrue)
			}
		})

		Convey("Other is rendered unchanged", func() {
			So(Waste(schedule.Other)("Christmas trees"), ShouldEqual, "Christmas trees")
		})

		Convey("Rendering keeps the text", func() {
			So(Waste(schedule.Paper)("Paper"), ShouldContainSubstring, "Paper")
		})
	})
}
