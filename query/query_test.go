package query

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/tonneli-cli/tonneli/filesystem"
	"github.com/tonneli-cli/tonneli/key"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given remembered searches", t, func() {
		So(Remember("cologne", "Marktplatz 1", 1), ShouldBeNil)
		So(Remember("cologne", "mauritiuswall", 10), ShouldBeNil)
		So(Remember("aachen", "markt 3", 5), ShouldBeNil)

		Convey("Then suggestions are sorted by rank", func() {
			s := SuggestMany("cologne", "ma")
			So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
			So(s[0], ShouldEqual, "mauritiuswall")
		})

		Convey("Then suggestions are scoped to the city", func() {
			So(SuggestMany("aachen", "mauritius"), ShouldBeEmpty)
			So(Suggest("aachen", "mar").OrEmpty(), ShouldEqual, "markt 3")
		})

		Convey("Then a new remember is visible immediately", func() {
			So(SuggestMany("nuremberg", "haupt"), ShouldBeEmpty)
			So(Remember("nuremberg", "Hauptmarkt", 1), ShouldBeNil)
			So(SuggestMany("nuremberg", "haupt"), ShouldResemble, []string{"hauptmarkt"})
		})

		Convey("Then nothing is suggested when disabled", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			defer viper.Set(key.SearchShowQuerySuggestions, true)
			So(Suggest("cologne", "ma").IsAbsent(), ShouldBeTrue)
		})

		Convey("It sanitizes input", func() {
			So(sanitize("  Marktplatz   1  "), ShouldEqual, "marktplatz 1")
		})

		Convey("It ignores blank queries", func() {
			So(Remember("cologne", "   ", 1), ShouldBeNil)
			So(SuggestMany("cologne", ""), ShouldNotContain, "")
		})
	})
}
