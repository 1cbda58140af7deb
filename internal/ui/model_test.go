package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		m := &Model{}

		Convey("A note is shown and schedules its expiry", func() {
			cmd := m.Update(NoteMsg{Text: "3 pickups"})
			So(cmd, ShouldNotBeNil)
			So(m.Note(), ShouldEqual, "3 pickups")
			So(m.View("first\nlast"), ShouldStartWith, "first\nlast  ")
			So(m.View("first\nlast"), ShouldContainSubstring, "3 pickups")
		})

		Convey("Its own expiry clears it", func() {
			m.Update(NoteMsg{Text: "3 pickups"})
			m.Update(expireMsg{id: m.id})
			So(m.Note(), ShouldBeEmpty)
			So(m.View("screen"), ShouldEqual, "screen")
		})

		Convey("The expiry of an older note keeps the newer one", func() {
			m.Update(NoteMsg{Text: "first"})
			old := m.id
			m.Update(NoteMsg{Text: "second"})
			m.Update(expireMsg{id: old})
			So(m.Note(), ShouldEqual, "second")
		})

		Convey("Other messages are ignored", func() {
			So(m.Update("plain string"), ShouldBeNil)
			So(m.Note(), ShouldBeEmpty)
		})
	})
}
