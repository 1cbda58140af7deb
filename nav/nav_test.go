package nav

import (
	"context"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tonneli-cli/tonneli/provider"
	"github.com/tonneli-cli/tonneli/schedule"
	"github.com/tonneli-cli/tonneli/service"
)

var (
	aachen  = schedule.City{ID: "aachen", Name: "Aachen"}
	cologne = schedule.City{ID: "cologne", Name: "Köln"}
)

var marktplatz = []schedule.Address{
	{Ref: "110", City: "aachen", Street: "Marktplatz", Number: "1", Label: "Marktplatz 1"},
	{Ref: "111", City: "aachen", Street: "Marktplatz", Number: "1a", Label: "Marktplatz 1a"},
}

var events = []schedule.PickupEvent{
	{Type: schedule.Residual, Ref: "111"},
	{Type: schedule.Paper, Ref: "111"},
}

func serviceErr(kind service.Kind, err error) error {
	return &service.Error{City: aachen, Kind: kind, Err: err}
}

// searched returns a machine on the Aachen search screen with the Marktplatz results loaded.
func searched() *Machine {
	m := New([]schedule.City{aachen})
	m.Dispatch(SelectCity{})
	m.Dispatch(EditQuery{Text: "Marktplatz 1"})
	req := m.Dispatch(Submit{})
	m.Apply(Result{Seq: req.Seq, Kind: SearchRequest, Addresses: marktplatz})
	return m
}

func TestCitySelect(t *testing.T) {
	Convey("Given the city select screen", t, func() {
		m := New([]schedule.City{aachen, cologne})
		So(m.Screen(), ShouldEqual, CitySelect)

		Convey("Moving should clamp to the list", func() {
			m.Dispatch(MoveCity{Delta: -1})
			So(m.CityIndex(), ShouldEqual, 0)
			m.Dispatch(MoveCity{Delta: 5})
			So(m.CityIndex(), ShouldEqual, 1)
		})

		Convey("Selecting should open an empty search without a request", func() {
			m.Dispatch(MoveCity{Delta: 1})
			req := m.Dispatch(SelectCity{})
			So(req, ShouldBeNil)
			So(m.Screen(), ShouldEqual, AddressSearch)
			So(m.City(), ShouldResemble, cologne)
			So(m.Search(), ShouldResemble, Search{})
		})

		Convey("Entering a city directly should move the cursor", func() {
			m.Dispatch(EnterCity{City: schedule.City{ID: "cologne"}})
			So(m.CityIndex(), ShouldEqual, 1)
			So(m.City().Name, ShouldEqual, "Köln")
		})

		Convey("Search actions should be ignored", func() {
			So(m.Dispatch(Submit{}), ShouldBeNil)
			So(m.Dispatch(OpenSelected{}), ShouldBeNil)
			So(m.Screen(), ShouldEqual, CitySelect)
		})
	})

	Convey("An empty city list should not be selectable", t, func() {
		m := New(nil)
		m.Dispatch(MoveCity{Delta: 1})
		m.Dispatch(SelectCity{})
		So(m.Screen(), ShouldEqual, CitySelect)
	})
}

func TestAddressSearch(t *testing.T) {
	Convey("Given only aachen is registered and selected", t, func() {
		m := New([]schedule.City{aachen})
		m.Dispatch(SelectCity{})

		Convey("Editing should not issue a request", func() {
			So(m.Dispatch(EditQuery{Text: "Marktplatz 1"}), ShouldBeNil)
			So(m.Search().Query, ShouldEqual, "Marktplatz 1")
			So(m.Overlay(), ShouldEqual, NoOverlay)
		})

		Convey("Submitting a blank query should do nothing", func() {
			m.Dispatch(EditQuery{Text: "  "})
			So(m.Dispatch(Submit{}), ShouldBeNil)
			So(m.Overlay(), ShouldEqual, NoOverlay)
		})

		Convey("Submitting should load", func() {
			m.Dispatch(EditQuery{Text: " Marktplatz 1 "})
			req := m.Dispatch(Submit{})
			So(req, ShouldNotBeNil)
			So(req.Kind, ShouldEqual, SearchRequest)
			So(req.City, ShouldResemble, aachen)
			So(req.Query, ShouldEqual, "Marktplatz 1")
			So(m.Overlay(), ShouldEqual, Loading)
			So(m.Pending().Seq, ShouldEqual, req.Seq)

			Convey("And two results should select the first", func() {
				So(m.Apply(Result{Seq: req.Seq, Kind: SearchRequest, Addresses: marktplatz}), ShouldBeTrue)
				So(m.Overlay(), ShouldEqual, NoOverlay)
				So(m.Search().Results, ShouldHaveLength, 2)
				So(m.Search().Selected, ShouldEqual, 0)
				So(m.Pending(), ShouldBeNil)
			})
		})

		Convey("Back should return to the cities and discard the search", func() {
			m.Dispatch(EditQuery{Text: "Marktplatz"})
			req := m.Dispatch(Submit{})
			m.Dispatch(Back{})
			So(m.Screen(), ShouldEqual, CitySelect)
			So(m.Overlay(), ShouldEqual, NoOverlay)

			Convey("And the late result should be dropped", func() {
				So(m.Apply(Result{Seq: req.Seq, Kind: SearchRequest, Addresses: marktplatz}), ShouldBeFalse)
				So(m.Search().Results, ShouldBeEmpty)
			})
		})
	})

	Convey("Given two results", t, func() {
		m := searched()

		Convey("Down should move to 1 and stop there", func() {
			m.Dispatch(MoveSelection{Delta: 1})
			So(m.Search().Selected, ShouldEqual, 1)
			m.Dispatch(MoveSelection{Delta: 1})
			So(m.Search().Selected, ShouldEqual, 1)
		})

		Convey("Up at 0 should stay at 0", func() {
			m.Dispatch(MoveSelection{Delta: -1})
			So(m.Search().Selected, ShouldEqual, 0)
		})

		Convey("A new search should reset the selection", func() {
			m.Dispatch(MoveSelection{Delta: 1})
			req := m.Dispatch(Submit{})
			m.Apply(Result{Seq: req.Seq, Kind: SearchRequest, Addresses: marktplatz[:1]})
			So(m.Search().Selected, ShouldEqual, 0)
			So(m.Search().Results, ShouldHaveLength, 1)
		})

		Convey("A failed search should keep the prior results", func() {
			req := m.Dispatch(Submit{})
			m.Apply(Result{Seq: req.Seq, Kind: SearchRequest, Err: serviceErr(service.NetworkFailure, provider.ErrNetwork)})
			So(m.Overlay(), ShouldEqual, Error)
			So(m.ErrorMessage(), ShouldStartWith, "Aachen: network failure")
			So(m.Search().Results, ShouldResemble, marktplatz)

			Convey("And the next action should clear the overlay", func() {
				m.Dispatch(MoveSelection{Delta: 1})
				So(m.Overlay(), ShouldEqual, NoOverlay)
				So(m.Search().Selected, ShouldEqual, 1)
			})

			Convey("And back should only clear the overlay", func() {
				m.Dispatch(Back{})
				So(m.Overlay(), ShouldEqual, NoOverlay)
				So(m.Screen(), ShouldEqual, AddressSearch)
			})
		})

		Convey("With no results, moving and opening should be no-ops", func() {
			req := m.Dispatch(Submit{})
			m.Apply(Result{Seq: req.Seq, Kind: SearchRequest})
			m.Dispatch(MoveSelection{Delta: 1})
			So(m.Search().Selected, ShouldEqual, 0)
			So(m.Dispatch(OpenSelected{}), ShouldBeNil)
		})
	})
}

func TestRapidSubmits(t *testing.T) {
	Convey("Given several submits in a row", t, func() {
		m := New([]schedule.City{aachen})
		m.Dispatch(SelectCity{})

		var requests []*Request
		for i := 1; i <= 5; i++ {
			m.Dispatch(EditQuery{Text: fmt.Sprintf("Marktplatz %d", i)})
			requests = append(requests, m.Dispatch(Submit{}))
		}

		Convey("Sequence numbers should increase", func() {
			for i := 1; i < len(requests); i++ {
				So(requests[i].Seq, ShouldBeGreaterThan, requests[i-1].Seq)
			}
		})

		Convey("Only the latest response should be applied, in any arrival order", func() {
			latest := requests[len(requests)-1]
			stale := []schedule.Address{{Ref: "stale", Label: "stale"}}

			So(m.Apply(Result{Seq: requests[3].Seq, Kind: SearchRequest, Addresses: stale}), ShouldBeFalse)
			So(m.Apply(Result{Seq: latest.Seq, Kind: SearchRequest, Addresses: marktplatz}), ShouldBeTrue)
			So(m.Apply(Result{Seq: requests[0].Seq, Kind: SearchRequest, Addresses: stale}), ShouldBeFalse)
			So(m.Apply(Result{Seq: latest.Seq, Kind: SearchRequest, Addresses: stale}), ShouldBeFalse)

			So(m.Search().Results, ShouldResemble, marktplatz)
		})

		Convey("A cancelled latest request should end without an error", func() {
			latest := requests[len(requests)-1]
			So(m.Apply(Result{Seq: latest.Seq, Kind: SearchRequest, Err: serviceErr(service.Cancelled, context.Canceled)}), ShouldBeTrue)
			So(m.Overlay(), ShouldEqual, NoOverlay)
			So(m.ErrorMessage(), ShouldBeEmpty)
		})
	})
}

func TestScheduleView(t *testing.T) {
	Convey("Given the schedule reached via address 1", t, func() {
		m := searched()
		m.Dispatch(MoveSelection{Delta: 1})
		req := m.Dispatch(OpenSelected{})
		So(req.Kind, ShouldEqual, ScheduleRequest)
		So(req.Ref, ShouldEqual, "111")
		So(m.Screen(), ShouldEqual, AddressSearch)
		So(m.Overlay(), ShouldEqual, Loading)

		m.Apply(Result{Seq: req.Seq, Kind: ScheduleRequest, Events: events})
		So(m.Screen(), ShouldEqual, ScheduleView)
		So(m.View().Address, ShouldResemble, marktplatz[1])
		So(m.View().Events, ShouldResemble, events)

		Convey("Back should restore the search without a request", func() {
			So(m.Dispatch(Back{}), ShouldBeNil)
			So(m.Screen(), ShouldEqual, AddressSearch)
			So(m.Search().Selected, ShouldEqual, 1)
			So(m.Search().Results, ShouldResemble, marktplatz)
			So(m.Search().Query, ShouldEqual, "Marktplatz 1")
			So(m.Pending(), ShouldBeNil)
		})

		Convey("Scrolling should clamp to the events", func() {
			m.Dispatch(MoveSelection{Delta: 3})
			So(m.View().Offset, ShouldEqual, 1)
			m.Dispatch(MoveSelection{Delta: -3})
			So(m.View().Offset, ShouldEqual, 0)
		})

		Convey("A timed out refresh should keep the events under the error", func() {
			req := m.Dispatch(Refresh{})
			So(req.Ref, ShouldEqual, "111")
			So(m.Overlay(), ShouldEqual, Loading)

			m.Apply(Result{Seq: req.Seq, Kind: ScheduleRequest, Err: serviceErr(service.Timeout, context.DeadlineExceeded)})
			So(m.Overlay(), ShouldEqual, Error)
			So(m.ErrorMessage(), ShouldContainSubstring, "timed out")
			So(m.Screen(), ShouldEqual, ScheduleView)
			So(m.View().Events, ShouldResemble, events)
		})

		Convey("Leaving during a refresh should drop its result", func() {
			req := m.Dispatch(Refresh{})
			m.Dispatch(Back{})
			So(m.Apply(Result{Seq: req.Seq, Kind: ScheduleRequest, Events: events}), ShouldBeFalse)
			So(m.Screen(), ShouldEqual, AddressSearch)
		})
	})

	Convey("Given an open that times out", t, func() {
		m := searched()
		req := m.Dispatch(OpenSelected{})
		m.Apply(Result{Seq: req.Seq, Kind: ScheduleRequest, Err: serviceErr(service.Timeout, context.DeadlineExceeded)})

		Convey("The search should stay displayed under the error", func() {
			So(m.Screen(), ShouldEqual, AddressSearch)
			So(m.Overlay(), ShouldEqual, Error)
			So(m.Search().Results, ShouldResemble, marktplatz)
		})
	})

	Convey("Given an open in flight", t, func() {
		m := searched()
		req := m.Dispatch(OpenSelected{})

		Convey("Input while loading should not survive into the schedule's back step", func() {
			m.Dispatch(MoveSelection{Delta: 1})
			m.Dispatch(EditQuery{Text: "Markt"})
			So(m.Search().Selected, ShouldEqual, 1)

			m.Apply(Result{Seq: req.Seq, Kind: ScheduleRequest, Events: events})
			So(m.View().Address, ShouldResemble, marktplatz[0])

			m.Dispatch(Back{})
			So(m.Screen(), ShouldEqual, AddressSearch)
			So(m.Search().Selected, ShouldEqual, 0)
			So(m.Search().Query, ShouldEqual, "Marktplatz 1")
			So(m.Search().Results[m.Search().Selected], ShouldResemble, marktplatz[0])
		})

		Convey("Dismiss should abandon it", func() {
			m.Dispatch(Dismiss{})
			So(m.Overlay(), ShouldEqual, NoOverlay)
			So(m.Apply(Result{Seq: req.Seq, Kind: ScheduleRequest, Events: events}), ShouldBeFalse)
			So(m.Screen(), ShouldEqual, AddressSearch)
		})

		Convey("A result of another kind should be dropped", func() {
			So(m.Apply(Result{Seq: req.Seq, Kind: SearchRequest}), ShouldBeFalse)
			So(m.Overlay(), ShouldEqual, Loading)
		})
	})
}

func TestUnknownCity(t *testing.T) {
	Convey("Given a city missing from the registry", t, func() {
		registry := provider.NewRegistry()
		svc := service.New(registry)

		m := New(svc.Cities())
		m.Dispatch(EnterCity{City: schedule.City{ID: "unknown", Name: "unknown"}})
		m.Dispatch(EditQuery{Text: "Marktplatz"})
		req := m.Dispatch(Submit{})

		addresses, err := svc.Search(context.Background(), req.City.ID, req.Query)
		m.Apply(Result{Seq: req.Seq, Kind: req.Kind, Addresses: addresses, Err: err})

		Convey("The error should overlay the city select screen", func() {
			So(service.KindOf(err), ShouldEqual, service.UnknownCity)
			So(m.Screen(), ShouldEqual, CitySelect)
			So(m.Overlay(), ShouldEqual, Error)
			So(m.ErrorMessage(), ShouldContainSubstring, "unknown city")
		})
	})
}

func TestQuit(t *testing.T) {
	Convey("Quit should end the session from any screen", t, func() {
		for _, m := range []*Machine{New(nil), searched()} {
			m.Dispatch(Quit{})
			So(m.Done(), ShouldBeTrue)
			So(m.Dispatch(SelectCity{}), ShouldBeNil)
			So(m.Screen(), ShouldEqual, Exit)
		}
	})

	Convey("Quit should drop the request in flight", t, func() {
		m := searched()
		req := m.Dispatch(Submit{})
		m.Dispatch(Quit{})
		So(m.Apply(Result{Seq: req.Seq, Kind: SearchRequest}), ShouldBeFalse)
	})
}
