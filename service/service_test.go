package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tonneli-cli/tonneli/provider"
	"github.com/tonneli-cli/tonneli/schedule"
)

type fakeProvider struct {
	city     schedule.City
	search   func(ctx context.Context, query string) ([]schedule.Address, error)
	fetch    func(ctx context.Context, ref string, window schedule.DateRange) ([]schedule.PickupEvent, error)
	searches int
	window   schedule.DateRange
}

func (f *fakeProvider) City() schedule.City { return f.city }

func (f *fakeProvider) SearchAddress(ctx context.Context, query string) ([]schedule.Address, error) {
	f.searches++
	return f.search(ctx, query)
}

func (f *fakeProvider) FetchSchedule(ctx context.Context, ref string, window schedule.DateRange) ([]schedule.PickupEvent, error) {
	f.window = window
	return f.fetch(ctx, ref, window)
}

func day(s string) time.Time {
	t, _ := time.ParseInLocation(schedule.DateLayout, s, time.Local)
	return t
}

func address(ref, label string) schedule.Address {
	return schedule.Address{Ref: ref, Label: label}
}

func newService(p *fakeProvider, options ...Option) *Service {
	registry := provider.NewRegistry()
	if err := registry.Register(p); err != nil {
		panic(err)
	}

	options = append([]Option{
		WithTimeout(200 * time.Millisecond),
		WithClock(func() time.Time { return day("2026-10-19").Add(15 * time.Hour) }),
		WithLookBack(0),
		WithHorizon(60),
		WithLimit(3),
	}, options...)

	return New(registry, options...)
}

func TestSearch(t *testing.T) {
	Convey("Given a service over one city", t, func() {
		p := &fakeProvider{
			city: schedule.City{ID: "cologne", Name: "Köln"},
			search: func(ctx context.Context, query string) ([]schedule.Address, error) {
				return []schedule.Address{
					address("b", "Marktplatz 2"),
					address("a", "Marktplatz 1"),
					address("b", "Marktplatz 2 (again)"),
					address("c", "Marktplatz 3"),
					address("d", "Marktplatz 4"),
				}, nil
			},
		}
		s := newService(p)

		Convey("It should keep order, drop repeated refs and cap the result", func() {
			addresses, err := s.Search(context.Background(), "cologne", "Marktplatz")
			So(err, ShouldBeNil)
			So(addresses, ShouldHaveLength, 3)
			So(addresses[0].Ref, ShouldEqual, "b")
			So(addresses[0].Label, ShouldEqual, "Marktplatz 2")
			So(addresses[1].Ref, ShouldEqual, "a")
			So(addresses[2].Ref, ShouldEqual, "c")
			So(addresses[2].City, ShouldEqual, "cologne")
		})

		Convey("A blank query should not reach the provider", func() {
			addresses, err := s.Search(context.Background(), "cologne", "   ")
			So(err, ShouldBeNil)
			So(addresses, ShouldBeEmpty)
			So(p.searches, ShouldEqual, 0)
		})

		Convey("An unknown city should fail with UnknownCity", func() {
			_, err := s.Search(context.Background(), "atlantis", "Marktplatz")
			So(KindOf(err), ShouldEqual, UnknownCity)
			So(errors.Is(err, provider.ErrUnknownCity), ShouldBeTrue)
			So(err.Error(), ShouldStartWith, "atlantis: unknown city")
		})

		Convey("Provider errors should be classified and attributed", func() {
			for sentinel, kind := range map[error]Kind{
				provider.ErrNetwork:        NetworkFailure,
				provider.ErrUpstreamFormat: UpstreamFormatError,
				provider.ErrRateLimited:    RateLimited,
				errors.New("boom"):         Internal,
			} {
				sentinel, kind := sentinel, kind
				p.search = func(context.Context, string) ([]schedule.Address, error) {
					return nil, fmt.Errorf("%w: 503", sentinel)
				}

				_, err := s.Search(context.Background(), "cologne", "Marktplatz")
				So(KindOf(err), ShouldEqual, kind)
				So(errors.Is(err, sentinel), ShouldBeTrue)

				var serviceErr *Error
				So(errors.As(err, &serviceErr), ShouldBeTrue)
				So(serviceErr.City.Name, ShouldEqual, "Köln")
				So(err.Error(), ShouldStartWith, "Köln: ")
			}
		})

		Convey("The network failure message should not repeat the kind", func() {
			p.search = func(context.Context, string) ([]schedule.Address, error) {
				return nil, fmt.Errorf("%w: 503 Service Unavailable", provider.ErrNetwork)
			}
			_, err := s.Search(context.Background(), "cologne", "Marktplatz")
			So(err.Error(), ShouldEqual, "Köln: network failure: 503 Service Unavailable")
		})

		Convey("A hanging provider should time out", func() {
			release := make(chan struct{})
			defer close(release)
			p.search = func(context.Context, string) ([]schedule.Address, error) {
				<-release
				return nil, nil
			}

			start := time.Now()
			_, err := s.Search(context.Background(), "cologne", "Marktplatz")
			So(KindOf(err), ShouldEqual, Timeout)
			So(time.Since(start), ShouldBeLessThan, 2*time.Second)
		})

		Convey("A cancelled caller should get Cancelled", func() {
			p.search = func(ctx context.Context, _ string) ([]schedule.Address, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			}

			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				time.Sleep(10 * time.Millisecond)
				cancel()
			}()

			_, err := s.Search(ctx, "cologne", "Marktplatz")
			So(KindOf(err), ShouldEqual, Cancelled)
		})

		Convey("A panicking provider should yield Internal", func() {
			p.search = func(context.Context, string) ([]schedule.Address, error) {
				panic("nil map")
			}
			_, err := s.Search(context.Background(), "cologne", "Marktplatz")
			So(KindOf(err), ShouldEqual, Internal)
		})
	})
}

func TestSchedule(t *testing.T) {
	Convey("Given a provider returning unsorted pickups", t, func() {
		p := &fakeProvider{
			city: schedule.City{ID: "aachen", Name: "Aachen"},
			fetch: func(ctx context.Context, ref string, window schedule.DateRange) ([]schedule.PickupEvent, error) {
				if ref != "110" {
					return nil, fmt.Errorf("%w: %s", provider.ErrInvalidReference, ref)
				}
				return []schedule.PickupEvent{
					{Date: day("2026-11-02"), Type: schedule.Paper},
					{Date: day("2026-10-20"), Type: schedule.Organic},
					{Date: day("2026-10-18"), Type: schedule.Residual},
					{Date: day("2026-10-19"), Type: schedule.Residual},
					{Date: day("2027-01-05"), Type: schedule.Glass},
				}, nil
			},
		}
		s := newService(p)

		Convey("The window should start today and span the horizon", func() {
			w := s.Window()
			So(w.Start.Equal(day("2026-10-19")), ShouldBeTrue)
			So(w.End.Equal(day("2026-12-18")), ShouldBeTrue)
		})

		Convey("It should return the window sorted and stamped", func() {
			events, err := s.Schedule(context.Background(), "aachen", "110")
			So(err, ShouldBeNil)
			So(p.window.Start.Equal(day("2026-10-19")), ShouldBeTrue)

			So(events, ShouldHaveLength, 3)
			So(events[0].Date.Equal(day("2026-10-19")), ShouldBeTrue)
			So(events[1].Date.Equal(day("2026-10-20")), ShouldBeTrue)
			So(events[2].Date.Equal(day("2026-11-02")), ShouldBeTrue)
			for _, e := range events {
				So(e.Ref, ShouldEqual, "110")
			}
		})

		Convey("A look-back should keep recent pickups", func() {
			s := newService(p, WithLookBack(1))
			events, err := s.Schedule(context.Background(), "aachen", "110")
			So(err, ShouldBeNil)
			So(events, ShouldHaveLength, 4)
			So(events[0].Date.Equal(day("2026-10-18")), ShouldBeTrue)
		})

		Convey("A foreign reference should fail with InvalidReference", func() {
			_, err := s.Schedule(context.Background(), "aachen", "1234:1:")
			So(KindOf(err), ShouldEqual, InvalidReference)
		})

		Convey("An empty reference should fail without a provider call", func() {
			_, err := s.Schedule(context.Background(), "aachen", "")
			So(KindOf(err), ShouldEqual, InvalidReference)
			So(p.window.Start.IsZero(), ShouldBeTrue)
		})

		Convey("An unknown city should fail with UnknownCity", func() {
			_, err := s.Schedule(context.Background(), "cologne", "110")
			So(KindOf(err), ShouldEqual, UnknownCity)
		})
	})
}

func TestRegistryAccess(t *testing.T) {
	Convey("New should freeze the registry", t, func() {
		registry := provider.NewRegistry()
		_ = New(registry)
		err := registry.Register(&fakeProvider{city: schedule.City{ID: "bonn"}})
		So(errors.Is(err, provider.ErrRegistryFrozen), ShouldBeTrue)
	})

	Convey("Cities and City should reflect the registry", t, func() {
		s := newService(&fakeProvider{city: schedule.City{ID: "bonn", Name: "Bonn"}})
		So(s.Cities(), ShouldResemble, []schedule.City{{ID: "bonn", Name: "Bonn"}})

		city, err := s.City("bonn")
		So(err, ShouldBeNil)
		So(city.Name, ShouldEqual, "Bonn")

		_, err = s.City("koeln")
		So(KindOf(err), ShouldEqual, UnknownCity)
	})

	Convey("KindOf should classify bare errors", t, func() {
		So(KindOf(context.DeadlineExceeded), ShouldEqual, Timeout)
		So(KindOf(fmt.Errorf("x: %w", provider.ErrDuplicateCity)), ShouldEqual, DuplicateCity)
		So(KindOf(errors.New("x")), ShouldEqual, Internal)
		So(Timeout.String(), ShouldEqual, "timed out")
	})
}
