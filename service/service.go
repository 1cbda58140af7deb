// Package service dispatches address searches and schedule fetches to the provider of a city.
// Every call is bounded in time and every failure is reported as an *Error naming the city.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/tonneli-cli/tonneli/key"
	"github.com/tonneli-cli/tonneli/log"
	"github.com/tonneli-cli/tonneli/provider"
	"github.com/tonneli-cli/tonneli/schedule"
)

const defaultTimeout = 15 * time.Second

// Service is safe for concurrent use once constructed.
type Service struct {
	registry *provider.Registry
	timeout  time.Duration
	lookBack int
	horizon  int
	limit    int
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout bounds every provider call.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.timeout = timeout
	}
}

// WithLookBack sets how many past days a schedule includes.
func WithLookBack(days int) Option {
	return func(s *Service) {
		s.lookBack = days
	}
}

// WithHorizon sets how many future days a schedule includes.
func WithHorizon(days int) Option {
	return func(s *Service) {
		s.horizon = days
	}
}

// WithLimit caps the number of addresses returned by Search. Zero means no cap.
func WithLimit(limit int) Option {
	return func(s *Service) {
		s.limit = limit
	}
}

// WithClock replaces the clock used to compute schedule windows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New returns a service over registry and freezes it.
// Defaults are read from the configuration.
func New(registry *provider.Registry, options ...Option) *Service {
	registry.Freeze()

	s := &Service{
		registry: registry,
		timeout:  time.Duration(viper.GetInt(key.ServiceTimeout)) * time.Second,
		lookBack: viper.GetInt(key.ScheduleLookBackDays),
		horizon:  viper.GetInt(key.ScheduleHorizonDays),
		limit:    viper.GetInt(key.SearchLimit),
		now:      time.Now,
	}

	for _, option := range options {
		option(s)
	}

	if s.timeout <= 0 {
		s.timeout = defaultTimeout
	}

	return s
}

// Cities lists the registered cities in registration order.
func (s *Service) Cities() []schedule.City {
	return s.registry.List()
}

// City returns the city registered under id.
func (s *Service) City(id string) (schedule.City, error) {
	p, err := s.registry.Get(id)
	if err != nil {
		return schedule.City{ID: id, Name: id}, wrap(schedule.City{ID: id, Name: id}, err)
	}
	return p.City(), nil
}

// Closest returns the registered city whose ID is nearest to id.
func (s *Service) Closest(id string) (schedule.City, bool) {
	return s.registry.Closest(id)
}

// Window returns the date range Schedule fetches right now.
func (s *Service) Window() schedule.DateRange {
	return schedule.Window(s.now(), s.lookBack, s.horizon)
}

// Search returns the addresses of a city matching query.
// A blank query yields no addresses without contacting the provider.
// Results keep provider order, drop repeated references and are capped by the limit.
func (s *Service) Search(ctx context.Context, cityID, query string) ([]schedule.Address, error) {
	p, err := s.registry.Get(cityID)
	if err != nil {
		return nil, wrap(schedule.City{ID: cityID, Name: cityID}, err)
	}
	city := p.City()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	log.City(city.ID).Infof("searching %q", query)
	addresses, err := call(ctx, s.timeout, func(ctx context.Context) ([]schedule.Address, error) {
		return p.SearchAddress(ctx, query)
	})
	if err != nil {
		log.City(city.ID).Errorf("search %q: %v", query, err)
		return nil, wrap(city, err)
	}

	addresses = lo.UniqBy(addresses, func(a schedule.Address) string { return a.Ref })
	for i := range addresses {
		if addresses[i].City == "" {
			addresses[i].City = city.ID
		}
	}

	if s.limit > 0 && len(addresses) > s.limit {
		addresses = addresses[:s.limit]
	}

	return addresses, nil
}

// Schedule returns the pickups of an address inside the current window, sorted by date.
func (s *Service) Schedule(ctx context.Context, cityID, ref string) ([]schedule.PickupEvent, error) {
	p, err := s.registry.Get(cityID)
	if err != nil {
		return nil, wrap(schedule.City{ID: cityID, Name: cityID}, err)
	}
	city := p.City()

	if ref == "" {
		return nil, wrap(city, fmt.Errorf("%w: empty reference", provider.ErrInvalidReference))
	}

	window := s.Window()
	log.City(city.ID).Infof("fetching schedule of %s", ref)
	events, err := call(ctx, s.timeout, func(ctx context.Context) ([]schedule.PickupEvent, error) {
		return p.FetchSchedule(ctx, ref, window)
	})
	if err != nil {
		log.City(city.ID).Errorf("schedule of %s: %v", ref, err)
		return nil, wrap(city, err)
	}

	return schedule.Normalize(events, ref, window), nil
}

// call runs fn in its own goroutine under a deadline.
// A provider ignoring its context still yields context.DeadlineExceeded once the bound elapses.
func call[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("provider panicked: %v", r)}
			}
		}()

		value, err := fn(ctx)
		done <- outcome{value: value, err: err}
	}()

	var zero T
	select {
	case o := <-done:
		if o.err != nil && ctx.Err() != nil {
			return zero, ctx.Err()
		}
		return o.value, o.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
