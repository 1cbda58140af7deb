// Package nav implements the screen flow of the terminal UI as an explicit state machine.
//
// The machine never performs I/O. Dispatch returns the request an action requires and
// Apply integrates its completion; results of superseded requests are discarded by sequence number.
package nav

import (
	"github.com/tonneli-cli/tonneli/schedule"
)

// Screen is the active screen.
type Screen int

const (
	CitySelect Screen = iota
	AddressSearch
	ScheduleView
	Exit
)

func (s Screen) String() string {
	switch s {
	case CitySelect:
		return "city select"
	case AddressSearch:
		return "address search"
	case ScheduleView:
		return "schedule view"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// Overlay is drawn on top of the active screen without replacing its data.
type Overlay int

const (
	NoOverlay Overlay = iota
	Loading
	Error
)

// RequestKind tells which service call a request needs.
type RequestKind int

const (
	SearchRequest RequestKind = iota
	ScheduleRequest
)

// Request is work the caller must execute and report back through Apply.
type Request struct {
	Seq   uint64
	Kind  RequestKind
	City  schedule.City
	Query string
	Ref   string
}

// Result is the completion of a Request.
type Result struct {
	Seq       uint64
	Kind      RequestKind
	Addresses []schedule.Address
	Events    []schedule.PickupEvent
	Err       error
}

// Search is the state of the address search screen.
type Search struct {
	Query    string
	Results  []schedule.Address
	Selected int
}

// View is the state of the schedule screen.
type View struct {
	Address schedule.Address
	Events  []schedule.PickupEvent
	Offset  int
}

// Machine holds the navigation state. It is not safe for concurrent use;
// a single event loop owns it.
type Machine struct {
	screen  Screen
	overlay Overlay
	message string

	cities    []schedule.City
	cityIndex int
	city      schedule.City

	search Search
	view   View

	seq     uint64
	pending *Request
	opening schedule.Address
	// before is the search as it was when the schedule was requested.
	before Search
}

// New returns a machine on the city select screen.
func New(cities []schedule.City) *Machine {
	return &Machine{
		screen: CitySelect,
		cities: cities,
	}
}

func (m *Machine) Screen() Screen { return m.screen }
func (m *Machine) Overlay() Overlay { return m.overlay }
func (m *Machine) Cities() []schedule.City { return m.cities }
func (m *Machine) CityIndex() int { return m.cityIndex }
func (m *Machine) City() schedule.City { return m.city }
func (m *Machine) Search() Search { return m.search }
func (m *Machine) View() View { return m.view }

// ErrorMessage returns the message of the error overlay, empty without one.
func (m *Machine) ErrorMessage() string {
	if m.overlay != Error {
		return ""
	}
	return m.message
}

// Pending returns the request in flight, nil when idle.
func (m *Machine) Pending() *Request {
	if m.pending == nil {
		return nil
	}
	r := *m.pending
	return &r
}

// Done reports whether the session has ended.
func (m *Machine) Done() bool {
	return m.screen == Exit
}
