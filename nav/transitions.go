package nav

import (
	"strings"

	"github.com/tonneli-cli/tonneli/schedule"
	"github.com/tonneli-cli/tonneli/service"
	"github.com/tonneli-cli/tonneli/util"
)

// Dispatch applies a user action and returns the request it issued, if any.
// A new request supersedes the one in flight.
func (m *Machine) Dispatch(a Action) *Request {
	if m.screen == Exit {
		return nil
	}

	if _, ok := a.(Quit); ok {
		m.cancel()
		m.clearOverlay()
		m.screen = Exit
		return nil
	}

	if m.overlay == Error {
		m.clearOverlay()
		switch a.(type) {
		case Back, Dismiss:
			return nil
		}
	}

	switch m.screen {
	case CitySelect:
		return m.onCitySelect(a)
	case AddressSearch:
		return m.onAddressSearch(a)
	case ScheduleView:
		return m.onScheduleView(a)
	default:
		return nil
	}
}

func (m *Machine) onCitySelect(a Action) *Request {
	switch a := a.(type) {
	case MoveCity:
		m.moveCity(a.Delta)
	case SelectCity:
		m.selectCity()
	case EnterCity:
		m.enterCity(a.City)
	}
	return nil
}

func (m *Machine) onAddressSearch(a Action) *Request {
	switch a := a.(type) {
	case EditQuery:
		m.search.Query = a.Text
	case Submit:
		return m.submit()
	case MoveSelection:
		m.moveSelection(a.Delta)
	case OpenSelected:
		return m.openSelected()
	case Back:
		m.backToCities()
	case Dismiss:
		m.abandon()
	}
	return nil
}

func (m *Machine) onScheduleView(a Action) *Request {
	switch a := a.(type) {
	case MoveSelection:
		m.scroll(a.Delta)
	case Refresh:
		return m.refresh()
	case Back:
		m.backToSearch()
	case Dismiss:
		m.abandon()
	}
	return nil
}

func (m *Machine) moveCity(delta int) {
	if len(m.cities) == 0 {
		return
	}
	m.cityIndex = clamp(m.cityIndex+delta, len(m.cities))
}

func (m *Machine) selectCity() {
	if len(m.cities) == 0 {
		return
	}
	m.openCity(m.cities[m.cityIndex])
}

func (m *Machine) enterCity(city schedule.City) {
	for i, c := range m.cities {
		if c.ID == city.ID {
			m.cityIndex = i
			city = c
			break
		}
	}
	m.openCity(city)
}

func (m *Machine) openCity(city schedule.City) {
	m.city = city
	m.search = Search{}
	m.view = View{}
	m.screen = AddressSearch
}

func (m *Machine) submit() *Request {
	query := strings.TrimSpace(m.search.Query)
	if query == "" {
		return nil
	}

	return m.issue(Request{Kind: SearchRequest, City: m.city, Query: query})
}

func (m *Machine) moveSelection(delta int) {
	if len(m.search.Results) == 0 {
		return
	}
	m.search.Selected = clamp(m.search.Selected+delta, len(m.search.Results))
}

func (m *Machine) openSelected() *Request {
	if len(m.search.Results) == 0 {
		return nil
	}

	m.opening = m.search.Results[m.search.Selected]
	m.before = m.search
	return m.issue(Request{Kind: ScheduleRequest, City: m.city, Ref: m.opening.Ref})
}

func (m *Machine) backToCities() {
	m.cancel()
	m.clearOverlay()
	m.search = Search{}
	m.screen = CitySelect
}

func (m *Machine) scroll(delta int) {
	if len(m.view.Events) == 0 {
		return
	}
	m.view.Offset = clamp(m.view.Offset+delta, len(m.view.Events))
}

func (m *Machine) refresh() *Request {
	m.opening = m.view.Address
	return m.issue(Request{Kind: ScheduleRequest, City: m.city, Ref: m.view.Address.Ref})
}

func (m *Machine) backToSearch() {
	m.cancel()
	m.clearOverlay()
	m.view = View{}
	m.screen = AddressSearch
}

// abandon drops the request in flight and keeps the current screen.
func (m *Machine) abandon() {
	m.cancel()
	m.clearOverlay()
}

func (m *Machine) issue(r Request) *Request {
	m.seq++
	r.Seq = m.seq
	m.pending = &r
	m.overlay = Loading
	m.message = ""
	out := r
	return &out
}

func (m *Machine) cancel() {
	m.pending = nil
}

func (m *Machine) clearOverlay() {
	m.overlay = NoOverlay
	m.message = ""
}

// Apply integrates a completed request and reports whether it changed the state.
// Results not matching the request in flight are dropped. Cancelled requests end silently.
func (m *Machine) Apply(r Result) bool {
	if m.pending == nil || r.Seq != m.pending.Seq || r.Kind != m.pending.Kind {
		return false
	}

	m.pending = nil
	m.clearOverlay()

	if r.Err != nil {
		return m.fail(r.Err)
	}

	switch r.Kind {
	case SearchRequest:
		m.search.Results = r.Addresses
		m.search.Selected = 0
	case ScheduleRequest:
		m.view = View{Address: m.opening, Events: r.Events}
		m.search = m.before
		m.screen = ScheduleView
	}

	return true
}

func (m *Machine) fail(err error) bool {
	switch service.KindOf(err) {
	case service.Cancelled:
		return true
	case service.UnknownCity:
		m.search = Search{}
		m.view = View{}
		m.screen = CitySelect
	}

	m.overlay = Error
	m.message = err.Error()
	return true
}

func clamp(i, n int) int {
	return util.Max(0, util.Min(i, n-1))
}
