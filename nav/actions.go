package nav

import "github.com/tonneli-cli/tonneli/schedule"

// Action is a user intent fed into the machine. Each key binding maps onto one action.
type Action interface {
	action()
}

// MoveCity moves the city cursor by Delta, clamped to the list.
type MoveCity struct{ Delta int }

// SelectCity opens the address search of the city under the cursor.
type SelectCity struct{}

// EnterCity opens the address search of City directly.
type EnterCity struct{ City schedule.City }

// EditQuery replaces the search input. It issues no request.
type EditQuery struct{ Text string }

// Submit searches addresses matching the current query.
type Submit struct{}

// MoveSelection moves the result cursor, or scrolls the schedule, by Delta.
type MoveSelection struct{ Delta int }

// OpenSelected fetches the schedule of the selected address.
type OpenSelected struct{}

// Refresh fetches the displayed schedule again.
type Refresh struct{}

// Back returns to the previous screen.
type Back struct{}

// Dismiss clears the error overlay or abandons the running request.
type Dismiss struct{}

// Quit ends the session.
type Quit struct{}

func (MoveCity) action() {}
func (SelectCity) action() {}
func (EnterCity) action() {}
func (EditQuery) action() {}
func (Submit) action() {}
func (MoveSelection) action() {}
func (OpenSelected) action() {}
func (Refresh) action() {}
func (Back) action() {}
func (Dismiss) action() {}
func (Quit) action() {}
