package custom

import (
	"context"
	"fmt"

	"github.com/tonneli-cli/tonneli/constant"
	"github.com/tonneli-cli/tonneli/provider"
	"github.com/tonneli-cli/tonneli/schedule"
	lua "github.com/yuin/gopher-lua"
)

// FetchSchedule calls the script's PickupSchedule with the window bounds as YYYY-MM-DD strings.
func (p *Provider) FetchSchedule(ctx context.Context, ref string, window schedule.DateRange) ([]schedule.PickupEvent, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", provider.ErrInvalidReference)
	}

	table, err := p.call(ctx, constant.PickupScheduleFn,
		lua.LString(ref),
		lua.LString(window.Start.Format(schedule.DateLayout)),
		lua.LString(window.End.Format(schedule.DateLayout)),
	)
	if err != nil {
		return nil, err
	}

	events, err := fromArray(table, eventFromTable)
	if err != nil {
		return nil, err
	}

	return schedule.Normalize(events, ref, window), nil
}
