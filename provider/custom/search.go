package custom

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"github.com/tonneli-cli/tonneli/constant"
	"github.com/tonneli-cli/tonneli/schedule"
	lua "github.com/yuin/gopher-lua"
)

// SearchAddress calls the script's SearchAddresses with the trimmed query.
func (p *Provider) SearchAddress(ctx context.Context, query string) ([]schedule.Address, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	table, err := p.call(ctx, constant.SearchAddressesFn, lua.LString(query))
	if err != nil {
		return nil, err
	}

	addresses, err := fromArray(table, addressFromTable)
	if err != nil {
		return nil, err
	}

	for i := range addresses {
		addresses[i].City = p.city.ID
	}

	return lo.UniqBy(addresses, func(a schedule.Address) string { return a.Ref }), nil
}
