package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/tonneli-cli/tonneli/export"
	"github.com/tonneli-cli/tonneli/schedule"
	"github.com/tonneli-cli/tonneli/util"
)

// AddressPicker chooses one address of the search results, nil when none fits.
type AddressPicker func([]schedule.Address) *schedule.Address

type Options struct {
	Out    io.Writer
	City   string
	Query  string
	Format export.Format
	// Picker selects the address whose schedule is written. Without one the search results are listed.
	Picker mo.Option[AddressPicker]
}

// ParseAddressPicker parses first, last, an index starting at 0 or exact:<label>.
func ParseAddressPicker(description string) (AddressPicker, error) {
	description = strings.TrimSpace(description)

	switch {
	case description == "first":
		return func(addresses []schedule.Address) *schedule.Address {
			if len(addresses) == 0 {
				return nil
			}
			return &addresses[0]
		}, nil
	case description == "last":
		return func(addresses []schedule.Address) *schedule.Address {
			if len(addresses) == 0 {
				return nil
			}
			return &addresses[len(addresses)-1]
		}, nil
	case strings.HasPrefix(description, "exact:"):
		label := strings.TrimSpace(strings.TrimPrefix(description, "exact:"))
		return func(addresses []schedule.Address) *schedule.Address {
			found, ok := lo.Find(addresses, func(a schedule.Address) bool {
				return strings.EqualFold(a.Display(), label)
			})
			if !ok {
				return nil
			}
			return &found
		}, nil
	}

	idx, err := strconv.ParseUint(description, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid address selector: %s", description)
	}

	return func(addresses []schedule.Address) *schedule.Address {
		if len(addresses) == 0 {
			return nil
		}
		i := util.Min(idx, uint64(len(addresses)-1))
		return &addresses[i]
	}, nil
}
