package custom

import (
	"fmt"
	"time"

	"github.com/tonneli-cli/tonneli/provider"
	"github.com/tonneli-cli/tonneli/schedule"
	lua "github.com/yuin/gopher-lua"
)

func getString(table *lua.LTable, key string) string {
	val := table.RawGetString(key)
	switch val.Type() {
	case lua.LTString, lua.LTNumber:
		return val.String()
	default:
		return ""
	}
}

// fromArray converts the array part of table, in order. Non-table elements are skipped.
func fromArray[T any](table *lua.LTable, convert func(*lua.LTable) (T, error)) ([]T, error) {
	var result []T
	for i := 1; i <= table.Len(); i++ {
		item, ok := table.RawGetInt(i).(*lua.LTable)
		if !ok {
			continue
		}

		converted, err := convert(item)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", provider.ErrUpstreamFormat, i, err)
		}
		result = append(result, converted)
	}
	return result, nil
}

func addressFromTable(table *lua.LTable) (schedule.Address, error) {
	address := schedule.Address{
		Ref:    getString(table, "ref"),
		Street: getString(table, "street"),
		Number: getString(table, "number"),
		Suffix: getString(table, "suffix"),
		Label:  getString(table, "label"),
	}

	if address.Ref == "" {
		return address, fmt.Errorf("address must have a ref")
	}

	if address.Display() == "" {
		return address, fmt.Errorf("address %s must have a label or street", address.Ref)
	}

	return address, nil
}

func eventFromTable(table *lua.LTable) (schedule.PickupEvent, error) {
	raw := getString(table, "date")
	date, err := time.ParseInLocation(schedule.DateLayout, raw, time.Local)
	if err != nil {
		return schedule.PickupEvent{}, fmt.Errorf("pickup date %q: %w", raw, err)
	}

	typ := getString(table, "type")
	label := getString(table, "label")
	if label == "" {
		label = typ
	}

	return schedule.PickupEvent{
		Date:  date,
		Type:  schedule.NormalizeWasteType(typ),
		Label: label,
		Note:  getString(table, "note"),
	}, nil
}
