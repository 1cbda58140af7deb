package export

import (
	"encoding/json"
	"io"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/tonneli-cli/tonneli/schedule"
)

func writeJSON(w io.Writer, doc *Document) error {
	if doc.Events == nil {
		doc.Events = []schedule.PickupEvent{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// Schema describes the JSON rendering of v.
func Schema(v any) *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		return filepath.Base(t.PkgPath()) + "." + t.Name()
	}
	reflector.Mapper = func(t reflect.Type) *jsonschema.Schema {
		if t != reflect.TypeOf(schedule.WasteType(0)) {
			return nil
		}

		return &jsonschema.Schema{
			Type: "string",
			Enum: lo.Map(schedule.WasteTypes(), func(w schedule.WasteType, _ int) any {
				return w.String()
			}),
		}
	}

	return reflector.Reflect(v)
}
