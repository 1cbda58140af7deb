package schedule

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// WasteType is the normalized category of a pickup.
type WasteType int

const (
	Other WasteType = iota
	Residual
	Organic
	Paper
	Packaging
	Glass
	Metal
	Bulky
	Hazardous
)

var wasteTypeNames = map[WasteType]string{
	Other:     "other",
	Residual:  "residual",
	Organic:   "organic",
	Paper:     "paper",
	Packaging: "packaging",
	Glass:     "glass",
	Metal:     "metal",
	Bulky:     "bulky",
	Hazardous: "hazardous",
}

var wasteTypeLabels = map[WasteType]string{
	Other:     "Other",
	Residual:  "Residual waste",
	Organic:   "Organic",
	Paper:     "Paper",
	Packaging: "Plastics / packaging",
	Glass:     "Glass",
	Metal:     "Metal",
	Bulky:     "Bulky waste",
	Hazardous: "Hazardous waste",
}

// WasteTypes returns every known waste type in declaration order.
func WasteTypes() []WasteType {
	return []WasteType{Residual, Organic, Paper, Packaging, Glass, Metal, Bulky, Hazardous, Other}
}

// String returns the stable lowercase key of the waste type.
func (w WasteType) String() string {
	if name, ok := wasteTypeNames[w]; ok {
		return name
	}
	return wasteTypeNames[Other]
}

// Label returns the human readable name.
func (w WasteType) Label() string {
	if label, ok := wasteTypeLabels[w]; ok {
		return label
	}
	return wasteTypeLabels[Other]
}

func (w WasteType) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

func (w *WasteType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("waste type: %w", err)
	}
	*w = NormalizeWasteType(s)
	return nil
}

// keywords are matched as substrings, in order. Colour names come from the bin colours used by German
// municipalities ("graue Tonne", AWB "grey"/"blue"/"brown").
var keywords = []struct {
	match []string
	typ   WasteType
}{
	{[]string{"sperr", "bulky"}, Bulky},
	{[]string{"schadstoff", "problem", "hazard"}, Hazardous},
	{[]string{"rest", "residual", "grey", "gray", "grau", "schwarz"}, Residual},
	{[]string{"bio", "organic", "compost", "kompost", "grün", "gruen", "brown", "braun"}, Organic},
	{[]string{"papier", "pappe", "paper", "karton", "blue", "blau", "altpapier"}, Paper},
	{[]string{"gelb", "yellow", "wertstoff", "leichtverpackung", "lvp", "verpackung", "packaging", "plastic", "plastik"}, Packaging},
	{[]string{"glas", "glass"}, Glass},
	{[]string{"metall", "metal", "schrott"}, Metal},
}

// NormalizeWasteType maps a provider's native category onto the known set.
// Unknown input yields Other, never an error.
func NormalizeWasteType(raw string) WasteType {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Other
	}

	if typ, ok := wasteTypesByName[normalized]; ok {
		return typ
	}

	for _, k := range keywords {
		for _, m := range k.match {
			if strings.Contains(normalized, m) {
				return k.typ
			}
		}
	}

	return Other
}

var wasteTypesByName = lo.Invert(wasteTypeNames)
