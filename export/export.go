// Package export renders a pickup schedule as plain text, JSON or iCalendar.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/tonneli-cli/tonneli/schedule"
)

// Format is an output format.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	ICS  Format = "ics"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{Text, JSON, ICS}
}

// ParseFormat resolves a format name, case-insensitive.
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	if !lo.Contains(Formats(), format) {
		return "", fmt.Errorf("unknown format %q, expected one of %s", name, strings.Join(lo.Map(Formats(), func(f Format, _ int) string {
			return string(f)
		}), ", "))
	}
	return format, nil
}

// Extension returns the file extension of the format, including the dot.
func (f Format) Extension() string {
	switch f {
	case JSON:
		return ".json"
	case ICS:
		return ".ics"
	default:
		return ".txt"
	}
}

// Document is the schedule of one address.
type Document struct {
	City      schedule.City          `json:"city"`
	Address   schedule.Address       `json:"address"`
	Window    schedule.DateRange     `json:"window"`
	Generated time.Time              `json:"generated"`
	Events    []schedule.PickupEvent `json:"events"`
}

// Write renders doc to w in format.
func Write(w io.Writer, format Format, doc *Document) error {
	switch format {
	case Text:
		return writeText(w, doc)
	case JSON:
		return writeJSON(w, doc)
	case ICS:
		return writeICS(w, doc)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
