package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/tonneli-cli/tonneli/schedule"
)

// TextDateLayout is the date layout of the text format.
const TextDateLayout = "02.01.2006"

func writeText(w io.Writer, doc *Document) error {
	if _, err := fmt.Fprintf(w, "%s, %s\n\n", doc.Address.Display(), doc.City); err != nil {
		return err
	}

	if len(doc.Events) == 0 {
		_, err := fmt.Fprintln(w, "No pickups scheduled")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range doc.Events {
		fraction := e.Display()
		if e.Note != "" {
			fraction += " (" + e.Note + ")"
		}

		_, err := fmt.Fprintf(
			tw,
			"%s\t%s\t%s\t%s\n",
			e.Date.Format(TextDateLayout),
			e.Date.Format("Mon"),
			schedule.RelativeDay(e.Date, doc.Generated),
			fraction,
		)
		if err != nil {
			return err
		}
	}

	return tw.Flush()
}
