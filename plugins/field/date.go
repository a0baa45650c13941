package field

import (
	"fmt"
	"time"

	"github.com/artpar/authorkit/core/plugin"
)

// dateLayouts are tried in order; the first match wins.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02.01.2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006",
}

// Date returns the built-in handler for date-typed keys. Accepted
// inputs are normalized to ISO 8601 (YYYY-MM-DD).
func Date() *plugin.Plugin {
	return &plugin.Plugin{
		Name:        "date",
		Version:     "1.0.0",
		Description: "Parses dates and normalizes them to ISO 8601",
		Types: &plugin.TypeHandler{
			Tags:    []string{"date"},
			Process: processDate,
		},
	}
}

func processDate(value any, tag string, ctx *plugin.Context) (any, error) {
	s, err := scalar(value, tag)
	if err != nil {
		return nil, err
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q", s)
}
