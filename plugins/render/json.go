package render

import (
	"encoding/json"

	"github.com/artpar/authorkit/core/document"
	"github.com/artpar/authorkit/core/plugin"
)

// JSON returns the built-in json formatter plugin.
func JSON() *plugin.Plugin {
	return &plugin.Plugin{
		Name:        "json-renderer",
		Version:     "1.0.0",
		Description: "Renders documents as JSON",
		Formatter: &plugin.Formatter{
			Formats: []string{"json"},
			Format:  formatJSON,
		},
	}
}

func formatJSON(doc document.Document, opts any) (string, error) {
	var (
		out []byte
		err error
	)
	if options(opts).Compact {
		out, err = json.Marshal(doc)
	} else {
		out, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(out), nil
}
