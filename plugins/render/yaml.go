package render

import (
	"gopkg.in/yaml.v3"

	"github.com/artpar/authorkit/core/document"
	"github.com/artpar/authorkit/core/plugin"
)

// YAML returns the built-in yaml formatter plugin.
func YAML() *plugin.Plugin {
	return &plugin.Plugin{
		Name:        "yaml-renderer",
		Version:     "1.0.0",
		Description: "Renders documents as YAML",
		Formatter: &plugin.Formatter{
			Formats: []string{"yaml", "yml"},
			Format:  formatYAML,
		},
	}
}

func formatYAML(doc document.Document, opts any) (string, error) {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
