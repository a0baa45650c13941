// Package plugins registers the built-in plugin set.
package plugins

import (
	"github.com/artpar/authorkit/core/plugin"
	"github.com/artpar/authorkit/plugins/field"
	"github.com/artpar/authorkit/plugins/lint"
	"github.com/artpar/authorkit/plugins/render"
)

// RegisterDefaults registers every built-in type handler, formatter,
// and validator on the registry.
func RegisterDefaults(reg *plugin.Registry) error {
	defaults := []*plugin.Plugin{
		field.URL(),
		field.Email(),
		field.Date(),
		field.Phone(),
		field.GitHub(),
		render.JSON(),
		render.YAML(),
		render.Markdown(),
		lint.EmptyValues(),
	}
	for _, p := range defaults {
		if err := reg.Register(p); err != nil {
			return err
		}
	}
	return nil
}
