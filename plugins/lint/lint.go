// Package lint provides the built-in validator plugins. Validators
// only produce warnings; they never mutate the document.
package lint

import (
	"fmt"
	"sort"

	"github.com/artpar/authorkit/core/document"
	"github.com/artpar/authorkit/core/plugin"
)

// RequiredKeys returns a validator that warns about root-level keys
// missing from the document.
func RequiredKeys(keys ...string) *plugin.Plugin {
	return &plugin.Plugin{
		Name:        "required-keys",
		Version:     "1.0.0",
		Description: "Warns when required root keys are missing",
		Priority:    10,
		Validator: &plugin.Validator{
			Validate: func(doc document.Document) ([]string, error) {
				var warnings []string
				for _, key := range keys {
					if _, ok := doc[key]; !ok {
						warnings = append(warnings, fmt.Sprintf("missing required key %q", key))
					}
				}
				return warnings, nil
			},
		},
	}
}

// EmptyValues returns a validator that warns about keys holding empty
// scalars, at any nesting depth.
func EmptyValues() *plugin.Plugin {
	return &plugin.Plugin{
		Name:        "empty-values",
		Version:     "1.0.0",
		Description: "Warns about keys with empty values",
		Validator: &plugin.Validator{
			Validate: func(doc document.Document) ([]string, error) {
				return emptyValueWarnings(doc, ""), nil
			},
		},
	}
}

func emptyValueWarnings(doc document.Document, prefix string) []string {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var warnings []string
	for _, key := range keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch v := doc[key].(type) {
		case string:
			if v == "" {
				warnings = append(warnings, fmt.Sprintf("key %q has an empty value", path))
			}
		case document.Document:
			warnings = append(warnings, emptyValueWarnings(v, path)...)
		case document.List:
			for i, item := range v {
				if block, ok := item.(document.Document); ok {
					warnings = append(warnings, emptyValueWarnings(block, fmt.Sprintf("%s[%d]", path, i))...)
				}
			}
		}
	}
	return warnings
}
