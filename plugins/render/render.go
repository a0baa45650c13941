// Package render provides the built-in formatter plugins: json, yaml,
// and markdown.
package render

import "sort"

// Options configures the built-in formatters. Every formatter accepts
// a nil options value.
type Options struct {
	// Compact minimizes whitespace (json only).
	Compact bool

	// Title is rendered as the top-level heading (markdown only).
	Title string
}

// options coerces the free-form pipeline options value.
func options(opts any) Options {
	switch o := opts.(type) {
	case Options:
		return o
	case *Options:
		if o != nil {
			return *o
		}
	}
	return Options{}
}

// sortedKeys gives formatters a deterministic key order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
