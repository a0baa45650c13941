// Package field provides the built-in type-handler plugins for common
// author-file field types: url, email, date, phone, and github.
// Each handler validates and normalizes the scalar it receives; the
// handler result fully replaces the raw value in the document.
package field

import "fmt"

// scalar coerces a processed value to a single string. Type-annotated
// keys carry one scalar; a comma list under a typed key is rejected.
func scalar(value any, tag string) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("type %q expects a single scalar, got %T", tag, value)
	}
	return s, nil
}
