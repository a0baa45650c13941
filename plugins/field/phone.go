package field

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/artpar/authorkit/core/plugin"
)

var phoneChars = regexp.MustCompile(`^[0-9+\-().\s]+$`)

// Phone returns the built-in handler for phone-typed keys. The value
// keeps a leading + and is otherwise reduced to digits.
func Phone() *plugin.Plugin {
	return &plugin.Plugin{
		Name:        "phone",
		Version:     "1.0.0",
		Description: "Validates and normalizes phone numbers",
		Types: &plugin.TypeHandler{
			Tags:    []string{"phone", "tel"},
			Process: processPhone,
		},
	}
}

func processPhone(value any, tag string, ctx *plugin.Context) (any, error) {
	s, err := scalar(value, tag)
	if err != nil {
		return nil, err
	}
	if !phoneChars.MatchString(s) {
		return nil, fmt.Errorf("invalid phone number %q", s)
	}

	var b strings.Builder
	for i, r := range s {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	normalized := b.String()
	digits := strings.TrimPrefix(normalized, "+")
	if len(digits) < 4 {
		return nil, fmt.Errorf("phone number %q too short", s)
	}
	return normalized, nil
}
