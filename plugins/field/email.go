package field

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/artpar/authorkit/core/plugin"
)

// Email returns the built-in handler for email-typed keys.
func Email() *plugin.Plugin {
	return &plugin.Plugin{
		Name:        "email",
		Version:     "1.0.0",
		Description: "Validates email addresses",
		Types: &plugin.TypeHandler{
			Tags:    []string{"email"},
			Process: processEmail,
		},
	}
}

func processEmail(value any, tag string, ctx *plugin.Context) (any, error) {
	s, err := scalar(value, tag)
	if err != nil {
		return nil, err
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return nil, fmt.Errorf("invalid email address %q: %w", s, err)
	}
	return strings.ToLower(addr.Address), nil
}
