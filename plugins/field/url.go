package field

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/artpar/authorkit/core/plugin"
)

// URL returns the built-in handler for url-typed keys. Values without
// a scheme are normalized to https before validation.
func URL() *plugin.Plugin {
	return &plugin.Plugin{
		Name:        "url",
		Version:     "1.0.0",
		Description: "Validates and normalizes URL values",
		Types: &plugin.TypeHandler{
			Tags:          []string{"url", "website"},
			Process:       processURL,
			ValidateValue: validateURL,
		},
	}
}

func processURL(value any, tag string, ctx *plugin.Context) (any, error) {
	s, err := scalar(value, tag)
	if err != nil {
		return nil, err
	}
	s = normalizeURL(s)
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid URL %q: no host", s)
	}
	return s, nil
}

func validateURL(value any, tag string) ([]string, error) {
	s, ok := value.(string)
	if !ok {
		return nil, nil
	}
	if strings.HasPrefix(s, "http://") {
		return []string{fmt.Sprintf("URL %q uses plain http", s)}, nil
	}
	return nil, nil
}

func normalizeURL(s string) string {
	if strings.Contains(s, "://") {
		return s
	}
	return "https://" + s
}
