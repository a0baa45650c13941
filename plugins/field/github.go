package field

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/artpar/authorkit/core/plugin"
)

var githubHandle = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)

// GitHub returns the built-in handler for github-typed keys. It
// accepts a bare handle, an @handle, or a full profile URL, and
// returns the handle together with the canonical profile URL.
func GitHub() *plugin.Plugin {
	return &plugin.Plugin{
		Name:        "github",
		Version:     "1.0.0",
		Description: "Resolves GitHub handles to profile URLs",
		Types: &plugin.TypeHandler{
			Tags:    []string{"github"},
			Process: processGitHub,
		},
	}
}

func processGitHub(value any, tag string, ctx *plugin.Context) (any, error) {
	s, err := scalar(value, tag)
	if err != nil {
		return nil, err
	}
	handle := strings.TrimPrefix(s, "@")
	for _, prefix := range []string{"https://github.com/", "http://github.com/", "github.com/"} {
		if strings.HasPrefix(handle, prefix) {
			handle = strings.TrimPrefix(handle, prefix)
			break
		}
	}
	handle = strings.TrimSuffix(handle, "/")
	if !githubHandle.MatchString(handle) || strings.HasSuffix(handle, "-") {
		return nil, fmt.Errorf("invalid GitHub handle %q", s)
	}
	return map[string]any{
		"username": handle,
		"url":      "https://github.com/" + handle,
	}, nil
}
