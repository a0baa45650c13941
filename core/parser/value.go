package parser

import "strings"

// ProcessValue interprets the textual right-hand side of a statement:
// one wrapping pair of double quotes is stripped (no escape handling),
// then a value containing commas becomes an ordered []string with each
// part trimmed and empty parts dropped. Anything else is returned as
// the string itself. Type handlers run after, never before, this step.
func ProcessValue(raw string) any {
	if len(raw) >= 2 && strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) {
		raw = raw[1 : len(raw)-1]
	}
	if !strings.Contains(raw, ",") {
		return raw
	}
	parts := strings.Split(raw, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			list = append(list, part)
		}
	}
	return list
}
