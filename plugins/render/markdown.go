package render

import (
	"fmt"
	"strings"

	"github.com/artpar/authorkit/core/document"
	"github.com/artpar/authorkit/core/plugin"
)

// Markdown returns the built-in markdown formatter plugin. Blocks
// become headed sections, repeated keys and comma lists become bullet
// lists, scalars become bold-keyed lines.
func Markdown() *plugin.Plugin {
	return &plugin.Plugin{
		Name:        "markdown-renderer",
		Version:     "1.0.0",
		Description: "Renders documents as Markdown",
		Formatter: &plugin.Formatter{
			Formats: []string{"markdown", "md"},
			Format:  formatMarkdown,
		},
	}
}

func formatMarkdown(doc document.Document, opts any) (string, error) {
	var b strings.Builder
	if title := options(opts).Title; title != "" {
		fmt.Fprintf(&b, "# %s\n\n", title)
	}
	writeSection(&b, doc, 2)
	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

func writeSection(b *strings.Builder, doc document.Document, level int) {
	keys := sortedKeys(doc)

	// scalars first, blocks after, so a section's fields stay together
	for _, key := range keys {
		if isBlockValue(doc[key]) {
			continue
		}
		writeField(b, key, doc[key])
	}
	for _, key := range keys {
		if !isBlockValue(doc[key]) {
			continue
		}
		for _, block := range doc.Blocks(key) {
			fmt.Fprintf(b, "\n%s %s\n\n", strings.Repeat("#", level), key)
			writeSection(b, block, level+1)
		}
	}
}

func writeField(b *strings.Builder, key string, value any) {
	switch v := value.(type) {
	case []string:
		fmt.Fprintf(b, "- **%s**:\n", key)
		for _, item := range v {
			fmt.Fprintf(b, "  - %s\n", item)
		}
	case document.List:
		fmt.Fprintf(b, "- **%s**:\n", key)
		for _, item := range v {
			fmt.Fprintf(b, "  - %s\n", scalarText(item))
		}
	default:
		fmt.Fprintf(b, "- **%s**: %s\n", key, scalarText(value))
	}
}

func isBlockValue(value any) bool {
	switch v := value.(type) {
	case document.Document:
		return true
	case document.List:
		// a repeated block key holds only documents
		for _, item := range v {
			if _, ok := item.(document.Document); !ok {
				return false
			}
		}
		return len(v) > 0
	default:
		return false
	}
}

func scalarText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case document.Typed:
		return fmt.Sprintf("%v (%s)", v.Value, v.Type)
	case []string:
		return strings.Join(v, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
