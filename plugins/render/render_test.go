package render

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/artpar/authorkit/core/document"
)

func sampleDoc() document.Document {
	return document.Document{
		"Name":   "Ada",
		"Skills": []string{"Assembly", "Math"},
		"Work": document.List{
			document.Document{"Company": "ACME"},
			document.Document{"Company": "Initech"},
		},
	}
}

func TestJSON(t *testing.T) {
	out, err := JSON().Formatter.Format(sampleDoc(), nil)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["Name"] != "Ada" {
		t.Errorf("Name = %v, want Ada", decoded["Name"])
	}
	if !strings.Contains(out, "\n") {
		t.Error("default output should be indented")
	}
}

func TestJSON_Compact(t *testing.T) {
	out, err := JSON().Formatter.Format(sampleDoc(), Options{Compact: true})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if strings.Contains(out, "\n") {
		t.Error("compact output should be a single line")
	}
}

func TestYAML(t *testing.T) {
	out, err := YAML().Formatter.Format(sampleDoc(), nil)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded["Name"] != "Ada" {
		t.Errorf("Name = %v, want Ada", decoded["Name"])
	}
}

func TestMarkdown(t *testing.T) {
	out, err := Markdown().Formatter.Format(sampleDoc(), Options{Title: "Profile"})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	for _, want := range []string{
		"# Profile",
		"- **Name**: Ada",
		"- **Skills**:",
		"  - Assembly",
		"## Work",
		"- **Company**: ACME",
		"- **Company**: Initech",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// repeated blocks render as separate sections in appearance order
	first := strings.Index(out, "ACME")
	second := strings.Index(out, "Initech")
	if first < 0 || second < 0 || first > second {
		t.Error("repeated blocks must keep appearance order")
	}
}

func TestMarkdown_TypedValue(t *testing.T) {
	doc := document.Document{
		"Site": document.Typed{Type: "custom", Value: "example.org"},
	}
	out, err := Markdown().Formatter.Format(doc, nil)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(out, "example.org (custom)") {
		t.Errorf("typed value not rendered: %s", out)
	}
}
