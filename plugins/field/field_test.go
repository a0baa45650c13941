package field

import (
	"strings"
	"testing"

	"github.com/artpar/authorkit/core/plugin"
)

func process(t *testing.T, p *plugin.Plugin, value any, tag string) (any, error) {
	t.Helper()
	return p.Types.Process(value, tag, &plugin.Context{})
}

func TestURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"https://example.org/x", "https://example.org/x", false},
		{"example.org", "https://example.org", false},
		{"http://example.org", "http://example.org", false},
		{"://nope", "", true},
	}
	p := URL()
	for _, tt := range tests {
		got, err := process(t, p, tt.in, "url")
		if tt.wantErr {
			if err == nil {
				t.Errorf("Process(%q) should fail", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Process(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Process(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestURL_RejectsList(t *testing.T) {
	if _, err := process(t, URL(), []string{"a.org", "b.org"}, "url"); err == nil {
		t.Error("a typed key should reject a comma list")
	}
}

func TestURL_ValidateValue(t *testing.T) {
	warnings, err := URL().Types.ValidateValue("http://example.org", "url")
	if err != nil {
		t.Fatalf("ValidateValue() error = %v", err)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want one plain-http warning", warnings)
	}
}

func TestEmail(t *testing.T) {
	got, err := process(t, Email(), "Ada@Example.ORG", "email")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got != "ada@example.org" {
		t.Errorf("Process() = %v, want lowercased address", got)
	}

	if _, err := process(t, Email(), "not-an-email", "email"); err == nil {
		t.Error("Process() should reject a malformed address")
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2021-03-14", "2021-03-14"},
		{"2021/03/14", "2021-03-14"},
		{"March 14, 2021", "2021-03-14"},
		{"2021", "2021-01-01"},
	}
	p := Date()
	for _, tt := range tests {
		got, err := process(t, p, tt.in, "date")
		if err != nil {
			t.Errorf("Process(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Process(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := process(t, p, "yesterday-ish", "date"); err == nil {
		t.Error("Process() should reject an unrecognized date")
	}
}

func TestPhone(t *testing.T) {
	got, err := process(t, Phone(), "+1 (415) 555-0199", "phone")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got != "+14155550199" {
		t.Errorf("Process() = %v, want +14155550199", got)
	}

	for _, bad := range []string{"call me", "12"} {
		if _, err := process(t, Phone(), bad, "phone"); err == nil {
			t.Errorf("Process(%q) should fail", bad)
		}
	}
}

func TestGitHub(t *testing.T) {
	p := GitHub()
	for _, in := range []string{"octocat", "@octocat", "https://github.com/octocat", "github.com/octocat/"} {
		got, err := process(t, p, in, "github")
		if err != nil {
			t.Fatalf("Process(%q) error = %v", in, err)
		}
		m, ok := got.(map[string]any)
		if !ok {
			t.Fatalf("Process(%q) = %T, want map", in, got)
		}
		if m["username"] != "octocat" {
			t.Errorf("username = %v, want octocat", m["username"])
		}
		if !strings.HasSuffix(m["url"].(string), "/octocat") {
			t.Errorf("url = %v", m["url"])
		}
	}

	for _, bad := range []string{"", "-leading", "trailing-", "has spaces"} {
		if _, err := process(t, p, bad, "github"); err == nil {
			t.Errorf("Process(%q) should fail", bad)
		}
	}
}
