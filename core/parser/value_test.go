package parser

import (
	"reflect"
	"testing"
)

func TestProcessValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
	}{
		{"plain scalar", "hello", "hello"},
		{"quoted scalar", `"hello world"`, "hello world"},
		{"quotes stripped once", `""quoted""`, `"quoted"`},
		{"comma list", "a, b, c", []string{"a", "b", "c"}},
		{"comma list drops empties", "a, , b,", []string{"a", "b"}},
		{"quoted then split", `"a, b"`, []string{"a", "b"}},
		{"empty value", "", ""},
		{"single quote char", `"`, `"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProcessValue(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ProcessValue(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
