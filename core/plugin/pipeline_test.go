package plugin

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/artpar/authorkit/core/document"
)

func newTestPipeline(t *testing.T, plugins ...*Plugin) *Pipeline {
	t.Helper()
	reg := NewRegistry(zerolog.Nop())
	for _, p := range plugins {
		if err := reg.Register(p); err != nil {
			t.Fatalf("Register(%s) error = %v", p.Name, err)
		}
	}
	return NewPipeline(reg)
}

func TestPipeline_BeforeParseChaining(t *testing.T) {
	p1 := &Plugin{
		Name: "p1",
		Hooks: &Hooks{
			BeforeParse: func(text string) (string, error) {
				return strings.ToUpper(text), nil
			},
		},
	}
	p2 := &Plugin{
		Name: "p2",
		Hooks: &Hooks{
			BeforeParse: func(text string) (string, error) {
				return text + "!", nil
			},
		},
	}

	out, err := newTestPipeline(t, p1, p2).BeforeParse("abc")
	if err != nil {
		t.Fatalf("BeforeParse() error = %v", err)
	}
	if out != "ABC!" {
		t.Errorf("BeforeParse() = %q, want %q (p2 over p1's output)", out, "ABC!")
	}
}

func TestPipeline_BeforeParseError(t *testing.T) {
	p := &Plugin{
		Name: "bad",
		Hooks: &Hooks{
			BeforeParse: func(text string) (string, error) {
				return "", errors.New("boom")
			},
		},
	}

	_, err := newTestPipeline(t, p).BeforeParse("x")
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error = %T, want *Error", err)
	}
	if perr.Plugin != "bad" || perr.Code != CodeBeforeParseFailed {
		t.Errorf("got plugin=%q code=%q", perr.Plugin, perr.Code)
	}
}

func TestPipeline_OnKeyValue_NilMeansNoChange(t *testing.T) {
	noop := &Plugin{
		Name: "noop",
		Hooks: &Hooks{
			OnKeyValue: func(key string, value any, ctx *Context) (*KeyValue, error) {
				return nil, nil
			},
		},
	}
	upper := &Plugin{
		Name: "upper",
		Hooks: &Hooks{
			OnKeyValue: func(key string, value any, ctx *Context) (*KeyValue, error) {
				return &KeyValue{Key: key, Value: strings.ToUpper(value.(string))}, nil
			},
		},
	}

	key, value, err := newTestPipeline(t, noop, upper).OnKeyValue("k", "v", &Context{})
	if err != nil {
		t.Fatalf("OnKeyValue() error = %v", err)
	}
	if key != "k" || value != "V" {
		t.Errorf("OnKeyValue() = (%q, %v), want (k, V)", key, value)
	}
}

func TestPipeline_ProcessValue_NoHandler(t *testing.T) {
	out, err := newTestPipeline(t).ProcessValue("raw", "custom", &Context{})
	if err != nil {
		t.Fatalf("ProcessValue() error = %v", err)
	}
	want := document.Typed{Type: "custom", Value: "raw"}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("ProcessValue() = %v, want %v", out, want)
	}
}

func TestPipeline_ProcessValue_HandlerReplaces(t *testing.T) {
	h := &Plugin{
		Name: "h",
		Types: &TypeHandler{
			Tags: []string{"int-ish"},
			Process: func(value any, tag string, ctx *Context) (any, error) {
				return map[string]any{"tag": tag, "v": value}, nil
			},
		},
	}

	out, err := newTestPipeline(t, h).ProcessValue("42", "int-ish", &Context{})
	if err != nil {
		t.Fatalf("ProcessValue() error = %v", err)
	}
	m, ok := out.(map[string]any)
	if !ok || m["v"] != "42" {
		t.Errorf("ProcessValue() = %v, handler result must fully replace the scalar", out)
	}
}

func TestPipeline_ProcessValue_HandlerError(t *testing.T) {
	h := &Plugin{
		Name: "h",
		Types: &TypeHandler{
			Tags: []string{"x"},
			Process: func(value any, tag string, ctx *Context) (any, error) {
				return nil, errors.New("bad value")
			},
		},
	}

	_, err := newTestPipeline(t, h).ProcessValue("v", "x", &Context{})
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error = %T, want *Error", err)
	}
	if perr.Code != CodeValueProcessingFailed {
		t.Errorf("Code = %q, want %q", perr.Code, CodeValueProcessingFailed)
	}
}

func TestPipeline_Validate_ConcatenatesInOrder(t *testing.T) {
	mk := func(name string, priority int, warnings ...string) *Plugin {
		return &Plugin{
			Name:     name,
			Priority: priority,
			Validator: &Validator{
				Validate: func(doc document.Document) ([]string, error) {
					return warnings, nil
				},
			},
		}
	}

	pipe := newTestPipeline(t,
		mk("second", 1, "w2"),
		mk("first", 2, "w1a", "w1b"),
	)
	warnings, err := pipe.Validate(document.New())
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	want := []string{"w1a", "w1b", "w2"}
	if !reflect.DeepEqual(warnings, want) {
		t.Errorf("Validate() = %v, want %v", warnings, want)
	}
}

func TestPipeline_Validate_AbortsOnFailure(t *testing.T) {
	ok := &Plugin{
		Name:     "ok",
		Priority: 2,
		Validator: &Validator{
			Validate: func(doc document.Document) ([]string, error) {
				return []string{"fine"}, nil
			},
		},
	}
	bad := &Plugin{
		Name:     "bad",
		Priority: 1,
		Validator: &Validator{
			Validate: func(doc document.Document) ([]string, error) {
				return nil, errors.New("validator exploded")
			},
		},
	}

	warnings, err := newTestPipeline(t, ok, bad).Validate(document.New())
	if err == nil {
		t.Fatal("Validate() should fail when a validator errors")
	}
	if warnings != nil {
		t.Error("a failing validate call returns no warnings")
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error = %T, want *Error", err)
	}
	if perr.Plugin != "bad" || perr.Code != CodeValidationFailed {
		t.Errorf("got plugin=%q code=%q", perr.Plugin, perr.Code)
	}
}

func TestPipeline_Format(t *testing.T) {
	yaml := &Plugin{
		Name: "yaml-fmt",
		Formatter: &Formatter{
			Formats: []string{"yaml"},
			Format: func(doc document.Document, opts any) (string, error) {
				return "rendered", nil
			},
		},
	}

	pipe := newTestPipeline(t, yaml)

	out, err := pipe.Format(document.New(), "yaml", nil)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if out != "rendered" {
		t.Errorf("Format() = %q, want rendered", out)
	}

	_, err = pipe.Format(document.New(), "csv", nil)
	var ferr *FormatUnavailableError
	if !errors.As(err, &ferr) {
		t.Fatalf("error = %T, want *FormatUnavailableError", err)
	}
	if ferr.Format != "csv" {
		t.Errorf("Format = %q, the error must name the requested tag", ferr.Format)
	}
}

func TestPipeline_UnregisteredPluginStopsContributing(t *testing.T) {
	v := &Plugin{
		Name: "v",
		Validator: &Validator{
			Validate: func(doc document.Document) ([]string, error) {
				return []string{"w"}, nil
			},
		},
	}
	pipe := newTestPipeline(t, v)

	if err := pipe.Registry().Unregister("v"); err != nil {
		t.Fatalf("Unregister() error = %v", err)
	}
	warnings, err := pipe.Validate(document.New())
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none after unregistration", warnings)
	}
}
