// Package plugin implements the extension system of the author file
// parser: a registry that classifies plugins by declared capability and
// a pipeline that invokes them in a fixed order during parsing,
// validation, and output formatting.
package plugin

import (
	"github.com/artpar/authorkit/core/document"
)

// Plugin is one registered extension. A plugin declares its
// capabilities explicitly by populating one or more of the capability
// slots (Types, Validator, Formatter, Hooks); the registry classifies
// it from those slots alone, never by probing behavior.
type Plugin struct {
	// Name uniquely identifies the plugin in the registry. Registering
	// a second plugin under the same name replaces the first one's
	// bookkeeping.
	Name        string
	Version     string
	Description string
	Author      string
	Homepage    string

	// Priority orders validator and parse-hook invocation: higher runs
	// first, ties resolve by registration order.
	Priority int

	// Init is called once at registration. A failure aborts the
	// registration and the plugin is not retained.
	Init func() error

	// Destroy is called at unregistration. Failures are logged, never
	// propagated, so one plugin's teardown cannot block another's.
	Destroy func() error

	// Capability slots. A nil slot means the capability is absent.
	Types     *TypeHandler
	Validator *Validator
	Formatter *Formatter
	Hooks     *Hooks
}

// TypeHandler processes values of keys annotated as Key@Type for the
// declared tags. Exactly one handler is selected per tag (last
// registered for that tag wins).
type TypeHandler struct {
	// Tags lists the type tags this handler claims.
	Tags []string

	// Process transforms the quote/comma-processed value. Its result
	// fully replaces the scalar in the document.
	Process func(value any, tag string, ctx *Context) (any, error)

	// ValidateValue optionally checks a processed value and returns
	// warnings. The pipeline never invokes it: once Process has run, the
	// stored value no longer carries its tag, so there is nothing to map
	// it back to a handler. It is exposed for callers that look the
	// handler up through the registry and hold both value and tag.
	ValidateValue func(value any, tag string) ([]string, error)
}

// Validator inspects a fully assembled document and returns
// human-readable warnings. Validators must not mutate the document.
type Validator struct {
	Validate func(doc document.Document) ([]string, error)
}

// Formatter renders a document to one output format per declared tag.
type Formatter struct {
	// Formats lists the output-format tags this formatter claims.
	Formats []string

	Format func(doc document.Document, opts any) (string, error)
}

// Hooks are the parse-stage extension points. Every member is
// optional; the pipeline invokes only the ones that are present.
type Hooks struct {
	// BeforeParse rewrites the raw input before the line loop starts.
	// Hooks chain: each receives the previous one's output.
	BeforeParse func(text string) (string, error)

	// AfterParse rewrites the assembled document, chained the same way.
	AfterParse func(doc document.Document) (document.Document, error)

	// OnKeyValue may replace the (key, value) pair about to be
	// assigned. Returning nil means "no change" and passes the prior
	// pair to the next hook unchanged.
	OnKeyValue func(key string, value any, ctx *Context) (*KeyValue, error)

	// OnBlockStart and OnBlockEnd observe Begin/End lines before the
	// block stack mutates. Any error aborts the parse.
	OnBlockStart func(name string, ctx *Context) error
	OnBlockEnd   func(name string, ctx *Context) error
}

// KeyValue is a replacement pair returned by an OnKeyValue hook.
type KeyValue struct {
	Key   string
	Value any
}

// Context carries the parse position into hook and handler calls.
type Context struct {
	// Line is the 1-based line number being processed.
	Line int

	// Path holds the names of the currently open blocks, outermost
	// first. Empty at document root.
	Path []string
}

// roles returns which capability slots the plugin populates.
// At least one is required for registration.
func (p *Plugin) roles() []string {
	var roles []string
	if p.Types != nil {
		roles = append(roles, "type-handler")
	}
	if p.Validator != nil {
		roles = append(roles, "validator")
	}
	if p.Formatter != nil {
		roles = append(roles, "formatter")
	}
	if p.Hooks != nil {
		roles = append(roles, "parse-hook")
	}
	return roles
}
