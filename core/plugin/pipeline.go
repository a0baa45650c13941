package plugin

import (
	"github.com/artpar/authorkit/core/document"
)

// Pipeline orchestrates registry-held plugins at the five parse-cycle
// extension points plus validation and formatting. Every failure
// raised inside a plugin is re-wrapped as an *Error carrying the
// plugin's name and the invocation-point code.
type Pipeline struct {
	reg *Registry
}

// NewPipeline creates a pipeline over the given registry.
func NewPipeline(reg *Registry) *Pipeline {
	return &Pipeline{reg: reg}
}

// Registry returns the underlying registry.
func (p *Pipeline) Registry() *Registry {
	return p.reg
}

// BeforeParse chains every parse-hook plugin implementing BeforeParse
// in registry order, each receiving the previous one's output.
func (p *Pipeline) BeforeParse(text string) (string, error) {
	for _, pl := range p.reg.ParseHooks() {
		if pl.Hooks.BeforeParse == nil {
			continue
		}
		out, err := pl.Hooks.BeforeParse(text)
		if err != nil {
			return "", wrapErr(pl.Name, CodeBeforeParseFailed, err)
		}
		text = out
	}
	return text, nil
}

// AfterParse chains every parse-hook plugin implementing AfterParse
// over the assembled document, in registry order.
func (p *Pipeline) AfterParse(doc document.Document) (document.Document, error) {
	for _, pl := range p.reg.ParseHooks() {
		if pl.Hooks.AfterParse == nil {
			continue
		}
		out, err := pl.Hooks.AfterParse(doc)
		if err != nil {
			return nil, wrapErr(pl.Name, CodeAfterParseFailed, err)
		}
		doc = out
	}
	return doc, nil
}

// OnBlockStart notifies every parse-hook plugin of a Begin line before
// the block stack mutates. Any error aborts the parse.
func (p *Pipeline) OnBlockStart(name string, ctx *Context) error {
	for _, pl := range p.reg.ParseHooks() {
		if pl.Hooks.OnBlockStart == nil {
			continue
		}
		if err := pl.Hooks.OnBlockStart(name, ctx); err != nil {
			return wrapErr(pl.Name, CodeBlockStartFailed, err)
		}
	}
	return nil
}

// OnBlockEnd notifies every parse-hook plugin of an End line before
// the block stack pops.
func (p *Pipeline) OnBlockEnd(name string, ctx *Context) error {
	for _, pl := range p.reg.ParseHooks() {
		if pl.Hooks.OnBlockEnd == nil {
			continue
		}
		if err := pl.Hooks.OnBlockEnd(name, ctx); err != nil {
			return wrapErr(pl.Name, CodeBlockEndFailed, err)
		}
	}
	return nil
}

// OnKeyValue chains every parse-hook plugin implementing OnKeyValue.
// Each hook may return a replacement pair, which feeds the next hook;
// a nil return passes the prior pair through unchanged. The final pair
// is what gets assigned into the current frame.
func (p *Pipeline) OnKeyValue(key string, value any, ctx *Context) (string, any, error) {
	for _, pl := range p.reg.ParseHooks() {
		if pl.Hooks.OnKeyValue == nil {
			continue
		}
		kv, err := pl.Hooks.OnKeyValue(key, value, ctx)
		if err != nil {
			return "", nil, wrapErr(pl.Name, CodeKeyValueFailed, err)
		}
		if kv != nil {
			key, value = kv.Key, kv.Value
		}
	}
	return key, value, nil
}

// ProcessValue resolves a type annotation. Exactly one type handler is
// selected by exact tag match; its result fully replaces the scalar.
// With no handler registered for the tag, the value is stored as the
// literal {type, value} pair.
func (p *Pipeline) ProcessValue(value any, tag string, ctx *Context) (any, error) {
	pl, ok := p.reg.TypeHandler(tag)
	if !ok {
		return document.Typed{Type: tag, Value: value}, nil
	}
	out, err := pl.Types.Process(value, tag, ctx)
	if err != nil {
		return nil, wrapErr(pl.Name, CodeValueProcessingFailed, err)
	}
	return out, nil
}

// Validate runs every validator plugin over the document in registry
// order and concatenates their warnings. The first validator that
// fails aborts the whole call as a plugin error; warnings are never
// errors.
func (p *Pipeline) Validate(doc document.Document) ([]string, error) {
	var warnings []string
	for _, pl := range p.reg.Validators() {
		w, err := pl.Validator.Validate(doc)
		if err != nil {
			return nil, wrapErr(pl.Name, CodeValidationFailed, err)
		}
		warnings = append(warnings, w...)
	}
	return warnings, nil
}

// Format renders the document with the formatter registered for the
// requested tag. A missing formatter is a *FormatUnavailableError.
func (p *Pipeline) Format(doc document.Document, format string, opts any) (string, error) {
	pl, ok := p.reg.FormatterFor(format)
	if !ok {
		return "", &FormatUnavailableError{Format: format}
	}
	out, err := pl.Formatter.Format(doc, opts)
	if err != nil {
		return "", wrapErr(pl.Name, CodeFormattingFailed, err)
	}
	return out, nil
}
