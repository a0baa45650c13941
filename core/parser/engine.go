// Package parser turns author-file text into a nested document. The
// engine is a line-oriented state machine with two states: Normal,
// where lines are classified as comments, Begin/End block markers, or
// key/value statements, and InMultiline, where lines accumulate until
// the closing triple-quote marker.
package parser

import (
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/artpar/authorkit/core/document"
	"github.com/artpar/authorkit/core/plugin"
)

const multilineMarker = `"""`

// Engine parses author-file text, consulting the plugin pipeline at
// every extension point. An Engine is stateless across Parse calls;
// all parse state lives on the stack of a single call.
type Engine struct {
	pipeline *plugin.Pipeline
	logger   zerolog.Logger
}

// New creates an engine over the given pipeline. A nil pipeline gets
// an empty registry, which leaves every extension point a no-op.
func New(pipeline *plugin.Pipeline, logger zerolog.Logger) *Engine {
	if pipeline == nil {
		pipeline = plugin.NewPipeline(plugin.NewRegistry(logger))
	}
	return &Engine{pipeline: pipeline, logger: logger}
}

// Pipeline returns the engine's plugin pipeline.
func (e *Engine) Pipeline() *plugin.Pipeline {
	return e.pipeline
}

// multiline is the InMultiline accumulator: the pending key, the
// buffered fragments, and the line the opening marker appeared on.
type multiline struct {
	key       string
	buf       []string
	startLine int
}

// Parse runs the full parse cycle: beforeParse preprocessing, the line
// loop, and afterParse postprocessing. It returns a StructuralError
// for malformed input and a plugin.Error for a failing hook.
func (e *Engine) Parse(input string) (document.Document, error) {
	text, err := e.pipeline.BeforeParse(input)
	if err != nil {
		return nil, err
	}

	root := document.New()
	frames := []document.Document{root}
	var names []string
	var ml *multiline

	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		lineNo := i + 1

		if ml != nil {
			if closed, remainder := splitClosingMarker(line); closed {
				if remainder != "" {
					ml.buf = append(ml.buf, remainder)
				}
				joined := strings.TrimSpace(strings.Join(ml.buf, "\n"))
				ctx := e.contextAt(lineNo, names)
				key, value, err := e.pipeline.OnKeyValue(ml.key, joined, ctx)
				if err != nil {
					return nil, err
				}
				frames[len(frames)-1].Set(key, value)
				ml = nil
			} else {
				ml.buf = append(ml.buf, line)
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if name, ok := keywordArg(trimmed, "begin"); ok {
			if err := e.pipeline.OnBlockStart(name, e.contextAt(lineNo, names)); err != nil {
				return nil, err
			}
			child := document.New()
			frames[len(frames)-1].Set(name, child)
			frames = append(frames, child)
			names = append(names, name)
			continue
		}

		if name, ok := keywordArg(trimmed, "end"); ok {
			if err := e.pipeline.OnBlockEnd(name, e.contextAt(lineNo, names)); err != nil {
				return nil, err
			}
			if len(names) == 0 {
				return nil, structuralf(lineNo, line, "End %q with no open blocks", name)
			}
			if open := names[len(names)-1]; open != name {
				return nil, structuralf(lineNo, line, "End %q does not match open block %q", name, open)
			}
			names = names[:len(names)-1]
			frames = frames[:len(frames)-1]
			continue
		}

		ml, err = e.statement(frames, names, lineNo, line, trimmed)
		if err != nil {
			return nil, err
		}
	}

	lastLine := len(lines)
	if ml != nil {
		return nil, structuralf(lastLine, "", "unclosed multiline value for key %q (opened on line %d)", ml.key, ml.startLine)
	}
	if len(names) > 0 {
		return nil, structuralf(lastLine, "", "unclosed block(s): %s", strings.Join(names, ", "))
	}

	doc, err := e.pipeline.AfterParse(root)
	if err != nil {
		return nil, err
	}
	e.logger.Debug().Int("lines", len(lines)).Int("keys", len(doc)).Msg("parse complete")
	return doc, nil
}

// statement handles one key/value line in Normal state. It returns a
// non-nil multiline accumulator when the value opens a multiline.
func (e *Engine) statement(frames []document.Document, names []string, lineNo int, line, trimmed string) (*multiline, error) {
	colon := strings.Index(trimmed, ":")
	if colon < 0 {
		return nil, structuralf(lineNo, line, "missing colon in statement")
	}

	keyPart := strings.TrimSpace(trimmed[:colon])
	if keyPart == "" {
		return nil, structuralf(lineNo, line, "empty key")
	}

	key := keyPart
	var tag string
	switch strings.Count(keyPart, "@") {
	case 0:
	case 1:
		at := strings.Index(keyPart, "@")
		key = strings.TrimSpace(keyPart[:at])
		tag = strings.TrimSpace(keyPart[at+1:])
		if key == "" {
			return nil, structuralf(lineNo, line, "empty key in type annotation")
		}
		if tag == "" {
			return nil, structuralf(lineNo, line, "empty type in annotation for key %q", key)
		}
	default:
		return nil, structuralf(lineNo, line, "malformed type annotation: more than one @ in key %q", keyPart)
	}

	raw := strings.TrimSpace(trimmed[colon+1:])

	if strings.HasPrefix(raw, multilineMarker) {
		ml := &multiline{key: key, startLine: lineNo}
		if rest := raw[len(multilineMarker):]; rest != "" {
			ml.buf = append(ml.buf, rest)
		}
		return ml, nil
	}

	ctx := e.contextAt(lineNo, names)
	value := ProcessValue(raw)

	if tag != "" {
		processed, err := e.pipeline.ProcessValue(value, tag, ctx)
		if err != nil {
			return nil, err
		}
		value = processed
	}

	key, value, err := e.pipeline.OnKeyValue(key, value, ctx)
	if err != nil {
		return nil, err
	}
	frames[len(frames)-1].Set(key, value)
	return nil, nil
}

// contextAt snapshots the parse position for a hook call. The path is
// copied so a plugin holding on to it cannot see later stack mutation.
func (e *Engine) contextAt(line int, names []string) *plugin.Context {
	return &plugin.Context{Line: line, Path: append([]string(nil), names...)}
}

// keywordArg matches a case-insensitive keyword followed by at least
// one space and a non-empty argument, returning the trimmed argument.
func keywordArg(line, keyword string) (string, bool) {
	if len(line) <= len(keyword) {
		return "", false
	}
	if !strings.EqualFold(line[:len(keyword)], keyword) {
		return "", false
	}
	rest := line[len(keyword):]
	if !unicode.IsSpace(rune(rest[0])) {
		return "", false
	}
	name := strings.TrimSpace(rest)
	if name == "" {
		return "", false
	}
	return name, true
}

// splitClosingMarker tests a multiline body line for a trailing close
// marker, returning the line content before the marker when found.
func splitClosingMarker(line string) (bool, string) {
	t := strings.TrimRight(line, " \t")
	if !strings.HasSuffix(t, multilineMarker) {
		return false, ""
	}
	return true, strings.TrimSuffix(t, multilineMarker)
}
