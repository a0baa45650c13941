// Package document defines the parsed representation of an author file:
// a nested key/value mapping with repeated-key and repeated-block lists.
package document

// Document is the root mapping produced by a parse. Keys are
// case-sensitive. Values are one of: string, []string (comma lists),
// Typed, Document (a nested block), or List (repeated keys/blocks).
type Document map[string]any

// List holds the values of a key that appeared more than once at the
// same scope, in appearance order. It is distinct from []string so that
// a comma-list value is never confused with a repeated key.
type List []any

// Typed is the value of a key declared as Key@Type when no type handler
// is registered for the tag, or whatever shape a handler chooses to
// return through it.
type Typed struct {
	Type  string `json:"type" yaml:"type"`
	Value any    `json:"value" yaml:"value"`
}

// New creates an empty document.
func New() Document {
	return make(Document)
}

// Set assigns value under key using the collision rule: the first
// occurrence stores the value itself, the second promotes it to a
// two-element List, and each further occurrence appends. The rule is
// applied identically to scalars, typed values, and nested blocks.
func (d Document) Set(key string, value any) {
	cur, ok := d[key]
	if !ok {
		d[key] = value
		return
	}
	if l, isList := cur.(List); isList {
		d[key] = append(l, value)
		return
	}
	d[key] = List{cur, value}
}

// Get returns the value stored under key.
func (d Document) Get(key string) (any, bool) {
	v, ok := d[key]
	return v, ok
}

// Blocks returns the block documents stored under key, normalizing the
// single-occurrence case to a one-element slice. It returns nil if the
// key is absent or holds no block values.
func (d Document) Blocks(key string) []Document {
	v, ok := d[key]
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case Document:
		return []Document{t}
	case List:
		blocks := make([]Document, 0, len(t))
		for _, item := range t {
			if b, isDoc := item.(Document); isDoc {
				blocks = append(blocks, b)
			}
		}
		if len(blocks) == 0 {
			return nil
		}
		return blocks
	default:
		return nil
	}
}

// Keys returns the document's keys in unspecified order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	return keys
}
