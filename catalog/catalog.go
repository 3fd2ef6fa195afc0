// Package catalog models translation catalogs: the ordered nested documents
// read from JSON, YAML and TOML files, and the flat dot-path translations
// produced from them.
//
// Key order from the file is preserved everywhere so that check results list
// keys in the order a translator sees them in the source catalog.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Document is an ordered, possibly nested key/value tree.
//
// Leaf values are string, bool, nil, int64, float64 or []any. Nested objects
// are *Document.
type Document struct {
	keys   []string
	values map[string]any
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{values: make(map[string]any)}
}

// Set stores v under key. A new key is appended to the key order; an existing
// key keeps its position.
func (d *Document) Set(key string, v any) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// Get returns the value stored under key.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Keys returns the keys in document order.
func (d *Document) Keys() []string {
	return d.keys
}

// Len returns the number of top-level keys.
func (d *Document) Len() int {
	return len(d.keys)
}

// child returns the nested document stored under key, creating it when the
// key is absent or holds a leaf.
func (d *Document) child(key string) *Document {
	if v, ok := d.values[key]; ok {
		if sub, ok := v.(*Document); ok {
			return sub
		}
	}
	sub := NewDocument()
	d.Set(key, sub)
	return sub
}

// setPath stores v under the nested path, creating intermediate documents.
func (d *Document) setPath(path []string, v any) {
	cur := d
	for _, p := range path[:len(path)-1] {
		cur = cur.child(p)
	}
	cur.Set(path[len(path)-1], v)
}

// Translation is a flat mapping from dot-path keys to message strings,
// iterated in insertion order.
type Translation struct {
	keys   []string
	values map[string]string
}

// NewTranslation returns an empty translation.
func NewTranslation() *Translation {
	return &Translation{values: make(map[string]string)}
}

// FromPairs builds a translation from alternating key/value arguments.
// It panics on an odd number of arguments.
func FromPairs(kv ...string) *Translation {
	if len(kv)%2 != 0 {
		panic("catalog.FromPairs: odd number of arguments")
	}
	t := NewTranslation()
	for i := 0; i < len(kv); i += 2 {
		t.Set(kv[i], kv[i+1])
	}
	return t
}

// Set stores value under key, appending key to the order if it is new.
func (t *Translation) Set(key, value string) {
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// Get returns the message for key.
func (t *Translation) Get(key string) (string, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Has reports whether key is defined.
func (t *Translation) Has(key string) bool {
	_, ok := t.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (t *Translation) Keys() []string {
	return t.keys
}

// Len returns the number of keys.
func (t *Translation) Len() int {
	return len(t.keys)
}

// Filter returns a new translation holding only the keys keep accepts.
func (t *Translation) Filter(keep func(key string) bool) *Translation {
	out := NewTranslation()
	for _, k := range t.keys {
		if keep(k) {
			out.Set(k, t.values[k])
		}
	}
	return out
}

// Document returns t as a single-level document.
func (t *Translation) Document() *Document {
	d := NewDocument()
	for _, k := range t.keys {
		d.Set(k, t.values[k])
	}
	return d
}

// Flatten converts a nested document into a flat translation whose keys are
// the dot-joined paths to every leaf. Arrays are leaves and are not iterated.
func Flatten(doc *Document) *Translation {
	if doc == nil {
		return NewTranslation()
	}
	if !hasNested(doc) {
		out := &Translation{
			keys:   make([]string, 0, len(doc.keys)),
			values: make(map[string]string, len(doc.keys)),
		}
		for _, k := range doc.keys {
			out.Set(k, leafString(doc.values[k]))
		}
		return out
	}
	out := NewTranslation()
	flattenInto(out, doc, "")
	return out
}

func hasNested(doc *Document) bool {
	for _, v := range doc.values {
		if _, ok := v.(*Document); ok {
			return true
		}
	}
	return false
}

func flattenInto(out *Translation, doc *Document, prefix string) {
	for _, k := range doc.keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if sub, ok := doc.values[k].(*Document); ok {
			flattenInto(out, sub, path)
			continue
		}
		out.Set(path, leafString(doc.values[k]))
	}
}

// leafString renders a leaf value the way it reads in the catalog file.
func leafString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = leafString(e)
		}
		return strings.Join(parts, ",")
	case *Document:
		return "[object]"
	default:
		return fmt.Sprint(x)
	}
}
