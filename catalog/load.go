package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Extensions lists the catalog file extensions Load understands.
var Extensions = []string{".json", ".arb", ".yaml", ".yml", ".toml"}

// IsCatalog reports whether path has a supported catalog extension.
func IsCatalog(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load reads a catalog file from fs and flattens it.
func Load(fs afero.Fs, path string) (*Translation, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return Flatten(doc), nil
}

// Parse decodes catalog data according to the file extension ext
// (".json", ".arb", ".yaml", ".yml" or ".toml").
func Parse(data []byte, ext string) (*Document, error) {
	switch strings.ToLower(ext) {
	case ".json":
		return ParseJSON(data)
	case ".arb":
		return ParseARB(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	default:
		return nil, fmt.Errorf("unsupported catalog extension %q", ext)
	}
}

// ParseARB decodes a Flutter Application Resource Bundle. ARB files are
// JSON objects whose "@"-prefixed entries ("@@locale", "@greeting") carry
// metadata rather than messages; they are dropped.
func ParseARB(data []byte) (*Document, error) {
	raw, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}
	doc := NewDocument()
	for _, k := range raw.Keys() {
		if strings.HasPrefix(k, "@") {
			continue
		}
		v, _ := raw.Get(k)
		doc.Set(k, v)
	}
	return doc, nil
}

// ---------------------------------------------------------------------------
// JSON
// ---------------------------------------------------------------------------

// ParseJSON decodes a JSON object, preserving key order via token streaming.
func ParseJSON(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	t, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return NewDocument(), nil
		}
		return nil, err
	}
	if delim, ok := t.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected {, got %v", t)
	}
	doc, err := decodeObject(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level object")
	}
	return doc, nil
}

// decodeObject reads members until the closing brace. The opening brace has
// already been consumed.
func decodeObject(dec *json.Decoder) (*Document, error) {
	doc := NewDocument()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %T", kt)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		doc.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	t, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch x := t.(type) {
	case json.Delim:
		switch x {
		case '{':
			return decodeObject(dec)
		case '[':
			var arr []any
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", x)
	case json.Number:
		return x.String(), nil
	default:
		// string, bool or nil
		return x, nil
	}
}

// ---------------------------------------------------------------------------
// YAML
// ---------------------------------------------------------------------------

// ParseYAML decodes a YAML mapping, preserving key order by walking the
// yaml.Node tree.
func ParseYAML(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	// yaml.Unmarshal wraps the document in a DocumentNode.
	if root.Kind == 0 || len(root.Content) == 0 {
		return NewDocument(), nil
	}
	top := resolveAlias(root.Content[0])
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("YAML root must be a mapping, got kind %d", top.Kind)
	}
	return yamlMapping(top)
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func yamlMapping(n *yaml.Node) (*Document, error) {
	doc := NewDocument()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		v, err := yamlValue(n.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		doc.Set(key, v)
	}
	return doc, nil
}

func yamlValue(n *yaml.Node) (any, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		return yamlMapping(n)
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}
		return n.Value, nil
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d", n.Kind)
	}
}

// ---------------------------------------------------------------------------
// TOML
// ---------------------------------------------------------------------------

// ParseTOML decodes a TOML document. Key order follows the order in which
// keys appear in the file.
func ParseTOML(data []byte) (*Document, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}
	doc := NewDocument()
	for _, key := range md.Keys() {
		path := []string(key)
		v, ok := lookupPath(raw, path)
		if !ok {
			// keys inside arrays of tables
			continue
		}
		if _, isTable := v.(map[string]any); isTable {
			ensurePath(doc, path)
			continue
		}
		doc.setPath(path, tomlLeaf(v))
	}
	return doc, nil
}

func lookupPath(m map[string]any, path []string) (any, bool) {
	var cur any = m
	for _, p := range path {
		mm, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = mm[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func ensurePath(doc *Document, path []string) {
	cur := doc
	for _, p := range path {
		cur = cur.child(p)
	}
}

func tomlLeaf(v any) any {
	switch x := v.(type) {
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = tomlLeaf(e)
		}
		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = "[object]"
		}
		return out
	default:
		return x
	}
}
