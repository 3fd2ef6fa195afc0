package extract

import (
	"context"
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"
)

// translatorMethods are the property calls of a next-intl translator that
// take a message key.
var translatorMethods = map[string]bool{
	"rich":   true,
	"raw":    true,
	"html":   true,
	"markup": true,
	"has":    true,
}

// translatorType matches a parameter typed as the return value of
// useTranslations or getTranslations, capturing the namespace type argument.
var translatorType = regexp.MustCompile(`ReturnType<\s*typeof\s+(?:useTranslations|getTranslations)(?:\s*<\s*["']([^"']*)["']\s*>)?`)

// NextIntl extracts keys from next-intl call sites: translators created by
// useTranslations and getTranslations, called directly or through
// .rich/.raw/.html/.markup/.has. Keys are reported with their namespace path
// prepended.
type NextIntl struct{}

// translator is a variable bound to a translation function.
type translator struct {
	namespace string
	// keyPrefix is prepended to keys (i18next keyPrefix option).
	keyPrefix string
	dynamic   bool
}

// scope maps variable names to translators. A scope is never modified in
// place; with returns an extended copy, so bindings made inside a function
// cannot leak into sibling code.
type scope map[string]translator

func (s scope) with(name string, t translator) scope {
	next := make(scope, len(s)+1)
	for k, v := range s {
		next[k] = v
	}
	next[name] = t
	return next
}

// without returns s with name unbound, e.g. when a local variable shadows
// a translator.
func (s scope) without(name string) scope {
	if _, ok := s[name]; !ok {
		return s
	}
	next := make(scope, len(s))
	for k, v := range s {
		if k != name {
			next[k] = v
		}
	}
	return next
}

func (s scope) lookup(n *sitter.Node, src []byte) (translator, bool) {
	n = unwrap(n)
	if n == nil || n.Type() != "identifier" {
		return translator{}, false
	}
	t, ok := s[n.Content(src)]
	return t, ok
}

// Extract implements Extractor.
func (NextIntl) Extract(ctx context.Context, path string, src []byte) ([]Key, error) {
	tree, err := parseJS(ctx, path, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	w := &nextIntlWalker{path: path, src: src}
	w.visit(tree.RootNode(), scope{})
	return w.keys, nil
}

type nextIntlWalker struct {
	path string
	src  []byte
	keys []Key
}

// visit walks n and returns the scope visible to the nodes after it.
func (w *nextIntlWalker) visit(n *sitter.Node, sc scope) scope {
	switch {
	case n.Type() == "comment":
		w.comment(n, sc)
		return sc
	case isFunction(n):
		w.children(n, w.params(n, sc))
		return sc
	case n.Type() == "statement_block":
		w.children(n, sc)
		return sc
	case n.Type() == "call_expression":
		w.call(n, sc)
	case n.Type() == "variable_declarator":
		return w.bind(n, w.children(n, sc))
	}
	return w.children(n, sc)
}

func (w *nextIntlWalker) children(n *sitter.Node, sc scope) scope {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		sc = w.visit(n.NamedChild(i), sc)
	}
	return sc
}

// newTranslator recognizes useTranslations(ns), getTranslations(ns) and
// getTranslations({namespace}), with or without await.
func (w *nextIntlWalker) newTranslator(n *sitter.Node) (translator, bool) {
	n = unwrap(n)
	if n != nil && n.Type() == "await_expression" {
		n = unwrap(n.NamedChild(0))
	}
	if n == nil || n.Type() != "call_expression" {
		return translator{}, false
	}
	switch calleeName(n.ChildByFieldName("function"), w.src) {
	case "useTranslations", "getTranslations":
	default:
		return translator{}, false
	}
	args := arguments(n)
	if len(args) == 0 {
		return translator{}, true
	}
	if ns, ok := stringValue(args[0], w.src); ok {
		return translator{namespace: ns}, true
	}
	if props := objectProps(args[0], w.src); props != nil {
		v, ok := props["namespace"]
		if !ok {
			return translator{}, true
		}
		if ns, ok := stringValue(v, w.src); ok {
			return translator{namespace: ns}, true
		}
	}
	return translator{dynamic: true}, true
}

func (w *nextIntlWalker) bind(decl *sitter.Node, sc scope) scope {
	name := decl.ChildByFieldName("name")
	value := unwrap(decl.ChildByFieldName("value"))
	if name == nil || value == nil {
		return sc
	}

	switch name.Type() {
	case "identifier":
		if t, ok := w.newTranslator(value); ok {
			return sc.with(name.Content(w.src), t)
		}
		if t, ok := sc.lookup(value, w.src); ok {
			return sc.with(name.Content(w.src), t)
		}
		return sc.without(name.Content(w.src))
	case "array_pattern":
		// const [data, t] = await Promise.all([load(), getTranslations("ns")])
		if value.Type() == "await_expression" {
			value = unwrap(value.NamedChild(0))
		}
		if value == nil || value.Type() != "call_expression" ||
			calleeName(value.ChildByFieldName("function"), w.src) != "Promise.all" {
			return sc
		}
		args := arguments(value)
		if len(args) == 0 || unwrap(args[0]).Type() != "array" {
			return sc
		}
		elems := namedNonComments(unwrap(args[0]))
		targets := namedNonComments(name)
		for i, target := range targets {
			if i >= len(elems) || target.Type() != "identifier" {
				continue
			}
			if t, ok := w.newTranslator(elems[i]); ok {
				sc = sc.with(target.Content(w.src), t)
			}
		}
	}
	return sc
}

// params binds function parameters typed as translators.
func (w *nextIntlWalker) params(fn *sitter.Node, sc scope) scope {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return sc
	}
	for _, p := range namedNonComments(params) {
		pattern := p.ChildByFieldName("pattern")
		typ := p.ChildByFieldName("type")
		if pattern == nil || typ == nil {
			continue
		}
		switch pattern.Type() {
		case "identifier":
			if m := translatorType.FindStringSubmatch(typ.Content(w.src)); m != nil {
				sc = sc.with(pattern.Content(w.src), translator{namespace: m[1]})
			}
		case "object_pattern":
			typeText := typ.Content(w.src)
			for _, prop := range namedNonComments(pattern) {
				if prop.Type() != "shorthand_property_identifier_pattern" {
					continue
				}
				name := prop.Content(w.src)
				re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*\??\s*:\s*` + translatorType.String())
				if m := re.FindStringSubmatch(typeText); m != nil {
					sc = sc.with(name, translator{namespace: m[1]})
				}
			}
		}
	}
	return sc
}

func (w *nextIntlWalker) call(call *sitter.Node, sc scope) {
	fn := unwrap(call.ChildByFieldName("function"))
	if fn == nil {
		return
	}

	var t translator
	var ok bool
	switch fn.Type() {
	case "identifier":
		t, ok = sc.lookup(fn, w.src)
	case "call_expression":
		// useTranslations("ns")("key")
		t, ok = w.newTranslator(fn)
	case "member_expression":
		prop := fn.ChildByFieldName("property")
		if prop == nil || !translatorMethods[prop.Content(w.src)] {
			return
		}
		obj := fn.ChildByFieldName("object")
		if t, ok = sc.lookup(obj, w.src); !ok {
			t, ok = w.newTranslator(obj)
		}
	}
	if !ok {
		return
	}

	args := arguments(call)
	if len(args) == 0 {
		return
	}
	key, isStatic := concatValue(args[0], w.src)
	if !isStatic {
		return
	}
	w.keys = append(w.keys, Key{
		Key:     joinKey(t.namespace, key),
		File:    w.path,
		Line:    line(call),
		Dynamic: t.dynamic,
	})
}

func (w *nextIntlWalker) comment(n *sitter.Node, sc scope) {
	t := sc["t"]
	for _, key := range commentKeys(n.Content(w.src)) {
		w.keys = append(w.keys, Key{
			Key:     joinKey(t.namespace, key),
			File:    w.path,
			Line:    line(n),
			Dynamic: t.dynamic,
		})
	}
}

// joinKey prefixes key with a dot-separated namespace path.
func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func namedNonComments(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() != "comment" {
			out = append(out, c)
		}
	}
	return out
}
