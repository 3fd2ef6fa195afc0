package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// I18Next extracts keys the way i18next-parser does for react-i18next code:
// t() calls (including i18n.t and props.t), translators bound by
// useTranslation, withTranslation and getFixedT, <Trans> components, and
// static key hints written in comments.
type I18Next struct {
	// Functions are the translation function names. Defaults to "t".
	Functions []string
	// Components are additional JSX components treated like <Trans>.
	Components []string
}

// NewI18Next returns an I18Next extractor that also treats the given
// components like <Trans>.
func NewI18Next(components []string) *I18Next {
	return &I18Next{Components: components}
}

// tFunctionType matches a parameter typed as TFunction<"ns">.
var tFunctionType = regexp.MustCompile(`TFunction(?:\s*<\s*["']([^"']*)["'])?`)

// Extract implements Extractor.
func (x *I18Next) Extract(ctx context.Context, path string, src []byte) ([]Key, error) {
	tree, err := parseJS(ctx, path, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	w := &i18nextWalker{
		path:       path,
		src:        src,
		functions:  map[string]bool{"t": true},
		components: map[string]bool{"Trans": true},
	}
	if len(x.Functions) > 0 {
		w.functions = make(map[string]bool)
		for _, f := range x.Functions {
			w.functions[f] = true
		}
	}
	for _, c := range x.Components {
		w.components[c] = true
	}

	root := tree.RootNode()
	w.defaultNS = w.findDefaultNamespace(root)
	w.visit(root, scope{})
	return w.keys, nil
}

type i18nextWalker struct {
	path       string
	src        []byte
	functions  map[string]bool
	components map[string]bool
	defaultNS  string
	keys       []Key
}

// findDefaultNamespace returns the namespace passed to withTranslation,
// which applies to every t() of the file.
func (w *i18nextWalker) findDefaultNamespace(n *sitter.Node) string {
	if n.Type() == "call_expression" &&
		calleeName(n.ChildByFieldName("function"), w.src) == "withTranslation" {
		if args := arguments(n); len(args) > 0 {
			if ns, ok := w.firstNamespace(args[0]); ok {
				return ns
			}
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if ns := w.findDefaultNamespace(n.NamedChild(i)); ns != "" {
			return ns
		}
	}
	return ""
}

// firstNamespace reads a namespace argument, which may be a string or an
// array whose first string element is used.
func (w *i18nextWalker) firstNamespace(n *sitter.Node) (string, bool) {
	n = unwrap(n)
	if s, ok := stringValue(n, w.src); ok {
		return s, true
	}
	if n != nil && n.Type() == "array" {
		for _, e := range namedNonComments(n) {
			if s, ok := stringValue(e, w.src); ok {
				return s, true
			}
		}
	}
	return "", false
}

func (w *i18nextWalker) visit(n *sitter.Node, sc scope) scope {
	switch {
	case n.Type() == "comment":
		w.comment(n)
		return sc
	case isFunction(n):
		w.children(n, w.params(n, sc))
		return sc
	case n.Type() == "statement_block":
		w.children(n, sc)
		return sc
	case n.Type() == "call_expression":
		w.call(n, sc)
	case n.Type() == "jsx_element", n.Type() == "jsx_self_closing_element":
		w.jsx(n, sc)
	case n.Type() == "variable_declarator":
		return w.bind(n, w.children(n, sc))
	}
	return w.children(n, sc)
}

func (w *i18nextWalker) children(n *sitter.Node, sc scope) scope {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		sc = w.visit(n.NamedChild(i), sc)
	}
	return sc
}

// newTranslator recognizes useTranslation(ns, {keyPrefix}) and
// i18n.getFixedT(lng, ns, keyPrefix).
func (w *i18nextWalker) newTranslator(n *sitter.Node) (translator, bool) {
	n = unwrap(n)
	if n != nil && n.Type() == "await_expression" {
		n = unwrap(n.NamedChild(0))
	}
	if n == nil || n.Type() != "call_expression" {
		return translator{}, false
	}
	args := arguments(n)
	t := translator{namespace: w.defaultNS}

	switch lastName(calleeName(n.ChildByFieldName("function"), w.src)) {
	case "useTranslation":
		if len(args) > 0 {
			if ns, ok := w.firstNamespace(args[0]); ok {
				t.namespace = ns
			}
		}
		if len(args) > 1 {
			if v, ok := objectProps(args[1], w.src)["keyPrefix"]; ok {
				t.keyPrefix, _ = stringValue(v, w.src)
			}
		}
	case "getFixedT":
		if len(args) > 1 {
			if ns, ok := w.firstNamespace(args[1]); ok {
				t.namespace = ns
			}
		}
		if len(args) > 2 {
			t.keyPrefix, _ = stringValue(args[2], w.src)
		}
	default:
		return translator{}, false
	}
	return t, true
}

func (w *i18nextWalker) bind(decl *sitter.Node, sc scope) scope {
	name := decl.ChildByFieldName("name")
	value := decl.ChildByFieldName("value")
	if name == nil || value == nil {
		return sc
	}
	t, ok := w.newTranslator(value)

	switch name.Type() {
	case "identifier":
		if ok {
			return sc.with(name.Content(w.src), t)
		}
		if bound, isBound := sc.lookup(value, w.src); isBound {
			return sc.with(name.Content(w.src), bound)
		}
	case "object_pattern":
		// const { t } = useTranslation() or const { t: translate } = ...
		if !ok {
			return sc
		}
		for _, p := range namedNonComments(name) {
			switch p.Type() {
			case "shorthand_property_identifier_pattern":
				if p.Content(w.src) == "t" {
					sc = sc.with("t", t)
				}
			case "pair_pattern":
				key := p.ChildByFieldName("key")
				val := p.ChildByFieldName("value")
				if key != nil && val != nil && key.Content(w.src) == "t" && val.Type() == "identifier" {
					sc = sc.with(val.Content(w.src), t)
				}
			}
		}
	case "array_pattern":
		// const [t] = useTranslation()
		if elems := namedNonComments(name); ok && len(elems) > 0 && elems[0].Type() == "identifier" {
			sc = sc.with(elems[0].Content(w.src), t)
		}
	}
	return sc
}

// params binds parameters typed as TFunction<"ns">.
func (w *i18nextWalker) params(fn *sitter.Node, sc scope) scope {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return sc
	}
	for _, p := range namedNonComments(params) {
		pattern := p.ChildByFieldName("pattern")
		typ := p.ChildByFieldName("type")
		if pattern == nil || typ == nil || pattern.Type() != "identifier" {
			continue
		}
		if m := tFunctionType.FindStringSubmatch(typ.Content(w.src)); m != nil {
			t := translator{namespace: w.defaultNS}
			if m[1] != "" {
				t.namespace = m[1]
			}
			sc = sc.with(pattern.Content(w.src), t)
		}
	}
	return sc
}

// translatorFor resolves the translator a call target refers to.
func (w *i18nextWalker) translatorFor(fn *sitter.Node, sc scope) (translator, bool) {
	fn = unwrap(fn)
	if fn == nil {
		return translator{}, false
	}
	if t, ok := sc.lookup(fn, w.src); ok {
		return t, true
	}
	name := calleeName(fn, w.src)
	if name == "" {
		return translator{}, false
	}
	if w.functions[name] || (fn.Type() == "member_expression" && w.functions[lastName(name)]) {
		return translator{namespace: w.defaultNS}, true
	}
	return translator{}, false
}

func (w *i18nextWalker) call(call *sitter.Node, sc scope) {
	t, ok := w.translatorFor(call.ChildByFieldName("function"), sc)
	if !ok {
		return
	}

	// t`key`
	if argsNode := call.ChildByFieldName("arguments"); argsNode != nil && argsNode.Type() == "template_string" {
		if key, ok := stringValue(argsNode, w.src); ok {
			w.add(w.key(t, key, call))
		}
		return
	}

	args := arguments(call)
	if len(args) == 0 {
		return
	}
	var keys []string
	if key, ok := concatValue(args[0], w.src); ok {
		keys = append(keys, key)
	} else if arr := unwrap(args[0]); arr != nil && arr.Type() == "array" {
		for _, e := range namedNonComments(arr) {
			if key, ok := concatValue(e, w.src); ok {
				keys = append(keys, key)
			}
		}
	}
	if len(keys) == 0 {
		return
	}

	rest := args[1:]
	var defaultValue string
	if len(rest) > 0 {
		if s, ok := concatValue(rest[0], w.src); ok {
			defaultValue = s
			rest = rest[1:]
		}
	}
	var opts map[string]*sitter.Node
	if len(rest) > 0 {
		opts = objectProps(rest[0], w.src)
	}

	for _, key := range keys {
		k := w.key(t, key, call)
		k.DefaultValue = defaultValue
		if v, ok := opts["ns"]; ok {
			if ns, ok := w.firstNamespace(v); ok {
				k.Namespace = ns
			}
		}
		if v, ok := opts["defaultValue"]; ok {
			k.DefaultValue, _ = stringValue(v, w.src)
		}
		if _, ok := opts["count"]; ok {
			k.Plural = true
		}
		if isTrue(opts["returnObjects"]) {
			k.ReturnObjects = true
		}
		w.add(k)
	}
}

// key builds a Key, splitting an "ns:key" prefix and applying the
// translator's keyPrefix.
func (w *i18nextWalker) key(t translator, key string, at *sitter.Node) Key {
	k := Key{Namespace: t.namespace, File: w.path, Line: line(at), Dynamic: t.dynamic}
	if ns, rest, ok := strings.Cut(key, ":"); ok && ns != "" && rest != "" && !strings.ContainsAny(ns, " \t\n") {
		k.Namespace = ns
		key = rest
	}
	k.Key = joinKey(t.keyPrefix, key)
	return k
}

func (w *i18nextWalker) add(k Key) {
	w.keys = append(w.keys, k)
}

func (w *i18nextWalker) comment(n *sitter.Node) {
	for _, key := range commentKeys(n.Content(w.src)) {
		w.add(w.key(translator{namespace: w.defaultNS}, key, n))
	}
}

// jsxTag returns the opening (or self-closing) element of a JSX element.
func jsxTag(n *sitter.Node) *sitter.Node {
	if n.Type() == "jsx_element" {
		return n.ChildByFieldName("open_tag")
	}
	return n
}

// jsxAttr is a JSX attribute: a string value, an expression, or neither
// for boolean shorthand.
type jsxAttr struct {
	str    string
	isStr  bool
	expr   *sitter.Node
	exists bool
}

func jsxAttrs(tag *sitter.Node, src []byte) map[string]jsxAttr {
	attrs := make(map[string]jsxAttr)
	if tag == nil {
		return attrs
	}
	for _, a := range namedNonComments(tag) {
		if a.Type() != "jsx_attribute" || a.NamedChildCount() == 0 {
			continue
		}
		attr := jsxAttr{exists: true}
		name := a.NamedChild(0).Content(src)
		if a.NamedChildCount() > 1 {
			v := a.NamedChild(1)
			if v.Type() == "jsx_expression" {
				if v.NamedChildCount() > 0 {
					attr.expr = v.NamedChild(0)
					attr.str, attr.isStr = stringValue(attr.expr, src)
				}
			} else if s, ok := stringValue(v, src); ok {
				attr.str, attr.isStr = s, true
			}
		}
		attrs[name] = attr
	}
	return attrs
}

func (w *i18nextWalker) jsx(n *sitter.Node, sc scope) {
	tag := jsxTag(n)
	if tag == nil || !w.components[calleeName(tag.ChildByFieldName("name"), w.src)] {
		return
	}
	attrs := jsxAttrs(tag, w.src)

	t := translator{namespace: w.defaultNS}
	if a := attrs["t"]; a.expr != nil {
		if bound, ok := sc.lookup(a.expr, w.src); ok {
			t = bound
		}
	}

	defaultValue := attrs["defaults"].str
	if defaultValue == "" && n.Type() == "jsx_element" {
		defaultValue = w.transChildren(n)
	}
	if !isTrue(attrs["shouldUnescape"].expr) {
		defaultValue = unescapeHTML(defaultValue)
	}

	key := attrs["i18nKey"].str
	if key == "" {
		key = defaultValue
	}
	if key == "" {
		return
	}

	k := w.key(t, key, n)
	if a := attrs["ns"]; a.isStr {
		k.Namespace = a.str
	}
	k.DefaultValue = defaultValue
	k.Plural = attrs["count"].exists
	w.add(k)
}

// transChildren renders the children of a <Trans> element the way
// react-i18next derives its default value: nested elements become indexed
// tags such as "<1>text</1>".
func (w *i18nextWalker) transChildren(n *sitter.Node) string {
	var b strings.Builder
	for i, part := range w.jsxParts(n) {
		switch {
		case part.tag:
			b.WriteString("<" + strconv.Itoa(i) + ">" + part.content + "</" + strconv.Itoa(i) + ">")
		default:
			b.WriteString(part.content)
		}
	}
	return b.String()
}

type jsxPart struct {
	content string
	tag     bool
}

var (
	jsxEdgeSpace = regexp.MustCompile(`(^[\n\r]\s*)|([\n\r]\s*$)`)
	jsxLineBreak = regexp.MustCompile(`[\n\r]\s*`)
)

func cleanMultiLine(s string) string {
	return jsxLineBreak.ReplaceAllString(jsxEdgeSpace.ReplaceAllString(s, ""), " ")
}

// jsxParts splits the children of a JSX element into text and tag parts.
// Text is taken from the source between child elements so that whitespace
// handling does not depend on how the grammar tokenizes JSX text.
func (w *i18nextWalker) jsxParts(n *sitter.Node) []jsxPart {
	open := n.ChildByFieldName("open_tag")
	closing := n.ChildByFieldName("close_tag")
	if open == nil || closing == nil {
		return nil
	}

	var parts []jsxPart
	addText := func(s string) {
		if s = cleanMultiLine(s); s != "" {
			parts = append(parts, jsxPart{content: s})
		}
	}

	cursor := open.EndByte()
	for _, c := range namedNonComments(n) {
		var part *jsxPart
		switch c.Type() {
		case "jsx_element", "jsx_self_closing_element":
			p := jsxPart{tag: true}
			if c.Type() == "jsx_element" {
				if _, dynamic := jsxAttrs(jsxTag(c), w.src)["i18nIsDynamicList"]; !dynamic {
					p.content = w.transChildren(c)
				}
			}
			part = &p
		case "jsx_expression":
			p := w.jsxExpression(c)
			part = &p
		default:
			continue
		}
		addText(string(w.src[cursor:c.StartByte()]))
		if part.tag || part.content != "" {
			parts = append(parts, *part)
		}
		cursor = c.EndByte()
	}
	addText(string(w.src[cursor:closing.StartByte()]))
	return parts
}

func (w *i18nextWalker) jsxExpression(n *sitter.Node) jsxPart {
	exprs := namedNonComments(n)
	if len(exprs) == 0 {
		return jsxPart{}
	}
	expr := unwrap(exprs[0])
	if s, ok := stringValue(expr, w.src); ok {
		return jsxPart{content: s}
	}
	if expr.Type() == "object" {
		var names []string
		var format string
		for _, p := range namedNonComments(expr) {
			switch p.Type() {
			case "shorthand_property_identifier":
				names = append(names, p.Content(w.src))
			case "pair":
				keyNode, valueNode := p.ChildByFieldName("key"), p.ChildByFieldName("value")
				if keyNode == nil || valueNode == nil {
					continue
				}
				if key := keyNode.Content(w.src); key != "format" {
					names = append(names, key)
					continue
				}
				format = valueNode.Content(w.src)
				if s, ok := stringValue(valueNode, w.src); ok {
					format = s
				}
			}
		}
		if len(names) != 1 {
			return jsxPart{}
		}
		if format != "" {
			return jsxPart{content: "{{" + names[0] + ", " + format + "}}"}
		}
		return jsxPart{content: "{{" + names[0] + "}}"}
	}
	return jsxPart{content: "{" + expr.Content(w.src) + "}"}
}

var htmlEntities = strings.NewReplacer(
	"&amp;", "&", "&#38;", "&",
	"&lt;", "<", "&#60;", "<",
	"&gt;", ">", "&#62;", ">",
	"&apos;", "'", "&#39;", "'",
	"&quot;", `"`, "&#34;", `"`,
	"&nbsp;", " ", "&#160;", " ",
	"&copy;", "©", "&#169;", "©",
	"&reg;", "®", "&#174;", "®",
	"&hellip;", "…", "&#8230;", "…",
	"&#x2F;", "/", "&#47;", "/",
)

func unescapeHTML(s string) string {
	return htmlEntities.Replace(s)
}

func isTrue(n *sitter.Node) bool {
	n = unwrap(n)
	return n != nil && n.Type() == "true"
}
