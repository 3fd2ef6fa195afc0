package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// languageFor picks the tree-sitter grammar for a file. JSX is parsed by the
// javascript grammar, which accepts it natively.
func languageFor(path string) *sitter.Language {
	switch filepath.Ext(path) {
	case ".tsx":
		return tsx.GetLanguage()
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// parseJS parses a JavaScript or TypeScript file and returns its root node.
// The caller must close the returned tree.
func parseJS(ctx context.Context, path string, src []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(languageFor(path))

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, fmt.Errorf("no syntax tree produced")
	}
	return tree, nil
}

// line returns the 1-based line of n.
func line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

// unwrap strips parentheses and TypeScript "as"/"satisfies"/non-null
// wrappers around an expression.
func unwrap(n *sitter.Node) *sitter.Node {
	for n != nil {
		switch n.Type() {
		case "parenthesized_expression", "as_expression", "satisfies_expression", "non_null_expression":
			n = n.NamedChild(0)
		default:
			return n
		}
	}
	return n
}

// stringValue returns the value of a string literal, or of a template
// literal without substitutions.
func stringValue(n *sitter.Node, src []byte) (string, bool) {
	n = unwrap(n)
	if n == nil {
		return "", false
	}
	switch n.Type() {
	case "string":
		raw := n.Content(src)
		if len(raw) < 2 {
			return "", false
		}
		return unescapeJS(raw[1 : len(raw)-1]), true
	case "template_string":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if n.NamedChild(i).Type() == "template_substitution" {
				return "", false
			}
		}
		raw := n.Content(src)
		if len(raw) < 2 {
			return "", false
		}
		return unescapeJS(raw[1 : len(raw)-1]), true
	}
	return "", false
}

// concatValue resolves string literals joined with "+".
func concatValue(n *sitter.Node, src []byte) (string, bool) {
	n = unwrap(n)
	if n == nil {
		return "", false
	}
	if s, ok := stringValue(n, src); ok {
		return s, true
	}
	if n.Type() != "binary_expression" {
		return "", false
	}
	op := n.ChildByFieldName("operator")
	if op == nil || op.Type() != "+" {
		return "", false
	}
	left, ok := concatValue(n.ChildByFieldName("left"), src)
	if !ok {
		return "", false
	}
	right, ok := concatValue(n.ChildByFieldName("right"), src)
	if !ok {
		return "", false
	}
	return left + right, true
}

func unescapeJS(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'u':
			if i+4 < len(s) {
				if r, err := strconv.ParseUint(s[i+1:i+5], 16, 32); err == nil {
					b.WriteRune(rune(r))
					i += 4
					continue
				}
			}
			b.WriteByte('u')
		case '\n':
			// line continuation
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// arguments returns the argument expressions of a call_expression,
// skipping comments.
func arguments(call *sitter.Node) []*sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(args.NamedChildCount()); i++ {
		if a := args.NamedChild(i); a.Type() != "comment" {
			out = append(out, a)
		}
	}
	return out
}

// calleeName returns the dotted name of a call target, e.g. "t",
// "i18n.t" or "intl.formatMessage". Computed members return "".
func calleeName(n *sitter.Node, src []byte) string {
	n = unwrap(n)
	if n == nil {
		return ""
	}
	switch n.Type() {
	case "identifier", "property_identifier", "type_identifier", "this":
		return n.Content(src)
	case "member_expression", "nested_identifier":
		obj := n.ChildByFieldName("object")
		prop := n.ChildByFieldName("property")
		if obj == nil || prop == nil {
			// nested_identifier in older grammars has no fields
			return strings.ReplaceAll(n.Content(src), " ", "")
		}
		left := calleeName(obj, src)
		if left == "" {
			return ""
		}
		return left + "." + prop.Content(src)
	}
	return ""
}

// lastName returns the part of a dotted name after the last dot.
func lastName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// objectProps maps the keys of an object literal to their value nodes.
// Shorthand properties map to themselves.
func objectProps(obj *sitter.Node, src []byte) map[string]*sitter.Node {
	obj = unwrap(obj)
	if obj == nil || obj.Type() != "object" {
		return nil
	}
	props := make(map[string]*sitter.Node)
	for i := 0; i < int(obj.NamedChildCount()); i++ {
		p := obj.NamedChild(i)
		switch p.Type() {
		case "pair":
			key := p.ChildByFieldName("key")
			if key == nil {
				continue
			}
			name := key.Content(src)
			if s, ok := stringValue(key, src); ok {
				name = s
			}
			props[name] = p.ChildByFieldName("value")
		case "shorthand_property_identifier":
			props[p.Content(src)] = p
		}
	}
	return props
}

// isFunction reports whether n opens a new function scope.
func isFunction(n *sitter.Node) bool {
	switch n.Type() {
	case "arrow_function", "function", "function_expression", "function_declaration",
		"generator_function", "generator_function_declaration", "method_definition":
		return true
	}
	return false
}

// commentHint matches a t('key') call written in a comment, used to declare
// the static keys a dynamic call site can produce.
var commentHint = regexp.MustCompile(`(?:^|[\s.*/])t\((["'])(.*?[^\\])(["'])\)`)

// commentKeys returns the keys hinted at in a comment.
func commentKeys(comment string) []string {
	var keys []string
	for _, m := range commentHint.FindAllStringSubmatch(comment, -1) {
		if m[1] == m[3] {
			keys = append(keys, m[2])
		}
	}
	return keys
}
