package extract

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
)

// ReactIntl extracts message ids from react-intl code: formatMessage({id}),
// defineMessage({id}), defineMessages({...}) and the <FormattedMessage> and
// <FormattedHTMLMessage> components.
type ReactIntl struct{}

var reactIntlComponents = map[string]bool{
	"FormattedMessage":     true,
	"FormattedHTMLMessage": true,
}

// Extract implements Extractor.
func (ReactIntl) Extract(ctx context.Context, path string, src []byte) ([]Key, error) {
	tree, err := parseJS(ctx, path, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var keys []Key
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "call_expression":
			switch lastName(calleeName(n.ChildByFieldName("function"), src)) {
			case "formatMessage", "$t", "defineMessage":
				if args := arguments(n); len(args) > 0 {
					keys = appendDescriptor(keys, args[0], path, src)
				}
			case "defineMessages":
				if args := arguments(n); len(args) > 0 {
					for _, p := range namedNonComments(unwrap(args[0])) {
						if p.Type() == "pair" {
							keys = appendDescriptor(keys, p.ChildByFieldName("value"), path, src)
						}
					}
				}
			}
		case "jsx_self_closing_element", "jsx_opening_element":
			if reactIntlComponents[lastName(calleeName(n.ChildByFieldName("name"), src))] {
				attrs := jsxAttrs(n, src)
				if id := attrs["id"]; id.isStr && id.str != "" {
					keys = append(keys, Key{
						Key:          id.str,
						File:         path,
						Line:         line(n),
						DefaultValue: attrs["defaultMessage"].str,
					})
				}
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(tree.RootNode())
	return keys, nil
}

// appendDescriptor appends the key of a message descriptor object
// ({id, defaultMessage, description}).
func appendDescriptor(keys []Key, n *sitter.Node, path string, src []byte) []Key {
	if n == nil {
		return keys
	}
	props := objectProps(n, src)
	idNode, ok := props["id"]
	if !ok {
		return keys
	}
	id, ok := stringValue(idNode, src)
	if !ok || id == "" {
		return keys
	}
	k := Key{Key: id, File: path, Line: line(n)}
	if v, ok := props["defaultMessage"]; ok {
		k.DefaultValue, _ = concatValue(v, src)
	}
	return append(keys, k)
}
