// Package i18next tokenizes i18next messages into comparable elements:
// interpolations, nestings, plurals and tags.
package i18next

import (
	"regexp"
	"strings"
)

// ElementType identifies the kind of a tokenized message element.
type ElementType int

// The order of the constants is the order used when elements are sorted for
// structural comparison.
const (
	Text ElementType = iota
	Interpolation
	InterpolationUnescaped
	Nesting
	Plural
	Tag
)

var elementTypeNames = [...]string{
	Text:                   "text",
	Interpolation:          "interpolation",
	InterpolationUnescaped: "interpolation_unescaped",
	Nesting:                "nesting",
	Plural:                 "plural",
	Tag:                    "tag",
}

func (t ElementType) String() string {
	if t >= 0 && int(t) < len(elementTypeNames) {
		return elementTypeNames[t]
	}
	return "unknown"
}

// Element is a single token of an i18next message.
type Element struct {
	Type ElementType
	// Raw is the matched source text, e.g. "{{val, format}}" or "</b>".
	Raw    string
	Prefix string
	Suffix string
	// Content is the text between prefix and suffix, or the literal text
	// of Text elements.
	Content string
	// Variable is Content with surrounding whitespace removed.
	Variable string
	// VoidElement marks self-closing tags such as "<br/>".
	VoidElement bool
}

// Options returns the comma-separated parts of Variable, trimmed.
func (e Element) Options() []string {
	parts := strings.Split(e.Variable, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// TagName returns the markup of a tag without angle brackets and without
// the self-closing slash: "br" for "<br />", "/b" for "</b>".
func (e Element) TagName() string {
	name := strings.TrimSuffix(strings.TrimPrefix(e.Raw, "<"), ">")
	name = strings.TrimSuffix(strings.TrimSpace(name), "/")
	return strings.Join(strings.Fields(name), " ")
}

// messagePattern matches, in priority order: interpolation, $t{} and $t()
// nesting, a numeric plural interval directly followed by "[", and tags.
// The trailing "[" of a plural interval is handed back to the text that
// follows it.
var messagePattern = regexp.MustCompile(
	`\{\{[^}]+\}\}` +
		`|\$t\{[^}]+\}` +
		`|\$t\([^)]+\)` +
		`|\([0-9\-inf]+\)\[` +
		`|</?[^\s<>][^<>]*>`)

// Parse tokenizes an i18next message. Every input byte ends up in exactly
// one element.
func Parse(message string) []Element {
	var out []Element
	last := 0
	for _, loc := range messagePattern.FindAllStringIndex(message, -1) {
		start, end := loc[0], loc[1]
		if message[start] == '(' {
			end-- // keep "[" with the following text
		}
		if start > last {
			out = append(out, Element{Type: Text, Content: message[last:start]})
		}
		out = append(out, classify(message[start:end]))
		last = end
	}
	if last < len(message) {
		out = append(out, Element{Type: Text, Content: message[last:]})
	}
	return out
}

func classify(match string) Element {
	switch {
	case strings.HasPrefix(match, "{{-"):
		return delimited(InterpolationUnescaped, match, "{{-", "}}")
	case strings.HasPrefix(match, "{{"):
		return delimited(Interpolation, match, "{{", "}}")
	case strings.HasPrefix(match, "$t{"):
		return delimited(Nesting, match, "$t{", "}")
	case strings.HasPrefix(match, "$t("):
		return delimited(Nesting, match, "$t(", ")")
	case strings.HasPrefix(match, "("):
		return delimited(Plural, match, "(", ")")
	case strings.HasPrefix(match, "<"):
		return Element{Type: Tag, Raw: match, VoidElement: strings.HasSuffix(match, "/>")}
	default:
		return Element{Type: Text, Content: match}
	}
}

func delimited(t ElementType, match, prefix, suffix string) Element {
	content := match[len(prefix) : len(match)-len(suffix)]
	return Element{
		Type:     t,
		Raw:      match,
		Prefix:   prefix,
		Suffix:   suffix,
		Content:  content,
		Variable: strings.TrimSpace(content),
	}
}

// Source reconstructs the message from its elements.
func Source(elems []Element) string {
	var b strings.Builder
	for _, e := range elems {
		if e.Type == Text {
			b.WriteString(e.Content)
		} else {
			b.WriteString(e.Raw)
		}
	}
	return b.String()
}
