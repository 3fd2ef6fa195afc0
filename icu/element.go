// Package icu parses ICU MessageFormat strings into an element tree.
//
// The element model follows the one used by the JavaScript ecosystem
// (react-intl, next-intl): literals, simple arguments, number/date/time
// arguments, select and plural branches, the plural "#" pound sign and
// rich-text tags with nested children.
package icu

import (
	"sort"
	"strings"
)

// Type identifies the kind of a message element. The numeric order is used
// when elements are sorted for structural comparison.
type Type int

const (
	TypeLiteral Type = iota
	TypeArgument
	TypeNumber
	TypeDate
	TypeTime
	TypeSelect
	TypePlural
	TypePound
	TypeTag
)

var typeNames = [...]string{
	TypeLiteral:  "literal",
	TypeArgument: "argument",
	TypeNumber:   "number",
	TypeDate:     "date",
	TypeTime:     "time",
	TypeSelect:   "select",
	TypePlural:   "plural",
	TypePound:    "pound",
	TypeTag:      "tag",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Element is a single node of a parsed message.
type Element struct {
	Type Type
	// Value is the literal text, the argument name or the tag name.
	Value string
	// Style is the optional style or skeleton of number/date/time arguments.
	Style string
	// Options holds the branches of select and plural elements.
	Options map[string][]Element
	// Offset is the plural offset ("offset:1").
	Offset int
	// Ordinal is set for selectordinal.
	Ordinal bool
	// Children holds the content of tag elements.
	Children []Element
}

// OptionKeys returns the branch selectors in sorted order.
func (e Element) OptionKeys() []string {
	keys := make([]string, 0, len(e.Options))
	for k := range e.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Text renders the literal content of elements, substituting placeholders
// with their ICU source form. It is mostly useful in tests and diagnostics.
func Text(elems []Element) string {
	var b strings.Builder
	for _, e := range elems {
		switch e.Type {
		case TypeLiteral:
			b.WriteString(e.Value)
		case TypePound:
			b.WriteByte('#')
		case TypeTag:
			b.WriteString("<" + e.Value + ">")
			b.WriteString(Text(e.Children))
			b.WriteString("</" + e.Value + ">")
		default:
			b.WriteString("{" + e.Value + "}")
		}
	}
	return b.String()
}
