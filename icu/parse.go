package icu

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrorKind classifies syntax errors.
type ErrorKind string

const (
	ErrEmptyArgument        ErrorKind = "EMPTY_ARGUMENT"
	ErrMalformedArgument    ErrorKind = "MALFORMED_ARGUMENT"
	ErrExpectArgumentClose  ErrorKind = "EXPECT_ARGUMENT_CLOSING_BRACE"
	ErrInvalidArgumentType  ErrorKind = "INVALID_ARGUMENT_TYPE"
	ErrExpectArgumentStyle  ErrorKind = "EXPECT_ARGUMENT_STYLE"
	ErrExpectOptions        ErrorKind = "EXPECT_PLURAL_OR_SELECT_OPTIONS"
	ErrInvalidOffset        ErrorKind = "INVALID_PLURAL_ARGUMENT_OFFSET_VALUE"
	ErrExpectSelector       ErrorKind = "EXPECT_SELECTOR"
	ErrExpectOptionFragment ErrorKind = "EXPECT_OPTION_FRAGMENT"
	ErrDuplicateSelector    ErrorKind = "DUPLICATE_SELECTOR"
	ErrMissingOther         ErrorKind = "MISSING_OTHER_CLAUSE"
	ErrUnclosedTag          ErrorKind = "UNCLOSED_TAG"
	ErrUnmatchedClosingTag  ErrorKind = "UNMATCHED_CLOSING_TAG"
	ErrInvalidTag           ErrorKind = "INVALID_TAG"
)

// SyntaxError describes a malformed message.
type SyntaxError struct {
	Kind ErrorKind
	// Offset is the byte offset in Input where the problem was detected.
	Offset int
	Input  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d in %q", e.Kind, e.Offset, e.Input)
}

// Parse parses an ICU MessageFormat string.
func Parse(message string) ([]Element, error) {
	p := &parser{src: message}
	elems, err := p.parseMessage(0, argNone, "")
	if err != nil {
		return nil, err
	}
	return elems, nil
}

// MustParse is like Parse but panics on error.
func MustParse(message string) []Element {
	elems, err := Parse(message)
	if err != nil {
		panic(err)
	}
	return elems
}

type argKind int

const (
	argNone argKind = iota
	argSelect
	argPlural
)

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(n int) byte {
	if p.pos+n >= len(p.src) {
		return 0
	}
	return p.src[p.pos+n]
}

func (p *parser) fail(kind ErrorKind, at int) error {
	return &SyntaxError{Kind: kind, Offset: at, Input: p.src}
}

func (p *parser) skipSpace() {
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

// parseMessage parses elements until the end of input, an unmatched closing
// brace (when nested) or the closing tag named closeTag.
func (p *parser) parseMessage(depth int, parent argKind, closeTag string) ([]Element, error) {
	var elems []Element
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			elems = append(elems, Element{Type: TypeLiteral, Value: lit.String()})
			lit.Reset()
		}
	}

	for !p.eof() {
		c := p.peek()
		switch {
		case c == '{':
			flush()
			el, err := p.parseArgument(depth)
			if err != nil {
				return nil, err
			}
			elems = append(elems, el)

		case c == '}' && depth > 0:
			flush()
			return elems, nil

		case c == '#' && parent == argPlural:
			flush()
			p.pos++
			elems = append(elems, Element{Type: TypePound})

		case c == '<' && p.peekAt(1) == '/':
			if closeTag == "" {
				return nil, p.fail(ErrUnmatchedClosingTag, p.pos)
			}
			flush()
			return elems, nil

		case c == '<' && isAlpha(p.peekAt(1)):
			el, err := p.parseTag(depth, parent)
			if err != nil {
				return nil, err
			}
			if el.Type == TypeLiteral {
				lit.WriteString(el.Value)
				continue
			}
			flush()
			elems = append(elems, el)

		case c == '\'':
			p.parseQuote(&lit, parent)

		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			lit.WriteRune(r)
			p.pos += size
		}
	}

	if closeTag != "" {
		return nil, p.fail(ErrUnclosedTag, p.pos)
	}
	flush()
	return elems, nil
}

// parseQuote handles apostrophe escaping: '' is a literal apostrophe and an
// apostrophe directly before a syntax character starts a quoted run that
// lasts until the next single apostrophe.
func (p *parser) parseQuote(lit *strings.Builder, parent argKind) {
	next := p.peekAt(1)
	switch {
	case next == '\'':
		lit.WriteByte('\'')
		p.pos += 2
		return
	case next == '{' || next == '}' || next == '<' || next == '>' || (next == '#' && parent == argPlural):
	default:
		lit.WriteByte('\'')
		p.pos++
		return
	}

	p.pos++ // opening apostrophe
	for !p.eof() {
		c := p.peek()
		if c == '\'' {
			if p.peekAt(1) == '\'' {
				lit.WriteByte('\'')
				p.pos += 2
				continue
			}
			p.pos++
			return
		}
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		lit.WriteRune(r)
		p.pos += size
	}
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isTagNameChar(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9') || c == '-' || c == '.' || c == '_' || c >= utf8.RuneSelf
}

// parseTag parses <name>children</name>. Self-closing tags are kept as
// literal text.
func (p *parser) parseTag(depth int, parent argKind) (Element, error) {
	start := p.pos
	p.pos++ // <
	nameStart := p.pos
	for !p.eof() && isTagNameChar(p.peek()) {
		p.pos++
	}
	name := p.src[nameStart:p.pos]
	p.skipSpace()

	if strings.HasPrefix(p.src[p.pos:], "/>") {
		p.pos += 2
		return Element{Type: TypeLiteral, Value: "<" + name + "/>"}, nil
	}
	if p.peek() != '>' {
		return Element{}, p.fail(ErrInvalidTag, start)
	}
	p.pos++

	children, err := p.parseMessage(depth, parent, name)
	if err != nil {
		return Element{}, err
	}

	closeStart := p.pos
	if !strings.HasPrefix(p.src[p.pos:], "</") {
		return Element{}, p.fail(ErrUnclosedTag, start)
	}
	p.pos += 2
	endStart := p.pos
	for !p.eof() && isTagNameChar(p.peek()) {
		p.pos++
	}
	if p.src[endStart:p.pos] != name {
		return Element{}, p.fail(ErrUnmatchedClosingTag, closeStart)
	}
	p.skipSpace()
	if p.peek() != '>' {
		return Element{}, p.fail(ErrInvalidTag, closeStart)
	}
	p.pos++

	return Element{Type: TypeTag, Value: name, Children: children}, nil
}

func (p *parser) readIdentifier() string {
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if unicode.IsSpace(r) || strings.ContainsRune("{}#,<>'", r) {
			break
		}
		p.pos += size
	}
	return p.src[start:p.pos]
}

// parseArgument parses everything between { and the matching }.
func (p *parser) parseArgument(depth int) (Element, error) {
	open := p.pos
	p.pos++ // {
	p.skipSpace()
	if p.eof() {
		return Element{}, p.fail(ErrExpectArgumentClose, open)
	}
	if p.peek() == '}' {
		return Element{}, p.fail(ErrEmptyArgument, open)
	}

	name := p.readIdentifier()
	if name == "" {
		return Element{}, p.fail(ErrMalformedArgument, open)
	}
	p.skipSpace()

	switch p.peek() {
	case '}':
		p.pos++
		return Element{Type: TypeArgument, Value: name}, nil
	case ',':
		p.pos++
	default:
		return Element{}, p.fail(ErrExpectArgumentClose, open)
	}

	p.skipSpace()
	typeStart := p.pos
	kind := p.readIdentifier()
	p.skipSpace()

	switch kind {
	case "number", "date", "time":
		el := Element{Value: name}
		switch kind {
		case "number":
			el.Type = TypeNumber
		case "date":
			el.Type = TypeDate
		default:
			el.Type = TypeTime
		}
		switch p.peek() {
		case '}':
			p.pos++
			return el, nil
		case ',':
			p.pos++
		default:
			return Element{}, p.fail(ErrExpectArgumentClose, open)
		}
		style, err := p.readStyle(open)
		if err != nil {
			return Element{}, err
		}
		el.Style = style
		return el, nil

	case "plural", "selectordinal", "select":
		if p.peek() != ',' {
			return Element{}, p.fail(ErrExpectOptions, p.pos)
		}
		p.pos++
		p.skipSpace()

		el := Element{Type: TypeSelect, Value: name}
		parent := argSelect
		if kind != "select" {
			el.Type = TypePlural
			el.Ordinal = kind == "selectordinal"
			parent = argPlural
			if strings.HasPrefix(p.src[p.pos:], "offset:") {
				p.pos += len("offset:")
				p.skipSpace()
				numStart := p.pos
				if p.peek() == '-' || p.peek() == '+' {
					p.pos++
				}
				for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
					p.pos++
				}
				n, err := strconv.Atoi(p.src[numStart:p.pos])
				if err != nil {
					return Element{}, p.fail(ErrInvalidOffset, numStart)
				}
				el.Offset = n
				p.skipSpace()
			}
		}

		opts, err := p.parseOptions(depth, parent)
		if err != nil {
			return Element{}, err
		}
		el.Options = opts
		return el, nil

	default:
		return Element{}, p.fail(ErrInvalidArgumentType, typeStart)
	}
}

// readStyle reads the argument style up to the closing brace of the
// argument, honoring nested braces and quoted runs.
func (p *parser) readStyle(open int) (string, error) {
	p.skipSpace()
	start := p.pos
	nested := 0
	for !p.eof() {
		switch p.peek() {
		case '\'':
			p.pos++
			for !p.eof() && p.peek() != '\'' {
				p.pos++
			}
		case '{':
			nested++
		case '}':
			if nested == 0 {
				style := strings.TrimSpace(p.src[start:p.pos])
				p.pos++
				if style == "" {
					return "", p.fail(ErrExpectArgumentStyle, start)
				}
				return style, nil
			}
			nested--
		}
		p.pos++
	}
	return "", p.fail(ErrExpectArgumentClose, open)
}

// parseOptions parses "selector {message}" pairs up to the closing brace of
// the select or plural argument.
func (p *parser) parseOptions(depth int, parent argKind) (map[string][]Element, error) {
	opts := make(map[string][]Element)
	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.fail(ErrExpectArgumentClose, p.pos)
		}
		if p.peek() == '}' {
			p.pos++
			break
		}

		selStart := p.pos
		var selector string
		if p.peek() == '=' && parent == argPlural {
			p.pos++
			for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
				p.pos++
			}
			selector = p.src[selStart:p.pos]
			if selector == "=" {
				return nil, p.fail(ErrExpectSelector, selStart)
			}
		} else {
			selector = p.readIdentifier()
		}
		if selector == "" {
			return nil, p.fail(ErrExpectSelector, selStart)
		}
		if _, dup := opts[selector]; dup {
			return nil, p.fail(ErrDuplicateSelector, selStart)
		}

		p.skipSpace()
		if p.peek() != '{' {
			return nil, p.fail(ErrExpectOptionFragment, p.pos)
		}
		open := p.pos
		p.pos++
		msg, err := p.parseMessage(depth+1, parent, "")
		if err != nil {
			return nil, err
		}
		if p.peek() != '}' {
			return nil, p.fail(ErrExpectArgumentClose, open)
		}
		p.pos++
		if msg == nil {
			msg = []Element{}
		}
		opts[selector] = msg
	}

	if len(opts) == 0 {
		return nil, p.fail(ErrExpectOptions, p.pos)
	}
	if _, ok := opts["other"]; !ok {
		return nil, p.fail(ErrMissingOther, p.pos)
	}
	return opts, nil
}
