package icu

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse_Elements(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Element
	}{
		{
			name: "literal only",
			in:   "Hello world",
			want: []Element{{Type: TypeLiteral, Value: "Hello world"}},
		},
		{
			name: "simple argument",
			in:   "Hello {name}!",
			want: []Element{
				{Type: TypeLiteral, Value: "Hello "},
				{Type: TypeArgument, Value: "name"},
				{Type: TypeLiteral, Value: "!"},
			},
		},
		{
			name: "number with style",
			in:   "{price, number, ::currency/EUR}",
			want: []Element{{Type: TypeNumber, Value: "price", Style: "::currency/EUR"}},
		},
		{
			name: "date and time",
			in:   "{d, date, short} {t, time}",
			want: []Element{
				{Type: TypeDate, Value: "d", Style: "short"},
				{Type: TypeLiteral, Value: " "},
				{Type: TypeTime, Value: "t"},
			},
		},
		{
			name: "escaped braces",
			in:   "This '{is}' literal, it''s fine",
			want: []Element{{Type: TypeLiteral, Value: "This {is} literal, it's fine"}},
		},
		{
			name: "lone apostrophe stays",
			in:   "don't",
			want: []Element{{Type: TypeLiteral, Value: "don't"}},
		},
		{
			name: "self closing tag is literal",
			in:   "a <br/> b",
			want: []Element{{Type: TypeLiteral, Value: "a <br/> b"}},
		},
		{
			name: "less-than is literal",
			in:   "1 < 2",
			want: []Element{{Type: TypeLiteral, Value: "1 < 2"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tc.in, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Parse(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParse_PluralWithPound(t *testing.T) {
	got, err := Parse("{count, plural, offset:1 =0 {none} one {# item} other {# items}}")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(got) != 1 || got[0].Type != TypePlural {
		t.Fatalf("expected one plural element, got %#v", got)
	}
	pl := got[0]
	if pl.Value != "count" || pl.Offset != 1 || pl.Ordinal {
		t.Fatalf("unexpected plural header: %#v", pl)
	}
	if keys := pl.OptionKeys(); !reflect.DeepEqual(keys, []string{"=0", "one", "other"}) {
		t.Fatalf("OptionKeys() = %v", keys)
	}
	want := []Element{{Type: TypePound}, {Type: TypeLiteral, Value: " items"}}
	if !reflect.DeepEqual(pl.Options["other"], want) {
		t.Fatalf("other branch = %#v, want %#v", pl.Options["other"], want)
	}
}

func TestParse_PoundOutsidePluralIsLiteral(t *testing.T) {
	got := MustParse("{g, select, male {# he} other {# they}}")
	branch := got[0].Options["male"]
	want := []Element{{Type: TypeLiteral, Value: "# he"}}
	if !reflect.DeepEqual(branch, want) {
		t.Fatalf("select branch = %#v, want %#v", branch, want)
	}
}

func TestParse_SelectOrdinal(t *testing.T) {
	got := MustParse("{n, selectordinal, one {#st} other {#th}}")
	if got[0].Type != TypePlural || !got[0].Ordinal {
		t.Fatalf("expected ordinal plural, got %#v", got[0])
	}
}

func TestParse_NestedTags(t *testing.T) {
	got := MustParse("yo,<b><p>John</p></b>!")
	want := []Element{
		{Type: TypeLiteral, Value: "yo,"},
		{Type: TypeTag, Value: "b", Children: []Element{
			{Type: TypeTag, Value: "p", Children: []Element{
				{Type: TypeLiteral, Value: "John"},
			}},
		}},
		{Type: TypeLiteral, Value: "!"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse() = %#v, want %#v", got, want)
	}
	if Text(got) != "yo,<b><p>John</p></b>!" {
		t.Fatalf("Text() = %q", Text(got))
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		in   string
		kind ErrorKind
	}{
		{"{}", ErrEmptyArgument},
		{"{name", ErrExpectArgumentClose},
		{"{a, foo}", ErrInvalidArgumentType},
		{"{n, plural, one {x}}", ErrMissingOther},
		{"{n, select, a {x} a {y} other {z}}", ErrDuplicateSelector},
		{"{n, plural, offset:x other {y}}", ErrInvalidOffset},
		{"{n, plural, other x}", ErrExpectOptionFragment},
		{"<b>open", ErrUnclosedTag},
		{"<b>x</i>", ErrUnmatchedClosingTag},
		{"text</b>", ErrUnmatchedClosingTag},
		{"{n, number, }", ErrExpectArgumentStyle},
	}
	for _, tc := range tests {
		_, err := Parse(tc.in)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("Parse(%q) error = %v, want *SyntaxError", tc.in, err)
		}
		if se.Kind != tc.kind {
			t.Fatalf("Parse(%q) kind = %s, want %s", tc.in, se.Kind, tc.kind)
		}
		if se.Input != tc.in {
			t.Fatalf("Parse(%q) input = %q", tc.in, se.Input)
		}
	}
}

func TestTypeString(t *testing.T) {
	if TypeTag.String() != "tag" || TypePound.String() != "pound" || Type(99).String() != "unknown" {
		t.Fatal("unexpected Type.String() output")
	}
}
