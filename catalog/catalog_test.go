package catalog

import (
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

func pairs(t *Translation) []string {
	var out []string
	for _, k := range t.Keys() {
		v, _ := t.Get(k)
		out = append(out, k, v)
	}
	return out
}

func TestFlatten_NestedPreservesOrder(t *testing.T) {
	doc, err := ParseJSON([]byte(`{
  "one": {"two": {"three": "a"}, "four": "b"},
  "five": "c",
  "list": ["x", 1, true],
  "empty": {},
  "num": 2.5,
  "nothing": null
}`))
	if err != nil {
		t.Fatalf("ParseJSON error: %v", err)
	}

	got := pairs(Flatten(doc))
	want := []string{
		"one.two.three", "a",
		"one.four", "b",
		"five", "c",
		"list", "x,1,true",
		"num", "2.5",
		"nothing", "null",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Flatten() = %#v, want %#v", got, want)
	}
}

func TestFlatten_FlatDocumentUnchanged(t *testing.T) {
	doc := NewDocument()
	doc.Set("b", "1")
	doc.Set("a", "2")
	doc.Set("a.b", "3")

	got := pairs(Flatten(doc))
	want := []string{"b", "1", "a", "2", "a.b", "3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Flatten() = %#v, want %#v", got, want)
	}
}

func TestFlatten_Idempotent(t *testing.T) {
	doc, err := ParseYAML([]byte(`
nav:
  home: Home
  about:
    title: About
greeting: Hello
`))
	if err != nil {
		t.Fatalf("ParseYAML error: %v", err)
	}
	once := Flatten(doc)
	twice := Flatten(once.Document())
	if !reflect.DeepEqual(pairs(once), pairs(twice)) {
		t.Fatalf("Flatten not idempotent: %v vs %v", pairs(once), pairs(twice))
	}
}

func TestFlatten_Nil(t *testing.T) {
	if got := Flatten(nil); got.Len() != 0 {
		t.Fatalf("Flatten(nil).Len() = %d, want 0", got.Len())
	}
}

func TestParseYAML(t *testing.T) {
	doc, err := ParseYAML([]byte(`
base: &base
  ok: OK
dialog: *base
count: 3
missing: ~
items:
  - a
  - b
`))
	if err != nil {
		t.Fatalf("ParseYAML error: %v", err)
	}
	got := pairs(Flatten(doc))
	want := []string{
		"base.ok", "OK",
		"dialog.ok", "OK",
		"count", "3",
		"missing", "null",
		"items", "a,b",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Flatten(yaml) = %#v, want %#v", got, want)
	}
}

func TestParseYAML_RootMustBeMapping(t *testing.T) {
	if _, err := ParseYAML([]byte("- a\n- b\n")); err == nil {
		t.Fatal("expected error for sequence root")
	}
}

func TestParseTOML_KeepsFileOrder(t *testing.T) {
	doc, err := ParseTOML([]byte(`
title = "Title"
zeta = 1

[menu]
open = "Open"
close = "Close"

[menu.sub]
deep = "Deep"
`))
	if err != nil {
		t.Fatalf("ParseTOML error: %v", err)
	}
	got := pairs(Flatten(doc))
	want := []string{
		"title", "Title",
		"zeta", "1",
		"menu.open", "Open",
		"menu.close", "Close",
		"menu.sub.deep", "Deep",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Flatten(toml) = %#v, want %#v", got, want)
	}
}

func TestParseJSON_Errors(t *testing.T) {
	for _, in := range []string{`{"broken":`, `["a"]`, `{"a": "b"} {"c": "d"}`} {
		if _, err := ParseJSON([]byte(in)); err == nil {
			t.Fatalf("ParseJSON(%q) expected error", in)
		}
	}
}

func TestParseJSON_Empty(t *testing.T) {
	doc, err := ParseJSON(nil)
	if err != nil {
		t.Fatalf("ParseJSON(nil) error: %v", err)
	}
	if doc.Len() != 0 {
		t.Fatalf("ParseJSON(nil).Len() = %d, want 0", doc.Len())
	}
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "locales/en.json", []byte(`{"a": {"b": "c"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	tr, err := Load(fs, "locales/en.json")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if v, ok := tr.Get("a.b"); !ok || v != "c" {
		t.Fatalf("Get(a.b) = %q, %v; want c, true", v, ok)
	}

	if _, err := Load(fs, "locales/missing.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
	if err := afero.WriteFile(fs, "locales/en.ini", []byte("a=b"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(fs, "locales/en.ini"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestIsCatalog(t *testing.T) {
	for path, want := range map[string]bool{
		"a/en.json": true,
		"a/en.YML":  true,
		"a/en.toml": true,
		"a/app_en.arb": true,
		"a/en.po":   false,
		"a/en":      false,
	} {
		if got := IsCatalog(path); got != want {
			t.Fatalf("IsCatalog(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestTranslationFilter(t *testing.T) {
	tr := FromPairs("a", "1", "b", "2", "c", "3")
	got := pairs(tr.Filter(func(k string) bool { return k != "b" }))
	want := []string{"a", "1", "c", "3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter() = %#v, want %#v", got, want)
	}
}

func TestParseARB_DropsMetadata(t *testing.T) {
	data := []byte(`{
  "@@locale": "en",
  "greeting": "Hello {name}",
  "@greeting": {"placeholders": {"name": {"type": "String"}}},
  "count": "{n, plural, one{# item} other{# items}}"
}`)
	doc, err := Parse(data, ".arb")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := pairs(Flatten(doc))
	want := []string{"greeting", "Hello {name}", "count", "{n, plural, one{# item} other{# items}}"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Flatten(ParseARB()) = %#v, want %#v", got, want)
	}
}
