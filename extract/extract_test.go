package extract

import (
	"context"
	"errors"
	"go/parser"
	"reflect"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestFindSources(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	for _, p := range []string{
		"app/src/App.tsx",
		"app/src/lib/util.ts",
		"app/src/lib/types.d.ts",
		"app/src/legacy.jsx",
		"app/src/styles.css",
		"app/src/node_modules/dep/index.js",
		"app/server/main.go",
		"app/server/main_test.go",
		"app/dist/bundle.js",
		"other/single.mjs",
	} {
		if err := afero.WriteFile(fsys, p, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}

	got, err := FindSources(fsys, []string{"app", "other/single.mjs", "app/src"})
	if err != nil {
		t.Fatalf("FindSources() error = %v", err)
	}
	want := []string{
		"app/server/main.go",
		"app/src/App.tsx",
		"app/src/legacy.jsx",
		"app/src/lib/util.ts",
		"other/single.mjs",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindSources() = %v, want %v", got, want)
	}

	if _, err := FindSources(fsys, []string{"missing"}); err == nil {
		t.Fatal("FindSources(missing) expected error")
	}
}

func TestFilesByLanguageAndDescribeFiles(t *testing.T) {
	t.Parallel()

	files := []string{"a.go", "b.tsx", "c.tsx", "d.js", "readme.md"}
	byLang := FilesByLanguage(files)
	if len(byLang["TSX"]) != 2 || len(byLang["Go"]) != 1 || len(byLang["JavaScript"]) != 1 {
		t.Fatalf("FilesByLanguage() = %v", byLang)
	}
	if got, want := DescribeFiles(files), "1 Go, 1 JavaScript, 2 TSX"; got != want {
		t.Fatalf("DescribeFiles() = %q, want %q", got, want)
	}
}

// pathExtractor reports the file path as the only key, finishing files in
// reverse order to exercise result ordering.
type pathExtractor struct {
	total int
	fail  string
}

func (p pathExtractor) Extract(_ context.Context, path string, src []byte) ([]Key, error) {
	if path == p.fail {
		return nil, errors.New("boom")
	}
	time.Sleep(time.Duration(p.total-len(src)) * time.Millisecond)
	return []Key{{Key: path, File: path}}, nil
}

func TestRunKeepsFileOrder(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	var files []string
	for i, name := range []string{"a.ts", "b.ts", "c.ts", "d.ts", "e.ts"} {
		content := make([]byte, i+1)
		if err := afero.WriteFile(fsys, name, content, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		files = append(files, name)
	}

	keys, err := Run(context.Background(), fsys, pathExtractor{total: 6}, files, 4)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var got []string
	for _, k := range keys {
		got = append(got, k.Key)
	}
	if !reflect.DeepEqual(got, files) {
		t.Fatalf("Run() order = %v, want %v", got, files)
	}

	if _, err := Run(context.Background(), fsys, pathExtractor{total: 6, fail: "c.ts"}, files, 2); err == nil {
		t.Fatal("Run() expected extractor error")
	}
	if _, err := Run(context.Background(), fsys, pathExtractor{}, []string{"missing.ts"}, 0); err == nil {
		t.Fatal("Run() expected read error")
	}
}

func TestSkippable(t *testing.T) {
	t.Parallel()

	got := Skippable([]Key{{Key: "a"}, {Key: "list", ReturnObjects: true}})
	if !reflect.DeepEqual(got, []string{"list"}) {
		t.Fatalf("Skippable() = %v", got)
	}
}

func TestParseGoKeyword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec string
		want GoKeyword
	}{
		{spec: "T", want: GoKeyword{FuncName: "T", MsgIDArg: 1}},
		{spec: "N:2,3", want: GoKeyword{FuncName: "N", MsgIDArg: 2, PluralArg: 3}},
		{spec: "pgettext:1c,2", want: GoKeyword{FuncName: "pgettext", MsgIDArg: 2, ContextArg: 1}},
		{spec: "pkg.Tr:2,3", want: GoKeyword{FuncName: "pkg.Tr", MsgIDArg: 2, PluralArg: 3}},
	}

	for _, tc := range tests {
		t.Run(tc.spec, func(t *testing.T) {
			if got := ParseGoKeyword(tc.spec); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ParseGoKeyword(%q) = %#v, want %#v", tc.spec, got, tc.want)
			}
		})
	}
}

func TestStringFromExpr(t *testing.T) {
	t.Parallel()

	expr, err := parser.ParseExpr(`"hello" + (" " + "world")`)
	if err != nil {
		t.Fatalf("ParseExpr: %v", err)
	}
	if got := stringFromExpr(expr); got != "hello world" {
		t.Fatalf("stringFromExpr concat = %q, want %q", got, "hello world")
	}

	notString, err := parser.ParseExpr("someVar")
	if err != nil {
		t.Fatalf("ParseExpr: %v", err)
	}
	if got := stringFromExpr(notString); got != "" {
		t.Fatalf("stringFromExpr(non-literal) = %q, want empty", got)
	}
}

func TestGoExtract(t *testing.T) {
	t.Parallel()

	src := `package main

import "example.com/i18n"

func main() {
	i18n.T("greeting.hello")
	T("menu." + "open")
	N("item.one", "item.other", 3)
	T(dynamicKey)
	Other("not.a.key")
}
`
	keys, err := NewGo(nil).Extract(context.Background(), "main.go", []byte(src))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := []Key{
		{Key: "greeting.hello", File: "main.go", Line: 6},
		{Key: "menu.open", File: "main.go", Line: 7},
		{Key: "item.one", File: "main.go", Line: 8, Plural: true},
		{Key: "item.other", File: "main.go", Line: 8, Plural: true},
	}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("Extract() = %#v, want %#v", keys, want)
	}

	if _, err := NewGo(nil).Extract(context.Background(), "bad.go", []byte("package")); err == nil {
		t.Fatal("Extract(invalid) expected error")
	}
}

func TestGoExtractContextKeyword(t *testing.T) {
	t.Parallel()

	src := "package p\nfunc f() { pgettext(\"menu\", \"open\") }\n"
	keys, err := NewGo([]string{"pgettext:1c,2"}).Extract(context.Background(), "p.go", []byte(src))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(keys) != 1 || keys[0].Key != "menu.open" {
		t.Fatalf("Extract() = %#v", keys)
	}
}

func TestByLanguage(t *testing.T) {
	t.Parallel()

	b := ByLanguage{JS: ReactIntl{}}
	keys, err := b.Extract(context.Background(), "main.go", []byte("package main"))
	if err != nil || keys != nil {
		t.Fatalf("Extract(go without Go extractor) = %v, %v", keys, err)
	}
}

func TestCommentKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		comment string
		want    []string
	}{
		{comment: `// t('some.key')`, want: []string{"some.key"}},
		{comment: `// i18n-check t("some.key.as.comment")`, want: []string{"some.key.as.comment"}},
		{comment: "/*\n * t(\"a\")\n * t('b')\n */", want: []string{"a", "b"}},
		{comment: `// someFunctiont("not a key")`, want: nil},
		{comment: `// t("mismatched')`, want: nil},
	}
	for _, tc := range tests {
		if got := commentKeys(tc.comment); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("commentKeys(%q) = %#v, want %#v", tc.comment, got, tc.want)
		}
	}
}

func TestUnescapeJS(t *testing.T) {
	t.Parallel()

	if got := unescapeJS(`a\'b\"c\\dé`); got != `a'b"c\dé` {
		t.Fatalf("unescapeJS() = %q", got)
	}
}
