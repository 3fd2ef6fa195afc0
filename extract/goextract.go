// Go AST-based key extractor for translation wrapper functions.
//
// This finds translation keys in Go source files by scanning the AST for
// calls to specified functions (e.g. T("key"), i18n.T("key", n)). The key
// argument position follows xgettext --keyword syntax.
package extract

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
)

// GoKeyword defines a function call to scan for and where its key is.
// Follows xgettext --keyword syntax:
//
//	"T"             T(key)
//	"N:1,2"         N(singular, plural, n), args 1 and 2 are keys
//	"pgettext:1c,2" arg 1 is the context, arg 2 the key
type GoKeyword struct {
	// FuncName is the function name to match (e.g. "T", "N", "Get").
	// Can be a bare name (matches any package) or "pkg.Func" (matches specific selector).
	FuncName string
	// MsgIDArg is the 1-based argument index of the key (default 1).
	MsgIDArg int
	// PluralArg is the 1-based argument index of the plural key (0 = none).
	PluralArg int
	// ContextArg is the 1-based argument index of the context (0 = none).
	ContextArg int
}

// DefaultGoKeywords are used when no keywords are configured.
var DefaultGoKeywords = []string{"T", "Tr", "N:1,2"}

// ParseGoKeyword parses an xgettext-style keyword spec into a GoKeyword.
// Examples:
//
//	"T"        → GoKeyword{FuncName:"T", MsgIDArg:1}
//	"N:1,2"    → GoKeyword{FuncName:"N", MsgIDArg:1, PluralArg:2}
//	"pgettext:1c,2" → GoKeyword{FuncName:"pgettext", ContextArg:1, MsgIDArg:2}
func ParseGoKeyword(spec string) GoKeyword {
	kw := GoKeyword{MsgIDArg: 1}

	parts := strings.SplitN(spec, ":", 2)
	kw.FuncName = parts[0]

	if len(parts) < 2 {
		return kw
	}

	argSpecs := strings.Split(parts[1], ",")
	for _, arg := range argSpecs {
		arg = strings.TrimSpace(arg)
		if strings.HasSuffix(arg, "c") {
			n, err := strconv.Atoi(strings.TrimSuffix(arg, "c"))
			if err == nil {
				kw.ContextArg = n
			}
		} else {
			n, err := strconv.Atoi(arg)
			if err == nil {
				if kw.MsgIDArg == 1 && kw.PluralArg == 0 {
					kw.MsgIDArg = n
				} else {
					kw.PluralArg = n
				}
			}
		}
	}

	return kw
}

// Go extracts keys from Go source files.
type Go struct {
	kwMap map[string][]GoKeyword
}

// NewGo returns a Go extractor for the given keyword specs, or for
// DefaultGoKeywords when specs is empty.
func NewGo(specs []string) *Go {
	if len(specs) == 0 {
		specs = DefaultGoKeywords
	}
	// funcName → []GoKeyword (multiple keywords can share a name)
	kwMap := make(map[string][]GoKeyword)
	for _, spec := range specs {
		kw := ParseGoKeyword(spec)
		kwMap[kw.FuncName] = append(kwMap[kw.FuncName], kw)
	}
	return &Go{kwMap: kwMap}
}

// Extract implements Extractor.
func (g *Go) Extract(_ context.Context, path string, src []byte) ([]Key, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	var keys []Key
	ast.Inspect(f, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}

		var funcName string
		switch fn := call.Fun.(type) {
		case *ast.Ident:
			// Direct call: T("...")
			funcName = fn.Name
		case *ast.SelectorExpr:
			// Selector call: pkg.T("...") or obj.T("...")
			funcName = fn.Sel.Name
			if ident, ok := fn.X.(*ast.Ident); ok {
				qualified := ident.Name + "." + fn.Sel.Name
				if _, found := g.kwMap[qualified]; found {
					funcName = qualified
				}
			}
		default:
			return true
		}

		kws, ok := g.kwMap[funcName]
		if !ok {
			return true
		}
		line := fset.Position(call.Lparen).Line
		for _, kw := range kws {
			keys = append(keys, keysFromCall(call, kw, path, line)...)
		}
		return true
	})

	return keys, nil
}

// keysFromCall extracts the keys of a single call matching a keyword.
func keysFromCall(call *ast.CallExpr, kw GoKeyword, path string, line int) []Key {
	key := stringArgAt(call, kw.MsgIDArg)
	if key == "" {
		return nil // not a string literal
	}
	if kw.ContextArg > 0 {
		ctx := stringArgAt(call, kw.ContextArg)
		if ctx == "" {
			return nil
		}
		key = ctx + "." + key
	}

	keys := []Key{{Key: key, File: path, Line: line, Plural: kw.PluralArg > 0}}
	if kw.PluralArg > 0 {
		if plural := stringArgAt(call, kw.PluralArg); plural != "" && plural != key {
			keys = append(keys, Key{Key: plural, File: path, Line: line, Plural: true})
		}
	}
	return keys
}

// stringArgAt extracts the string literal value at 1-based argument position.
// Returns "" if the argument is not a string literal or doesn't exist.
func stringArgAt(call *ast.CallExpr, pos int) string {
	idx := pos - 1
	if idx < 0 || idx >= len(call.Args) {
		return ""
	}
	return stringFromExpr(call.Args[idx])
}

// stringFromExpr extracts a string value from an AST expression.
// Handles string literals and simple concatenation (e.g. "foo" + "bar").
func stringFromExpr(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.BasicLit:
		if e.Kind == token.STRING {
			s, err := strconv.Unquote(e.Value)
			if err != nil {
				return ""
			}
			return s
		}
	case *ast.ParenExpr:
		return stringFromExpr(e.X)
	case *ast.BinaryExpr:
		if e.Op == token.ADD {
			left := stringFromExpr(e.X)
			right := stringFromExpr(e.Y)
			if left != "" && right != "" {
				return left + right
			}
		}
	}
	return ""
}

// ByLanguage routes each file to the extractor for its language. A nil
// extractor yields no keys for that language.
type ByLanguage struct {
	JS Extractor
	Go Extractor
}

// Extract implements Extractor.
func (b ByLanguage) Extract(ctx context.Context, path string, src []byte) ([]Key, error) {
	ex := b.JS
	if strings.HasSuffix(path, ".go") {
		ex = b.Go
	}
	if ex == nil {
		return nil, nil
	}
	return ex.Extract(ctx, path, src)
}
