// Package extract finds the translation keys an application references in
// its source code.
//
// JavaScript and TypeScript sources (including JSX/TSX) are parsed with
// tree-sitter; Go sources are parsed with go/ast. Each message convention
// (i18next, next-intl, react-intl) has its own Extractor that knows which
// call sites and components carry translation keys.
package extract

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// SupportedExtensions maps file extensions to the language used to parse
// them.
var SupportedExtensions = map[string]string{
	".js":  "JavaScript",
	".jsx": "JavaScript",
	".mjs": "JavaScript",
	".cjs": "JavaScript",
	".ts":  "TypeScript",
	".mts": "TypeScript",
	".cts": "TypeScript",
	".tsx": "TSX",
	".go":  "Go",
}

// skipDirs contains directory names to skip during source file scanning.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	".next":        true,
	".turbo":       true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
}

// Key is a translation key found at a call site.
type Key struct {
	// Key is the full key as it appears in the catalog, including any
	// namespace path prefix (next-intl) or keyPrefix (i18next).
	Key string
	// Namespace is the i18next namespace, i.e. the catalog file the key
	// is looked up in. Empty when the default namespace applies.
	Namespace string
	// File is the source file the key was found in.
	File string
	// Line is the 1-based line of the call site.
	Line int
	// DefaultValue is the inline fallback text, if any.
	DefaultValue string
	// Plural is set when the call passes a count, so plural-suffixed
	// catalog entries satisfy it.
	Plural bool
	// ReturnObjects marks keys that address a whole subtree of the
	// catalog rather than a single message.
	ReturnObjects bool
	// Dynamic is set when the key or its namespace is only known at
	// runtime.
	Dynamic bool
}

// Extractor extracts translation keys from one source file.
type Extractor interface {
	Extract(ctx context.Context, path string, src []byte) ([]Key, error)
}

// FindSources recursively finds all source files with known extensions under
// the given paths. A path may also name a single file. Common build and VCS
// directories are skipped. The result is sorted and free of duplicates.
func FindSources(fsys afero.Fs, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		path = filepath.ToSlash(path)
		if !seen[path] && isSource(path) {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := fsys.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				return nil // skip unreadable entries
			}
			if info.IsDir() {
				if path != root && skipDirs[info.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func isSource(path string) bool {
	ext := filepath.Ext(path)
	if _, ok := SupportedExtensions[ext]; !ok {
		return false
	}
	base := filepath.Base(path)
	return !strings.HasSuffix(base, "_test.go") && !strings.HasSuffix(base, ".d.ts")
}

// FilesByLanguage groups source files by their parser language.
func FilesByLanguage(files []string) map[string][]string {
	result := make(map[string][]string)
	for _, f := range files {
		if lang, ok := SupportedExtensions[filepath.Ext(f)]; ok {
			result[lang] = append(result[lang], f)
		}
	}
	return result
}

// DescribeFiles returns a human-readable summary of the source files found,
// e.g. "2 Go, 3 TSX".
func DescribeFiles(files []string) string {
	byLang := FilesByLanguage(files)
	var langs []string
	for lang := range byLang {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	var parts []string
	for _, lang := range langs {
		parts = append(parts, fmt.Sprintf("%d %s", len(byLang[lang]), lang))
	}
	return strings.Join(parts, ", ")
}

// Run reads and extracts every file with up to workers goroutines. The
// returned keys are ordered by the position of their file in files, then
// by their order within the file, regardless of completion order. The first
// read or parse failure cancels the remaining work and is returned.
func Run(ctx context.Context, fsys afero.Fs, ex Extractor, files []string, workers int) ([]Key, error) {
	if workers < 1 {
		workers = 1
	}
	perFile := make([][]Key, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := afero.ReadFile(fsys, path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			keys, err := ex.Extract(ctx, path, src)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}
			perFile[i] = keys
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Key
	for _, keys := range perFile {
		out = append(out, keys...)
	}
	return out, nil
}

// Skippable returns the keys marked with ReturnObjects.
func Skippable(keys []Key) []string {
	var out []string
	for _, k := range keys {
		if k.ReturnObjects {
			out = append(out, k.Key)
		}
	}
	return out
}
