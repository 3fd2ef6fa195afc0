// Package discover finds catalog files, tells source catalogs from target
// catalogs and pairs every target with the source file it translates.
package discover

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"

	"github.com/minios-linux/i18ncheck/catalog"
	"github.com/minios-linux/i18ncheck/check"
	"github.com/minios-linux/i18ncheck/langmeta"
)

// alwaysExcluded directories are never searched for catalogs.
var alwaysExcluded = []string{"node_modules", ".git"}

// clean normalizes p to a slash-separated relative path.
func clean(p string) string {
	return path.Clean(filepath.ToSlash(strings.TrimSpace(p)))
}

// ---------------------------------------------------------------------------
// File expansion
// ---------------------------------------------------------------------------

// Files expands locale paths into the sorted list of catalog files they
// contain. A locale path is a catalog file, a directory searched
// recursively, or a glob pattern such as "packages/*/locales" where "**"
// also crosses directories. Paths matching an exclude pattern are skipped.
func Files(fsys afero.Fs, locales, exclude []string) ([]string, error) {
	ex, err := newExcluder(exclude)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] && catalog.IsCatalog(p) && !ex.match(p) {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, loc := range locales {
		if strings.TrimSpace(loc) == "" {
			continue
		}
		loc = clean(loc)
		if hasMeta(loc) {
			if err := expandGlob(fsys, loc, ex, add); err != nil {
				return nil, err
			}
			continue
		}
		info, err := fsys.Stat(loc)
		if err != nil {
			return nil, fmt.Errorf("locale path %s: %w", loc, err)
		}
		if !info.IsDir() {
			add(loc)
			continue
		}
		if err := walkCatalogs(fsys, loc, ex, add); err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func hasMeta(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

// walkCatalogs calls add for every file below dir.
func walkCatalogs(fsys afero.Fs, dir string, ex *excluder, add func(string)) error {
	return afero.Walk(fsys, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", p, err)
		}
		p = clean(p)
		if info.IsDir() {
			if p != dir && ex.match(p) {
				return filepath.SkipDir
			}
			return nil
		}
		add(p)
		return nil
	})
}

// expandGlob walks the static prefix of pattern and adds every matching
// file, or every file below a matching directory.
func expandGlob(fsys afero.Fs, pattern string, ex *excluder, add func(string)) error {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return fmt.Errorf("invalid locale pattern %q: %w", pattern, err)
	}
	root := "."
	if i := strings.IndexAny(pattern, "*?[{"); i > 0 {
		if j := strings.LastIndexByte(pattern[:i], '/'); j > 0 {
			root = pattern[:j]
		}
	}
	if _, err := fsys.Stat(root); err != nil {
		return fmt.Errorf("locale pattern %s: %w", pattern, err)
	}

	return afero.Walk(fsys, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", p, err)
		}
		p = clean(p)
		if info.IsDir() {
			if p != root && ex.match(p) {
				return filepath.SkipDir
			}
			if p != root && g.Match(p) {
				if err := walkCatalogs(fsys, p, ex, add); err != nil {
					return err
				}
				return filepath.SkipDir
			}
			return nil
		}
		if g.Match(p) {
			add(p)
		}
		return nil
	})
}

// excluder matches paths against exclude patterns. A pattern excludes the
// path it names and everything below it.
type excluder struct {
	prefixes []string
	globs    []glob.Glob
}

func newExcluder(patterns []string) (*excluder, error) {
	ex := &excluder{}
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		p = clean(p)
		if !hasMeta(p) {
			ex.prefixes = append(ex.prefixes, p)
			continue
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		ex.globs = append(ex.globs, g)
	}
	return ex, nil
}

func (ex *excluder) match(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		for _, name := range alwaysExcluded {
			if seg == name {
				return true
			}
		}
	}
	for _, prefix := range ex.prefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	for _, g := range ex.globs {
		if g.Match(p) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Source matching and pairing
// ---------------------------------------------------------------------------

// IsSource reports whether file belongs to the source locale: one of its
// directories is named after the locale, or its name without extension
// is, alone or as a bundle suffix ("app_en.arb"). Locale names match regardless of case and separator.
func IsSource(file, source string) bool {
	file = clean(file)
	dir, name := path.Split(file)
	base := strings.TrimSuffix(name, path.Ext(name))
	if langmeta.Equal(base, source) {
		return true
	}
	if loc := langmeta.NameLocale(base); loc != "" && langmeta.Equal(loc, source) {
		return true
	}
	for _, seg := range strings.Split(strings.TrimSuffix(dir, "/"), "/") {
		if seg != "" && langmeta.Equal(seg, source) {
			return true
		}
	}
	return false
}

// Reference returns the source file target translates, or "" when there
// is none. A source file in the same directory is preferred, as in
// "translations/en-US.json" for "translations/de-DE.json". Otherwise the
// source file with the same name in a sibling directory is used, as in
// "locales/en-US/common.json" for "locales/de-DE/common.json".
func Reference(target string, files []string, source string) string {
	target = clean(target)
	dir := path.Dir(target)
	for _, f := range files {
		if IsSource(f, source) && path.Dir(clean(f)) == dir {
			return clean(f)
		}
	}
	for _, f := range files {
		f = clean(f)
		if !IsSource(f, source) {
			continue
		}
		if path.Dir(path.Dir(f)) == path.Dir(dir) && path.Base(f) == path.Base(target) {
			return f
		}
	}
	return ""
}

// Catalogs is the result of Load.
type Catalogs struct {
	Sources []check.File
	Targets []check.File
	// Unpaired lists target files without a source file.
	Unpaired []string
}

// Load reads every file and sorts it into sources and targets.
func Load(fsys afero.Fs, files []string, source string) (*Catalogs, error) {
	out := &Catalogs{}
	for _, f := range files {
		content, err := catalog.Load(fsys, f)
		if err != nil {
			return nil, err
		}
		f = clean(f)
		if IsSource(f, source) {
			out.Sources = append(out.Sources, check.File{Name: f, Content: content})
			continue
		}
		ref := Reference(f, files, source)
		if ref == "" {
			out.Unpaired = append(out.Unpaired, f)
			continue
		}
		out.Targets = append(out.Targets, check.File{Name: f, Reference: ref, Content: content})
	}
	return out, nil
}

// Locales returns the sorted, distinct locale codes of the target files.
func Locales(targets []check.File) []string {
	seen := make(map[string]bool)
	var codes []string
	for _, t := range targets {
		code := langmeta.Locate(t.Name)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
