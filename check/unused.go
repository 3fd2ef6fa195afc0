package check

import (
	"path/filepath"
	"strings"

	"github.com/minios-linux/i18ncheck/extract"
	"github.com/minios-linux/i18ncheck/i18next"
)

// namespaceOf returns the namespace a catalog file defines under the
// namespace-per-file convention: its base name without extension.
func namespaceOf(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FindUnused reports, per source catalog file, the keys no extracted call
// site refers to. A key is used when code references it bare or qualified
// with the file's namespace. Keys below a returnObjects access are never
// reported.
func FindUnused(sources []File, keys []extract.Key, opts Options) Result {
	plural := opts.format().PluralSuffixes
	used := make(map[string]bool, len(keys)*2)
	for _, k := range keys {
		used[k.Key] = true
		if k.Namespace != "" {
			used[k.Namespace+"."+k.Key] = true
		}
	}
	skippable := extract.Skippable(keys)

	out := Result{}
	for _, file := range sources {
		ns := namespaceOf(file.Name)
		var unused []string
		for _, key := range file.Content.Keys() {
			if opts.Ignore.Match(key) || isUsed(key, ns, used) {
				continue
			}
			if plural && isUsed(i18next.BaseKey(key), ns, used) {
				continue
			}
			if underAny(key, ns, skippable) {
				continue
			}
			unused = append(unused, key)
		}
		if len(unused) > 0 {
			out[file.Name] = append(out[file.Name], unused...)
		}
	}
	return out
}

func isUsed(key, ns string, used map[string]bool) bool {
	return used[key] || used[ns+"."+key]
}

// underAny reports whether key equals or lies below one of prefixes,
// bare or qualified with ns.
func underAny(key, ns string, prefixes []string) bool {
	qualified := ns + "." + key
	for _, p := range prefixes {
		if key == p || qualified == p || strings.HasPrefix(key, p+".") || strings.HasPrefix(qualified, p+".") {
			return true
		}
	}
	return false
}

// FindUndefined reports, per source-code file, the extracted keys no
// source catalog defines. Keys with a dynamic namespace are skipped, and a
// returnObjects key is defined when any catalog key lies below it.
// Duplicate call sites are reported once each.
func FindUndefined(sources []File, keys []extract.Key, opts Options) Result {
	plural := opts.format().PluralSuffixes
	defined := make(map[string]bool)
	for _, file := range sources {
		ns := namespaceOf(file.Name)
		for _, key := range file.Content.Keys() {
			defined[key] = true
			defined[ns+"."+key] = true
			if plural {
				base := i18next.BaseKey(key)
				defined[base] = true
				defined[ns+"."+base] = true
			}
		}
	}

	out := Result{}
	for _, k := range keys {
		if k.Dynamic || opts.Ignore.Match(k.Key) {
			continue
		}
		if isDefined(k, defined) {
			continue
		}
		out[k.File] = append(out[k.File], k.Key)
	}
	return out
}

func isDefined(k extract.Key, defined map[string]bool) bool {
	candidates := []string{k.Key}
	if k.Namespace != "" {
		candidates = append(candidates, k.Namespace+"."+k.Key)
	}
	for _, c := range candidates {
		if defined[c] {
			return true
		}
	}
	if !k.ReturnObjects {
		return false
	}
	for key := range defined {
		for _, c := range candidates {
			if strings.HasPrefix(key, c+".") {
				return true
			}
		}
	}
	return false
}
