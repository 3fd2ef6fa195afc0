package check

import (
	"github.com/minios-linux/i18ncheck/catalog"
	"github.com/minios-linux/i18ncheck/i18next"
)

// FindMissing reports, per target, the source keys the target lacks or
// leaves empty. With plural suffixes enabled, "count_one" and "count_other"
// are the same logical key as "count", so a target that defines either form
// is complete.
func FindMissing(source *catalog.Translation, targets map[string]*catalog.Translation, opts Options) Result {
	format := opts.format()
	out := Result{}
	for name, target := range targets {
		var missing []string
		if format.PluralSuffixes {
			missing = missingPlural(source, target, opts)
		} else {
			for _, key := range source.Keys() {
				if opts.Ignore.Match(key) {
					continue
				}
				if v, ok := target.Get(key); !ok || v == "" {
					missing = append(missing, key)
				}
			}
		}
		if len(missing) > 0 {
			out[name] = missing
		}
	}
	return out
}

func missingPlural(source, target *catalog.Translation, opts Options) []string {
	translated := make(map[string]bool, target.Len())
	for _, key := range target.Keys() {
		if v, _ := target.Get(key); v != "" {
			translated[i18next.BaseKey(key)] = true
		}
	}
	var missing []string
	seen := make(map[string]bool)
	for _, key := range source.Keys() {
		base := i18next.BaseKey(key)
		if seen[base] || opts.Ignore.Match(key) || opts.Ignore.Match(base) {
			continue
		}
		seen[base] = true
		if !translated[base] {
			missing = append(missing, base)
		}
	}
	return missing
}
