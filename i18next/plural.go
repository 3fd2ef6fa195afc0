package i18next

import "strings"

// PluralSuffixes are the key suffixes i18next appends for plural forms.
// Ordinal forms come first so that "_ordinal_one" is stripped whole.
var PluralSuffixes = []string{
	"_ordinal_zero",
	"_ordinal_one",
	"_ordinal_two",
	"_ordinal_few",
	"_ordinal_many",
	"_ordinal_other",
	"_zero",
	"_one",
	"_two",
	"_few",
	"_many",
	"_other",
	"_interval",
}

// BaseKey strips a plural suffix from key, so that "count_one" and
// "count_other" both map to "count".
func BaseKey(key string) string {
	for _, suffix := range PluralSuffixes {
		if strings.HasSuffix(key, suffix) && len(key) > len(suffix) {
			return strings.TrimSuffix(key, suffix)
		}
	}
	return key
}

// HasPluralSuffix reports whether key ends in one of PluralSuffixes.
func HasPluralSuffix(key string) bool {
	return BaseKey(key) != key
}
