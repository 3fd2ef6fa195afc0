package check

import (
	"fmt"
	"strings"

	"github.com/minios-linux/i18ncheck/compare"
	"github.com/minios-linux/i18ncheck/extract"
)

// Format bundles everything that differs between message conventions: how
// messages are compared, whether i18next plural key suffixes apply, and how
// keys are found in source code. It is selected once per run.
type Format struct {
	Name       string
	Comparator compare.Comparator
	// PluralSuffixes enables i18next plural key normalization
	// ("count_one" and "count_other" stand for "count").
	PluralSuffixes bool

	newJS func(components []string) extract.Extractor
}

// Extractor returns the source-code extractor of the format, configured
// from opts. ok is false for formats without code extraction, such as
// plain ICU.
func (f Format) Extractor(opts Options) (ex extract.Extractor, ok bool) {
	if f.newJS == nil {
		return nil, false
	}
	return extract.ByLanguage{
		JS: f.newJS(opts.ComponentFunctions),
		Go: extract.NewGo(opts.GoKeywords),
	}, true
}

// ExtractsKeys reports whether the format supports code extraction.
func (f Format) ExtractsKeys() bool { return f.newJS != nil }

func (f Format) String() string { return f.Name }

var (
	ICU = Format{
		Name:       "icu",
		Comparator: compare.ICU{},
	}
	I18Next = Format{
		Name:           "i18next",
		Comparator:     compare.I18Next{},
		PluralSuffixes: true,
		newJS: func(components []string) extract.Extractor {
			return extract.NewI18Next(components)
		},
	}
	ReactIntl = Format{
		Name:       "react-intl",
		Comparator: compare.ICU{},
		newJS: func([]string) extract.Extractor { return extract.ReactIntl{} },
	}
	NextIntl = Format{
		Name:       "next-intl",
		Comparator: compare.ICU{},
		newJS: func([]string) extract.Extractor { return extract.NextIntl{} },
	}
)

// Formats lists the supported formats.
var Formats = []Format{ICU, I18Next, ReactIntl, NextIntl}

// FormatNames returns the names of the supported formats.
func FormatNames() []string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = f.Name
	}
	return names
}

// ParseFormat looks up a format by name. An empty name selects ICU.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return ICU, nil
	}
	for _, f := range Formats {
		if strings.EqualFold(f.Name, name) {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, name, strings.Join(FormatNames(), ", "))
}
