// Package langmeta resolves locale codes found in catalog paths to language
// tags and display metadata (English name, native name, emoji flag) used in
// CLI output.
package langmeta

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Meta describes language display metadata.
type Meta struct {
	Code   string
	Name   string
	Native string
	Flag   string
}

// String formats m as "de-DE (German, Deutsch)".
func (m Meta) String() string {
	if m.Name == "" || m.Name == m.Code {
		return m.Code
	}
	if m.Native == "" || m.Native == m.Name {
		return m.Code + " (" + m.Name + ")"
	}
	return m.Code + " (" + m.Name + ", " + m.Native + ")"
}

var localeCode = regexp.MustCompile(`^[a-z]{2}(-[A-Za-z]{4})?(-([A-Z]{2}|[0-9]{3}))?$`)

func canonicalize(lang string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if normalized == "" {
		return ""
	}
	parts := strings.Split(normalized, "-")
	parts[0] = strings.ToLower(parts[0])
	for i := 1; i < len(parts); i++ {
		switch len(parts[i]) {
		case 4:
			parts[i] = strings.ToUpper(parts[i][:1]) + strings.ToLower(parts[i][1:])
		default:
			parts[i] = strings.ToUpper(parts[i])
		}
	}
	return strings.Join(parts, "-")
}

// Parse parses a locale code such as "en-US", "pt_br" or "zh-Hant-TW".
// Only plain language[-script][-region] codes are accepted, so that
// directory names like "src" or "common" are not taken for locales.
func Parse(code string) (language.Tag, bool) {
	c := canonicalize(code)
	if !localeCode.MatchString(c) {
		return language.Und, false
	}
	tag, err := language.Parse(c)
	if err != nil {
		return language.Und, false
	}
	base, conf := tag.Base()
	if conf == language.No || display.English.Languages().Name(base) == "" {
		return language.Und, false
	}
	return tag, true
}

// IsLocale reports whether s looks like a locale code.
func IsLocale(s string) bool {
	_, ok := Parse(s)
	return ok
}

// Equal reports whether a and b name the same locale, ignoring case and
// the choice of "-" or "_" as separator.
func Equal(a, b string) bool {
	return strings.EqualFold(canonicalize(a), canonicalize(b))
}

// Resolve returns display metadata for a locale code. Unknown codes are
// passed through as the name.
func Resolve(code string) Meta {
	tag, ok := Parse(code)
	if !ok {
		return Meta{Code: code, Name: code}
	}
	return Meta{
		Code:   code,
		Name:   display.English.Tags().Name(tag),
		Native: display.Self.Name(tag),
		Flag:   flag(tag),
	}
}

// flag returns the regional indicator pair for the tag's region, guessing
// the region from the language when the tag has none.
func flag(tag language.Tag) string {
	region, conf := tag.Region()
	if conf == language.No {
		return ""
	}
	code := region.String()
	if len(code) != 2 || code[0] < 'A' || code[0] > 'Z' || code[1] < 'A' || code[1] > 'Z' {
		return ""
	}
	const base = 0x1F1E6
	return string([]rune{base + rune(code[0]-'A'), base + rune(code[1]-'A')})
}

// NameLocale returns the locale a file name (without extension) stands
// for: the whole name as in "de-DE", or the suffix of a bundle name as in
// "app_de" or "intl_pt_BR". It returns "" when there is none.
func NameLocale(name string) string {
	if IsLocale(name) {
		return name
	}
	for i := 0; i < len(name)-1; i++ {
		if name[i] == '_' && IsLocale(name[i+1:]) {
			return name[i+1:]
		}
	}
	return ""
}

// Locate returns the locale code a catalog path belongs to: the last path
// segment, or the file name without extension, that parses as a locale.
// It returns "" when no segment does.
func Locate(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	segments := strings.Split(path, "/")
	if n := len(segments); n > 0 {
		name := segments[n-1]
		if i := strings.LastIndexByte(name, '.'); i > 0 {
			name = name[:i]
		}
		if loc := NameLocale(name); loc != "" {
			return loc
		}
		segments = segments[:n-1]
	}
	for i := len(segments) - 1; i >= 0; i-- {
		if IsLocale(segments[i]) {
			return segments[i]
		}
	}
	return ""
}
