package check

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Check names one class of defect.
type Check string

const (
	MissingKeys   Check = "missingKeys"
	InvalidKeys   Check = "invalidKeys"
	UnusedKeys    Check = "unused"
	UndefinedKeys Check = "undefined"
)

// DefaultChecks are run when no checks are selected.
var DefaultChecks = []Check{InvalidKeys, MissingKeys}

// AllChecks lists every check.
var AllChecks = []Check{MissingKeys, InvalidKeys, UnusedKeys, UndefinedKeys}

// ParseChecks parses check names, accepting comma-separated lists and the
// short forms "missing" and "invalid". Unknown names are returned in
// unknown instead of failing the run.
func ParseChecks(values []string) (checks []Check, unknown []string) {
	for _, v := range values {
		for _, name := range strings.Split(v, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			var c Check
			switch strings.ToLower(name) {
			case "missingkeys", "missing":
				c = MissingKeys
			case "invalidkeys", "invalid":
				c = InvalidKeys
			case "unused", "unusedkeys":
				c = UnusedKeys
			case "undefined", "undefinedkeys":
				c = UndefinedKeys
			default:
				unknown = append(unknown, name)
				continue
			}
			if !slices.Contains(checks, c) {
				checks = append(checks, c)
			}
		}
	}
	return checks, unknown
}

// Options configure a run. The zero value checks ICU messages for missing
// and invalid keys.
type Options struct {
	Format Format
	// Checks selects the checks to run. Empty means DefaultChecks.
	Checks []Check
	// Ignore excludes matching keys from every result.
	Ignore *Matcher
	// ComponentFunctions are extra JSX components treated like <Trans>.
	ComponentFunctions []string
	// GoKeywords are xgettext-style specs of the Go translation functions.
	// Empty means extract.DefaultGoKeywords.
	GoKeywords []string
}

// Has reports whether check c is selected.
func (o Options) Has(c Check) bool {
	if len(o.Checks) == 0 {
		return slices.Contains(DefaultChecks, c)
	}
	return slices.Contains(o.Checks, c)
}

func (o Options) format() Format {
	if o.Format.Name == "" {
		return ICU
	}
	return o.Format
}

// Matcher matches keys against ignore patterns. A pattern is either an
// exact key or a prefix followed by a trailing "*", as in
// "some.namespace.*", where "*" also matches dots. Other glob characters
// are taken literally.
type Matcher struct {
	patterns []string
	// globs holds the compiled prefix pattern, or nil for exact keys.
	globs []glob.Glob
}

// NewMatcher compiles ignore patterns.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		var g glob.Glob
		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			var err error
			if g, err = glob.Compile(glob.QuoteMeta(prefix) + "*"); err != nil {
				return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
			}
		}
		m.patterns = append(m.patterns, p)
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Match reports whether key is ignored. A nil Matcher ignores nothing.
func (m *Matcher) Match(key string) bool {
	if m == nil {
		return false
	}
	for i, g := range m.globs {
		if m.patterns[i] == key || (g != nil && g.Match(key)) {
			return true
		}
	}
	return false
}

// Patterns returns the source patterns.
func (m *Matcher) Patterns() []string {
	if m == nil {
		return nil
	}
	return m.patterns
}
