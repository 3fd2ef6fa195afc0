// Package config loads the .i18ncheck.yaml project configuration file.
//
// When a .i18ncheck.yaml file exists in the project root, its values are
// used as defaults for the command line flags. Flags given on the command
// line always win.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/minios-linux/i18ncheck/check"
	"github.com/minios-linux/i18ncheck/report"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// File is the top-level .i18ncheck.yaml structure.
type File struct {
	// Source is the source locale, e.g. "en-US".
	Source string `yaml:"source,omitempty"`
	// Locales are the catalog files, directories or glob patterns to check.
	Locales []string `yaml:"locales,omitempty"`
	// Format is the message format: icu, i18next, react-intl or next-intl.
	Format string `yaml:"format,omitempty"`
	// Only selects the checks to run.
	Only []string `yaml:"only,omitempty"`
	// Reporter is "standard" or "summary".
	Reporter string `yaml:"reporter,omitempty"`
	// Exclude are paths or globs skipped while looking for catalogs.
	Exclude []string `yaml:"exclude,omitempty"`
	// Ignore are key patterns left out of every result.
	Ignore []string `yaml:"ignore,omitempty"`
	// Unused are the source code paths scanned for unused and undefined keys.
	Unused []string `yaml:"unused,omitempty"`
	// ComponentFunctions are extra JSX components handled like <Trans>.
	ComponentFunctions []string `yaml:"component_functions,omitempty"`
	// GoKeywords are xgettext-style Go translation function specs.
	GoKeywords []string `yaml:"go_keywords,omitempty"`
	// Workers bounds parallel source extraction (default: number of CPUs).
	Workers int `yaml:"workers,omitempty"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// FileName is the default config file name.
const FileName = ".i18ncheck.yaml"

// Load loads and validates .i18ncheck.yaml from the given directory.
// Relative paths in the file are resolved against that directory.
// Returns nil if no config file exists.
func Load(fsys afero.Fs, rootDir string) (*File, error) {
	p := filepath.Join(rootDir, FileName)
	data, err := afero.ReadFile(fsys, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", p, err)
	}

	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}

	f.Locales = rebase(rootDir, f.Locales)
	f.Exclude = rebase(rootDir, f.Exclude)
	f.Unused = rebase(rootDir, f.Unused)
	return &f, nil
}

func (f *File) validate() error {
	if f.Format != "" {
		if _, err := check.ParseFormat(f.Format); err != nil {
			return err
		}
	}
	if f.Reporter != "" && !slices.Contains(report.Names, f.Reporter) {
		return fmt.Errorf("unknown reporter %q (valid: standard, summary)", f.Reporter)
	}
	if _, unknown := check.ParseChecks(f.Only); len(unknown) > 0 {
		return fmt.Errorf("unknown check %q in \"only\"", unknown[0])
	}
	if _, err := check.NewMatcher(f.Ignore); err != nil {
		return err
	}
	if f.Workers < 0 {
		return fmt.Errorf("\"workers\" must not be negative, got %d", f.Workers)
	}
	return nil
}

// rebase joins relative paths onto dir.
func rebase(dir string, paths []string) []string {
	if dir == "" || dir == "." || len(paths) == 0 {
		return paths
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		if filepath.IsAbs(p) {
			out[i] = p
			continue
		}
		out[i] = path.Join(filepath.ToSlash(dir), p)
	}
	return out
}
