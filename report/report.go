package report

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/minios-linux/i18ncheck/check"
)

// Reporter renders check results.
type Reporter interface {
	Result(r check.Result) string
	Invalid(r check.InvalidResult) string
}

// Names lists the available reporters.
var Names = []string{"standard", "summary"}

// New returns the reporter with the given name. An empty name selects
// the standard reporter.
func New(name string) (Reporter, error) {
	switch name {
	case "", "standard":
		return Standard{}, nil
	case "summary":
		return Summary{}, nil
	default:
		return nil, fmt.Errorf("unknown reporter %q (available: standard, summary)", name)
	}
}

func sortedFiles[T any](m map[string][]T) []string {
	files := make([]string, 0, len(m))
	for f := range m {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Standard lists every finding.
type Standard struct{}

// Result renders one row per key.
func (Standard) Result(r check.Result) string {
	var rows [][]string
	for _, file := range sortedFiles(r) {
		for _, key := range r[file] {
			rows = append(rows, []string{truncate(file), truncate(key)})
		}
	}
	return FormatTable([][][]string{{{"file", "key"}}, rows})
}

// Invalid renders one group per invalid key, holding its file, key and
// diagnostic message.
func (Standard) Invalid(r check.InvalidResult) string {
	groups := [][][]string{{{"info", "result"}}}
	for _, file := range sortedFiles(r) {
		for _, entry := range r[file] {
			groups = append(groups, [][]string{
				{"file", truncate(file)},
				{"key", truncate(entry.Key)},
				{"msg", truncate(entry.Msg)},
			})
		}
	}
	return FormatTable(groups)
}

// Summary prints the number of findings per file.
type Summary struct{}

// Result implements Reporter.
func (Summary) Result(r check.Result) string { return summaryTable(r) }

// Invalid implements Reporter.
func (Summary) Invalid(r check.InvalidResult) string { return summaryTable(r) }

func summaryTable[T any](m map[string][]T) string {
	var rows [][]string
	for _, file := range sortedFiles(m) {
		rows = append(rows, []string{truncate(file), strconv.Itoa(len(m[file]))})
	}
	return FormatTable([][][]string{{{"file", "total"}}, rows})
}
