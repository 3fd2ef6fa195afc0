package report

import (
	"strings"
	"testing"

	"github.com/minios-linux/i18ncheck/check"
)

func trim(s string) string { return strings.TrimSpace(s) }

func TestFormatTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		groups [][][]string
		want   string
	}{
		{
			name:   "single col and row",
			groups: [][][]string{{{"lorem ipsum"}}},
			want: `
┌─────────────┐
│ lorem ipsum │
└─────────────┘`,
		},
		{
			name:   "single col and two rows",
			groups: [][][]string{{{"lorem ipsum"}, {"foo bar"}}},
			want: `
┌─────────────┐
│ lorem ipsum │
│ foo bar     │
└─────────────┘`,
		},
		{
			name: "two columns and three row groups",
			groups: [][][]string{
				{{"one", "two"}},
				{{"lorem ipsum dolor", "foobar"}, {"baz", "more text"}},
				{{"hello world", "here is more text for testing"}},
			},
			want: `
┌───────────────────┬───────────────────────────────┐
│ one               │ two                           │
├───────────────────┼───────────────────────────────┤
│ lorem ipsum dolor │ foobar                        │
│ baz               │ more text                     │
├───────────────────┼───────────────────────────────┤
│ hello world       │ here is more text for testing │
└───────────────────┴───────────────────────────────┘`,
		},
		{
			name:   "wide characters",
			groups: [][][]string{{{"日本"}, {"abcd"}}},
			want: `
┌──────┐
│ 日本 │
│ abcd │
└──────┘`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatTable(tc.groups); got != trim(tc.want) {
				t.Fatalf("FormatTable() =\n%s\nwant\n%s", got, trim(tc.want))
			}
		})
	}
}

func TestStandardResult(t *testing.T) {
	t.Parallel()

	got := Standard{}.Result(check.Result{
		"some/en.json": {"key.three"},
		"some/de.json": {"key.one", "key.two"},
	})
	want := `
┌──────────────┬───────────┐
│ file         │ key       │
├──────────────┼───────────┤
│ some/de.json │ key.one   │
│ some/de.json │ key.two   │
│ some/en.json │ key.three │
└──────────────┴───────────┘`
	if got != trim(want) {
		t.Fatalf("Result() =\n%s\nwant\n%s", got, trim(want))
	}
}

func TestStandardInvalid(t *testing.T) {
	t.Parallel()

	got := Standard{}.Invalid(check.InvalidResult{
		"some/en-US.json": {
			{Key: "key.one", Msg: "key one error msg"},
			{Key: "key.two", Msg: "another msg"},
		},
		"some/de.json": {{Key: "key.three", Msg: "key three msg"}},
	})
	want := `
┌──────┬───────────────────┐
│ info │ result            │
├──────┼───────────────────┤
│ file │ some/de.json      │
│ key  │ key.three         │
│ msg  │ key three msg     │
├──────┼───────────────────┤
│ file │ some/en-US.json   │
│ key  │ key.one           │
│ msg  │ key one error msg │
├──────┼───────────────────┤
│ file │ some/en-US.json   │
│ key  │ key.two           │
│ msg  │ another msg       │
└──────┴───────────────────┘`
	if got != trim(want) {
		t.Fatalf("Invalid() =\n%s\nwant\n%s", got, trim(want))
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	got := Summary{}.Invalid(check.InvalidResult{
		"some/en-US.json": {{Key: "a"}, {Key: "b"}},
		"some/de.json":    {{Key: "c"}},
	})
	want := `
┌─────────────────┬───────┐
│ file            │ total │
├─────────────────┼───────┤
│ some/de.json    │ 1     │
│ some/en-US.json │ 2     │
└─────────────────┴───────┘`
	if got != trim(want) {
		t.Fatalf("Invalid() =\n%s\nwant\n%s", got, trim(want))
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 85)
	if got := truncate(long); got != strings.Repeat("x", 80)+"..." {
		t.Fatalf("truncate() = %q", got)
	}
	if got := truncate("short"); got != "short" {
		t.Fatalf("truncate(short) = %q", got)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, name := range append([]string{""}, Names...) {
		if _, err := New(name); err != nil {
			t.Fatalf("New(%q) error = %v", name, err)
		}
	}
	if _, err := New("json"); err == nil {
		t.Fatal("New(json) expected error")
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{in: "abc", want: 3},
		{in: "日本", want: 4},
		{in: "\033[0;32m██░░\033[0m  50%", want: 9},
	}
	for _, tc := range tests {
		if got := displayWidth(tc.in); got != tc.want {
			t.Fatalf("displayWidth(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
