package discover

import (
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

func writeFiles(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, content := range files {
		if err := afero.WriteFile(fsys, name, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return fsys
}

func TestFiles(t *testing.T) {
	t.Parallel()

	fsys := writeFiles(t, map[string]string{
		"translations/en-US.json":                    `{}`,
		"translations/de-de.json":                    `{}`,
		"translations/notes.txt":                     "",
		"translations/skipped/fr-fr.json":            `{}`,
		"translations/node_modules/x/en.json":        `{}`,
		"packages/web/locales/en/common.yaml":        "",
		"packages/web/locales/de/common.yml":         "",
		"packages/api/locales/en/errors.toml":        "",
		"packages/api/other/en/ignored.json":         `{}`,
		"packages/api/locales/en/generated/out.json": `{}`,
	})

	got, err := Files(fsys, []string{"translations", "packages/*/locales"}, []string{"translations/skipped", "**/generated/**"})
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}
	want := []string{
		"packages/api/locales/en/errors.toml",
		"packages/web/locales/de/common.yml",
		"packages/web/locales/en/common.yaml",
		"translations/de-de.json",
		"translations/en-US.json",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Files() = %v, want %v", got, want)
	}

	single, err := Files(fsys, []string{"./translations/en-US.json"}, nil)
	if err != nil || !reflect.DeepEqual(single, []string{"translations/en-US.json"}) {
		t.Fatalf("Files(file) = %v, %v", single, err)
	}

	if _, err := Files(fsys, []string{"missing"}, nil); err == nil {
		t.Fatal("Files(missing) expected error")
	}
	if _, err := Files(fsys, []string{"translations"}, []string{"a/[b"}); err == nil {
		t.Fatal("Files(invalid exclude) expected error")
	}
}

func TestIsSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file string
		want bool
	}{
		{file: "translations/en-US.json", want: true},
		{file: "translations/en-us.yaml", want: true},
		{file: "translations/de-de.json", want: false},
		{file: "locales/en-US/common.json", want: true},
		{file: "locales/EN_us/nested/common.json", want: true},
		{file: "locales/de-DE/en-US-notes.json", want: false},
		{file: "lib/l10n/app_en_US.arb", want: true},
		{file: "lib/l10n/app_de.arb", want: false},
	}
	for _, tc := range tests {
		if got := IsSource(tc.file, "en-US"); got != tc.want {
			t.Fatalf("IsSource(%q) = %v, want %v", tc.file, got, tc.want)
		}
	}
}

func TestReference(t *testing.T) {
	t.Parallel()

	files := []string{
		"locales/de-DE/one.json",
		"locales/de-DE/three.json",
		"locales/en-US/one.json",
		"locales/en-US/two.json",
		"other/locales/de-DE/two.json",
		"translations/de-de.json",
		"translations/en-US.json",
	}
	tests := []struct {
		target string
		want   string
	}{
		{target: "translations/de-de.json", want: "translations/en-US.json"},
		{target: "locales/de-DE/one.json", want: "locales/en-US/one.json"},
		{target: "locales/de-DE/three.json", want: ""},
		{target: "other/locales/de-DE/two.json", want: ""},
	}
	for _, tc := range tests {
		if got := Reference(tc.target, files, "en-US"); got != tc.want {
			t.Fatalf("Reference(%q) = %q, want %q", tc.target, got, tc.want)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	fsys := writeFiles(t, map[string]string{
		"locales/en-US/one.json":   `{"a": "A", "nested": {"b": "B"}}`,
		"locales/de-DE/one.json":   `{"a": "A"}`,
		"locales/de-DE/extra.json": `{"x": "X"}`,
		"locales/fr-FR/one.yaml":   "a: A\n",
	})
	files, err := Files(fsys, []string{"locales"}, nil)
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}
	cats, err := Load(fsys, files, "en-US")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cats.Sources) != 1 || cats.Sources[0].Name != "locales/en-US/one.json" {
		t.Fatalf("Sources = %#v", cats.Sources)
	}
	if got := cats.Sources[0].Content.Keys(); !reflect.DeepEqual(got, []string{"a", "nested.b"}) {
		t.Fatalf("source keys = %v", got)
	}
	if len(cats.Targets) != 1 || cats.Targets[0].Name != "locales/de-DE/one.json" || cats.Targets[0].Reference != "locales/en-US/one.json" {
		t.Fatalf("Targets = %#v", cats.Targets)
	}
	// one.yaml has no source with the same file name.
	wantUnpaired := []string{"locales/de-DE/extra.json", "locales/fr-FR/one.yaml"}
	if !reflect.DeepEqual(cats.Unpaired, wantUnpaired) {
		t.Fatalf("Unpaired = %v, want %v", cats.Unpaired, wantUnpaired)
	}
	if got := Locales(cats.Targets); !reflect.DeepEqual(got, []string{"de-DE"}) {
		t.Fatalf("Locales() = %v", got)
	}

	broken := writeFiles(t, map[string]string{"en.json": `{`})
	if _, err := Load(broken, []string{"en.json"}, "en"); err == nil {
		t.Fatal("Load(invalid json) expected error")
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	fsys := writeFiles(t, map[string]string{
		"app/public/locales/en/common.json": `{}`,
		"app/translations/en.yaml":          "",
		"app/src/i18n/index.ts":             "",
	})
	got := Detect(fsys, "app")
	want := []string{"app/public/locales", "app/translations"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Detect() = %v, want %v", got, want)
	}
}
