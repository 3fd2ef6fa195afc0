package langmeta

import "testing"

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "pt_br", want: "pt-BR"},
		{in: " EN-us ", want: "en-US"},
		{in: "zh_hant_tw", want: "zh-Hant-TW"},
		{in: "ru", want: "ru"},
		{in: "", want: ""},
	}

	for _, tc := range cases {
		got := canonicalize(tc.in)
		if got != tc.want {
			t.Fatalf("canonicalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsLocale(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{in: "en", want: true},
		{in: "en-US", want: true},
		{in: "de_de", want: true},
		{in: "es-419", want: true},
		{in: "translations", want: false},
		{in: "src", want: false},
		{in: "one", want: false},
		{in: "", want: false},
	}
	for _, tc := range cases {
		if got := IsLocale(tc.in); got != tc.want {
			t.Fatalf("IsLocale(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal("en-US", "en_us") {
		t.Fatal("Equal(en-US, en_us) = false, want true")
	}
	if Equal("en-US", "en-GB") {
		t.Fatal("Equal(en-US, en-GB) = true, want false")
	}
}

func TestResolve(t *testing.T) {
	t.Run("known language", func(t *testing.T) {
		got := Resolve("de")
		if got.Name != "German" || got.Native != "Deutsch" || got.Flag != "🇩🇪" {
			t.Fatalf("unexpected result: %#v", got)
		}
	})

	t.Run("region flag", func(t *testing.T) {
		got := Resolve("fr_LU")
		if got.Flag != "🇱🇺" {
			t.Fatalf("unexpected flag: %#v", got)
		}
	})

	t.Run("unknown passthrough", func(t *testing.T) {
		got := Resolve("common")
		if got.Name != "common" || got.Flag != "" {
			t.Fatalf("unexpected unknown result: %#v", got)
		}
		if got.String() != "common" {
			t.Fatalf("String() = %q", got.String())
		}
	})
}

func TestLocate(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{path: "translations/de-de.json", want: "de-de"},
		{path: "locales/en-US/common.json", want: "en-US"},
		{path: "locales/pt_BR/nested/app.yaml", want: "pt_BR"},
		{path: "messages/app.json", want: ""},
		{path: "lib/l10n/app_pt_BR.arb", want: "pt_BR"},
	}
	for _, tc := range cases {
		if got := Locate(tc.path); got != tc.want {
			t.Fatalf("Locate(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestNameLocale(t *testing.T) {
	for name, want := range map[string]string{
		"de-DE":      "de-DE",
		"app_de":     "de",
		"intl_pt_BR": "pt_BR",
		"common":     "",
		"app_":       "",
	} {
		if got := NameLocale(name); got != want {
			t.Fatalf("NameLocale(%q) = %q, want %q", name, got, want)
		}
	}
}
