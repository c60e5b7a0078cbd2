package locales

import (
	"errors"
	"testing"
)

func TestResolvePath(t *testing.T) {
	cases := []struct {
		path       string
		wantLocale string
		wantRest   string
	}{
		{"/san-pham/mela-serum", "vi", "/san-pham/mela-serum"},
		{"/en/products/mela-serum", "en", "/products/mela-serum"},
		{"/ko/products", "ko", "/products"},
		{"/en", "en", "/"},
		{"/ko", "ko", "/"},
		{"/", "vi", "/"},
		{"", "vi", "/"},
		{"/fr/products", "vi", "/fr/products"},
		{"/enx/products", "vi", "/enx/products"},
		{"/english/products", "vi", "/english/products"},
	}

	for _, tc := range cases {
		locale, rest := ResolvePath(tc.path)
		if locale != tc.wantLocale || rest != tc.wantRest {
			t.Fatalf("ResolvePath(%q) = (%q, %q), want (%q, %q)",
				tc.path, locale, rest, tc.wantLocale, tc.wantRest)
		}
	}
}

func TestPathPrefix(t *testing.T) {
	if got := PathPrefix(Vietnamese); got != "" {
		t.Fatalf("vi prefix = %q, want empty", got)
	}
	if got := PathPrefix(English); got != "/en" {
		t.Fatalf("en prefix = %q", got)
	}
	if got := PathPrefix(" KO "); got != "/ko" {
		t.Fatalf("ko prefix = %q", got)
	}
}

func TestValidate(t *testing.T) {
	if code, err := Validate(" EN "); err != nil || code != "en" {
		t.Fatalf("Validate(EN) = %q, %v", code, err)
	}
	if _, err := Validate("fr"); !errors.Is(err, ErrUnknownLocale) {
		t.Fatalf("expected ErrUnknownLocale, got %v", err)
	}
	if _, err := Validate("  "); !errors.Is(err, ErrLocaleRequired) {
		t.Fatalf("expected ErrLocaleRequired, got %v", err)
	}
}

func TestSupportedIsDefensiveCopy(t *testing.T) {
	first := Supported()
	first[0] = "xx"
	if second := Supported(); second[0] != Vietnamese {
		t.Fatalf("supported list mutated: %v", second)
	}
}
