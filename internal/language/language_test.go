package language

import (
	"errors"
	"testing"

	"sublime/internal/services"
)

func TestResolveCodes(t *testing.T) {
	tests := []struct {
		input string
		iso3  string
	}{
		{"en", "eng"},
		{"EN", "eng"},
		{" eng ", "eng"},
		{"fr", "fra"},
		{"fra", "fra"},
		{"fre", "fra"},
		{"de", "deu"},
		{"ger", "deu"},
		{"chi", "zho"},
		{"dut", "nld"},
		{"cze", "ces"},
		{"gre", "ell"},
		{"per", "fas"},
		{"nor", "nor"},
		{"haw", "haw"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lang, err := Resolve(tt.input)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.input, err)
			}
			if got := lang.ISO3(); got != tt.iso3 {
				t.Errorf("Resolve(%q).ISO3() = %q, want %q", tt.input, got, tt.iso3)
			}
		})
	}
}

func TestResolveRejectsInvalid(t *testing.T) {
	for _, input := range []string{"", " ", "x1", "english", "klingonese"} {
		t.Run(input, func(t *testing.T) {
			_, err := Resolve(input)
			if err == nil {
				t.Fatalf("Resolve(%q) expected error", input)
			}
			if !errors.Is(err, services.ErrInvalidLanguage) {
				t.Fatalf("Resolve(%q) error %v does not wrap ErrInvalidLanguage", input, err)
			}
		})
	}
}

func TestResolveName(t *testing.T) {
	tests := []struct {
		input string
		code  string
	}{
		{"English", "en"},
		{"french", "fr"},
		{"GERMAN", "de"},
		{"français", "fr"},
		{"Deutsch", "de"},
		{"español", "es"},
		{"farsi", "fa"},
		{"mandarin", "zh"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lang, err := ResolveName(tt.input)
			if err != nil {
				t.Fatalf("ResolveName(%q) error: %v", tt.input, err)
			}
			if got := lang.String(); got != tt.code {
				t.Errorf("ResolveName(%q) = %q, want %q", tt.input, got, tt.code)
			}
		})
	}

	if _, err := ResolveName("elvish"); !errors.Is(err, services.ErrInvalidLanguage) {
		t.Fatalf("expected ErrInvalidLanguage for unknown name, got %v", err)
	}
}

func TestSpellingsResolveToSameLanguage(t *testing.T) {
	want := MustParse("fr")
	for _, input := range []string{"fre", "fra", "fr", "French", "français"} {
		got, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", input, err)
		}
		if !got.Equal(want) {
			t.Errorf("Parse(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestISO2AndBestCode(t *testing.T) {
	fr := MustParse("fra")
	code, err := fr.ISO2()
	if err != nil || code != "fr" {
		t.Fatalf("ISO2() = %q, %v; want fr", code, err)
	}
	if best, two := fr.BestCode(); best != "fr" || !two {
		t.Fatalf("BestCode() = %q, %v; want fr, true", best, two)
	}

	haw := MustParse("haw")
	if _, err := haw.ISO2(); !errors.Is(err, ErrNoTwoLetter) {
		t.Fatalf("expected ErrNoTwoLetter, got %v", err)
	}
	if best, two := haw.BestCode(); best != "haw" || two {
		t.Fatalf("BestCode() = %q, %v; want haw, false", best, two)
	}
}

func TestName(t *testing.T) {
	if got := MustParse("ger").Name(); got != "German" {
		t.Fatalf("Name() = %q, want German", got)
	}
	if got := (Language{}).Name(); got != "Unknown" {
		t.Fatalf("zero Name() = %q, want Unknown", got)
	}
}

func TestKnownIncludesTableEntries(t *testing.T) {
	known := Known()
	if len(known) != len(languages) {
		t.Fatalf("Known() returned %d entries, want %d", len(known), len(languages))
	}
	if !known[0].Equal(MustParse("eng")) {
		t.Fatalf("first known language = %v, want en", known[0])
	}
}

func TestCatalogDelegates(t *testing.T) {
	c := NewCatalog()
	lang, err := c.Resolve("spa")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	byName, err := c.ResolveName("Spanish")
	if err != nil {
		t.Fatalf("ResolveName: %v", err)
	}
	if !lang.Equal(byName) {
		t.Fatalf("catalog lookups disagree: %v vs %v", lang, byName)
	}
	if code, two := c.BestCode(lang); code != "es" || !two {
		t.Fatalf("BestCode = %q, %v", code, two)
	}
}
