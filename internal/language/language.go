package language

import (
	"errors"
	"fmt"
	"strings"

	xlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"sublime/internal/services"
)

// ErrNoTwoLetter reports that a language has no ISO 639-1 code.
var ErrNoTwoLetter = errors.New("language has no ISO 639-1 code")

// Language is a resolved ISO 639 language. The zero value is not a valid
// language; obtain one through Resolve, ResolveName, or Parse.
type Language struct {
	base xlang.Base
}

type entry struct {
	code2 string   // ISO 639-1 (2-letter)
	code3 string   // ISO 639-2/T (3-letter)
	alt3  string   // ISO 639-2/B alternate (e.g. "fre" vs "fra")
	words []string // extra name forms accepted by ResolveName
}

var languages = []entry{
	{"en", "eng", "", []string{"english"}},
	{"es", "spa", "", []string{"spanish", "castilian"}},
	{"fr", "fra", "fre", []string{"french"}},
	{"de", "deu", "ger", []string{"german"}},
	{"it", "ita", "", []string{"italian"}},
	{"pt", "por", "", []string{"portuguese", "brazilian"}},
	{"ja", "jpn", "", []string{"japanese"}},
	{"ko", "kor", "", []string{"korean"}},
	{"zh", "zho", "chi", []string{"chinese", "mandarin"}},
	{"ru", "rus", "", []string{"russian"}},
	{"ar", "ara", "", []string{"arabic"}},
	{"hi", "hin", "", []string{"hindi"}},
	{"nl", "nld", "dut", []string{"dutch", "flemish"}},
	{"pl", "pol", "", []string{"polish"}},
	{"sv", "swe", "", []string{"swedish"}},
	{"da", "dan", "", []string{"danish"}},
	{"no", "nor", "", []string{"norwegian"}},
	{"fi", "fin", "", []string{"finnish"}},
	{"cs", "ces", "cze", []string{"czech"}},
	{"el", "ell", "gre", []string{"greek"}},
	{"fa", "fas", "per", []string{"persian", "farsi"}},
	{"ro", "ron", "rum", []string{"romanian"}},
	{"sk", "slk", "slo", []string{"slovak"}},
	{"cy", "cym", "wel", []string{"welsh"}},
	{"hy", "hye", "arm", []string{"armenian"}},
	{"eu", "eus", "baq", []string{"basque"}},
	{"is", "isl", "ice", []string{"icelandic"}},
	{"mk", "mkd", "mac", []string{"macedonian"}},
	{"ms", "msa", "may", []string{"malay"}},
	{"sq", "sqi", "alb", []string{"albanian"}},
	{"ka", "kat", "geo", []string{"georgian"}},
	{"my", "mya", "bur", []string{"burmese"}},
	{"bo", "bod", "tib", []string{"tibetan"}},
	{"mi", "mri", "mao", []string{"maori"}},
	{"he", "heb", "", []string{"hebrew"}},
	{"hu", "hun", "", []string{"hungarian"}},
	{"tr", "tur", "", []string{"turkish"}},
	{"uk", "ukr", "", []string{"ukrainian"}},
	{"vi", "vie", "", []string{"vietnamese"}},
	{"th", "tha", "", []string{"thai"}},
	{"id", "ind", "", []string{"indonesian"}},
	{"bg", "bul", "", []string{"bulgarian"}},
	{"hr", "hrv", "", []string{"croatian"}},
	{"sr", "srp", "", []string{"serbian"}},
	{"sl", "slv", "", []string{"slovenian", "slovene"}},
	{"et", "est", "", []string{"estonian"}},
	{"lv", "lav", "", []string{"latvian"}},
	{"lt", "lit", "", []string{"lithuanian"}},
	{"ca", "cat", "", []string{"catalan"}},
}

var (
	byAlt3 map[string]string
	byName map[string]string
)

func init() {
	byAlt3 = make(map[string]string, len(languages))
	byName = make(map[string]string, len(languages)*4)
	english := display.English.Languages()
	for _, e := range languages {
		if e.alt3 != "" {
			byAlt3[e.alt3] = e.code3
		}
		for _, w := range e.words {
			byName[w] = e.code2
		}
		tag := xlang.Make(e.code2)
		if name := strings.ToLower(english.Name(tag)); name != "" {
			byName[name] = e.code2
		}
		if name := strings.ToLower(display.Self.Name(tag)); name != "" {
			byName[name] = e.code2
		}
	}
}

// Resolve maps an ISO 639-1, ISO 639-2/T, or ISO 639-2/B code to a Language.
func Resolve(code string) (Language, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if len(normalized) != 2 && len(normalized) != 3 {
		return Language{}, invalid("code", code)
	}
	if canonical, ok := byAlt3[normalized]; ok {
		normalized = canonical
	}
	base, err := xlang.ParseBase(normalized)
	if err != nil {
		return Language{}, fmt.Errorf("%w: code %q: %w", services.ErrInvalidLanguage, code, err)
	}
	return Language{base: base}, nil
}

// ResolveName maps an English or native language name (case-insensitive) to
// a Language.
func ResolveName(name string) (Language, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return Language{}, invalid("name", name)
	}
	code, ok := byName[normalized]
	if !ok {
		return Language{}, invalid("name", name)
	}
	return Resolve(code)
}

// Parse accepts either a code or a name.
func Parse(value string) (Language, error) {
	if lang, err := Resolve(value); err == nil {
		return lang, nil
	}
	return ResolveName(value)
}

// MustParse is like Parse but panics on failure. Intended for tests and
// package-level values.
func MustParse(value string) Language {
	lang, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return lang
}

// Known lists the languages with curated name aliases, in table order.
func Known() []Language {
	out := make([]Language, 0, len(languages))
	for _, e := range languages {
		if lang, err := Resolve(e.code2); err == nil {
			out = append(out, lang)
		}
	}
	return out
}

// IsZero reports whether l is the unresolved zero value.
func (l Language) IsZero() bool {
	return l == Language{}
}

// Equal reports whether both values denote the same language.
func (l Language) Equal(other Language) bool {
	return l.base == other.base
}

// ISO3 returns the ISO 639-2/T code.
func (l Language) ISO3() string {
	if l.IsZero() {
		return ""
	}
	return l.base.ISO3()
}

// ISO2 returns the ISO 639-1 code, or ErrNoTwoLetter when the language has
// only a 3-letter form.
func (l Language) ISO2() (string, error) {
	if l.IsZero() {
		return "", invalid("code", "")
	}
	code := l.base.String()
	if len(code) != 2 {
		return "", fmt.Errorf("%w: %s", ErrNoTwoLetter, code)
	}
	return code, nil
}

// BestCode prefers the 2-letter code and falls back to the 3-letter one.
// The boolean reports whether the 2-letter form was used.
func (l Language) BestCode() (string, bool) {
	if code, err := l.ISO2(); err == nil {
		return code, true
	}
	return l.ISO3(), false
}

// Name returns the English display name.
func (l Language) Name() string {
	if l.IsZero() {
		return "Unknown"
	}
	name := display.English.Languages().Name(xlang.Make(l.base.String()))
	if name == "" {
		return strings.ToUpper(l.ISO3())
	}
	return name
}

func (l Language) String() string {
	code, _ := l.BestCode()
	return code
}

func invalid(kind, value string) error {
	return fmt.Errorf("%w: %s %q", services.ErrInvalidLanguage, kind, value)
}
