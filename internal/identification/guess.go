package identification

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind is the guessed media kind of a file.
type Kind string

const (
	KindUnknown Kind = "unknown"
	KindMovie   Kind = "movie"
	KindEpisode Kind = "episode"
)

// Result holds the fields inferred from a file name. Zero values mean the
// field could not be guessed.
type Result struct {
	Kind         Kind
	Title        string
	Year         int
	Season       int
	Episode      int
	EpisodeTitle string
}

// rule pairs a compiled pattern with an extraction function. Rules are
// evaluated in order; first match wins.
type rule struct {
	name    string
	pattern *regexp.Regexp
	extract func(m []string) Result
}

var (
	reSxxExx = regexp.MustCompile(
		`^(.*?)[\s._\-]*[Ss]([0-9]{1,2})[\s._\-]?[Ee]([0-9]{1,3})(?:[\-]?[Ee][0-9]{1,3})*(?:[Vv][0-9]+)?(?:[^[:alnum:]](.*))?$`)

	re1x01 = regexp.MustCompile(
		`^(.*?)[\s._\-]+([0-9]{1,2})[xX]([0-9]{1,3})(?:[^[:alnum:]](.*))?$`)

	reSeasonEpisodeWords = regexp.MustCompile(
		`(?i)^(.*?)[\s._\-]+season[\s._\-]*([0-9]{1,2})[\s._\-]+episode[\s._\-]*([0-9]{1,3})(?:[^[:alnum:]](.*))?$`)

	// Greedy title: the last year-like token is the year, so
	// "Blade.Runner.2049.2017" keeps 2049 in the title.
	reMovieYear = regexp.MustCompile(
		`^(.+)[\s._\-]+[\(\[]?((?:19|20)[0-9]{2})[\)\]]?(?:[^[:alnum:]].*)?$`)

	reReleaseToken = regexp.MustCompile(
		`(?i)^(?:[0-9]{3,4}[pi]|4k|uhd|hdr|hdtv|pdtv|web|webrip|web-?dl|bluray|blu-ray|brrip|bdrip|dvdrip|dvd|xvid|divx|[hx]\.?26[45]|hevc|avc|aac|ac3|dts|dd5\.?1|proper|repack|internal|multi|vostfr|subbed|dubbed|extended|unrated|remastered)$`)

	reSeparators = regexp.MustCompile(`[\s._]+`)
)

var rules = []rule{
	{name: "sxxexx", pattern: reSxxExx, extract: episodeFromMatch},
	{name: "season-episode-words", pattern: reSeasonEpisodeWords, extract: episodeFromMatch},
	{name: "1x01", pattern: re1x01, extract: episodeFromMatch},
	{name: "movie-year", pattern: reMovieYear, extract: func(m []string) Result {
		return Result{Kind: KindMovie, Title: cleanTitle(m[1]), Year: atoi(m[2])}
	}},
}

func episodeFromMatch(m []string) Result {
	res := Result{
		Kind:    KindEpisode,
		Title:   cleanTitle(m[1]),
		Season:  atoi(m[2]),
		Episode: atoi(m[3]),
	}
	if len(m) > 4 {
		res.EpisodeTitle = cleanTitle(stripReleaseTokens(m[4]))
	}
	return res
}

// Guesser infers media metadata from file names alone. It never opens the
// file.
type Guesser struct{}

// NewGuesser returns a Guesser.
func NewGuesser() *Guesser { return &Guesser{} }

// Guess classifies path by its base name. Names matching no rule are taken
// as a movie titled by the cleaned base name; KindUnknown is left for names
// made only of release tokens.
func (g *Guesser) Guess(path string) Result {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(base)
		if m == nil {
			continue
		}
		res := r.extract(m)
		if res.Title == "" {
			if parent := filepath.Base(filepath.Dir(path)); parent != "." && parent != string(filepath.Separator) {
				res.Title = cleanTitle(parent)
			}
		}
		return res
	}
	title := cleanTitle(stripReleaseTokens(base))
	if title == "" {
		return Result{Kind: KindUnknown}
	}
	return Result{Kind: KindMovie, Title: title}
}

// stripReleaseTokens drops everything from the first release/quality token.
func stripReleaseTokens(value string) string {
	tokens := reSeparators.Split(strings.TrimSpace(value), -1)
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if reReleaseToken.MatchString(tok) {
			break
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

func cleanTitle(value string) string {
	value = reSeparators.ReplaceAllString(value, " ")
	value = strings.Trim(value, " -[]()")
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return ""
	}
	return cases.Title(language.Und, cases.NoLower).String(value)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
