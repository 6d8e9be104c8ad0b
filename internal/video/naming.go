package video

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// DefaultEpisodePattern renders "Lost S02E05 Pilot".
const DefaultEpisodePattern = "{serie_name} S{season:02d}E{episode:02d} {episode_name}"

// Naming controls how Renamer builds target file names.
type Naming struct {
	// Pattern is the episode template. Placeholders are {field} or
	// {field:0Nd}; "{{" and "}}" are literal braces.
	Pattern string
	// Underscore replaces spaces with underscores in movie and episode names.
	Underscore bool
	// CrossDeviceCopy lets a rename across filesystems fall back to a
	// verified copy and delete.
	CrossDeviceCopy bool
}

// DefaultNaming returns the default pattern with underscores enabled.
func DefaultNaming() Naming {
	return Naming{Pattern: DefaultEpisodePattern, Underscore: true}
}

// NameScope owns the naming used by one rename batch. Each concurrent batch
// must use its own scope.
type NameScope struct {
	mu     sync.Mutex
	naming Naming
}

// NewNameScope starts a scope from base. An empty pattern uses the default.
func NewNameScope(base Naming) *NameScope {
	if strings.TrimSpace(base.Pattern) == "" {
		base.Pattern = DefaultEpisodePattern
	}
	return &NameScope{naming: base}
}

// Naming returns the current naming.
func (s *NameScope) Naming() Naming {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.naming
}

// Override runs fn with pattern (when non-empty) and underscore in effect.
// On return, including a panic in fn, the previous pattern is restored and
// underscore substitution is switched back on.
func (s *NameScope) Override(pattern string, underscore bool, fn func(Naming) error) error {
	s.mu.Lock()
	previous := s.naming.Pattern
	if pattern != "" {
		s.naming.Pattern = pattern
	}
	s.naming.Underscore = underscore
	active := s.naming
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.naming.Pattern = previous
		s.naming.Underscore = true
		s.mu.Unlock()
	}()
	return fn(active)
}

var (
	placeholderPattern = regexp.MustCompile(`\{\{|\}\}|\{([a-z_]+)(?::([^{}]*))?\}`)
	intVerbPattern     = regexp.MustCompile(`^0?[0-9]*d$`)
)

// formatPattern fills a naming pattern. Integer fields accept a printf-style
// width such as "02d"; string fields take no format verb.
func formatPattern(pattern string, fields map[string]any) (string, error) {
	if strings.ContainsAny(placeholderPattern.ReplaceAllString(pattern, ""), "{}") {
		return "", fmt.Errorf("pattern %q has unmatched braces", pattern)
	}
	var firstErr error
	out := placeholderPattern.ReplaceAllStringFunc(pattern, func(token string) string {
		switch token {
		case "{{":
			return "{"
		case "}}":
			return "}"
		}
		m := placeholderPattern.FindStringSubmatch(token)
		name, verb := m[1], m[2]
		value, ok := fields[name]
		if !ok {
			if firstErr == nil {
				firstErr = fmt.Errorf("unknown placeholder {%s}", name)
			}
			return token
		}
		rendered, err := formatField(value, verb)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("placeholder {%s}: %w", name, err)
		}
		return rendered
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

func formatField(value any, verb string) (string, error) {
	switch v := value.(type) {
	case int:
		if verb == "" {
			return strconv.Itoa(v), nil
		}
		if !intVerbPattern.MatchString(verb) {
			return "", fmt.Errorf("unsupported integer format %q", verb)
		}
		return fmt.Sprintf("%"+verb, v), nil
	case string:
		if verb != "" && verb != "s" {
			return "", fmt.Errorf("unsupported string format %q", verb)
		}
		return v, nil
	default:
		return "", fmt.Errorf("unsupported value %T", value)
	}
}
