package video

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"sublime/internal/fileutil"
	"sublime/internal/language"
)

var subtitleExtensions = map[string]struct{}{
	".aqt": {}, ".jss": {}, ".sub": {}, ".ttxt": {},
	".pjs": {}, ".psb": {}, ".rt": {}, ".smi": {},
	".ssf": {}, ".srt": {}, ".gsub": {}, ".ssa": {},
	".ass": {}, ".usf": {}, ".txt": {},
}

// IsSubtitleExtension reports whether path ends in a recognised subtitle
// extension. Matching is exact: ".SRT" is not a subtitle extension.
func IsSubtitleExtension(path string) bool {
	_, ok := subtitleExtensions[filepath.Ext(path)]
	return ok
}

// Subtitle is one download candidate for a video. Values are written to
// disk once and not mutated afterwards.
type Subtitle struct {
	ID        string
	Language  language.Language
	Video     *Video
	Rating    float64
	Extension string
}

// NewSubtitle builds a candidate with a zero rating.
func NewSubtitle(id string, lang language.Language, v *Video, extension string) *Subtitle {
	return &Subtitle{ID: id, Language: lang, Video: v, Extension: extension}
}

// Path returns <video dir>/<video base>.<code>.<extension>, using the
// 2-letter code when the language has one.
func (s *Subtitle) Path() string {
	videoPath := s.Video.Path()
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	code, _ := s.Language.BestCode()
	ext := strings.TrimPrefix(s.Extension, ".")
	return filepath.Join(filepath.Dir(videoPath), base+"."+code+"."+ext)
}

// SameSlot reports whether both candidates target the same language on the
// same video. Rating and extension are ignored.
func (s *Subtitle) SameSlot(other *Subtitle) bool {
	if s == nil || other == nil {
		return false
	}
	return s.Language.Equal(other.Language) && s.Video.Equal(other.Video)
}

// Less reports whether other is a better candidate for the same slot.
func (s *Subtitle) Less(other *Subtitle) bool {
	return s.SameSlot(other) && s.Rating < other.Rating
}

// Greater reports whether s is a better candidate for the same slot.
func (s *Subtitle) Greater(other *Subtitle) bool {
	return s.SameSlot(other) && s.Rating > other.Rating
}

// BestPerSlot keeps the highest-rated candidate for each (video, language)
// slot, in order of first appearance. Ties keep the earlier candidate.
func BestPerSlot(candidates []*Subtitle) []*Subtitle {
	var best []*Subtitle
	for _, cand := range candidates {
		if cand == nil {
			continue
		}
		seen := false
		for i, kept := range best {
			if !kept.SameSlot(cand) {
				continue
			}
			if cand.Greater(kept) {
				best[i] = cand
			}
			seen = true
			break
		}
		if !seen {
			best = append(best, cand)
		}
	}
	return best
}

// Write stores data at Path and returns it.
func (s *Subtitle) Write(data []byte) (string, error) {
	if s.Video == nil {
		return "", errors.New("subtitle has no video")
	}
	if strings.TrimPrefix(s.Extension, ".") == "" {
		return "", errors.New("subtitle has no extension")
	}
	path := s.Path()
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write subtitle %q: %w", path, err)
	}
	return path, nil
}

func (s *Subtitle) String() string {
	return fmt.Sprintf("Subtitle(%q, %q, %g, %q)", s.ID, s.Language.ISO3(), s.Rating, s.Extension)
}
