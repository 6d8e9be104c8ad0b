package video

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"sublime/internal/identification"
	"sublime/internal/language"
	"sublime/internal/media/signature"
	"sublime/internal/services"
)

// Placeholder metadata used until classification fills a field.
const (
	UnknownMovie   = "UNKNOWN MOVIE"
	UnknownSeries  = "UNKNOWN SERIE"
	UnknownEpisode = "UNKNOWN EPISODE"
)

// Movie holds the metadata of a KindMovie video.
type Movie struct {
	Name string
	Year int
}

// Episode holds the metadata of a KindEpisode video.
type Episode struct {
	SeriesName string
	Season     int
	Number     int
	Title      string
}

// Video is one file on disk. Its kind selects which of the Movie or Episode
// fields are meaningful. Equality is by identity only: the path changes on
// rename and the size is a construction-time snapshot.
type Video struct {
	id        uuid.UUID
	kind      Kind
	path      string
	size      int64
	signature signature.Signature
	pending   []language.Language

	movie   Movie
	episode Episode
	// guess is what the guesser returned at classification; Retype
	// replays it onto the new variant.
	guess identification.Result
}

// New builds a bare video for an existing path.
func New(path string) (*Video, error) {
	return newVideo(uuid.New(), KindVideo, path)
}

func newVideo(id uuid.UUID, kind Kind, path string) (*Video, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve video path %q: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "classify", "stat", abs, err)
		}
		return nil, fmt.Errorf("stat video %q: %w", abs, err)
	}
	if info.IsDir() {
		return nil, services.Wrap(services.ErrUnrecognizedFormat, "classify", "stat", abs+" is a directory", nil)
	}
	return &Video{
		id:      id,
		kind:    kind,
		path:    abs,
		size:    info.Size(),
		movie:   Movie{Name: UnknownMovie},
		episode: Episode{SeriesName: UnknownSeries, Title: UnknownEpisode},
	}, nil
}

// ID returns the identity minted at construction.
func (v *Video) ID() uuid.UUID { return v.id }

// Kind returns the video variant.
func (v *Video) Kind() Kind { return v.kind }

// Path returns the absolute path of the file.
func (v *Video) Path() string { return v.path }

// Size returns the file size captured at construction.
func (v *Video) Size() int64 { return v.size }

// Signature returns the probed content signature, empty before classification.
func (v *Video) Signature() signature.Signature { return v.signature }

// Movie returns the movie fields for mutation, or nil for other kinds.
func (v *Video) Movie() *Movie {
	if v.kind != KindMovie {
		return nil
	}
	return &v.movie
}

// Episode returns the episode fields for mutation, or nil for other kinds.
func (v *Video) Episode() *Episode {
	if v.kind != KindEpisode {
		return nil
	}
	return &v.episode
}

// Pending returns a copy of the languages still waiting for a subtitle.
func (v *Video) Pending() []language.Language {
	return append([]language.Language(nil), v.pending...)
}

// SetPending replaces the pending-download list.
func (v *Video) SetPending(langs []language.Language) {
	v.pending = append([]language.Language(nil), langs...)
}

// AddPending queues a language once.
func (v *Video) AddPending(lang language.Language) {
	for _, existing := range v.pending {
		if existing.Equal(lang) {
			return
		}
	}
	v.pending = append(v.pending, lang)
}

// Equal reports whether both values are the same logical file.
func (v *Video) Equal(other *Video) bool {
	if v == nil || other == nil {
		return v == other
	}
	return v.id == other.id
}

func (v *Video) String() string {
	switch v.kind {
	case KindMovie:
		return fmt.Sprintf("Movie(%q)", v.movie.Name)
	case KindEpisode:
		return fmt.Sprintf("Episode(%q, %d, %d, %q)", v.episode.SeriesName, v.episode.Season, v.episode.Number, v.episode.Title)
	default:
		return fmt.Sprintf("Video(%q)", v.path)
	}
}
