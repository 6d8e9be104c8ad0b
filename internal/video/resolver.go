package video

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sublime/internal/language"
	"sublime/internal/logging"
	"sublime/internal/media"
	"sublime/internal/services"
)

// LanguageCatalog resolves language identifiers found in containers and
// picks the code used in sidecar file names.
type LanguageCatalog interface {
	Resolve(code string) (language.Language, error)
	ResolveName(name string) (language.Language, error)
	BestCode(lang language.Language) (code string, twoLetter bool)
}

// Presence reports where a subtitle for one language was found.
type Presence struct {
	Embedded bool
	Track    media.SubtitleTrack
	Sidecars []string
}

// Found reports whether any source matched.
func (p Presence) Found() bool {
	return p.Embedded || len(p.Sidecars) > 0
}

// Resolver checks whether a video already has a subtitle in a language.
type Resolver struct {
	probe   SignatureProbe
	reader  media.TrackReader
	catalog LanguageCatalog
	logger  *slog.Logger
}

// NewResolver constructs a Resolver. reader may be nil to skip embedded
// track inspection.
func NewResolver(probe SignatureProbe, reader media.TrackReader, catalog LanguageCatalog, logger *slog.Logger) *Resolver {
	return &Resolver{
		probe:   probe,
		reader:  reader,
		catalog: catalog,
		logger:  logging.NewComponentLogger(logger, "subtitle-resolver"),
	}
}

// HasSubtitle reports whether v carries an embedded track or has a sidecar
// file in lang. Only directory enumeration failures are returned.
func (r *Resolver) HasSubtitle(v *Video, lang language.Language) (bool, error) {
	presence, err := r.Existing(v, lang)
	if err != nil {
		return false, err
	}
	return presence.Found(), nil
}

// Existing runs both checks and reports every match.
func (r *Resolver) Existing(v *Video, lang language.Language) (Presence, error) {
	var presence Presence
	if track, ok := r.embedded(v, lang); ok {
		presence.Embedded = true
		presence.Track = track
	}
	sidecars, err := r.sidecars(v, lang)
	if err != nil {
		return presence, err
	}
	presence.Sidecars = sidecars
	return presence, nil
}

func (r *Resolver) embedded(v *Video, lang language.Language) (media.SubtitleTrack, bool) {
	if r.reader == nil || !r.probe.IsContainerFormat(v.Signature()) {
		return media.SubtitleTrack{}, false
	}
	logger := r.logger.With(logging.String(logging.FieldPath, v.Path()))

	f, err := os.Open(v.Path())
	if err != nil {
		logging.WarnWithContext(logger, "cannot open video for track inspection", "embedded_open_failed",
			logging.String(logging.FieldErrorHint, "check file permissions"),
			logging.String(logging.FieldImpact, "embedded subtitles ignored"),
			logging.Error(err),
		)
		return media.SubtitleTrack{}, false
	}
	defer f.Close()

	tracks, err := r.reader.ReadTracks(f)
	if err != nil {
		logging.WarnWithContext(logger, "cannot read container tracks", "embedded_tracks_unreadable",
			logging.String(logging.FieldErrorHint, "container may be truncated or malformed"),
			logging.String(logging.FieldImpact, "embedded subtitles ignored"),
			logging.Error(err),
		)
		return media.SubtitleTrack{}, false
	}

	for _, track := range tracks {
		var (
			trackLang language.Language
			err       error
		)
		switch {
		case track.Code() != "":
			trackLang, err = r.catalog.Resolve(track.Code())
		case track.Name != "":
			trackLang, err = r.catalog.ResolveName(track.Name)
		default:
			continue
		}
		if err != nil {
			logging.WarnWithContext(logger, "embedded subtitle track language is not valid", "embedded_track_language_invalid",
				logging.String(logging.FieldLanguage, track.Code()),
				logging.String("track_name", track.Name),
				logging.String(logging.FieldImpact, "track skipped"),
				logging.Error(err),
			)
			continue
		}
		if trackLang.Equal(lang) {
			return track, true
		}
	}
	return media.SubtitleTrack{}, false
}

// sidecars lists files named <base>.<code>.<ext> next to the video whose
// extension is a subtitle extension. The base name is matched literally.
func (r *Resolver) sidecars(v *Video, lang language.Language) ([]string, error) {
	code, _ := r.catalog.BestCode(lang)
	dir := filepath.Dir(v.Path())
	base := strings.TrimSuffix(filepath.Base(v.Path()), filepath.Ext(v.Path()))
	prefix := base + "." + code + "."

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrEnumeration, "resolve", "list sidecars", dir, err)
	}
	var matches []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if !IsSubtitleExtension(name) {
			continue
		}
		matches = append(matches, filepath.Join(dir, name))
	}
	sort.Strings(matches)
	return matches, nil
}
