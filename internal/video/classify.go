package video

import (
	"errors"
	"log/slog"

	"sublime/internal/identification"
	"sublime/internal/logging"
	"sublime/internal/media/signature"
	"sublime/internal/services"
)

// SignatureProbe decides whether a file is a video and which container
// signatures can carry embedded subtitle tracks.
type SignatureProbe interface {
	Signature(path string) (signature.Signature, error)
	IsContainerFormat(sig signature.Signature) bool
}

// MetadataGuesser infers media metadata from a file name.
type MetadataGuesser interface {
	Guess(path string) identification.Result
}

// Factory turns paths into typed videos.
type Factory struct {
	probe   SignatureProbe
	guesser MetadataGuesser
	logger  *slog.Logger
}

// NewFactory constructs a Factory. A nil logger discards output.
func NewFactory(probe SignatureProbe, guesser MetadataGuesser, logger *slog.Logger) *Factory {
	return &Factory{
		probe:   probe,
		guesser: guesser,
		logger:  logging.NewComponentLogger(logger, "classifier"),
	}
}

// Classify builds the most specific video for path. A missing path yields
// (nil, nil) after an error log so callers can tell it apart from a file
// that exists but is not a video (services.ErrUnrecognizedFormat).
func (f *Factory) Classify(path string) (*Video, error) {
	v, err := f.ClassifyStrict(path)
	if errors.Is(err, services.ErrNotFound) {
		return nil, nil
	}
	return v, err
}

// ClassifyStrict is Classify with a missing path reported as
// services.ErrNotFound.
func (f *Factory) ClassifyStrict(path string) (*Video, error) {
	logger := f.logger.With(logging.String(logging.FieldPath, path))

	v, err := New(path)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			logging.ErrorWithContext(logger, "video path does not exist", "video_missing",
				logging.String(logging.FieldErrorHint, "check the path and retry"),
				logging.Error(err),
			)
		}
		return nil, err
	}

	sig, err := f.probe.Signature(v.Path())
	if err != nil {
		if errors.Is(err, signature.ErrNotRecognized) {
			logging.WarnWithContext(logger, "file not recognized as video", "video_unrecognized",
				logging.String(logging.FieldErrorHint, "only video container files are processed"),
				logging.String(logging.FieldImpact, "file skipped"),
				logging.Error(err),
			)
			return nil, services.Wrap(services.ErrUnrecognizedFormat, "classify", "probe", v.Path(), err)
		}
		return nil, services.Wrap(services.ErrUnrecognizedFormat, "classify", "probe", "read failed", err)
	}

	guess := f.guesser.Guess(v.Path())
	switch guess.Kind {
	case identification.KindMovie:
		v.kind = KindMovie
	case identification.KindEpisode:
		v.kind = KindEpisode
	default:
		v.kind = KindVideo
	}
	v.guess = guess
	merge(v, guess)
	v.signature = sig

	logger.Debug("video classified",
		logging.String("kind", v.kind.String()),
		logging.String("signature", string(sig)),
	)
	return v, nil
}

// merge copies non-empty guessed fields onto the variant.
func merge(v *Video, guess identification.Result) {
	if m := v.Movie(); m != nil {
		if guess.Title != "" {
			m.Name = guess.Title
		}
		m.Year = guess.Year
	}
	if e := v.Episode(); e != nil {
		if guess.Title != "" {
			e.SeriesName = guess.Title
		}
		if guess.EpisodeTitle != "" {
			e.Title = guess.EpisodeTitle
		}
		e.Season = guess.Season
		e.Number = guess.Episode
	}
}

// Retype returns v converted to kind. Movies and episodes are returned
// unchanged whatever kind is asked for, so guessed fields survive. A bare
// video becomes a new value of kind that keeps the identity, path, size,
// signature, and pending languages of v. Fields guessed during
// classification are merged in; the rest keep placeholder values.
func (f *Factory) Retype(v *Video, kind Kind) *Video {
	if v == nil || v.kind.Specific() || !kind.Specific() {
		return v
	}
	retyped := &Video{
		id:        v.id,
		kind:      kind,
		path:      v.path,
		size:      v.size,
		signature: v.signature,
		pending:   v.Pending(),
		movie:     Movie{Name: UnknownMovie},
		episode:   Episode{SeriesName: UnknownSeries, Title: UnknownEpisode},
		guess:     v.guess,
	}
	merge(retyped, v.guess)
	return retyped
}
