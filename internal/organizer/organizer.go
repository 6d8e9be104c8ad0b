package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"sublime/internal/config"
	"sublime/internal/identification"
	"sublime/internal/language"
	"sublime/internal/logging"
	"sublime/internal/media"
	"sublime/internal/media/ffprobe"
	"sublime/internal/media/mkv"
	"sublime/internal/media/signature"
	"sublime/internal/services"
	"sublime/internal/video"
)

// ErrBatchLocked reports that another process holds the rename lock.
var ErrBatchLocked = errors.New("another rename batch is running")

const lockFileName = ".sublime.lock"

// Organizer runs scan and rename batches over a directory tree.
type Organizer struct {
	cfg       *config.Config
	factory   *video.Factory
	resolver  *video.Resolver
	renamer   *video.Renamer
	languages []language.Language
	logger    *slog.Logger
}

// New wires the default collaborators selected by cfg.
func New(cfg *config.Config, logger *slog.Logger) (*Organizer, error) {
	probe := signature.NewProbe()
	factory := video.NewFactory(probe, identification.NewGuesser(), logger)
	resolver := video.NewResolver(probe, TrackReader(cfg), language.NewCatalog(), logger)
	return NewWithDependencies(cfg, factory, resolver, video.NewRenamer(logger), logger)
}

// NewWithDependencies allows injecting collaborators (used in tests).
func NewWithDependencies(cfg *config.Config, factory *video.Factory, resolver *video.Resolver, renamer *video.Renamer, logger *slog.Logger) (*Organizer, error) {
	langs, err := ParseLanguages(cfg.Subtitles.Languages)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "organizer", "languages", "invalid subtitles.languages", err)
	}
	return &Organizer{
		cfg:       cfg,
		factory:   factory,
		resolver:  resolver,
		renamer:   renamer,
		languages: langs,
		logger:    logging.NewComponentLogger(logger, "organizer"),
	}, nil
}

// TrackReader returns the embedded subtitle reader named by
// probe.embedded_reader.
func TrackReader(cfg *config.Config) media.TrackReader {
	if cfg.Probe.EmbeddedReader == config.EmbeddedReaderFFprobe {
		return ffprobe.NewReader(cfg.FFprobeBinary())
	}
	return mkv.NewReader()
}

// ParseLanguages resolves codes or names, dropping duplicates.
func ParseLanguages(values []string) ([]language.Language, error) {
	out := make([]language.Language, 0, len(values))
	for _, value := range values {
		lang, err := language.Parse(value)
		if err != nil {
			return nil, err
		}
		dup := false
		for _, existing := range out {
			if existing.Equal(lang) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, lang)
		}
	}
	return out, nil
}

// Languages returns the configured subtitle languages.
func (o *Organizer) Languages() []language.Language {
	return append([]language.Language(nil), o.languages...)
}

// Entry is the scan outcome for one file.
type Entry struct {
	Path    string
	Video   *video.Video
	Present map[string]video.Presence
	Missing []language.Language
	Err     error
}

// ScanReport lists one entry per discovered file.
type ScanReport struct {
	BatchID string
	Entries []Entry
}

// Scan classifies every video under root and checks each language in
// langs, or the configured languages when langs is empty. Missing languages
// are queued on the video's pending list.
func (o *Organizer) Scan(ctx context.Context, root string, langs []language.Language) (ScanReport, error) {
	if len(langs) == 0 {
		langs = o.languages
	}
	report := ScanReport{BatchID: uuid.NewString()}
	ctx = services.WithBatchID(ctx, report.BatchID)
	logger := logging.WithContext(ctx, o.logger)
	started := time.Now()

	paths, err := Discover(ctx, root)
	if err != nil {
		return report, err
	}
	logger.Info("scan started", logging.String("root", root), logging.Int("videos", len(paths)))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		entry := Entry{Path: path, Present: make(map[string]video.Presence)}
		v, err := o.factory.Classify(path)
		if err != nil || v == nil {
			if v == nil && err == nil {
				err = services.Wrap(services.ErrNotFound, "scan", "classify", path, nil)
			}
			entry.Err = err
			report.Entries = append(report.Entries, entry)
			if err := skipOrAbort(logger, path, err); err != nil {
				return report, err
			}
			continue
		}
		entry.Video = v
		logger.Debug("checking subtitles",
			logging.String(logging.FieldPath, path),
			logging.Int64("size", v.Size()),
			logging.Bool("container", v.Signature() == signature.Matroska),
		)
		for _, lang := range langs {
			presence, err := o.resolver.Existing(v, lang)
			if err != nil {
				entry.Err = err
				break
			}
			if presence.Found() {
				entry.Present[lang.String()] = presence
				continue
			}
			entry.Missing = append(entry.Missing, lang)
			v.AddPending(lang)
		}
		report.Entries = append(report.Entries, entry)
		if entry.Err != nil {
			if err := skipOrAbort(logger, path, entry.Err); err != nil {
				return report, err
			}
		}
	}

	logger.Info("scan finished",
		logging.Int("entries", len(report.Entries)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return report, nil
}

// RenameOptions override the configured naming for one batch.
type RenameOptions struct {
	// Pattern replaces naming.episode_pattern when non-empty.
	Pattern string
	// Underscore enables space to underscore substitution.
	Underscore bool
	// AssumeKind retypes videos the guesser could not classify.
	AssumeKind video.Kind
}

// DefaultRenameOptions mirrors the configured naming.
func (o *Organizer) DefaultRenameOptions() RenameOptions {
	return RenameOptions{Pattern: o.cfg.Naming.EpisodePattern, Underscore: o.cfg.Naming.Underscore}
}

// Outcome is the rename result for one file.
type Outcome struct {
	Path   string
	Video  *video.Video
	Result video.RenameResult
}

// RenameReport lists one outcome per discovered file.
type RenameReport struct {
	BatchID  string
	Outcomes []Outcome
}

// Rename classifies every video under root and moves it to its canonical
// name. The batch holds an exclusive file lock for its whole duration.
func (o *Organizer) Rename(ctx context.Context, root string, opts RenameOptions) (RenameReport, error) {
	report := RenameReport{BatchID: uuid.NewString()}
	ctx = services.WithBatchID(ctx, report.BatchID)
	logger := logging.WithContext(ctx, o.logger)
	started := time.Now()

	lock, err := o.acquireLock(root)
	if err != nil {
		return report, err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logging.WarnWithContext(logger, "failed to release rename lock", "lock_release_failed",
				logging.String("lock", lock.Path()),
				logging.String(logging.FieldImpact, "next batch may need the lock file removed"),
				logging.Error(err),
			)
		}
	}()

	paths, err := Discover(ctx, root)
	if err != nil {
		return report, err
	}
	logger.Info("rename batch started",
		logging.String("root", root),
		logging.Int("videos", len(paths)),
		logging.Bool("underscore", opts.Underscore),
		logging.Bool("cross_device_copy", o.cfg.Naming.CrossDeviceCopy),
	)

	scope := video.NewNameScope(video.Naming{
		Pattern:         o.cfg.Naming.EpisodePattern,
		Underscore:      o.cfg.Naming.Underscore,
		CrossDeviceCopy: o.cfg.Naming.CrossDeviceCopy,
	})
	err = scope.Override(opts.Pattern, opts.Underscore, func(naming video.Naming) error {
		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcome := Outcome{Path: path}
			v, err := o.factory.Classify(path)
			if err != nil || v == nil {
				if v == nil && err == nil {
					err = services.Wrap(services.ErrNotFound, "rename", "classify", path, nil)
				}
				outcome.Result = video.RenameResult{Path: path, Previous: path, Err: err}
				report.Outcomes = append(report.Outcomes, outcome)
				if err := skipOrAbort(logger, path, err); err != nil {
					return err
				}
				continue
			}
			v = o.factory.Retype(v, opts.AssumeKind)
			outcome.Video = v
			outcome.Result = o.renamer.Rename(v, naming)
			report.Outcomes = append(report.Outcomes, outcome)
		}
		return nil
	})
	if err != nil {
		return report, err
	}

	renamed := 0
	for _, outcome := range report.Outcomes {
		if outcome.Result.Renamed() {
			renamed++
		}
	}
	logger.Info("rename batch finished",
		logging.Int("videos", len(report.Outcomes)),
		logging.Int("renamed", renamed),
		logging.Duration("elapsed", time.Since(started)),
	)
	return report, nil
}

// skipOrAbort decides what a per-file failure does to the batch. Failures
// confined to one file are logged and skipped; anything else is returned
// and ends the batch.
func skipOrAbort(logger *slog.Logger, path string, err error) error {
	if services.Skippable(err) {
		logging.WarnWithContext(logger, "video skipped", "video_skipped",
			logging.String(logging.FieldPath, path),
			logging.String(logging.FieldImpact, "file left out of this batch"),
			logging.Error(err),
		)
		return nil
	}
	logging.ErrorWithContext(logger, "batch stopped", "batch_aborted",
		logging.String(logging.FieldPath, path),
		logging.String(logging.FieldErrorHint, "check directory permissions and rerun the batch"),
		logging.Error(err),
	)
	return err
}

func (o *Organizer) acquireLock(root string) (*flock.Flock, error) {
	dir := o.cfg.Paths.StateDir
	if dir == "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}
		dir = abs
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(filepath.Join(dir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrBatchLocked, lock.Path())
	}
	return lock, nil
}
