package video

import (
	"log/slog"
	"path/filepath"
	"strings"

	"sublime/internal/fileutil"
	"sublime/internal/logging"
	"sublime/internal/services"
	"sublime/internal/textutil"
)

// RenameResult is the outcome of one rename. Path is the video path after
// the call: the new location on success, Previous otherwise.
type RenameResult struct {
	Path     string
	Previous string
	Err      error
}

// Renamed reports whether the file moved.
func (r RenameResult) Renamed() bool {
	return r.Err == nil && r.Path != r.Previous
}

// Renamer moves typed videos to their canonical names.
type Renamer struct {
	logger *slog.Logger
}

// NewRenamer constructs a Renamer. A nil logger discards output.
func NewRenamer(logger *slog.Logger) *Renamer {
	return &Renamer{logger: logging.NewComponentLogger(logger, "renamer")}
}

// TargetName returns the canonical base name (without extension) for v.
func TargetName(v *Video, naming Naming) (string, error) {
	var name string
	switch v.Kind() {
	case KindMovie:
		if isPlaceholder(v.movie.Name, UnknownMovie) {
			return "", services.Wrap(services.ErrUnsupported, "rename", "target name", "movie has no known name", nil)
		}
		name = textutil.SanitizeFileName(v.movie.Name)
	case KindEpisode:
		if isPlaceholder(v.episode.SeriesName, UnknownSeries) {
			return "", services.Wrap(services.ErrUnsupported, "rename", "target name", "episode has no known series name", nil)
		}
		pattern := naming.Pattern
		if strings.TrimSpace(pattern) == "" {
			pattern = DefaultEpisodePattern
		}
		rendered, err := formatPattern(pattern, map[string]any{
			"serie_name":   textutil.SanitizeFileName(v.episode.SeriesName),
			"season":       v.episode.Season,
			"episode":      v.episode.Number,
			"episode_name": textutil.SanitizeFileName(v.episode.Title),
		})
		if err != nil {
			return "", services.Wrap(services.ErrRename, "rename", "format", "invalid naming pattern", err)
		}
		name = textutil.SanitizeFileName(rendered)
	default:
		return "", services.Wrap(services.ErrUnsupported, "rename", "target name", "video kind has no canonical name", nil)
	}
	if naming.Underscore {
		name = textutil.Underscore(name)
	}
	if name == "" {
		return "", services.Wrap(services.ErrRename, "rename", "target name", "empty target name", nil)
	}
	return name, nil
}

func isPlaceholder(value, placeholder string) bool {
	value = strings.TrimSpace(value)
	return value == "" || value == placeholder
}

// Rename moves v to <dir>/<canonical name><original extension>. Failures
// leave v untouched and are reported through RenameResult.Err and the log.
func (r *Renamer) Rename(v *Video, naming Naming) RenameResult {
	result := RenameResult{Path: v.Path(), Previous: v.Path()}
	logger := r.logger.With(logging.String(logging.FieldPath, v.Path()))

	name, err := TargetName(v, naming)
	if err != nil {
		result.Err = err
		logging.WarnWithContext(logger, "video not renamed", "rename_skipped",
			logging.String(logging.FieldErrorHint, "name the file after its movie or series so it can be classified"),
			logging.String(logging.FieldImpact, "file keeps its current name"),
			logging.Error(err),
		)
		return result
	}

	target := filepath.Join(filepath.Dir(v.Path()), name+filepath.Ext(v.Path()))
	if target == v.Path() {
		return result
	}

	move := fileutil.Move
	if naming.CrossDeviceCopy {
		move = fileutil.MoveCopying
	}
	if err := move(v.Path(), target); err != nil {
		result.Err = services.Wrap(services.ErrRename, "rename", "move", target, err)
		hint := "check permissions and that the target does not already exist"
		if fileutil.IsCrossDevice(err) {
			hint = "enable naming.cross_device_copy or keep files on one filesystem"
		}
		logging.ErrorWithContext(logger, "cannot rename video", "rename_failed",
			logging.String("target", target),
			logging.String(logging.FieldErrorHint, hint),
			logging.Error(err),
		)
		return result
	}

	v.path = target
	result.Path = target
	logger.Info("video renamed", logging.String("target", target))
	return result
}
