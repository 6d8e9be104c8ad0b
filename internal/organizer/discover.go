package organizer

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"sublime/internal/media/signature"
	"sublime/internal/services"
)

// Discover returns video files under root in lexical order. Hidden
// directories are skipped. root may also name a single file.
func Discover(ctx context.Context, root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	var paths []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != abs && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && signature.IsVideoExtension(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, services.Wrap(services.ErrEnumeration, "discover", "walk", abs, err)
	}
	sort.Strings(paths)
	return paths, nil
}
