package fileutil

import (
	"errors"
	"fmt"
	"os"
)

// renameFunc and removeFunc are swapped in tests to simulate EXDEV and
// an undeletable source.
var (
	renameFunc = os.Rename
	removeFunc = os.Remove
)

// CrossDeviceError reports a rename that failed because source and target
// live on different filesystems.
type CrossDeviceError struct {
	Src string
	Dst string
	Err error
}

func (e *CrossDeviceError) Error() string {
	return fmt.Sprintf("cross-device move %q -> %q: %v", e.Src, e.Dst, e.Err)
}

func (e *CrossDeviceError) Unwrap() error { return e.Err }

// IsCrossDevice reports whether err is a CrossDeviceError.
func IsCrossDevice(err error) bool {
	var e *CrossDeviceError
	return errors.As(err, &e)
}

// Move renames src to dst atomically. An existing dst is refused with
// os.ErrExist and EXDEV failures come back as *CrossDeviceError.
func Move(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("move %q -> %q: %w", src, dst, os.ErrExist)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := renameFunc(src, dst); err != nil {
		if isEXDEV(err) {
			return &CrossDeviceError{Src: src, Dst: dst, Err: err}
		}
		return err
	}
	return nil
}

// MoveCopying behaves like Move but falls back to a verified copy followed
// by removal of src when the rename crosses filesystems. When src cannot be
// removed the copy is deleted again so only one file remains.
func MoveCopying(src, dst string) error {
	err := Move(src, dst)
	if !IsCrossDevice(err) {
		return err
	}
	if err := CopyFileVerified(src, dst); err != nil {
		return fmt.Errorf("cross-device copy %q -> %q: %w", src, dst, err)
	}
	if err := removeFunc(src); err != nil {
		if cleanupErr := os.Remove(dst); cleanupErr != nil {
			return fmt.Errorf("remove source after copy %q: %w (copy left at %q: %v)", src, err, dst, cleanupErr)
		}
		return fmt.Errorf("remove source after copy %q: %w", src, err)
	}
	return nil
}
