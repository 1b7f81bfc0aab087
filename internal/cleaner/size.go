package cleaner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// SizeOf returns the size in bytes of a regular file, or the total size of
// every regular file below a directory. Symlinks inside a directory tree are
// neither followed nor counted. Unreadable subdirectories are skipped; any
// other failure, a missing path or a special file yields 0.
func SizeOf(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}

	switch {
	case info.Mode().IsRegular():
		return info.Size()
	case info.IsDir():
		size, err := dirSize(path)
		if err != nil {
			return 0
		}
		return size
	default:
		return 0
	}
}

// dirSize walks root and sums regular files. A symlinked root is resolved
// first so the walk starts at the real directory.
func dirSize(root string) (int64, error) {
	if linfo, err := os.Lstat(root); err == nil && linfo.Mode()&fs.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(root)
		if err != nil {
			return 0, err
		}
		root = resolved
	}

	var size int64
	err := filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && errors.Is(err, fs.ErrPermission) {
				return fs.SkipDir
			}
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		return nil
	})
	return size, err
}

// FormatSize renders bytes with two decimals in the first unit (B through PB,
// steps of 1024) whose scaled value is below 1024.
func FormatSize(bytes int64) string {
	size := float64(bytes)
	for _, unit := range sizeUnits {
		if size < 1024 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.2f PB", size)
}
