package cleaner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Trasher moves a path into a recoverable trash store.
type Trasher interface {
	Trash(path string) error
}

// FinderTrasher asks Finder to delete the item, which places it in the user's
// Trash with "Put Back" support.
type FinderTrasher struct{}

// Trash moves path to the Trash via osascript.
func (FinderTrasher) Trash(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	if _, err := os.Lstat(absPath); err != nil {
		return err
	}

	script := fmt.Sprintf(`tell application "Finder" to delete POSIX file %s`, appleScriptString(absPath))
	cmd := exec.Command("osascript", "-e", script)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to trash %s: %w (output: %s)", path, err, string(out))
	}
	return nil
}

// appleScriptString quotes s as an AppleScript string literal. Only the
// backslash and the double quote need escaping; every other rune is literal.
func appleScriptString(s string) string {
	return `"` + appleScriptEscaper.Replace(s) + `"`
}

var appleScriptEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// DirTrasher renames items into a trash directory on the same volume. A name
// already present in the trash gets a timestamp appended.
type DirTrasher struct {
	Dir string
}

// Trash moves path into t.Dir.
func (t DirTrasher) Trash(path string) error {
	if t.Dir == "" {
		return errors.New("no trash directory configured")
	}
	if _, err := os.Lstat(path); err != nil {
		return err
	}
	if err := os.MkdirAll(t.Dir, 0o700); err != nil {
		return fmt.Errorf("failed to create trash directory: %w", err)
	}

	dest, err := uniqueDest(t.Dir, filepath.Base(path))
	if err != nil {
		return err
	}
	return os.Rename(path, dest)
}

func uniqueDest(dir, name string) (string, error) {
	dest := filepath.Join(dir, name)
	if _, err := os.Lstat(dest); errors.Is(err, fs.ErrNotExist) {
		return dest, nil
	}

	ext := filepath.Ext(name)
	stem := name[:len(name)-len(ext)]
	stamp := time.Now().Format("15.04.05")

	for i := 0; i < 100; i++ {
		candidate := fmt.Sprintf("%s %s%s", stem, stamp, ext)
		if i > 0 {
			candidate = fmt.Sprintf("%s %s %d%s", stem, stamp, i, ext)
		}
		dest = filepath.Join(dir, candidate)
		if _, err := os.Lstat(dest); errors.Is(err, fs.ErrNotExist) {
			return dest, nil
		}
	}
	return "", fmt.Errorf("no free name for %s in %s", name, dir)
}

// DefaultTrasher returns Finder on macOS and a DirTrasher over dir elsewhere.
func DefaultTrasher(dir string) Trasher {
	if runtime.GOOS == "darwin" {
		return FinderTrasher{}
	}
	return DirTrasher{Dir: dir}
}

// NewTrasher selects a backend by name: "auto", "finder" or "dir".
func NewTrasher(backend, dir string) (Trasher, error) {
	switch backend {
	case "", "auto":
		return DefaultTrasher(dir), nil
	case "finder":
		return FinderTrasher{}, nil
	case "dir":
		return DirTrasher{Dir: dir}, nil
	default:
		return nil, fmt.Errorf("unknown trash backend %q", backend)
	}
}
