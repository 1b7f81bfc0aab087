package cleaner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Mode selects how Delete disposes of an item.
type Mode int

const (
	// Recoverable moves the item to the trash, where the user can restore it.
	Recoverable Mode = iota
	// Permanent removes the item irreversibly.
	Permanent
)

func (m Mode) String() string {
	switch m {
	case Recoverable:
		return "recoverable"
	case Permanent:
		return "permanent"
	default:
		return "unknown"
	}
}

// ParseMode converts a configuration value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "recoverable", "trash":
		return Recoverable, nil
	case "permanent":
		return Permanent, nil
	default:
		return 0, fmt.Errorf("invalid delete mode %q: must be one of: permanent, recoverable", s)
	}
}

// DeletedMessage is the Outcome message for a successful deletion.
const DeletedMessage = "Deleted"

// Outcome is the result of one deletion attempt.
type Outcome struct {
	Path    string
	OK      bool
	Message string
}

// Delete removes path according to mode. It never returns an error: every
// failure is reported through the Outcome. A path that is already gone is
// reported as deleted when removing permanently.
func (c *Cleaner) Delete(path string, mode Mode) Outcome {
	var err error
	switch mode {
	case Recoverable:
		err = c.trasher.Trash(path)
	case Permanent:
		err = removePermanently(path)
	default:
		err = fmt.Errorf("unsupported delete mode %d", int(mode))
	}

	if err != nil {
		c.logger.Debug("delete failed", "path", path, "mode", mode.String(), "error", err)
		return Outcome{Path: path, OK: false, Message: err.Error()}
	}
	return Outcome{Path: path, OK: true, Message: DeletedMessage}
}

// DeleteAll deletes each path independently; a failure never stops the loop.
func (c *Cleaner) DeleteAll(paths []string, mode Mode) []Outcome {
	outcomes := make([]Outcome, 0, len(paths))
	for _, p := range paths {
		outcomes = append(outcomes, c.Delete(p, mode))
	}
	return outcomes
}

// removePermanently unlinks regular files and symlinks (never their targets)
// and removes directories recursively.
func removePermanently(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	mode := info.Mode()
	switch {
	case mode.IsRegular(), mode&fs.ModeSymlink != 0:
		return os.Remove(path)
	case mode.IsDir():
		return os.RemoveAll(path)
	default:
		return fmt.Errorf("refusing to remove %s: not a regular file, symlink or directory", path)
	}
}
