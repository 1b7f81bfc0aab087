package cleaner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingTrasher struct{ err error }

func (f failingTrasher) Trash(string) error { return f.err }

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"permanent", Permanent, false},
		{"Permanent ", Permanent, false},
		{"recoverable", Recoverable, false},
		{"trash", Recoverable, false},
		{"secure", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "permanent", Permanent.String())
	assert.Equal(t, "recoverable", Recoverable.String())
	assert.Equal(t, "unknown", Mode(7).String())
}

func TestDelete_PermanentDirectory(t *testing.T) {
	f := newFixture(t)
	dir := filepath.Join(f.home, "victim")
	files := []string{
		filepath.Join(dir, "a"),
		filepath.Join(dir, "sub", "b"),
		filepath.Join(dir, "sub", "deeper", "c"),
	}
	for _, p := range files {
		writeFile(t, p, 16)
	}

	out := f.cleaner.Delete(dir, Permanent)
	assert.Equal(t, Outcome{Path: dir, OK: true, Message: "Deleted"}, out)

	_, err := os.Lstat(dir)
	assert.True(t, os.IsNotExist(err))
	for _, p := range files {
		_, err := os.Lstat(p)
		assert.True(t, os.IsNotExist(err), p)
	}
}

func TestDelete_PermanentFile(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(f.home, "file.plist")
	writeFile(t, path, 8)

	out := f.cleaner.Delete(path, Permanent)
	assert.True(t, out.OK)
	assert.NoFileExists(t, path)
}

func TestDelete_PermanentSymlinkKeepsTarget(t *testing.T) {
	f := newFixture(t)
	target := filepath.Join(f.home, "target")
	writeFile(t, filepath.Join(target, "keep"), 8)
	link := filepath.Join(f.home, "link")
	require.NoError(t, os.Symlink(target, link))

	out := f.cleaner.Delete(link, Permanent)
	assert.True(t, out.OK, out.Message)

	_, err := os.Lstat(link)
	assert.True(t, os.IsNotExist(err))
	assert.FileExists(t, filepath.Join(target, "keep"))
}

func TestDelete_PermanentMissingPathIsNoop(t *testing.T) {
	f := newFixture(t)
	out := f.cleaner.Delete(filepath.Join(f.home, "already-gone"), Permanent)
	assert.True(t, out.OK)
	assert.Equal(t, DeletedMessage, out.Message)
}

func TestDelete_PermanentWithoutWritePermission(t *testing.T) {
	skipIfRoot(t)
	f := newFixture(t)
	parent := filepath.Join(f.home, "readonly")
	path := filepath.Join(parent, "protected.db")
	writeFile(t, path, 8)
	require.NoError(t, os.Chmod(parent, 0o555))
	t.Cleanup(func() { os.Chmod(parent, 0o755) })

	out := f.cleaner.Delete(path, Permanent)
	assert.False(t, out.OK)
	assert.NotEmpty(t, out.Message)
	assert.Contains(t, out.Message, "permission denied")
	assert.FileExists(t, path)
}

func TestDelete_RecoverableMovesToTrash(t *testing.T) {
	f := newFixture(t)
	dir := filepath.Join(f.lib("Caches"), "Foo")
	writeFile(t, filepath.Join(dir, "blob"), 32)

	out := f.cleaner.Delete(dir, Recoverable)
	require.True(t, out.OK, out.Message)

	assert.NoDirExists(t, dir)
	assert.FileExists(t, filepath.Join(f.paths.TrashDir, "Foo", "blob"))
}

func TestDelete_RecoverableNameClash(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.paths.TrashDir, "report.txt"), 1)
	src := filepath.Join(f.home, "Documents", "report.txt")
	writeFile(t, src, 2)

	out := f.cleaner.Delete(src, Recoverable)
	require.True(t, out.OK, out.Message)

	entries, err := os.ReadDir(f.paths.TrashDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.NoFileExists(t, src)
}

func TestDelete_RecoverableMissingPathFails(t *testing.T) {
	f := newFixture(t)
	out := f.cleaner.Delete(filepath.Join(f.home, "nothing"), Recoverable)
	assert.False(t, out.OK)
}

func TestDelete_TrasherErrorBecomesOutcome(t *testing.T) {
	f := newFixture(t)
	c, err := New(f.paths, WithTrasher(failingTrasher{err: errors.New("finder unavailable")}))
	require.NoError(t, err)

	out := c.Delete("/anything", Recoverable)
	assert.Equal(t, Outcome{Path: "/anything", OK: false, Message: "finder unavailable"}, out)
}

func TestDeleteAll_ContinuesAfterFailure(t *testing.T) {
	skipIfRoot(t)
	f := newFixture(t)

	first := filepath.Join(f.home, "first")
	writeFile(t, first, 1)
	parent := filepath.Join(f.home, "locked")
	stuck := filepath.Join(parent, "stuck")
	writeFile(t, stuck, 1)
	require.NoError(t, os.Chmod(parent, 0o555))
	t.Cleanup(func() { os.Chmod(parent, 0o755) })
	last := filepath.Join(f.home, "last")
	writeFile(t, last, 1)

	outcomes := f.cleaner.DeleteAll([]string{first, stuck, last}, Permanent)
	require.Len(t, outcomes, 3)
	assert.True(t, outcomes[0].OK)
	assert.False(t, outcomes[1].OK)
	assert.True(t, outcomes[2].OK)
	assert.NoFileExists(t, last)
}

func TestAppleScriptString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/Users/jane/Library/Caches/com.apple.Notes", `"/Users/jane/Library/Caches/com.apple.Notes"`},
		{`/tmp/say "hi"`, `"/tmp/say \"hi\""`},
		{`/tmp/back\slash`, `"/tmp/back\\slash"`},
		{"/tmp/tab\tand\u00e9", "\"/tmp/tab\tand\u00e9\""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, appleScriptString(tt.in))
		})
	}
}

func TestNewTrasher(t *testing.T) {
	tr, err := NewTrasher("dir", "/tmp/trash")
	require.NoError(t, err)
	assert.Equal(t, DirTrasher{Dir: "/tmp/trash"}, tr)

	tr, err = NewTrasher("finder", "")
	require.NoError(t, err)
	assert.Equal(t, FinderTrasher{}, tr)

	_, err = NewTrasher("shred", "")
	assert.Error(t, err)
}
