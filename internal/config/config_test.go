package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPaths(t *testing.T) {
	p := DefaultPaths("/Users/jane")

	assert.Equal(t, "/Users/jane", p.Home)
	assert.Equal(t, ".app", p.BundleSuffix)
	assert.Equal(t, []string{"/Applications", "/Users/jane/Applications"}, p.AppRoots)

	wantLibs := []string{
		"/Users/jane/Library/Application Support",
		"/Users/jane/Library/Caches",
		"/Users/jane/Library/Preferences",
		"/Users/jane/Library/Saved Application State",
		"/Users/jane/Library/Logs",
		"/Users/jane/Library/Cookies",
		"/Users/jane/Library/Containers",
		"/Users/jane/Library/Group Containers",
		"/Users/jane/Library/WebKit",
	}
	assert.Equal(t, wantLibs, p.LibraryDirs)

	assert.Equal(t, []string{
		"/Users/jane/Library/Caches",
		"/Users/jane/Library/Logs",
		"/Users/jane/.Trash",
	}, p.JunkRoots)
	assert.Equal(t, "/Users/jane/.Trash", p.TrashDir)
	assert.NoError(t, p.Validate())
}

func TestResolvePaths_RelativeHomeIsMadeAbsolute(t *testing.T) {
	p, err := ResolvePaths("some/home")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(p.Home))
	assert.NoError(t, p.Validate())
}

func TestResolvePaths_EmptyUsesUserHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}
	p, err := ResolvePaths("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".Trash"), p.TrashDir)
}

func TestValidate_RejectsRelativePaths(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Paths)
	}{
		{"relative app root", func(p *Paths) { p.AppRoots[0] = "Applications" }},
		{"relative library", func(p *Paths) { p.LibraryDirs[3] = "Library/Logs" }},
		{"relative junk root", func(p *Paths) { p.JunkRoots[2] = ".Trash" }},
		{"relative trash", func(p *Paths) { p.TrashDir = ".Trash" }},
		{"empty suffix", func(p *Paths) { p.BundleSuffix = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPaths("/Users/jane")
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestDir_RespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/appprune", dir)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	v := NewViper(filepath.Join(t.TempDir(), "missing.yaml"))

	s, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/Applications", s.SystemApps)
	assert.Equal(t, "permanent", s.DeleteMode)
	assert.Equal(t, "auto", s.TrashBackend)
	assert.Equal(t, 8, s.ScanWorkers)
	assert.Equal(t, "warn", s.Log.Level)
	assert.True(t, filepath.IsAbs(s.DBPath))
	assert.Equal(t, "appprune.db", filepath.Base(s.DBPath))
	assert.Equal(t, "snapshots", filepath.Base(s.SnapshotDir))
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	content := `
db: /tmp/history.db
snapshot_dir: /tmp/snaps
delete:
  mode: Recoverable
trash:
  backend: dir
scan:
  workers: 0
log:
  filename: /tmp/appprune.log
  level: debug
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	t.Setenv("APPPRUNE_HOME", "/Users/test")

	s, err := Load(NewViper(file))
	require.NoError(t, err)

	assert.Equal(t, "/Users/test", s.Home)
	assert.Equal(t, "/tmp/history.db", s.DBPath)
	assert.Equal(t, "/tmp/snaps", s.SnapshotDir)
	assert.Equal(t, "recoverable", s.DeleteMode)
	assert.Equal(t, "dir", s.TrashBackend)
	assert.Equal(t, 1, s.ScanWorkers, "workers are clamped to at least one")
	assert.Equal(t, "/tmp/appprune.log", s.Log.Filename)
	assert.Equal(t, "debug", s.Log.Level)
}

func TestLoad_InvalidTrashBackend(t *testing.T) {
	t.Setenv("APPPRUNE_TRASH_BACKEND", "shredder")
	_, err := Load(NewViper(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.ErrorContains(t, err, "trash.backend")
}

func TestLoad_StateFollowsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("APPPRUNE_HOME", home)

	s, err := Load(NewViper(filepath.Join(t.TempDir(), "missing.yaml")))
	require.NoError(t, err)

	state := filepath.Join(home, ".appprune")
	assert.Equal(t, filepath.Join(state, "appprune.db"), s.DBPath)
	assert.Equal(t, filepath.Join(state, "snapshots"), s.SnapshotDir)
	assert.Equal(t, filepath.Join(state, "appprune.log"), s.Log.Filename)
}

func TestStateDir(t *testing.T) {
	dir, err := StateDir("/Users/jane")
	require.NoError(t, err)
	assert.Equal(t, "/Users/jane/.appprune", dir)
}
