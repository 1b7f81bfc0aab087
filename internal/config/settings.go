package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configBaseName = "config"
	envPrefix      = "APPPRUNE"

	// Keys shared with the CLI flag bindings.
	HomeKey          = "home"
	SystemAppsKey    = "apps.system_dir"
	DBKey            = "db"
	SnapshotDirKey   = "snapshot_dir"
	DeleteModeKey    = "delete.mode"
	TrashBackendKey  = "trash.backend"
	ScanWorkersKey   = "scan.workers"
	LogFilenameKey   = "log.filename"
	LogLevelKey      = "log.level"
	LogMaxSizeKey    = "log.max_size"
	LogMaxBackupsKey = "log.max_backups"
	LogMaxAgeKey     = "log.max_age"
	LogCompressKey   = "log.compress"

	defaultDeleteMode    = "permanent"
	defaultTrashBackend  = "auto"
	defaultScanWorkers   = 8
	defaultLogLevel      = "warn"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// Dir returns the appprune config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/appprune if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "appprune"), nil
}

// StateDir returns <home>/.appprune, where the history database, snapshot
// manifests and log file live by default. An empty home means the current user.
func StateDir(home string) (string, error) {
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		home = h
	}
	return filepath.Join(home, ".appprune"), nil
}

// LogSettings configures the rotating log file.
type LogSettings struct {
	Filename   string
	Level      string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// Settings is the user-tunable configuration read from the config file,
// APPPRUNE_* environment variables and bound CLI flags.
type Settings struct {
	Home         string
	SystemApps   string
	DBPath       string
	SnapshotDir  string
	DeleteMode   string
	TrashBackend string
	ScanWorkers  int
	Log          LogSettings
}

// NewViper returns a viper instance with appprune defaults and env binding.
// When file is empty the default config directory is searched for config.yaml.
func NewViper(file string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configBaseName)
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(HomeKey, "")
	v.SetDefault(SystemAppsKey, SystemAppsDir)
	v.SetDefault(DBKey, "")
	v.SetDefault(SnapshotDirKey, "")
	v.SetDefault(DeleteModeKey, defaultDeleteMode)
	v.SetDefault(TrashBackendKey, defaultTrashBackend)
	v.SetDefault(ScanWorkersKey, defaultScanWorkers)
	v.SetDefault(LogFilenameKey, "")
	v.SetDefault(LogLevelKey, defaultLogLevel)
	v.SetDefault(LogMaxSizeKey, defaultLogMaxSize)
	v.SetDefault(LogMaxBackupsKey, defaultLogMaxBackups)
	v.SetDefault(LogMaxAgeKey, defaultLogMaxAge)
	v.SetDefault(LogCompressKey, defaultLogCompress)

	return v
}

// Load reads the config file (if any) into v and returns the resolved settings.
// A missing config file is not an error.
func Load(v *viper.Viper) (*Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	s := &Settings{
		Home:         v.GetString(HomeKey),
		SystemApps:   v.GetString(SystemAppsKey),
		DBPath:       v.GetString(DBKey),
		SnapshotDir:  v.GetString(SnapshotDirKey),
		DeleteMode:   strings.ToLower(strings.TrimSpace(v.GetString(DeleteModeKey))),
		TrashBackend: strings.ToLower(strings.TrimSpace(v.GetString(TrashBackendKey))),
		ScanWorkers:  v.GetInt(ScanWorkersKey),
		Log: LogSettings{
			Filename:   v.GetString(LogFilenameKey),
			Level:      v.GetString(LogLevelKey),
			MaxSize:    v.GetInt(LogMaxSizeKey),
			MaxBackups: v.GetInt(LogMaxBackupsKey),
			MaxAge:     v.GetInt(LogMaxAgeKey),
			Compress:   v.GetBool(LogCompressKey),
		},
	}

	switch s.TrashBackend {
	case "auto", "finder", "dir":
	default:
		return nil, fmt.Errorf("invalid %s %q: must be one of: auto, finder, dir", TrashBackendKey, s.TrashBackend)
	}

	if s.ScanWorkers < 1 {
		s.ScanWorkers = 1
	}

	if s.DBPath == "" || s.SnapshotDir == "" || s.Log.Filename == "" {
		state, err := StateDir(s.Home)
		if err != nil {
			return nil, err
		}
		if s.DBPath == "" {
			s.DBPath = filepath.Join(state, "appprune.db")
		}
		if s.SnapshotDir == "" {
			s.SnapshotDir = filepath.Join(state, "snapshots")
		}
		if s.Log.Filename == "" {
			s.Log.Filename = filepath.Join(state, "appprune.log")
		}
	}

	return s, nil
}
