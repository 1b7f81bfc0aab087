package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/blackwell-systems/appprune/internal/cleaner"
	"github.com/blackwell-systems/appprune/internal/config"
)

var (
	cfgFile  string
	homeFlag string
	dbPath   string
	verbose  bool

	// RootCmd is the root command for appprune
	RootCmd = &cobra.Command{
		Use:   "appprune",
		Short: "Uninstall macOS applications together with their leftovers",
		Long: `appprune removes macOS applications along with the support files,
caches, preferences and containers they leave behind in ~/Library, and
clears generic junk (caches, logs, trash).

Every deletion run is recorded: a JSON manifest of what was about to be
deleted is written first, and per-item results are kept in a local history
database.

Examples:
  # List installed applications
  appprune apps

  # Show everything that belongs to an application
  appprune scan "Google Chrome"

  # Uninstall it, moving items to the Trash
  appprune uninstall "Google Chrome" --trash

  # Preview junk cleanup
  appprune clean --dry-run

  # Watch for applications removed by other means
  appprune watch`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "appprune: macOS application uninstaller and junk cleaner")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Run 'appprune apps' to list installed applications.")
			fmt.Fprintln(out, "Run 'appprune --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/appprune/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&homeFlag, "home", "", "home directory to operate on (default: current user)")
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "history database path (default: ~/.appprune/appprune.db)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// env is what every subcommand needs after configuration is resolved.
type env struct {
	settings *config.Settings
	cleaner  *cleaner.Cleaner
	mode     cleaner.Mode
}

// newEnv loads settings from the config file, APPPRUNE_* variables and
// flags, configures logging, and builds the cleaner.
func newEnv() (*env, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	configureLogger(settings.Log, verbose)

	paths, err := config.ResolvePaths(settings.Home)
	if err != nil {
		return nil, err
	}
	if settings.SystemApps != "" {
		paths.AppRoots[0] = settings.SystemApps
	}

	mode, err := cleaner.ParseMode(settings.DeleteMode)
	if err != nil {
		return nil, err
	}

	trasher, err := cleaner.NewTrasher(settings.TrashBackend, paths.TrashDir)
	if err != nil {
		return nil, err
	}

	c, err := cleaner.New(paths,
		cleaner.WithTrasher(trasher),
		cleaner.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, err
	}

	slog.Debug("configuration loaded",
		"home", paths.Home,
		"db", settings.DBPath,
		"mode", mode.String(),
		"trash_backend", settings.TrashBackend)

	return &env{settings: settings, cleaner: c, mode: mode}, nil
}

func loadSettings() (*config.Settings, error) {
	v := config.NewViper(cfgFile)

	flags := RootCmd.PersistentFlags()
	if err := bindFlag(v, config.HomeKey, flags.Lookup("home")); err != nil {
		return nil, err
	}
	if err := bindFlag(v, config.DBKey, flags.Lookup("db")); err != nil {
		return nil, err
	}

	return config.Load(v)
}

// bindFlag lets an explicitly set flag override the config file and env.
func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) error {
	if flag == nil {
		return nil
	}
	if err := v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("failed to bind --%s: %w", flag.Name, err)
	}
	return nil
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger points the default slog logger at a rotating log file.
// Terminal output stays reserved for results.
func configureLogger(s config.LogSettings, verbose bool) {
	logLevel := parseSlogLevel(s.Level, slog.LevelWarn)
	if verbose {
		logLevel = slog.LevelDebug
	}

	if dir := filepath.Dir(s.Filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot create log directory %s: %v\n", dir, err)
		}
	}

	logWriter := &lumberjack.Logger{
		Filename:   s.Filename,
		MaxSize:    s.MaxSize,
		MaxBackups: s.MaxBackups,
		MaxAge:     s.MaxAge,
		Compress:   s.Compress,
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	slog.SetDefault(slog.New(handler))
}
