// Package cli implements the eolscan command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/eolscan/eolscan/pkg/buildinfo"
	"github.com/eolscan/eolscan/pkg/cache"
	"github.com/eolscan/eolscan/pkg/eol"
	"github.com/eolscan/eolscan/pkg/scan"
	"github.com/eolscan/eolscan/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "eolscan"

	// projectsFileName is the tracked-projects file inside the config dir.
	projectsFileName = "projects.yml"
)

// Environment overrides. Each one takes precedence over the XDG-derived or
// built-in default.
const (
	envCacheDir  = "EOLSCAN_CACHE_DIR"
	envConfigDir = "EOLSCAN_CONFIG_DIR"
	envBaseURL   = "EOLSCAN_BASE_URL"
	envRedisAddr = "EOLSCAN_REDIS_ADDR"
	envMongoURI  = "EOLSCAN_MONGO_URI"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Eolscan tracks end-of-life dates for your projects' stacks",
		Long:         `Eolscan scans project directories for language runtimes, frameworks, and datastores, resolves the detected versions against endoflife.date, and shows which parts of your stack are approaching or past end-of-life.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A .env next to the binary lets deployments set the
			// EOLSCAN_* overrides without touching the shell.
			_ = godotenv.Load()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.scanCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.rescanCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Collaborator Factories
// =============================================================================

// newScanner creates a scanner backed by the real filesystem and shell.
func (c *CLI) newScanner() *scan.Scanner {
	return scan.New(nil, nil, c.Logger)
}

// newRegistry creates an EOL registry for CLI use. The cache backend is
// Redis when EOLSCAN_REDIS_ADDR is set, otherwise the XDG cache directory;
// an unusable backend degrades to no caching rather than failing the command.
func (c *CLI) newRegistry(ctx context.Context, noCache bool) *eol.Registry {
	client := eol.NewClient(os.Getenv(envBaseURL))
	return eol.NewRegistry(client, c.newCacheStore(ctx, noCache), 0, c.Logger)
}

func (c *CLI) newCacheStore(ctx context.Context, noCache bool) cache.Store {
	if noCache {
		return cache.NewNullStore()
	}
	if addr := os.Getenv(envRedisAddr); addr != "" {
		st, err := cache.NewRedisStore(ctx, addr)
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "addr", addr, "err", err)
			return cache.NewNullStore()
		}
		return st
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullStore()
	}
	st, err := cache.NewFileStore(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "dir", dir, "err", err)
		return cache.NewNullStore()
	}
	return st
}

// newProjectStore opens the tracked-projects store: MongoDB when
// EOLSCAN_MONGO_URI is set, otherwise the YAML file in the config dir.
func (c *CLI) newProjectStore(ctx context.Context) (store.Store, error) {
	if uri := os.Getenv(envMongoURI); uri != "" {
		return store.NewMongoStore(ctx, uri)
	}
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return store.NewFileStore(filepath.Join(dir, projectsFileName))
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory: EOLSCAN_CACHE_DIR, else XDG standard
// (~/.cache/eolscan/).
func cacheDir() (string, error) {
	if dir := os.Getenv(envCacheDir); dir != "" {
		return dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory: EOLSCAN_CONFIG_DIR, else XDG
// standard (~/.config/eolscan/).
func configDir() (string, error) {
	if dir := os.Getenv(envConfigDir); dir != "" {
		return dir, nil
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
