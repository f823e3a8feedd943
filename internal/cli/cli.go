package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/testgraph/pkg/buildinfo"
	"github.com/matzehuels/testgraph/pkg/cache"
	"github.com/matzehuels/testgraph/pkg/observability"
	"github.com/matzehuels/testgraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "testgraph"

	// stdinPath is the input argument that reads from standard input.
	stdinPath = "-"
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

	configPath string
	noCache    bool
	config     Config
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "testgraph turns test-analysis reports into graph and tree documents",
		Long: `testgraph converts the output of test-suite analysis into documents for
visualization: a similarity multigraph built from LCS, cosine and Jaccard
reports, and a journey tree whose same-named siblings are merged.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath, os.Getenv)
			if err != nil {
				return err
			}
			c.config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/testgraph/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the output cache")

	root.AddCommand(c.graphCommand())
	root.AddCommand(c.journeyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context) *pipeline.Runner {
	hooks := &logHooks{logger: c.Logger}
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)

	var keyer cache.Keyer
	if c.config.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, c.config.Cache.Prefix)
	}
	r := pipeline.NewRunner(c.newCache(ctx), keyer, c.Logger)
	r.TTL = c.config.Cache.TTL
	return r
}

// newCache opens the configured backend. Caching is best-effort, so a
// backend that cannot be opened degrades to no caching with a warning.
func (c *CLI) newCache(ctx context.Context) cache.Cache {
	if c.noCache {
		return cache.NewNullCache()
	}
	cfg := c.config.Cache
	switch cfg.Backend {
	case backendNone:
		return cache.NewNullCache()
	case backendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, continuing without cache", "err", err)
			return cache.NewNullCache()
		}
		return rc
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("cache directory unavailable, continuing without cache", "err", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache directory unavailable, continuing without cache", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the file cache directory, honoring cache.dir.
func (c *CLI) cacheDir() (string, error) {
	if c.config.Cache.Dir != "" {
		return c.config.Cache.Dir, nil
	}
	return cache.DefaultDir()
}
