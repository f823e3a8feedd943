package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/testgraph/pkg/errors"
	"github.com/matzehuels/testgraph/pkg/graph"
	"github.com/matzehuels/testgraph/pkg/journey"
)

const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"

	// envRedisAddr selects the Redis backend at the given address.
	envRedisAddr = "TESTGRAPH_REDIS_ADDR"
)

// Config is the optional config.toml. Command-line flags override it.
//
//	format = "dot"
//	mode = "deep"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
type Config struct {
	Format    string      `toml:"format"`
	Mode      string      `toml:"mode"`
	RootLabel string      `toml:"root_label"`
	MinWeight *float64    `toml:"min_weight"`
	Cache     CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the output cache.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	TTL           time.Duration `toml:"ttl"`
	Prefix        string        `toml:"prefix"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
}

func defaultConfig() Config {
	return Config{Cache: CacheConfig{Backend: backendFile}}
}

// defaultConfigPath returns $XDG_CONFIG_HOME/testgraph/config.toml or the
// platform equivalent.
func defaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// loadConfig reads the config file at path. An empty path means the default
// location, which may be absent; an explicit path must exist. getenv supplies
// environment overrides.
func loadConfig(path string, getenv func(string) string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			path = ""
		} else {
			path = p
		}
	}

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		switch {
		case err != nil && os.IsNotExist(err) && !explicit:
			cfg = defaultConfig()
		case err != nil && os.IsNotExist(err):
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		case err != nil:
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				keys := make([]string, len(undecoded))
				for i, k := range undecoded {
					keys[i] = k.String()
				}
				return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
			}
		}
	}

	cfg.applyEnv(getenv)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if getenv == nil {
		return
	}
	if addr := getenv(envRedisAddr); addr != "" {
		c.Cache.RedisAddr = addr
		c.Cache.Backend = backendRedis
	}
}

func (c *Config) validate() error {
	if c.Cache.Backend == "" {
		c.Cache.Backend = backendFile
	}
	if !slices.Contains([]string{backendFile, backendRedis, backendNone}, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == backendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.MinWeight != nil && *c.MinWeight < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "min_weight must not be negative")
	}
	if c.Format != "" {
		if err := graph.ValidateFormat(c.Format); err != nil {
			return err
		}
	}
	if c.Mode != "" {
		if _, err := journey.ParseMode(c.Mode); err != nil {
			return err
		}
	}
	return nil
}
