package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type Config struct{ v *viper.Viper }

func New() *Config {
	vv := viper.New()
	vv.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	vv.AutomaticEnv()
	return &Config{v: vv}
}

// NewFromFile reads path (any format viper understands) on top of the
// environment. Environment variables still take precedence.
func NewFromFile(path string) (*Config, error) {
	c := New()
	if path == "" {
		return c, nil
	}
	c.v.SetConfigFile(path)
	if err := c.v.ReadInConfig(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) GetAddr() string {
	if addr := c.v.GetString("ADDR"); addr != "" {
		return addr
	}
	port := c.v.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	host := c.v.GetString("HOST")
	if host == "" {
		host = "localhost"
	}
	return host + ":" + port
}

func (c *Config) GetGitHubToken() string {
	if t := c.v.GetString("GITHUB_TOKEN"); t != "" {
		return t
	}
	return c.v.GetString("GH_TOKEN")
}

// GetGitHubUsers returns the accounts whose public repositories are listed.
// Reads GITHUB_USERS as a comma or space separated list.
func (c *Config) GetGitHubUsers() []string {
	return c.getList("GITHUB_USERS", ", ")
}

// GetGitHubAPIURL returns GITHUB_API_URL, the REST API root for GitHub
// Enterprise. Empty means api.github.com.
func (c *Config) GetGitHubAPIURL() string { return c.v.GetString("GITHUB_API_URL") }

// GetGitHubIncludeForks reports whether GITHUB_INCLUDE_FORKS asks for forked
// repositories to be listed.
func (c *Config) GetGitHubIncludeForks() bool { return c.v.GetBool("GITHUB_INCLUDE_FORKS") }

// GetGitHubPerPage returns GITHUB_PER_PAGE, the number of repositories
// requested per user. Zero means the client default.
func (c *Config) GetGitHubPerPage() int { return c.v.GetInt("GITHUB_PER_PAGE") }

// GetCatalogStartSection returns CATALOG_START_SECTION, the level-1 heading
// of the catalog after which projects are read. Empty reads the whole file.
func (c *Config) GetCatalogStartSection() string { return c.v.GetString("CATALOG_START_SECTION") }

// GetInitialFilter returns INITIAL_FILTER, the filter shown before any
// selection. Empty means featured.
func (c *Config) GetInitialFilter() string {
	return strings.ToLower(strings.TrimSpace(c.v.GetString("INITIAL_FILTER")))
}

// GetCatalogPath returns the markdown catalog of curated projects from
// CATALOG_PATH. Empty means the built-in records.
func (c *Config) GetCatalogPath() string { return c.v.GetString("CATALOG_PATH") }

// GetFeaturedNames returns FEATURED_NAMES, the names always shown in the
// featured view, as a comma separated list. Empty means the built-in
// allow-list.
func (c *Config) GetFeaturedNames() []string {
	return c.getList("FEATURED_NAMES", ",")
}

// GetSourceTimeout bounds the start-up load of all record sources.
// Reads SOURCE_TIMEOUT; defaults to 30s.
func (c *Config) GetSourceTimeout() time.Duration {
	const def = 30 * time.Second
	if v := c.v.GetString("SOURCE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// GetServiceName returns OTEL_SERVICE_NAME; defaults to "gallery".
func (c *Config) GetServiceName() string {
	if n := c.v.GetString("OTEL_SERVICE_NAME"); n != "" {
		return n
	}
	return "gallery"
}

// GetTelemetryEnabled reports whether OTEL_EXPORTER_OTLP_ENDPOINT is set.
func (c *Config) GetTelemetryEnabled() bool {
	return c.v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT") != ""
}

func (c *Config) Set(key string, value any) { c.v.Set(key, value) }

// GetLogLevel returns the log level from env var LOG_LEVEL mapped to slog.Level.
// Recognized values: debug, info (default), warn|warning, error.
func (c *Config) GetLogLevel() slog.Level {
	switch strings.ToLower(c.v.GetString("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// OnLogLevelChange calls fn with the slog.Level whenever it changes.
// The initial call is made immediately.
func (c *Config) OnLogLevelChange(fn func(slog.Level)) {
	apply := func() { fn(c.GetLogLevel()) }
	apply()
	c.v.OnConfigChange(func(e fsnotify.Event) { apply() })
}

// Watch starts watching the config file for changes. The watch lasts for
// the rest of the process. It is a no-op without a config file.
func (c *Config) Watch() {
	file := c.v.ConfigFileUsed()
	if file == "" {
		return
	}
	c.v.WatchConfig()
	slog.Debug("Watching config", "file", file)
}

// getList reads key as a list. Config files may hold a real list; strings
// from the environment are split on any rune in seps.
func (c *Config) getList(key, seps string) []string {
	var raw []string
	switch c.v.Get(key).(type) {
	case []any, []string:
		raw = c.v.GetStringSlice(key)
	default:
		raw = strings.FieldsFunc(c.v.GetString(key), func(r rune) bool {
			return strings.ContainsRune(seps, r)
		})
	}
	var out []string
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
