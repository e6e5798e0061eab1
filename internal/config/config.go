// File: internal/config/config.go
package config

import (
	"strconv"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DefaultFile is the well-known properties file consulted by Load when no
// explicit path is given.
const DefaultFile = "stagehand.properties"

// Config is the immutable view over the framework settings. It is loaded once
// at process start and is safe for concurrent reads from any number of
// scenario goroutines afterwards.
type Config struct {
	v *viper.Viper
}

// SetDefaults registers the complete built-in default set. Every documented
// key has a default, so lookups never fail even when no config file exists.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("browser", "chrome")
	v.SetDefault("base.url", "https://www.google.com")
	v.SetDefault("headless", false)
	v.SetDefault("window.size", "1920x1080")

	// Timeouts, in seconds.
	v.SetDefault("implicit.wait", 10)
	v.SetDefault("explicit.wait", 10)
	v.SetDefault("page.load.timeout", 30)
	v.SetDefault("script.timeout", 30)

	// Execution.
	v.SetDefault("parallel.execution", false)
	v.SetDefault("thread.count", 1)
	v.SetDefault("retry.count", 0)

	// Artifacts.
	v.SetDefault("screenshot.on.failure", true)
	v.SetDefault("video.recording", false)
	v.SetDefault("screenshots.directory", "target/screenshots")
	v.SetDefault("reports.directory", "target/reports")
	v.SetDefault("videos.directory", "target/videos")

	// WebDriver endpoint. When selenium.url is empty the factory starts a
	// local driver service on driver.port instead.
	v.SetDefault("selenium.url", "")
	v.SetDefault("driver.path", "")
	v.SetDefault("driver.port", 4444)

	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "stagehand")
	v.SetDefault("logger.log_file", "stagehand.log")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
}

// Load reads settings from the given properties file, falling back to the
// built-in defaults when the file is absent or unreadable. Load never fails
// the caller; a missing config source is a supported configuration.
func Load(path string, logger *zap.Logger) *Config {
	v := viper.New()
	SetDefaults(v)

	if path == "" {
		path = DefaultFile
	}
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}
	v.SetConfigFile(path)
	v.SetConfigType("properties")

	v.SetEnvPrefix("STAGEHAND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		logger.Warn("Could not read properties file; using default values.",
			zap.String("path", path), zap.Error(err))
	} else {
		logger.Info("Loaded properties file.", zap.String("path", path))
	}

	return &Config{v: v}
}

// NewDefault returns a Config backed purely by the built-in defaults.
// Tests and library consumers use this to avoid touching the filesystem.
func NewDefault() *Config {
	v := viper.New()
	SetDefaults(v)
	return &Config{v: v}
}

// Override pins a key to a value that beats both the properties file and the
// environment. Overrides are applied during startup, before any scenario
// reads the configuration.
func (c *Config) Override(key string, value interface{}) {
	c.v.Set(key, value)
}

// Property returns the raw string value for key, or def when the key is
// absent or empty.
func (c *Config) Property(key, def string) string {
	s := c.v.GetString(key)
	if s == "" {
		return def
	}
	return s
}

// IntProperty returns the integer value for key. Malformed values fall back
// to def rather than propagating a parse failure.
func (c *Config) IntProperty(key string, def int) int {
	s := c.v.GetString(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// BoolProperty returns the boolean value for key, falling back to def for
// absent or malformed values.
func (c *Config) BoolProperty(key string, def bool) bool {
	s := c.v.GetString(key)
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return b
}

// -- Named accessors --

func (c *Config) Browser() string    { return strings.ToLower(c.Property("browser", "chrome")) }
func (c *Config) BaseURL() string    { return c.Property("base.url", "https://www.google.com") }
func (c *Config) Headless() bool     { return c.BoolProperty("headless", false) }
func (c *Config) WindowSize() string { return c.Property("window.size", "1920x1080") }

func (c *Config) ImplicitWait() time.Duration {
	return time.Duration(c.IntProperty("implicit.wait", 10)) * time.Second
}

func (c *Config) ExplicitWait() time.Duration {
	return time.Duration(c.IntProperty("explicit.wait", 10)) * time.Second
}

func (c *Config) PageLoadTimeout() time.Duration {
	return time.Duration(c.IntProperty("page.load.timeout", 30)) * time.Second
}

func (c *Config) ScriptTimeout() time.Duration {
	return time.Duration(c.IntProperty("script.timeout", 30)) * time.Second
}

func (c *Config) ScreenshotOnFailure() bool { return c.BoolProperty("screenshot.on.failure", true) }
func (c *Config) VideoRecording() bool      { return c.BoolProperty("video.recording", false) }
func (c *Config) ParallelExecution() bool   { return c.BoolProperty("parallel.execution", false) }
func (c *Config) ThreadCount() int          { return c.IntProperty("thread.count", 1) }
func (c *Config) RetryCount() int           { return c.IntProperty("retry.count", 0) }

// ScreenshotsDir returns the screenshot output directory with ~ expanded.
func (c *Config) ScreenshotsDir() string {
	return c.expandDir("screenshots.directory", "target/screenshots")
}

func (c *Config) ReportsDir() string { return c.expandDir("reports.directory", "target/reports") }
func (c *Config) VideosDir() string  { return c.expandDir("videos.directory", "target/videos") }

// SeleniumURL is the remote WebDriver hub endpoint. Empty means "start a
// local driver service".
func (c *Config) SeleniumURL() string { return c.Property("selenium.url", "") }

// DriverPath is an explicit driver binary (chromedriver, geckodriver, ...).
// Empty means the binary is resolved from PATH by the service.
func (c *Config) DriverPath() string { return c.Property("driver.path", "") }
func (c *Config) DriverPort() int    { return c.IntProperty("driver.port", 4444) }

// Logger assembles the logger settings consumed by observability.Initialize.
func (c *Config) Logger() LoggerConfig {
	return LoggerConfig{
		Level:       c.Property("logger.level", "info"),
		Format:      c.Property("logger.format", "console"),
		AddSource:   c.BoolProperty("logger.add_source", false),
		ServiceName: c.Property("logger.service_name", "stagehand"),
		LogFile:     c.Property("logger.log_file", "stagehand.log"),
		MaxSize:     c.IntProperty("logger.max_size", 100),
		MaxBackups:  c.IntProperty("logger.max_backups", 5),
		MaxAge:      c.IntProperty("logger.max_age", 30),
		Compress:    c.BoolProperty("logger.compress", true),
	}
}

func (c *Config) expandDir(key, def string) string {
	dir := c.Property(key, def)
	if expanded, err := homedir.Expand(dir); err == nil {
		return expanded
	}
	return dir
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string
	Format      string
	AddSource   bool
	ServiceName string
	LogFile     string
	MaxSize     int
	MaxBackups  int
	MaxAge      int
	Compress    bool
}
