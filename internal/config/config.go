package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "HARNESS"

type Configuration struct {
	Server    Server  `mapstructure:"server"`
	Runner    Runner  `mapstructure:"runner"`
	Browser   Browser `mapstructure:"browser"`
	API       API     `mapstructure:"api"`
	Mongo     Mongo   `mapstructure:"mongo"`
	Tools     Tools   `mapstructure:"tools"`
	LogFormat string  `mapstructure:"log-format" default:"console"`
	LogLevel  string  `mapstructure:"log-level" default:"debug"`

	baseURLProvided bool
}

type Server struct {
	ServerMode string `mapstructure:"mode" default:"dev"`
	HTTPPort   int    `mapstructure:"http-port" default:"8000"`
	// DataFolder holds the run history database. Empty keeps history in memory.
	DataFolder string `mapstructure:"data-folder" default:""`
	// HistoryRetention prunes older runs at start-up. Zero keeps everything.
	HistoryRetention time.Duration `mapstructure:"history-retention" default:"720h"`
}

type Runner struct {
	ProjectRoot string        `mapstructure:"project-root" default:"."`
	Command     []string      `mapstructure:"command" default:"[\"go\",\"test\",\"-tags=e2e\",\"-count=1\",\"-v\"]"`
	Package     string        `mapstructure:"package" default:"./test/api"`
	Workers     int           `mapstructure:"workers" default:"1"`
	Timeout     time.Duration `mapstructure:"timeout" default:"10m"`
}

type Browser struct {
	Headless   bool          `mapstructure:"headless" default:"false"`
	SlowMo     int           `mapstructure:"slow-mo" default:"0"`
	BaseURL    string        `mapstructure:"base-url" default:"http://localhost:4200"`
	Timeout    time.Duration `mapstructure:"timeout" default:"10s"`
	Automation bool          `mapstructure:"automation" default:"false"`
}

type API struct {
	BaseURL      string        `mapstructure:"base-url" default:"http://localhost:5500"`
	ReadyTimeout time.Duration `mapstructure:"ready-timeout" default:"30s"`
}

type Mongo struct {
	URI         string   `mapstructure:"uri" default:"mongodb://localhost:27017"`
	Database    string   `mapstructure:"database" default:"events_test"`
	Collections []string `mapstructure:"collections" default:"[\"accounts\",\"users\",\"profiles\",\"tagaffinities\",\"events\",\"userevents\",\"urls\",\"crawls\"]"`
}

type Tools struct {
	Enabled bool   `mapstructure:"enabled" default:"true"`
	Port    int    `mapstructure:"port" default:"8003"`
	Name    string `mapstructure:"name" default:"harness-tools"`
	// AltPort is a second listener for the same routes; 0 disables it.
	AltPort int `mapstructure:"alt-port" default:"0"`
}

// legacyEnv maps configuration keys to the environment variable names used by the
// existing .env files. HARNESS_* names are always accepted as well.
var legacyEnv = map[string][]string{
	"browser.base-url": {"BASE_URL"},
	"browser.headless": {"HEADLESS"},
	"browser.slow-mo":  {"SLOW_MO"},
	"api.base-url":     {"API_BASE_URL"},
	"mongo.uri":        {"MONGO_URI"},
	"mongo.database":   {"MONGO_DATABASE"},
	"tools.port":       {"N8N_MCP_PORT"},
	"tools.alt-port":   {"PARTY2_PORT"},
	"server.http-port": {"N8N_REST_PORT"},
}

var keys = []string{
	"server.mode", "server.http-port", "server.data-folder", "server.history-retention",
	"runner.project-root", "runner.command", "runner.package", "runner.workers", "runner.timeout",
	"browser.headless", "browser.slow-mo", "browser.base-url", "browser.timeout", "browser.automation",
	"api.base-url", "api.ready-timeout",
	"mongo.uri", "mongo.database", "mongo.collections",
	"tools.enabled", "tools.port", "tools.name", "tools.alt-port",
	"log-format", "log-level",
}

// NewConfigurationWithDefaults returns a configuration holding only default values.
func NewConfigurationWithDefaults() *Configuration {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		// default tags are static; a failure here is a programming error
		panic(fmt.Sprintf("invalid configuration defaults: %v", err))
	}
	return cfg
}

// LoadEnvFile loads a dotenv file into the process environment. A missing file is not an error.
func LoadEnvFile(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return true, nil
}

// EnvFileFor returns explicit when it is set, otherwise the .env beside the go.mod
// found by walking up from dir. It returns "" when dir is not inside a module.
func EnvFileFor(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, ".env")
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Load builds the configuration from defaults, environment and whatever the
// viper instance already holds (bound flags, config file).
func Load(v *viper.Viper) (*Configuration, error) {
	cfg := NewConfigurationWithDefaults()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for _, key := range keys {
		names := []string{key, envName(key)}
		names = append(names, legacyEnv[key]...)
		if err := v.BindEnv(names...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	cfg.baseURLProvided = v.IsSet("browser.base-url")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envName(key string) string {
	r := strings.NewReplacer(".", "_", "-", "_")
	return envPrefix + "_" + strings.ToUpper(r.Replace(key))
}

func (c *Configuration) Validate() error {
	if c.Server.ServerMode != "dev" && c.Server.ServerMode != "prod" {
		return fmt.Errorf("invalid server mode %q: must be 'dev' or 'prod'", c.Server.ServerMode)
	}
	if c.Runner.Workers < 1 {
		return fmt.Errorf("runner workers must be at least 1, got %d", c.Runner.Workers)
	}
	if len(c.Runner.Command) == 0 {
		return errors.New("runner command is empty")
	}
	if c.Server.HistoryRetention < 0 {
		return fmt.Errorf("history retention must not be negative, got %s", c.Server.HistoryRetention)
	}
	if c.Tools.AltPort < 0 || c.Tools.AltPort > 65535 {
		return fmt.Errorf("invalid tools alt port %d", c.Tools.AltPort)
	}
	if c.Tools.AltPort != 0 && c.Tools.AltPort == c.Tools.Port {
		return fmt.Errorf("tools alt port %d equals tools port", c.Tools.AltPort)
	}
	if c.Browser.SlowMo < 0 {
		return fmt.Errorf("slow-mo must not be negative, got %d", c.Browser.SlowMo)
	}
	return nil
}

// RequireBaseURL fails when BASE_URL was not provided explicitly.
func (c *Configuration) RequireBaseURL() error {
	if !c.baseURLProvided || c.Browser.BaseURL == "" {
		return errors.New("BASE_URL environment variable is required")
	}
	return nil
}

// DebugMap returns the configuration as a flat map suitable for structured logging.
func (c *Configuration) DebugMap() map[string]any {
	return map[string]any{
		"server.mode":              c.Server.ServerMode,
		"server.http-port":         c.Server.HTTPPort,
		"server.data-folder":       c.Server.DataFolder,
		"server.history-retention": c.Server.HistoryRetention.String(),
		"runner.project-root":      c.Runner.ProjectRoot,
		"runner.command":           strings.Join(c.Runner.Command, " "),
		"runner.package":           c.Runner.Package,
		"runner.workers":           c.Runner.Workers,
		"runner.timeout":           c.Runner.Timeout.String(),
		"browser.headless":         c.Browser.Headless,
		"browser.slow-mo":          c.Browser.SlowMo,
		"browser.base-url":         c.Browser.BaseURL,
		"browser.automation":       c.Browser.Automation,
		"api.base-url":             c.API.BaseURL,
		"mongo.database":           c.Mongo.Database,
		"tools.enabled":            c.Tools.Enabled,
		"tools.port":               c.Tools.Port,
		"tools.alt-port":           c.Tools.AltPort,
		"log-format":               c.LogFormat,
		"log-level":                c.LogLevel,
	}
}
