package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the expcards API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Matching MatchingConfig `yaml:"matching"`
	Safety   SafetyConfig   `yaml:"safety"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds the SQLite store paths. The live store keeps
// admin-submitted cards; the demo store is wiped and reseeded on every start.
type DatabaseConfig struct {
	LivePath string `yaml:"live_path"`
	DemoPath string `yaml:"demo_path"`
}

// CacheConfig holds the optional term-vector cache settings. An empty addrs
// list disables the cache and vectors are computed per query.
type CacheConfig struct {
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	TTLSec   int      `yaml:"ttl_sec"`
}

// Enabled reports whether the vector cache is configured.
func (c CacheConfig) Enabled() bool { return len(c.Addrs) > 0 }

// MatchingConfig holds the tuned retrieval constants. These are configured
// values, not derived ones.
type MatchingConfig struct {
	MinScore         float64 `yaml:"min_score"`
	ResultLimit      int     `yaml:"result_limit"`
	TopVisible       int     `yaml:"top_visible"`
	TagBonus         float64 `yaml:"tag_bonus"`
	TagBonusCap      float64 `yaml:"tag_bonus_cap"`
	CategoryBonus    float64 `yaml:"category_bonus"`
	HighConfidence   float64 `yaml:"high_confidence"`
	MediumConfidence float64 `yaml:"medium_confidence"`
	MinQuestionLen   int     `yaml:"min_question_len"`
}

// SafetyConfig holds the safety gate settings.
type SafetyConfig struct {
	BannedKeywords    []string `yaml:"banned_keywords"`
	AllowedDomains    []string `yaml:"allowed_domains"`
	MinStructureScore int      `yaml:"min_structure_score"`
}

// Load reads configuration from a YAML file by environment name (local, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with the reference values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.LivePath == "" {
		c.Database.LivePath = "live.db"
	}
	if c.Database.DemoPath == "" {
		c.Database.DemoPath = "demo.db"
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 3600
	}
	if c.Matching.MinScore <= 0 {
		c.Matching.MinScore = 18.0
	}
	if c.Matching.ResultLimit <= 0 {
		c.Matching.ResultLimit = 5
	}
	if c.Matching.TopVisible <= 0 {
		c.Matching.TopVisible = 3
	}
	if c.Matching.TagBonus <= 0 {
		c.Matching.TagBonus = 3.0
	}
	if c.Matching.TagBonusCap <= 0 {
		c.Matching.TagBonusCap = 15.0
	}
	if c.Matching.CategoryBonus <= 0 {
		c.Matching.CategoryBonus = 5.0
	}
	if c.Matching.HighConfidence <= 0 {
		c.Matching.HighConfidence = 30.0
	}
	if c.Matching.MediumConfidence <= 0 {
		c.Matching.MediumConfidence = 22.0
	}
	if c.Matching.MinQuestionLen <= 0 {
		c.Matching.MinQuestionLen = 8
	}
	if c.Safety.MinStructureScore <= 0 {
		c.Safety.MinStructureScore = 4
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Matching.TopVisible > c.Matching.ResultLimit {
		return fmt.Errorf("matching.top_visible (%d) must not exceed matching.result_limit (%d)",
			c.Matching.TopVisible, c.Matching.ResultLimit)
	}
	if c.Matching.MediumConfidence > c.Matching.HighConfidence {
		return fmt.Errorf("matching.medium_confidence (%v) must not exceed matching.high_confidence (%v)",
			c.Matching.MediumConfidence, c.Matching.HighConfidence)
	}
	if c.Safety.MinStructureScore > 5 {
		return fmt.Errorf("safety.min_structure_score must be at most 5, got %d", c.Safety.MinStructureScore)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
