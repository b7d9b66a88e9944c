package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for a comparison run
type Config struct {
	// Environments being compared
	Environments EnvironmentsConfig `yaml:"environments" json:"environments"`

	// Input, record log and output directory locations
	Files FilesConfig `yaml:"files" json:"files"`

	// Browser capture settings
	Capture CaptureConfig `yaml:"capture" json:"capture"`

	// Failure panel settings
	Placeholder PlaceholderConfig `yaml:"placeholder" json:"placeholder"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// EnvironmentsConfig holds the two sides of a comparison
type EnvironmentsConfig struct {
	Left  EnvironmentConfig `yaml:"left" json:"left"`
	Right EnvironmentConfig `yaml:"right" json:"right"`
}

// EnvironmentConfig describes one deployment whose pages are captured
type EnvironmentConfig struct {
	Name          string `yaml:"name" json:"name"`
	BaseURL       string `yaml:"base_url" json:"base_url"`
	BasicAuthUser string `yaml:"basic_auth_user" json:"basic_auth_user"`
}

// FilesConfig holds on-disk locations
type FilesConfig struct {
	Input     string `yaml:"input" json:"input"`
	RecordLog string `yaml:"record_log" json:"record_log"`
	OutputDir string `yaml:"output_dir" json:"output_dir"`
}

// CaptureConfig holds headless browser settings
type CaptureConfig struct {
	SettleDelay    time.Duration `yaml:"settle_delay" json:"settle_delay"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout"`
	ViewportWidth  int           `yaml:"viewport_width" json:"viewport_width"`
	ViewportHeight int           `yaml:"viewport_height" json:"viewport_height"`
	Headless       bool          `yaml:"headless" json:"headless"`
	UserAgent      string        `yaml:"user_agent" json:"user_agent"`
	ChromePath     string        `yaml:"chrome_path" json:"chrome_path"`
	PairsPerMinute int           `yaml:"pairs_per_minute" json:"pairs_per_minute"`
}

// PlaceholderConfig sizes the panel substituted for a failed capture
type PlaceholderConfig struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults.
// Base URLs have no default and must be supplied.
func DefaultConfig() *Config {
	return &Config{
		Environments: EnvironmentsConfig{
			Left:  EnvironmentConfig{Name: "left"},
			Right: EnvironmentConfig{Name: "right"},
		},
		Files: FilesConfig{
			Input:     "input.csv",
			RecordLog: "output.csv",
			OutputDir: "output",
		},
		Capture: CaptureConfig{
			SettleDelay:    2 * time.Second,
			Timeout:        60 * time.Second,
			ViewportWidth:  1280,
			ViewportHeight: 800,
			Headless:       true,
		},
		Placeholder: PlaceholderConfig{
			Width:  400,
			Height: 200,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	var errs []error

	if v := os.Getenv("SHOTPAIR_LEFT_BASE_URL"); v != "" {
		c.Environments.Left.BaseURL = v
	}
	if v := os.Getenv("SHOTPAIR_RIGHT_BASE_URL"); v != "" {
		c.Environments.Right.BaseURL = v
	}
	if v := os.Getenv("SHOTPAIR_LEFT_BASIC_AUTH_USER"); v != "" {
		c.Environments.Left.BasicAuthUser = v
	}
	if v := os.Getenv("SHOTPAIR_RIGHT_BASIC_AUTH_USER"); v != "" {
		c.Environments.Right.BasicAuthUser = v
	}

	if v := os.Getenv("SHOTPAIR_INPUT"); v != "" {
		c.Files.Input = v
	}
	if v := os.Getenv("SHOTPAIR_RECORD_LOG"); v != "" {
		c.Files.RecordLog = v
	}
	if v := os.Getenv("SHOTPAIR_OUTPUT_DIR"); v != "" {
		c.Files.OutputDir = v
	}

	if v := os.Getenv("SHOTPAIR_SETTLE_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("SHOTPAIR_SETTLE_DELAY: %w", err))
		} else {
			c.Capture.SettleDelay = d
		}
	}
	if v := os.Getenv("SHOTPAIR_CAPTURE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("SHOTPAIR_CAPTURE_TIMEOUT: %w", err))
		} else {
			c.Capture.Timeout = d
		}
	}
	if v := os.Getenv("SHOTPAIR_PAIRS_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("SHOTPAIR_PAIRS_PER_MINUTE: %w", err))
		} else {
			c.Capture.PairsPerMinute = n
		}
	}
	if v := os.Getenv("SHOTPAIR_CHROME_PATH"); v != "" {
		c.Capture.ChromePath = v
	}
	if v := os.Getenv("SHOTPAIR_HEADLESS"); v != "" {
		c.Capture.Headless = strings.ToLower(v) != "false"
	}

	if v := os.Getenv("SHOTPAIR_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SHOTPAIR_LOG_FILE"); v != "" {
		c.Logging.File = v
	}

	return errors.Join(errs...)
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		".shotpair.yaml",
		".shotpair.yml",
		filepath.Join(home, ".config", "shotpair", "config.yaml"),
		filepath.Join(home, ".config", "shotpair", "config.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	for side, env := range map[string]EnvironmentConfig{
		"left":  c.Environments.Left,
		"right": c.Environments.Right,
	} {
		if err := validateBaseURL(env.BaseURL); err != nil {
			errs = append(errs, fmt.Errorf("%s base url: %w", side, err))
		}
	}

	if c.Files.Input == "" {
		errs = append(errs, errors.New("input file is required"))
	}
	if c.Files.RecordLog == "" {
		errs = append(errs, errors.New("record log path is required"))
	}
	if c.Files.OutputDir == "" {
		errs = append(errs, errors.New("output directory is required"))
	}

	if c.Capture.SettleDelay < 0 {
		errs = append(errs, errors.New("settle delay cannot be negative"))
	}
	if c.Capture.Timeout <= 0 {
		errs = append(errs, errors.New("capture timeout must be positive"))
	}
	if c.Capture.ViewportWidth <= 0 || c.Capture.ViewportHeight <= 0 {
		errs = append(errs, errors.New("viewport dimensions must be positive"))
	}
	if c.Capture.PairsPerMinute < 0 {
		errs = append(errs, errors.New("pairs per minute cannot be negative"))
	}

	if c.Placeholder.Width <= 0 || c.Placeholder.Height <= 0 {
		errs = append(errs, errors.New("placeholder dimensions must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	return errors.Join(errs...)
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return errors.New("is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("host is missing")
	}
	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
// Keys match the long flag names of the run command.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if v, ok := flags["left"].(string); ok && v != "" {
		c.Environments.Left.BaseURL = v
	}
	if v, ok := flags["right"].(string); ok && v != "" {
		c.Environments.Right.BaseURL = v
	}
	if v, ok := flags["input"].(string); ok && v != "" {
		c.Files.Input = v
	}
	if v, ok := flags["record-log"].(string); ok && v != "" {
		c.Files.RecordLog = v
	}
	if v, ok := flags["output-dir"].(string); ok && v != "" {
		c.Files.OutputDir = v
	}
	if v, ok := flags["settle-delay"].(time.Duration); ok && v >= 0 {
		c.Capture.SettleDelay = v
	}
	if v, ok := flags["timeout"].(time.Duration); ok && v > 0 {
		c.Capture.Timeout = v
	}
	if v, ok := flags["pairs-per-minute"].(int); ok && v >= 0 {
		c.Capture.PairsPerMinute = v
	}
	if v, ok := flags["headless"].(bool); ok {
		c.Capture.Headless = v
	}
	if v, ok := flags["chrome-path"].(string); ok && v != "" {
		c.Capture.ChromePath = v
	}
	if v, ok := flags["log-level"].(string); ok && v != "" {
		c.Logging.Level = v
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Missing .env files are fine
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".shotpair.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
