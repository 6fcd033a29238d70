package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/elijahr/lk/internal/logger"
)

// Config represents lk configuration options
type Config struct {
	// Workers is the maximum number of directories searched at once
	Workers int `yaml:"workers"`

	// FollowLinks descends into symlinked directories
	FollowLinks bool `yaml:"follow_links"`

	// Hidden searches dot-prefixed files and directories
	Hidden bool `yaml:"hidden"`

	// Binary searches files that contain NUL bytes
	Binary bool `yaml:"binary"`

	// Color is one of auto, always, never
	Color string `yaml:"color"`

	// Stats prints a summary line after the results
	Stats bool `yaml:"stats"`

	// Exclude lists patterns matched against each path component
	Exclude []string `yaml:"exclude"`

	// OpenWith lists command templates run on the first matched file of each directory
	OpenWith []string `yaml:"open_with"`

	// Pattern options
	IgnoreCase bool `yaml:"ignore_case"`
	Unicode    bool `yaml:"unicode"`
	Multiline  bool `yaml:"multiline"`
	DotAll     bool `yaml:"dot_all"`

	// JoinOrder is fifo (results in start order) or completion
	JoinOrder string `yaml:"join_order"`

	// MatchTimeout bounds a single regex evaluation (0 = no limit)
	MatchTimeout time.Duration `yaml:"match_timeout"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables a run log in this directory when non-empty
	LogDir string `yaml:"log_dir"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Workers:   10,
		Color:     "auto",
		JoinOrder: "fifo",
		LogLevel:  "warn",
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointer fields tell an explicit false or 0 apart from an absent key
	type yamlConfig struct {
		Workers      *int     `yaml:"workers"`
		FollowLinks  *bool    `yaml:"follow_links"`
		Hidden       *bool    `yaml:"hidden"`
		Binary       *bool    `yaml:"binary"`
		Color        *string  `yaml:"color"`
		Stats        *bool    `yaml:"stats"`
		Exclude      []string `yaml:"exclude"`
		OpenWith     []string `yaml:"open_with"`
		IgnoreCase   *bool    `yaml:"ignore_case"`
		Unicode      *bool    `yaml:"unicode"`
		Multiline    *bool    `yaml:"multiline"`
		DotAll       *bool    `yaml:"dot_all"`
		JoinOrder    *string  `yaml:"join_order"`
		MatchTimeout string   `yaml:"match_timeout"`
		LogLevel     *string  `yaml:"log_level"`
		LogDir       *string  `yaml:"log_dir"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	setInt(&cfg.Workers, yamlCfg.Workers)
	setBool(&cfg.FollowLinks, yamlCfg.FollowLinks)
	setBool(&cfg.Hidden, yamlCfg.Hidden)
	setBool(&cfg.Binary, yamlCfg.Binary)
	setString(&cfg.Color, yamlCfg.Color)
	setBool(&cfg.Stats, yamlCfg.Stats)
	setBool(&cfg.IgnoreCase, yamlCfg.IgnoreCase)
	setBool(&cfg.Unicode, yamlCfg.Unicode)
	setBool(&cfg.Multiline, yamlCfg.Multiline)
	setBool(&cfg.DotAll, yamlCfg.DotAll)
	setString(&cfg.JoinOrder, yamlCfg.JoinOrder)
	setString(&cfg.LogLevel, yamlCfg.LogLevel)
	setString(&cfg.LogDir, yamlCfg.LogDir)
	cfg.Exclude = yamlCfg.Exclude
	cfg.OpenWith = yamlCfg.OpenWith

	if yamlCfg.MatchTimeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.MatchTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid match_timeout format %q: %w", yamlCfg.MatchTimeout, err)
		}
		cfg.MatchTimeout = timeout
	}

	return cfg, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// FlagOverrides holds command-line values. Nil fields were not given on the
// command line and leave the configuration untouched.
type FlagOverrides struct {
	Workers      *int
	FollowLinks  *bool
	Hidden       *bool
	Binary       *bool
	Color        *string
	Stats        *bool
	Exclude      []string
	OpenWith     []string
	IgnoreCase   *bool
	Unicode      *bool
	Multiline    *bool
	DotAll       *bool
	JoinOrder    *string
	MatchTimeout *time.Duration
	LogLevel     *string
	LogDir       *string
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values. Command-line excludes
// are added to the configured ones; command-line open-with templates
// replace them.
func (c *Config) MergeWithFlags(f FlagOverrides) {
	setInt(&c.Workers, f.Workers)
	setBool(&c.FollowLinks, f.FollowLinks)
	setBool(&c.Hidden, f.Hidden)
	setBool(&c.Binary, f.Binary)
	setString(&c.Color, f.Color)
	setBool(&c.Stats, f.Stats)
	setBool(&c.IgnoreCase, f.IgnoreCase)
	setBool(&c.Unicode, f.Unicode)
	setBool(&c.Multiline, f.Multiline)
	setBool(&c.DotAll, f.DotAll)
	setString(&c.JoinOrder, f.JoinOrder)
	setString(&c.LogLevel, f.LogLevel)
	setString(&c.LogDir, f.LogDir)

	if f.MatchTimeout != nil {
		c.MatchTimeout = *f.MatchTimeout
	}
	if len(f.Exclude) > 0 {
		c.Exclude = append(slices.Clone(c.Exclude), f.Exclude...)
	}
	if len(f.OpenWith) > 0 {
		c.OpenWith = slices.Clone(f.OpenWith)
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}

	validColors := map[string]bool{"auto": true, "always": true, "never": true}
	if !validColors[strings.ToLower(c.Color)] {
		return fmt.Errorf("invalid color %q, must be one of: auto, always, never", c.Color)
	}

	validJoinOrders := map[string]bool{"fifo": true, "completion": true}
	if !validJoinOrders[c.JoinOrder] {
		return fmt.Errorf("invalid join_order %q, must be one of: fifo, completion", c.JoinOrder)
	}

	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: %s", c.LogLevel, strings.Join(logger.Levels, ", "))
	}

	if c.MatchTimeout < 0 {
		return fmt.Errorf("match_timeout must be >= 0, got %v", c.MatchTimeout)
	}

	for _, tmpl := range c.OpenWith {
		if strings.TrimSpace(tmpl) == "" {
			return fmt.Errorf("open_with templates cannot be empty")
		}
	}

	return nil
}
