package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by LoadEnv.
const EnvPrefix = "LANGPARSE_"

// ServerConfig holds configuration for the langparse server.
type ServerConfig struct {
	Addr             string        `yaml:"addr"`              // Listen address (default ":8080")
	LogLevel         string        `yaml:"log_level"`         // Log level: debug, info, warn, error
	LogFormat        string        `yaml:"log_format"`        // Log format: text, json
	DBPath           string        `yaml:"db_path"`           // SQLite database path (default ~/.langparse/langparse.db, ":memory:" for testing)
	WorkDir          string        `yaml:"work_dir"`          // Parent of clone and evaluator dirs (default system temp)
	NextflowCommand  []string      `yaml:"nextflow_command"`  // Evaluator argv
	WomtoolCommand   []string      `yaml:"womtool_command"`   // WDL toolkit argv
	EvaluatorTimeout time.Duration `yaml:"evaluator_timeout"` // Per-run evaluator limit
	WomtoolTimeout   time.Duration `yaml:"womtool_timeout"`   // Per-run womtool limit
	CloneTimeout     time.Duration `yaml:"clone_timeout"`     // Repository fetch limit
	CacheSize        int           `yaml:"cache_size"`        // Evaluated configs kept in memory; 0 disables
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:             ":8080",
		LogLevel:         "info",
		LogFormat:        "text",
		NextflowCommand:  []string{"nextflow", "config", "-properties"},
		WomtoolCommand:   []string{"womtool"},
		EvaluatorTimeout: 30 * time.Second,
		WomtoolTimeout:   60 * time.Second,
		CloneTimeout:     2 * time.Minute,
		CacheSize:        128,
	}
}

// Load builds a config from defaults, then the YAML file at path (skipped
// when path is empty), then envFile and the process environment. Variables
// already set in the environment win over envFile. A missing envFile is not
// an error.
func Load(path, envFile string) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return cfg, err
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	if err := cfg.LoadEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadFile overlays the YAML document at path. Keys absent from the file keep
// their current values.
func (c *ServerConfig) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// LoadEnv overlays LANGPARSE_* variables obtained through lookup. Commands
// are split on whitespace; durations use time.ParseDuration syntax.
func (c *ServerConfig) LoadEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	strs := map[string]*string{
		"ADDR":       &c.Addr,
		"LOG_LEVEL":  &c.LogLevel,
		"LOG_FORMAT": &c.LogFormat,
		"DB_PATH":    &c.DBPath,
		"WORK_DIR":   &c.WorkDir,
	}
	for name, dst := range strs {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	cmds := map[string]*[]string{
		"NEXTFLOW_COMMAND": &c.NextflowCommand,
		"WOMTOOL_COMMAND":  &c.WomtoolCommand,
	}
	for name, dst := range cmds {
		if v, ok := get(name); ok {
			*dst = strings.Fields(v)
		}
	}

	durs := map[string]*time.Duration{
		"EVALUATOR_TIMEOUT": &c.EvaluatorTimeout,
		"WOMTOOL_TIMEOUT":   &c.WomtoolTimeout,
		"CLONE_TIMEOUT":     &c.CloneTimeout,
	}
	for name, dst := range durs {
		if v, ok := get(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = d
		}
	}

	if v, ok := get("CACHE_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sCACHE_SIZE: %w", EnvPrefix, err)
		}
		c.CacheSize = n
	}
	return nil
}

// Validate rejects values the server cannot start with.
func (c *ServerConfig) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format %q: want text or json", c.LogFormat))
	}
	if len(c.NextflowCommand) == 0 {
		errs = append(errs, errors.New("nextflow_command is required"))
	}
	if len(c.WomtoolCommand) == 0 {
		errs = append(errs, errors.New("womtool_command is required"))
	}
	if c.EvaluatorTimeout <= 0 {
		errs = append(errs, errors.New("evaluator_timeout must be positive"))
	}
	if c.WomtoolTimeout <= 0 {
		errs = append(errs, errors.New("womtool_timeout must be positive"))
	}
	if c.CloneTimeout < 0 {
		errs = append(errs, errors.New("clone_timeout must not be negative"))
	}
	if c.CacheSize < 0 {
		errs = append(errs, errors.New("cache_size must not be negative"))
	}
	return errors.Join(errs...)
}
