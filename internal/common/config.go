package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Parser  ParserConfig  `toml:"parser"`
	Storage StorageConfig `toml:"storage"`
	Report  ReportConfig  `toml:"report"`
	Logging LoggingConfig `toml:"logging"`
}

// ParserConfig controls the build log parser
type ParserConfig struct {
	AnonymizeRoot   string `toml:"anonymize_root"`                                 // Directory rewritten to the placeholder (empty = off)
	Placeholder     string `toml:"placeholder" validate:"required"`                // Replacement for the anonymize root
	SuffixCacheSize int    `toml:"suffix_cache_size" validate:"gte=1,lte=1048576"` // Entries in the per-run leaf-source cache
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"` // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"`         // Delete database on startup for clean test runs
}

// ReportConfig selects how parse results are rendered
type ReportConfig struct {
	Format string `toml:"format" validate:"oneof=text markdown html yaml json"`
	Output string `toml:"output"` // File path; empty writes to stdout
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=debug info warn error"`
	Output []string `toml:"output" validate:"dive,oneof=stdout console file"` // "stdout", "file"
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			Placeholder:     "$(ROOT)",
			SuffixCacheSize: 4096,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Report: ReportConfig{
			Format: "text",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority: default -> file1 -> file2 -> ... -> .env -> env -> CLI
// Later files override earlier files. CLI overrides are applied separately via ApplyFlagOverrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	// .env is optional; variables already set in the process win
	_ = godotenv.Load()

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	// Parser configuration
	if root := os.Getenv("BUILDLOG_PARSER_ANONYMIZE_ROOT"); root != "" {
		config.Parser.AnonymizeRoot = root
	}
	if placeholder := os.Getenv("BUILDLOG_PARSER_PLACEHOLDER"); placeholder != "" {
		config.Parser.Placeholder = placeholder
	}
	if size := os.Getenv("BUILDLOG_PARSER_SUFFIX_CACHE_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil {
			config.Parser.SuffixCacheSize = n
		}
	}

	// Storage configuration
	if path := os.Getenv("BUILDLOG_STORAGE_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}
	if reset := os.Getenv("BUILDLOG_STORAGE_BADGER_RESET_ON_STARTUP"); reset != "" {
		if b, err := strconv.ParseBool(reset); err == nil {
			config.Storage.Badger.ResetOnStartup = b
		}
	}

	// Report configuration
	if format := os.Getenv("BUILDLOG_REPORT_FORMAT"); format != "" {
		config.Report.Format = format
	}
	if output := os.Getenv("BUILDLOG_REPORT_OUTPUT"); output != "" {
		config.Report.Output = output
	}

	// Logging configuration
	if level := os.Getenv("BUILDLOG_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("BUILDLOG_LOG_OUTPUT"); output != "" {
		config.Logging.Output = splitString(output, ",")
	}
}

// FlagOverrides carries command-line values; zero values leave config untouched
type FlagOverrides struct {
	AnonymizeRoot string
	Format        string
	Output        string
	DataPath      string
	LogLevel      string
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, flags FlagOverrides) {
	// Command-line flags have highest priority
	if flags.AnonymizeRoot != "" {
		config.Parser.AnonymizeRoot = flags.AnonymizeRoot
	}
	if flags.Format != "" {
		config.Report.Format = flags.Format
	}
	if flags.Output != "" {
		config.Report.Output = flags.Output
	}
	if flags.DataPath != "" {
		config.Storage.Badger.Path = flags.DataPath
	}
	if flags.LogLevel != "" {
		config.Logging.Level = flags.LogLevel
	}
}

// Validate checks the configuration using go-playground/validator.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func splitString(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
