package sql2shacl

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/sql2shacl/sql2shacl/iri"
	"github.com/sql2shacl/sql2shacl/shacl"
)

// DefaultConfigFile is the configuration file looked up in the working directory.
const DefaultConfigFile = "sql2shacl.yaml"

// Config is the content of sql2shacl.yaml.
type Config struct {
	BaseIRI  string `yaml:"base_iri"`
	Mode     string `yaml:"mode"`
	Format   string `yaml:"format"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Return default configuration if file doesn't exist
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict mode to detect unknown fields
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandConfigEnvVars(&config)
	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

func applyDefaults(config *Config) {
	if config.BaseIRI == "" {
		config.BaseIRI = iri.DefaultBase
	}
	if config.Mode == "" {
		config.Mode = string(iri.ModeW3C)
	}
	if config.Format == "" {
		config.Format = string(shacl.FormatTurtle)
	}
	if config.LogLevel == "" {
		config.LogLevel = "warn"
	}
}

// Validate checks the configuration again, for example after command-line
// flags have overridden values read from the file.
func (c *Config) Validate() error {
	return validateConfig(c)
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	if _, err := iri.ParseMode(config.Mode); err != nil {
		return fmt.Errorf("%w: mode: %w", ErrConfigValidation, err)
	}

	if _, err := shacl.ParseFormat(config.Format); err != nil {
		return fmt.Errorf("%w: format: %w", ErrConfigValidation, err)
	}

	if _, err := ParseLogLevel(config.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrConfigValidation, err)
	}

	if !strings.HasSuffix(config.BaseIRI, "/") && !strings.HasSuffix(config.BaseIRI, "#") {
		return fmt.Errorf("%w: base_iri '%s' must end with '/' or '#'", ErrConfigValidation, config.BaseIRI)
	}

	return nil
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

func expandConfigEnvVars(config *Config) {
	config.BaseIRI = expandEnvVars(config.BaseIRI)
	config.Mode = expandEnvVars(config.Mode)
	config.Format = expandEnvVars(config.Format)
	config.LogLevel = expandEnvVars(config.LogLevel)
	config.LogFile = expandEnvVars(config.LogFile)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
