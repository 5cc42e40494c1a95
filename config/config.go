//file: config/config.go

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppName is the namespace used for the preference store and env overrides.
const AppName = "create-next-app"

// EnvPrefix is the prefix for environment overrides (CREATE_NEXT_APP_LOGGING_LEVEL, ...).
const EnvPrefix = "CREATE_NEXT_APP"

type Config struct {
	Logging     LogConfig         `mapstructure:"logging" yaml:"logging"`
	Preferences PreferencesConfig `mapstructure:"preferences" yaml:"preferences"`
	Examples    ExamplesConfig    `mapstructure:"examples" yaml:"examples"`
	CI          CIConfig          `mapstructure:"ci" yaml:"ci"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`           // debug, info, warn, error
	OutputPath string `mapstructure:"outputPath" yaml:"outputPath"` // file path, "stdout" or "stderr"
	Encoding   string `mapstructure:"encoding" yaml:"encoding"`     // json or console
}

// PreferencesConfig locates the persisted preference record.
type PreferencesConfig struct {
	Path      string `mapstructure:"path" yaml:"path"`
	Namespace string `mapstructure:"namespace" yaml:"namespace"`
}

// ExamplesConfig describes where named examples are fetched from.
type ExamplesConfig struct {
	Repository string        `mapstructure:"repository" yaml:"repository"`
	Branch     string        `mapstructure:"branch" yaml:"branch"`
	Dir        string        `mapstructure:"dir" yaml:"dir"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// CIConfig controls detection of noninteractive environments.
type CIConfig struct {
	// Force treats every run as a CI run regardless of the environment.
	Force bool `mapstructure:"force" yaml:"force"`
	// Vars are the environment variables whose presence indicates CI.
	Vars []string `mapstructure:"vars" yaml:"vars"`
}

// DefaultCIVars lists the indicators recognised by common CI providers.
var DefaultCIVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"BUILD_NUMBER",
	"RUN_ID",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"BUILDKITE",
	"CIRCLECI",
	"TRAVIS",
	"JENKINS_URL",
	"TEAMCITY_VERSION",
	"TF_BUILD",
	"CODEBUILD_BUILD_ID",
}

// Load reads the configuration from an optional file and the environment.
// An empty path means defaults plus environment overrides only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// defaults always validate
		panic(err)
	}
	return cfg
}

// setDefaults registers default values so env overrides resolve for every key
func setDefaults(v *viper.Viper) {
	// Logging defaults: the CLI talks to humans, keep the structured log quiet
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.outputPath", "stderr")
	v.SetDefault("logging.encoding", "console")

	// Preference store defaults
	v.SetDefault("preferences.path", defaultPreferencesPath())
	v.SetDefault("preferences.namespace", "preferences")

	// Example defaults
	v.SetDefault("examples.repository", "https://github.com/vercel/next.js")
	v.SetDefault("examples.branch", "canary")
	v.SetDefault("examples.dir", "examples")
	v.SetDefault("examples.timeout", 5*time.Minute)

	// CI defaults
	v.SetDefault("ci.force", false)
	v.SetDefault("ci.vars", DefaultCIVars)
}

func defaultPreferencesPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return filepath.Join(os.TempDir(), AppName, "config.json")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppName, "config.json")
}

// validateConfig performs validation of all configuration values
func validateConfig(cfg *Config) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", cfg.Logging.Level)
	}

	switch cfg.Logging.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log encoding: %s", cfg.Logging.Encoding)
	}

	if cfg.Logging.OutputPath == "" {
		return fmt.Errorf("log output path cannot be empty")
	}

	if cfg.Preferences.Path == "" {
		return fmt.Errorf("preferences path cannot be empty")
	}
	if cfg.Preferences.Namespace == "" {
		return fmt.Errorf("preferences namespace cannot be empty")
	}

	if cfg.Examples.Repository == "" {
		return fmt.Errorf("examples repository cannot be empty")
	}
	if cfg.Examples.Branch == "" {
		return fmt.Errorf("examples branch cannot be empty")
	}
	if cfg.Examples.Timeout <= 0 {
		return fmt.Errorf("examples timeout must be greater than 0")
	}

	return nil
}

// ApplyOverrides applies command line flag overrides to the configuration
func (c *Config) ApplyOverrides(logLevel, preferencesPath string) error {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if preferencesPath != "" {
		c.Preferences.Path = preferencesPath
	}
	return validateConfig(c)
}

// IsCI reports whether the run should be treated as noninteractive.
// A variable set to "false" or "0" does not count as a CI indicator.
func (c *CIConfig) IsCI(getenv func(string) string) bool {
	if c.Force {
		return true
	}
	for _, name := range c.Vars {
		val := strings.TrimSpace(getenv(name))
		if val == "" {
			continue
		}
		switch strings.ToLower(val) {
		case "false", "0":
			continue
		}
		return true
	}
	return false
}
