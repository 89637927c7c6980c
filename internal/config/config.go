package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix for environment overrides, e.g. AIP_SOURCE_BASE_URL.
const EnvPrefix = "AIP"

// Manager loads configuration from defaults, a config file and the environment.
type Manager struct {
	v      *viper.Viper
	config *Config
	file   string
}

// NewManager creates a new config manager and loads the config.
// If cfgFile is empty, config.yaml is searched in the working directory and
// then in each of searchDirs. A missing config file is not an error.
func NewManager(cfgFile string, searchDirs ...string) (*Manager, error) {
	cm := &Manager{v: viper.New()}

	if err := cm.initViper(cfgFile, searchDirs); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile string, searchDirs []string) error {
	v := cm.v

	// Leaf defaults so partial config files and env vars merge with them
	defaults := DefaultConfig()
	v.SetDefault("source.base_url", defaults.Source.BaseURL)
	v.SetDefault("source.menu_path", defaults.Source.MenuPath)
	v.SetDefault("source.document_dir", defaults.Source.DocumentDir)
	v.SetDefault("menu.aerodromes_title", defaults.Menu.AerodromesTitle)
	v.SetDefault("menu.open_marker", defaults.Menu.OpenMarker)
	v.SetDefault("menu.close_marker", defaults.Menu.CloseMarker)
	v.SetDefault("menu.section_begin", defaults.Menu.SectionBegin)
	v.SetDefault("menu.section_end", defaults.Menu.SectionEnd)
	v.SetDefault("menu.link", defaults.Menu.Link)
	v.SetDefault("transport.timeout_seconds", defaults.Transport.TimeoutSeconds)
	v.SetDefault("transport.max_attempts", defaults.Transport.MaxAttempts)
	v.SetDefault("transport.retry_delay_ms", defaults.Transport.RetryDelayMS)
	v.SetDefault("transport.user_agent", defaults.Transport.UserAgent)

	// Environment variables with AIP_ prefix
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		for _, dir := range searchDirs {
			v.AddConfigPath(dir)
		}
	}

	// Try to read config file (not required)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	cm.file = v.ConfigFileUsed()

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := cm.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the loaded configuration.
func (cm *Manager) Get() *Config {
	return cm.config
}

// FileUsed returns the config file that was read, or "" if none was found.
func (cm *Manager) FileUsed() string {
	return cm.file
}

// ResolveEnvVars expands ${ENV_VAR} references in a string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	pattern := regexp.MustCompile(`\$\{([^}]+)\}`)
	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// WriteDefault writes the default configuration to the specified path.
// An existing file is never overwritten.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# aip configuration
# Every key can be overridden from the environment, e.g. AIP_SOURCE_BASE_URL.
# transport.user_agent supports ${ENV_VAR} references.

`)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	if _, err := f.Write(append(header, data...)); err != nil {
		f.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return f.Close()
}
