// Config loading for the addressbook CLI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend   = "backend"
	cfgKeyDataDir   = "data_dir"
	cfgKeyLogLevel  = "log_level"
	cfgKeyLogFormat = "log_format"
	cfgKeyLogFile   = "log_file"

	defaultBackend = "sqlite"
)

// logEnv lets the logging keys be overridden per invocation.
var logEnv = map[string]string{
	cfgKeyLogLevel:  "ADDRESSBOOK_LOG_LEVEL",
	cfgKeyLogFormat: "ADDRESSBOOK_LOG_FORMAT",
	cfgKeyLogFile:   "ADDRESSBOOK_LOG_FILE",
}

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Addressbook configuration

# Storage backend
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Logging: debug, info, warn or error; text or json; a file path or - for stderr
# log_level: warn
# log_format: text
# log_file: -
`

// loadConfig reads config.yaml from the resolved config directory using Viper.
// When writeDefault is set it creates the config directory and a default
// config.yaml on first run. A missing config.yaml is not an error.
func loadConfig(configDir string, writeDefault bool) (*viper.Viper, error) {
	if writeDefault {
		if err := ensureConfigDir(configDir); err != nil {
			return nil, fmt.Errorf("ensure config dir: %w", err)
		}
		if err := ensureDefaultConfigFile(configDir); err != nil {
			return nil, fmt.Errorf("ensure default config: %w", err)
		}
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	for key, env := range logEnv {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
