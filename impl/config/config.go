// Package config holds the program configuration. Configuration values come
// from defaults, optionally a yaml config file, and the command line - with
// the command line taking precedence over the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ScanConfig configures the scan behavior shared by the list and verify
// sub-commands.
type ScanConfig struct {
	IncludeHidden bool `yaml:"includeHidden"`
	Verbose       bool `yaml:"verbose"`
	BlobPaths     bool `yaml:"blobPaths"`
	Plain         bool `yaml:"plain"`
}

// ServeConfig configures the serve sub-command.
type ServeConfig struct {
	Port        int64 `yaml:"port"`
	MetricsPort int64 `yaml:"metricsPort"`
}

// Configuration represents the totality of configuration knobs and dials for
// the scanner.
type Configuration struct {
	LogLevel   string      `yaml:"logLevel"`
	LogFile    string      `yaml:"logFile"`
	ConfigFile string      `yaml:"configFile"`
	ModelsDir  string      `yaml:"modelsDir"`
	ScanConfig ScanConfig  `yaml:"scan"`
	ServeCfg   ServeConfig `yaml:"serve"`
}

// FromCmdLine has a flag for every command-line option. The parsing code sets
// the flag to true if the option was explicitly provided on the command line
// by the user.
type FromCmdLine struct {
	Command    string
	LogLevel   bool
	LogFile    bool
	ConfigFile bool
	ModelsDir  bool
	ScanConfig bool
	ServeCfg   bool
}

var config Configuration

func GetLogLevel() string {
	return config.LogLevel
}

func GetLogFile() string {
	return config.LogFile
}

func GetConfigFile() string {
	return config.ConfigFile
}

func GetModelsDir() string {
	return config.ModelsDir
}

func SetModelsDir(newVal string) {
	config.ModelsDir = newVal
}

func GetScanConfig() ScanConfig {
	return config.ScanConfig
}

func GetServeConfig() ServeConfig {
	return config.ServeCfg
}

// Load loads the passed configuration file into the configuration struct
func Load(configFile string) error {
	if _, err := os.Stat(configFile); err != nil {
		return fmt.Errorf("unable to stat configuration file: %s", configFile)
	}
	if contents, err := os.ReadFile(configFile); err != nil {
		return fmt.Errorf("error reading configuration file: %s", configFile)
	} else if err := SetConfigFromStr(contents); err != nil {
		return fmt.Errorf("error parsing configuration file: %s, the error was: %s", configFile, err)
	}
	return nil
}

// Merge takes a struct indicating which configuration options have been
// provided on the command line, as well as a configuration struct parsed from
// the command line which ALSO includes defaults that the user didn't specify.
// So:
//
//  1. User provided a value: overwrite current config using the user's value
//  2. User did not provide a value, current config is unspecified: use the
//     default in the parsed config
//  3. User did not provide a value, current config is specified: leave the
//     current config untouched
func Merge(fromCmdline FromCmdLine, cfg Configuration) {
	if fromCmdline.LogLevel || config.LogLevel == "" {
		config.LogLevel = cfg.LogLevel
	}
	if fromCmdline.LogFile || config.LogFile == "" {
		config.LogFile = cfg.LogFile
	}
	if fromCmdline.ConfigFile || config.ConfigFile == "" {
		config.ConfigFile = cfg.ConfigFile
	}
	if fromCmdline.ModelsDir || config.ModelsDir == "" {
		config.ModelsDir = cfg.ModelsDir
	}
	if fromCmdline.ScanConfig || config.ScanConfig == (ScanConfig{}) {
		config.ScanConfig = cfg.ScanConfig
	}
	if fromCmdline.ServeCfg || config.ServeCfg == (ServeConfig{}) {
		config.ServeCfg = cfg.ServeCfg
	}
}

// Get gets the current configuration
func Get() Configuration {
	return config
}

// Set replaces the configuration with the passed configuration
func Set(cfg Configuration) {
	config = cfg
}

// SetConfigFromStr parses the yaml input and sets the configuration from it
func SetConfigFromStr(configBytes []byte) error {
	var cfg Configuration
	if err := yaml.Unmarshal(configBytes, &cfg); err != nil {
		return err
	}
	config = cfg
	return nil
}

// ResolveModelsDir picks the effective models directory: the passed override
// if non-empty, else the OLLAMA_MODELS environment variable if non-empty, else
// '<home>/.ollama/models'. No filesystem check is performed here - a missing
// directory surfaces when the scan tries to open it.
func ResolveModelsDir(override string) string {
	if override != "" {
		return override
	}
	if fromEnv := os.Getenv("OLLAMA_MODELS"); fromEnv != "" {
		return fromEnv
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".ollama", "models")
}
