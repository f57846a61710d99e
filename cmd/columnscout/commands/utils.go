/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the columnscout commands. Provides configuration
loading, logging setup and the translation of settings into analyzer and profile options.
*/

package commands

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"

	"github.com/kleascm/columnscout/pkg/analyzer"
	"github.com/kleascm/columnscout/pkg/datetime"
	"github.com/kleascm/columnscout/pkg/logging"
	"github.com/kleascm/columnscout/pkg/plugins"
	"github.com/kleascm/columnscout/pkg/profile"
)

// Version is reported by --version and stamped on results
const Version = "1.0.0"

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	// Set environment variable prefix
	viper.SetEnvPrefix("COLUMNSCOUT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Set config file if specified
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

// SetupLogging builds the logger from the log.* settings
func SetupLogging() (*logging.Logger, error) {
	config := &logging.LoggerConfig{
		Level:     logging.LogLevel(viper.GetString("log.level")),
		Format:    logging.LogFormat(viper.GetString("log.format")),
		OutputDir: viper.GetString("log.output_dir"),
		MaxFiles:  viper.GetInt("log.max_files"),
		Timestamp: true,
		Colors:    !viper.GetBool("log.no_color"),
	}
	if config.Level == "" {
		config.Level = logging.LogLevelInfo
	}
	if config.Format == "" {
		config.Format = logging.LogFormatCustom
	}
	if config.MaxFiles == 0 {
		config.MaxFiles = 10
	}
	return logging.NewLogger(config, os.Stderr)
}

// AnalyzerConfig builds the analyzer configuration from the analyzer.* settings
func AnalyzerConfig() (*analyzer.Config, error) {
	cfg := analyzer.DefaultConfig()
	if viper.IsSet("analyzer.locale") {
		cfg.Locale = viper.GetString("analyzer.locale")
	}
	for key, field := range map[string]*int{
		"analyzer.detect_window":    &cfg.DetectWindow,
		"analyzer.max_cardinality":  &cfg.MaxCardinality,
		"analyzer.max_outliers":     &cfg.MaxOutliers,
		"analyzer.max_input_length": &cfg.MaxInputLength,
		"analyzer.plugin_threshold": &cfg.PluginThreshold,
	} {
		if viper.IsSet(key) {
			*field = viper.GetInt(key)
		}
	}
	resolution, err := datetime.ParseResolution(viper.GetString("analyzer.resolution"))
	if err != nil {
		return nil, err
	}
	cfg.Resolution = resolution
	cfg.SemanticTypes = !viper.GetBool("analyzer.no_semantic")
	cfg.CollectStatistics = !viper.GetBool("analyzer.no_stats")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProfileOptions builds the profile input options from the profile.* settings
func ProfileOptions() (profile.Options, error) {
	opts := profile.DefaultOptions()
	delimiter, err := parseDelimiter(viper.GetString("profile.delimiter"))
	if err != nil {
		return opts, err
	}
	opts.Delimiter = delimiter
	opts.Header = !viper.GetBool("profile.no_header")
	opts.Lines = viper.GetBool("profile.lines")
	opts.Columns = viper.GetStringSlice("profile.columns")
	opts.NullValues = viper.GetStringSlice("profile.null_values")
	return opts, nil
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return ',', nil
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError || r == '"' || r == '\n' || r == '\r' {
		return 0, fmt.Errorf("invalid delimiter: %q", s)
	}
	return r, nil
}

// LoadRegistry returns the built-in semantic types plus those of an optional catalogue
func LoadRegistry(path string) (*plugins.Registry, error) {
	if path == "" {
		return plugins.Default()
	}
	registry, err := plugins.NewBuiltin()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plugin catalogue: %w", err)
	}
	defer f.Close()
	if err := registry.LoadCatalogue(f); err != nil {
		return nil, fmt.Errorf("failed to load plugin catalogue %s: %w", path, err)
	}
	return registry, nil
}
