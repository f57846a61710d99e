/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Command-line interface for columnscout. Profiles delimited or line
oriented files column by column and lists the built-in semantic types and locales.
*/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/columnscout/cmd/columnscout/commands"
	"github.com/kleascm/columnscout/pkg/analyzer"
	"github.com/kleascm/columnscout/pkg/plugins"
)

var (
	// Configuration
	configFile  string
	logLevel    string
	logFormat   string
	logDir      string
	logMaxFiles int
	noColor     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "columnscout",
		Short: "columnscout - incremental column type and pattern inference",
		Long: `columnscout reads the values of each column of a file and infers, with no
declared schema, the base type, a regular expression covering every value, locale
specific number and date conventions, value statistics and semantic types.`,
		Version: commands.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return commands.LoadConfig()
		},
		SilenceUsage: true,
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Log output directory (empty logs to stderr only)")
	rootCmd.PersistentFlags().IntVar(&logMaxFiles, "log-max-files", 10, "Maximum number of log files to keep")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored log output")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log.output_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log.max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("log.no_color", rootCmd.PersistentFlags().Lookup("no-color"))

	// Add profile command
	profileCmd := &cobra.Command{
		Use:   "profile <file>",
		Short: "Profile every column of a file",
		Long: `Profile the columns of a delimited file, or of a line oriented file with --lines.
Each column is analyzed concurrently. Use - to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: commands.RunProfile,
	}

	defaults := analyzer.DefaultConfig()
	profileCmd.Flags().StringSlice("column", []string{}, "Columns to profile (default all)")
	profileCmd.Flags().String("delimiter", ",", "Field delimiter (a single character, or tab)")
	profileCmd.Flags().Bool("no-header", false, "Input has no header row")
	profileCmd.Flags().Bool("lines", false, "Treat each line as one value of a single column")
	profileCmd.Flags().StringSlice("null", []string{}, "Values to treat as null (e.g. NULL,\\N)")

	profileCmd.Flags().String("locale", defaults.Locale, "Locale for number and date conventions (BCP 47)")
	profileCmd.Flags().Int("detect-window", defaults.DetectWindow, "Samples buffered before the type is locked")
	profileCmd.Flags().Int("max-cardinality", defaults.MaxCardinality, "Distinct values tracked per column")
	profileCmd.Flags().Int("max-outliers", defaults.MaxOutliers, "Distinct outliers tracked per column")
	profileCmd.Flags().Int("max-input-length", defaults.MaxInputLength, "Longest value tokenized for patterns")
	profileCmd.Flags().Int("plugin-threshold", defaults.PluginThreshold, "Default semantic type match percentage")
	profileCmd.Flags().String("resolution", "auto", "Ambiguous date resolution (auto, dayfirst, monthfirst)")
	profileCmd.Flags().Bool("no-semantic", false, "Disable semantic type detection")
	profileCmd.Flags().Bool("no-stats", false, "Disable moments and top/bottom-K statistics")
	profileCmd.Flags().String("plugins", "", "YAML catalogue of additional semantic types")

	profileCmd.Flags().String("output", "text", "Output format (text, json, html)")
	profileCmd.Flags().String("output-dir", "", "Directory for timestamped results and the HTML dashboard")
	profileCmd.Flags().String("metrics-file", "", "Write Prometheus counters to this file")

	viper.BindPFlag("profile.columns", profileCmd.Flags().Lookup("column"))
	viper.BindPFlag("profile.delimiter", profileCmd.Flags().Lookup("delimiter"))
	viper.BindPFlag("profile.no_header", profileCmd.Flags().Lookup("no-header"))
	viper.BindPFlag("profile.lines", profileCmd.Flags().Lookup("lines"))
	viper.BindPFlag("profile.null_values", profileCmd.Flags().Lookup("null"))
	viper.BindPFlag("analyzer.locale", profileCmd.Flags().Lookup("locale"))
	viper.BindPFlag("analyzer.detect_window", profileCmd.Flags().Lookup("detect-window"))
	viper.BindPFlag("analyzer.max_cardinality", profileCmd.Flags().Lookup("max-cardinality"))
	viper.BindPFlag("analyzer.max_outliers", profileCmd.Flags().Lookup("max-outliers"))
	viper.BindPFlag("analyzer.max_input_length", profileCmd.Flags().Lookup("max-input-length"))
	viper.BindPFlag("analyzer.plugin_threshold", profileCmd.Flags().Lookup("plugin-threshold"))
	viper.BindPFlag("analyzer.resolution", profileCmd.Flags().Lookup("resolution"))
	viper.BindPFlag("analyzer.no_semantic", profileCmd.Flags().Lookup("no-semantic"))
	viper.BindPFlag("analyzer.no_stats", profileCmd.Flags().Lookup("no-stats"))
	viper.BindPFlag("plugins", profileCmd.Flags().Lookup("plugins"))
	viper.BindPFlag("output.format", profileCmd.Flags().Lookup("output"))
	viper.BindPFlag("output.dir", profileCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("output.metrics_file", profileCmd.Flags().Lookup("metrics-file"))

	rootCmd.AddCommand(profileCmd)

	// Add plugins command
	pluginsCmd := &cobra.Command{
		Use:   "plugins",
		Short: "List the semantic types available for detection",
		RunE:  commands.RunPlugins,
	}
	pluginsCmd.Flags().String("plugins", "", "YAML catalogue of additional semantic types")
	pluginsCmd.Flags().Int("plugin-threshold", plugins.DefaultThreshold, "Default semantic type match percentage")
	rootCmd.AddCommand(pluginsCmd)

	// Add locales command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "locales",
		Short: "List the locales with number and date conventions",
		RunE:  commands.RunLocales,
	})

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
