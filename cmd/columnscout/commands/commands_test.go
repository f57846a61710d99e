/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: commands_test.go
Description: Tests for the command implementations and their settings translation.
*/

package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/columnscout/pkg/analyzer"
	"github.com/kleascm/columnscout/pkg/datetime"
)

func newCommand(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.Flags().String("plugins", "", "")
	cmd.Flags().Int("plugin-threshold", 0, "")
	return cmd
}

func writeCSV(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("code;amount\n")
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, "A%02d;%d,%d\n", i, i+1, i%10)
	}
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

// TestAnalyzerConfig tests translation of settings into an analyzer configuration
func TestAnalyzerConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg, err := AnalyzerConfig()
	require.NoError(t, err)
	assert.Equal(t, analyzer.DefaultConfig(), cfg)

	viper.Set("analyzer.locale", "de-DE")
	viper.Set("analyzer.detect_window", 50)
	viper.Set("analyzer.resolution", "dayfirst")
	viper.Set("analyzer.no_semantic", true)
	viper.Set("analyzer.no_stats", true)
	cfg, err = AnalyzerConfig()
	require.NoError(t, err)
	assert.Equal(t, "de-DE", cfg.Locale)
	assert.Equal(t, 50, cfg.DetectWindow)
	assert.Equal(t, datetime.DayFirst, cfg.Resolution)
	assert.False(t, cfg.SemanticTypes)
	assert.False(t, cfg.CollectStatistics)

	viper.Set("analyzer.detect_window", 5)
	_, err = AnalyzerConfig()
	assert.ErrorIs(t, err, analyzer.ErrInvalidArgument)

	viper.Set("analyzer.detect_window", 20)
	viper.Set("analyzer.resolution", "sideways")
	_, err = AnalyzerConfig()
	assert.Error(t, err)
}

// TestParseDelimiter tests delimiter names
func TestParseDelimiter(t *testing.T) {
	for in, want := range map[string]rune{"": ',', ";": ';', "tab": '\t', `\t`: '\t', "|": '|'} {
		got, err := parseDelimiter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{";;", `"`, "\n"} {
		_, err := parseDelimiter(in)
		assert.Error(t, err, in)
	}
}

// TestRunProfile tests a profile run with saved results and metrics
func TestRunProfile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	dir := t.TempDir()
	metricsFile := filepath.Join(dir, "columnscout.prom")

	viper.Set("log.level", "error")
	viper.Set("log.no_color", true)
	viper.Set("profile.delimiter", ";")
	viper.Set("analyzer.locale", "de-DE")
	viper.Set("output.format", "json")
	viper.Set("output.dir", dir)
	viper.Set("output.metrics_file", metricsFile)

	var out bytes.Buffer
	require.NoError(t, RunProfile(newCommand(&out), []string{writeCSV(t)}))

	var decoded struct {
		Rows    int64 `json:"rows"`
		Columns []struct {
			Name             string `json:"name"`
			BaseType         string `json:"base_type"`
			DecimalSeparator string `json:"decimal_separator"`
		} `json:"columns"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, int64(30), decoded.Rows)
	require.Len(t, decoded.Columns, 2)
	assert.Equal(t, "String", decoded.Columns[0].BaseType)
	assert.Equal(t, "Double", decoded.Columns[1].BaseType)
	assert.Equal(t, ",", decoded.Columns[1].DecimalSeparator)

	saved, err := filepath.Glob(filepath.Join(dir, "profile", "*_profile_v"+Version+".json"))
	require.NoError(t, err)
	assert.Len(t, saved, 1)
	assert.FileExists(t, filepath.Join(dir, "dashboard", "index.html"))

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `columnscout_samples_total{column="amount"} 30`)
}

// TestRunProfileStdin tests reading standard input
func TestRunProfileStdin(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set("log.level", "error")
	viper.Set("profile.lines", true)
	viper.Set("profile.no_header", true)

	var in strings.Builder
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&in, "%d\n", 100+i)
	}
	var out bytes.Buffer
	cmd := newCommand(&out)
	cmd.SetIn(strings.NewReader(in.String()))

	require.NoError(t, RunProfile(cmd, []string{"-"}))
	assert.Contains(t, out.String(), "Source: stdin  Rows: 25")
	assert.Contains(t, out.String(), `\d{3}`)
}

// TestRunProfileErrors tests rejected settings and inputs
func TestRunProfileErrors(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set("log.level", "error")

	var out bytes.Buffer
	viper.Set("output.format", "xml")
	assert.Error(t, RunProfile(newCommand(&out), []string{writeCSV(t)}))

	viper.Set("output.format", "text")
	assert.Error(t, RunProfile(newCommand(&out), []string{"missing.csv"}))

	viper.Set("analyzer.locale", "sw-KE")
	assert.Error(t, RunProfile(newCommand(&out), []string{writeCSV(t)}))
}

// TestRunPlugins tests the semantic type listing
func TestRunPlugins(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RunPlugins(newCommand(&out), nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "QUALIFIER"))
	assert.Contains(t, out.String(), "EMAIL")
	assert.Contains(t, out.String(), "GUID")
}

// TestRunLocales tests the locale listing
func TestRunLocales(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RunLocales(newCommand(&out), nil))

	text := out.String()
	assert.Contains(t, text, "en-US")
	assert.Contains(t, text, "de-DE")
	assert.Contains(t, text, "day_first")
}
