/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger_test.go
Description: Tests for logger setup, log file rotation and the custom formatter.
*/

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoggerConfigValidate tests configuration validation
func TestLoggerConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	bad := []*LoggerConfig{
		{Level: "loud", Format: LogFormatJSON},
		{Level: LogLevelInfo, Format: "xml"},
		{Level: LogLevelInfo, Format: LogFormatText, OutputDir: "logs", MaxFiles: 0},
	}
	for _, c := range bad {
		assert.Error(t, c.Validate())
	}
}

// TestLoggerConsole tests console output in each format
func TestLoggerConsole(t *testing.T) {
	for _, format := range []LogFormat{LogFormatJSON, LogFormatText, LogFormatCustom} {
		var buf bytes.Buffer
		l, err := NewLogger(&LoggerConfig{Level: LogLevelDebug, Format: format}, &buf)
		require.NoError(t, err)

		LogLock(l.GetLogger(), "zip", "LONG", 20)
		assert.Contains(t, buf.String(), "Type locked", format)
		assert.Contains(t, buf.String(), "zip", format)
		assert.Empty(t, l.FilePath())
		require.NoError(t, l.Close())
	}
}

// TestLoggerLevel tests that entries below the level are dropped
func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(&LoggerConfig{Level: LogLevelInfo, Format: LogFormatText}, &buf)
	require.NoError(t, err)

	LogBackout(l.GetLogger(), "zip", "LONG", "STRING", 3)
	assert.Empty(t, buf.String())

	LogProfile(l.GetLogger(), "run-1", "data.csv", 3, 100, time.Second)
	assert.Contains(t, buf.String(), "Profile complete")
}

// TestLoggerFileOutput tests file logging and pruning of old files
func TestLoggerFileOutput(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2001-01-01_00-00-00", "2002-01-01_00-00-00", "2003-01-01_00-00-00"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, filePrefix+name+".log"), nil, 0644))
	}

	var console bytes.Buffer
	l, err := NewLogger(&LoggerConfig{Level: LogLevelInfo, Format: LogFormatJSON, OutputDir: dir, MaxFiles: 2}, &console)
	require.NoError(t, err)
	require.NotEmpty(t, l.FilePath())

	l.GetLogger().Info("hello")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(l.FilePath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, console.String(), "hello")

	files, err := filepath.Glob(filepath.Join(dir, filePrefix+"*.log"))
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Contains(t, files, l.FilePath())
}

// TestLoggerCloseError tests that a failed file close is reported and not repeated
func TestLoggerCloseError(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer
	l, err := NewLogger(&LoggerConfig{Level: LogLevelInfo, Format: LogFormatJSON, OutputDir: dir, MaxFiles: 2}, &console)
	require.NoError(t, err)
	require.NoError(t, l.fileHandle.Close())

	err = l.Close()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.Contains(t, err.Error(), "failed to close log file")

	assert.NoError(t, l.Close())
}

// TestCustomFormatter tests tags, fields and plain output
func TestCustomFormatter(t *testing.T) {
	f := &CustomFormatter{}
	entry := &logrus.Entry{
		Message: "Type backed out",
		Level:   logrus.DebugLevel,
		Data: logrus.Fields{
			"to":     "STRING",
			"column": "notes",
			"from":   "LONG",
			"value":  "two words",
		},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	line := string(out)
	assert.Equal(t, `DEBUG [BACKOUT] Type backed out column=notes from=LONG to=STRING value="two words"`+"\n", line)
	assert.False(t, strings.Contains(line, "\033["))

	colored, err := (&CustomFormatter{Colors: true}).Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(colored), "\033[")
}

// TestEventTag tests message tagging
func TestEventTag(t *testing.T) {
	assert.Equal(t, "LOCK", eventTag("Type locked"))
	assert.Equal(t, "PROFILE", eventTag("Profile complete"))
	assert.Equal(t, "", eventTag("Logging initialized"))
}
