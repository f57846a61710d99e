/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporting_test.go
Description: Tests for the text, JSON and HTML profile renderings.
*/

package reporting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/columnscout/pkg/profile"
)

func sampleProfile(t *testing.T) *profile.Profile {
	t.Helper()
	var b strings.Builder
	b.WriteString("id,active,comment\n")
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, "%d,%t,<b>note %d</b>\n", 10+i, i%2 == 0, i)
	}
	p, err := profile.Run(context.Background(), "sample.csv", strings.NewReader(b.String()), profile.DefaultOptions())
	require.NoError(t, err)
	return p
}

// TestParseFormat tests format names and the unset default
func TestParseFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"text", FormatText},
		{"json", FormatJSON},
		{"html", FormatHTML},
		{"", FormatText},
	}
	for _, tt := range tests {
		f, err := ParseFormat(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, f, tt.name)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

// TestWriteText tests the column table
func TestWriteText(t *testing.T) {
	p := sampleProfile(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p, FormatText, "1.0.0"))

	out := buf.String()
	assert.Contains(t, out, "Source: sample.csv  Rows: 40")
	assert.Contains(t, out, "COLUMN")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[3], "id "))
	assert.Contains(t, lines[3], `\d{2}`)
	assert.Contains(t, lines[4], "Boolean/TRUE_FALSE")
}

// TestWriteJSON tests that the JSON rendering round trips the column results
func TestWriteJSON(t *testing.T) {
	p := sampleProfile(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p, FormatJSON, "1.0.0"))

	var decoded struct {
		RunID   string `json:"run_id"`
		Rows    int64  `json:"rows"`
		Columns []struct {
			Name     string `json:"name"`
			BaseType string `json:"base_type"`
			RegExp   string `json:"regexp"`
		} `json:"columns"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, p.RunID, decoded.RunID)
	assert.Equal(t, int64(40), decoded.Rows)
	require.Len(t, decoded.Columns, 3)
	assert.Equal(t, "Long", decoded.Columns[0].BaseType)
	assert.Equal(t, `\d{2}`, decoded.Columns[0].RegExp)
	assert.Equal(t, "Boolean", decoded.Columns[1].BaseType)
}

// TestWriteHTML tests the dashboard rendering and escaping of values
func TestWriteHTML(t *testing.T) {
	p := sampleProfile(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p, FormatHTML, "1.0.0"))

	out := buf.String()
	assert.Contains(t, out, `id="column-id"`)
	assert.Contains(t, out, `<code>\d{2}</code>`)
	assert.Contains(t, out, p.RunID)
	assert.Contains(t, out, "Version: 1.0.0")
	assert.NotContains(t, out, "<b>note")
	assert.Contains(t, out, `"Confidence by Column"`)
}

// TestSummarize tests aggregation across columns
func TestSummarize(t *testing.T) {
	p := sampleProfile(t)
	s := Summarize(p)
	assert.Equal(t, 3, s.Columns)
	assert.Equal(t, int64(40), s.Rows)
	assert.Equal(t, 1, s.BaseTypes["Long"])
	assert.Equal(t, 1, s.BaseTypes["Boolean"])
	assert.Equal(t, 1, s.BaseTypes["String"])
	assert.InDelta(t, 1.0, s.MeanConfidence, 1e-9)

	empty := Summarize(&profile.Profile{})
	assert.Zero(t, empty.MeanConfidence)
}

// TestQuality tests confidence buckets
func TestQuality(t *testing.T) {
	assert.Equal(t, "high", quality(1))
	assert.Equal(t, "medium", quality(0.95))
	assert.Equal(t, "low", quality(0.5))
}

// TestGenerateDashboard tests writing index.html
func TestGenerateDashboard(t *testing.T) {
	p := sampleProfile(t)
	dir := t.TempDir()
	dg := NewDashboardGenerator(dir, nil)

	path, err := dg.GenerateDashboard(NewDashboardData(p, "Sample", "1.0.0"))
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>Sample - columnscout</title>")
}
