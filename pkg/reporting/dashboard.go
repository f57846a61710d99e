/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: dashboard.go
Description: HTML dashboard for profile runs. Renders one card per column with its
inferred type, pattern, confidence and value statistics, plus a confidence chart across
columns.
*/

package reporting

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kleascm/columnscout/pkg/analyzer"
	"github.com/kleascm/columnscout/pkg/profile"
)

// DashboardGenerator renders profile dashboards
type DashboardGenerator struct {
	outputDir string
	logger    logrus.FieldLogger
	templates *template.Template
}

// DashboardData contains all data for dashboard generation
type DashboardData struct {
	Title       string           `json:"title"`
	GeneratedAt time.Time        `json:"generated_at"`
	Version     string           `json:"version"`
	Profile     *profile.Profile `json:"profile"`
	Summary     *Summary         `json:"summary"`
	Columns     []ColumnView     `json:"columns"`
	Chart       *ChartConfig     `json:"chart"`
}

// Summary aggregates a profile across columns
type Summary struct {
	Columns        int            `json:"columns"`
	Rows           int64          `json:"rows"`
	Outliers       int64          `json:"outliers"`
	Backouts       int            `json:"backouts"`
	Semantic       int            `json:"semantic"`
	MeanConfidence float64        `json:"mean_confidence"`
	BaseTypes      map[string]int `json:"base_types"`
}

// ColumnView is one column prepared for display
type ColumnView struct {
	*analyzer.Result
	Type     string `json:"type"`
	Quality  string `json:"quality"`
	Percent  string `json:"percent"`
	Examples string `json:"examples"`
}

// ChartConfig contains chart configuration
type ChartConfig struct {
	Type    string      `json:"type"`
	Title   string      `json:"title"`
	Data    interface{} `json:"data"`
	Options interface{} `json:"options"`
}

var templateFuncs = template.FuncMap{
	"mul100": func(f float64) float64 { return f * 100 },
}

// NewDashboardGenerator creates a new dashboard generator
func NewDashboardGenerator(outputDir string, logger logrus.FieldLogger) *DashboardGenerator {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &DashboardGenerator{
		outputDir: outputDir,
		logger:    logger,
		templates: template.Must(template.New("dashboard").Funcs(templateFuncs).Parse(dashboardTemplate)),
	}
}

// NewDashboardData prepares a profile for rendering
func NewDashboardData(p *profile.Profile, title, version string) *DashboardData {
	data := &DashboardData{
		Title:       title,
		GeneratedAt: time.Now(),
		Version:     version,
		Profile:     p,
		Summary:     Summarize(p),
	}
	for _, r := range p.Columns {
		data.Columns = append(data.Columns, newColumnView(r))
	}
	data.Chart = createConfidenceChart(data.Columns)
	return data
}

func newColumnView(r *analyzer.Result) ColumnView {
	typ := r.BaseType.String()
	if r.TypeModifier != "" {
		typ += " (" + r.TypeModifier + ")"
	}
	examples := r.TopK
	if len(examples) > 5 {
		examples = examples[:5]
	}
	return ColumnView{
		Result:   r,
		Type:     typ,
		Quality:  quality(r.Confidence),
		Percent:  fmt.Sprintf("%.1f%%", r.Confidence*100),
		Examples: strings.Join(examples, ", "),
	}
}

// quality buckets a confidence for styling
func quality(confidence float64) string {
	switch {
	case confidence >= 0.99:
		return "high"
	case confidence >= 0.9:
		return "medium"
	default:
		return "low"
	}
}

// Summarize aggregates a profile across its columns
func Summarize(p *profile.Profile) *Summary {
	s := &Summary{
		Columns:   len(p.Columns),
		Rows:      p.Rows,
		BaseTypes: make(map[string]int),
	}
	var confidence float64
	for _, r := range p.Columns {
		s.Outliers += r.OutlierCount
		s.Backouts += r.Backouts
		if r.SemanticType != "" {
			s.Semantic++
		}
		s.BaseTypes[r.BaseType.String()]++
		confidence += r.Confidence
	}
	if len(p.Columns) > 0 {
		s.MeanConfidence = confidence / float64(len(p.Columns))
	}
	return s
}

// createConfidenceChart creates the per-column confidence chart configuration
func createConfidenceChart(columns []ColumnView) *ChartConfig {
	labels := make([]string, len(columns))
	values := make([]float64, len(columns))
	for i, c := range columns {
		labels[i] = c.Name
		values[i] = c.Confidence * 100
	}
	return &ChartConfig{
		Type:  "bar",
		Title: "Confidence by Column",
		Data: map[string]interface{}{
			"labels": labels,
			"datasets": []map[string]interface{}{
				{
					"label":           "Confidence (%)",
					"data":            values,
					"backgroundColor": "rgba(102, 126, 234, 0.6)",
				},
			},
		},
		Options: map[string]interface{}{
			"responsive": true,
			"scales": map[string]interface{}{
				"y": map[string]interface{}{
					"beginAtZero": true,
					"max":         100,
				},
			},
		},
	}
}

// Render writes the dashboard HTML to w
func (dg *DashboardGenerator) Render(w io.Writer, data *DashboardData) error {
	if err := dg.templates.Execute(w, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}

// GenerateDashboard writes index.html for the profile into the output directory and
// returns its path
func (dg *DashboardGenerator) GenerateDashboard(data *DashboardData) (string, error) {
	if err := os.MkdirAll(dg.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputFile := filepath.Join(dg.outputDir, "index.html")
	file, err := os.Create(outputFile)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := dg.Render(file, data); err != nil {
		return "", err
	}

	dg.logger.WithField("path", outputFile).Info("Dashboard generated")
	return outputFile, nil
}
