/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: config.go
Description: Analyzer configuration with defaults and struct-tag validation. A Config is
fixed before the first sample is trained.
*/

package analyzer

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/kleascm/columnscout/pkg/datetime"
	"github.com/kleascm/columnscout/pkg/locale"
	"github.com/kleascm/columnscout/pkg/plugins"
	"github.com/kleascm/columnscout/pkg/shape"
	"github.com/kleascm/columnscout/pkg/stats"
)

const (
	// MinDetectWindow is the smallest detection window accepted
	MinDetectWindow = 20
	// DefaultDetectWindow is the number of samples buffered before locking
	DefaultDetectWindow = 20
	// DefaultMaxCardinality caps the distinct values tracked
	DefaultMaxCardinality = 12000
	// DefaultMaxOutliers caps the distinct outliers tracked
	DefaultMaxOutliers = 200
	// DefaultMaxInputLength is the longest value tokenized
	DefaultMaxInputLength = 4096
	// DefaultTolerance is the outlier ratio tolerated before backout
	DefaultTolerance = 0.1
	// DefaultBackoutMinSamples is the number of validated samples before ratio checks apply
	DefaultBackoutMinSamples = 100
)

// Config holds the analyzer settings
type Config struct {
	DetectWindow      int                 `mapstructure:"detect_window" validate:"gte=20"`
	MaxCardinality    int                 `mapstructure:"max_cardinality" validate:"gte=0"`
	MaxOutliers       int                 `mapstructure:"max_outliers" validate:"gte=0"`
	MaxInputLength    int                 `mapstructure:"max_input_length" validate:"gte=1"`
	MaxShapes         int                 `mapstructure:"max_shapes" validate:"gte=1"`
	Locale            string              `mapstructure:"locale"`
	PluginThreshold   int                 `mapstructure:"plugin_threshold" validate:"gte=1,lte=100"`
	SemanticTypes     bool                `mapstructure:"semantic_types"`
	CollectStatistics bool                `mapstructure:"collect_statistics"`
	Resolution        datetime.Resolution `mapstructure:"resolution" validate:"gte=0,lte=2"`
	Tolerance         float64             `mapstructure:"tolerance" validate:"gte=0,lt=1"`
	BackoutMinSamples int64               `mapstructure:"backout_min_samples" validate:"gte=1"`
	TopK              int                 `mapstructure:"top_k" validate:"gte=1,lte=1000"`
}

// DefaultConfig returns the default analyzer configuration
func DefaultConfig() *Config {
	return &Config{
		DetectWindow:      DefaultDetectWindow,
		MaxCardinality:    DefaultMaxCardinality,
		MaxOutliers:       DefaultMaxOutliers,
		MaxInputLength:    DefaultMaxInputLength,
		MaxShapes:         shape.DefaultMaxShapes,
		Locale:            locale.DefaultTag,
		PluginThreshold:   plugins.DefaultThreshold,
		SemanticTypes:     true,
		CollectStatistics: true,
		Resolution:        datetime.Auto,
		Tolerance:         DefaultTolerance,
		BackoutMinSamples: DefaultBackoutMinSamples,
		TopK:              stats.DefaultK,
	}
}

var validate = validator.New()

// Validate checks every field against its legal domain
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s=%v violates %s=%s", ErrInvalidArgument, fe.Field(), fe.Value(), fe.Tag(), fe.Param())
	}
	return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
}
