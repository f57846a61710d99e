/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: results.go
Description: Writes profile results as timestamped, versioned JSON files under a
per-kind subdirectory of an output directory.
*/

package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ResultPath builds dir/kind/<timestamp>_<kind>_v<version>.json
func ResultPath(dir, kind, version string, at time.Time) string {
	// 2024-06-11_01-30-00_profile_v1.0.0.json
	name := fmt.Sprintf("%s_%s_v%s.json", at.Format("2006-01-02_15-04-05"), kind, strings.TrimPrefix(version, "v"))
	return filepath.Join(dir, kind, name)
}

// WriteResult marshals result as indented JSON to a new timestamped file and returns
// its path
func WriteResult(dir, kind, version string, result interface{}) (string, error) {
	if kind == "" {
		return "", fmt.Errorf("result kind is required")
	}
	path := ResultPath(dir, kind, version, time.Now())
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write result file: %w", err)
	}
	return path, nil
}
