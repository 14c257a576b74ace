package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// WriteReport writes a report to a YAML file, creating parent directories
func WriteReport(r *Report, path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadReport reads a report from a YAML file
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, err
	}

	return &r, nil
}

// GenerateReportPath creates a timestamped report filename inside dir
func GenerateReportPath(dir, name string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	clean := strings.ReplaceAll(strings.TrimSuffix(name, filepath.Ext(name)), " ", "_")
	if clean == "" {
		clean = "report"
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s.yaml", clean, timestamp))
}

// FindLatestReport finds the most recent report file in dir. Entries that
// cannot be stat'ed, such as dangling links, are skipped.
func FindLatestReport(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read reports directory: %w", err)
	}

	var latest string
	var latestTime time.Time
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if latest == "" || info.ModTime().After(latestTime) {
			latest, latestTime = path, info.ModTime()
		}
	}

	if latest == "" {
		return "", fmt.Errorf("no report files found in %s", dir)
	}
	return latest, nil
}
