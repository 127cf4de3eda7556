package evaluation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ReportConfig records how an evaluation was run
type ReportConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model,omitempty"`
	Endpoint    string `yaml:"endpoint,omitempty"`
	Manifest    string `yaml:"manifest"`
	SampleSize  int    `yaml:"samplesize"`
	Concurrency int    `yaml:"concurrency"`
	Timestamp   string `yaml:"timestamp"`
}

// Report is the YAML document written after a run
type Report struct {
	Config  ReportConfig `yaml:"config"`
	Summary *Summary     `yaml:"summary"`
	Results []ItemResult `yaml:"results"`
}

// NewReport stamps cfg with the current time and aggregates results
func NewReport(cfg ReportConfig, results []ItemResult) *Report {
	cfg.Timestamp = time.Now().Format("2006-01-02_15-04-05")
	cfg.SampleSize = len(results)
	return &Report{
		Config:  cfg,
		Summary: Aggregate(results),
		Results: results,
	}
}

// Save writes the report into dir and returns the file path
func (r *Report) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := r.Config.Model
	if name == "" {
		name = r.Config.Provider
	}
	name = strings.NewReplacer("/", "_", ":", "_").Replace(name)
	filename := filepath.Join(dir, fmt.Sprintf("%s-%s.yaml", name, r.Config.Timestamp))

	data, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	return filename, nil
}

// LoadReport reads a report written by Save
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &r, nil
}
