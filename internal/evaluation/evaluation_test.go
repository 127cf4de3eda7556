package evaluation

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/BISU-Projects/bamboo/internal/recognition"
	"github.com/BISU-Projects/bamboo/internal/species"
	"github.com/parquet-go/parquet-go"
)

type labelRecognizer struct {
	mu     sync.Mutex
	labels map[string]string
	calls  int
}

func (l *labelRecognizer) Recognize(ctx context.Context, imageRef string) (*recognition.Result, error) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()

	label, ok := l.labels[filepath.Base(imageRef)]
	if !ok {
		return nil, errors.New("server error: 500 Internal Server Error")
	}
	confidence := 0.8
	return &recognition.Result{Class: label, Confidence: &confidence}, nil
}

type rejectingRecognizer struct{}

func (rejectingRecognizer) Recognize(ctx context.Context, imageRef string) (*recognition.Result, error) {
	return &recognition.Result{Error: "no bamboo detected"}, nil
}

func TestLoadManifestJSONL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.jsonl")
	content := `{"image":"images/a.jpg","expected":"Moso Bamboo"}

{"image":"/abs/b.jpg","expected":"Black Bamboo"}
{"image":"https://example.com/c.jpg","expected":"Golden Bamboo"}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}

	items, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}

	expected := []string{filepath.Join(dir, "images/a.jpg"), "/abs/b.jpg", "https://example.com/c.jpg"}
	for i, item := range items {
		if item.Image != expected[i] {
			t.Errorf("Expected image %s, got %s", expected[i], item.Image)
		}
	}

	sample, err := LoadManifestSample(path, 2)
	if err != nil || len(sample) != 2 {
		t.Errorf("Expected 2 sampled items, got %d (%v)", len(sample), err)
	}
}

func TestLoadManifestJSONArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	content := `[
  {"image": "images/a.jpg", "expected": "Moso Bamboo"},
  {"image": "https://example.com/b.jpg", "expected": "Black Bamboo"},
  {"image": "c.jpg", "expected": "Golden Bamboo"}
]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}

	items, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	if items[0].Image != filepath.Join(dir, "images/a.jpg") {
		t.Errorf("Expected resolved image path, got %s", items[0].Image)
	}
	if items[1].Expected != "Black Bamboo" {
		t.Errorf("Expected Black Bamboo, got %s", items[1].Expected)
	}

	sample, err := LoadManifestSample(path, 2)
	if err != nil || len(sample) != 2 {
		t.Errorf("Expected 2 sampled items, got %d (%v)", len(sample), err)
	}
}

func TestLoadManifestParquet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.parquet")
	rows := []Item{
		{Image: "a.jpg", Expected: "Moso Bamboo"},
		{Image: "b.jpg", Expected: "Black Bamboo"},
		{Image: "c.jpg", Expected: "Giant Bamboo"},
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		t.Fatalf("Failed to write parquet: %v", err)
	}

	items, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}
	if len(items) != 3 || items[2].Expected != "Giant Bamboo" || items[0].Image != filepath.Join(dir, "a.jpg") {
		t.Errorf("Unexpected items: %+v", items)
	}

	sample, err := LoadManifestSample(path, 1)
	if err != nil || len(sample) != 1 {
		t.Errorf("Expected 1 sampled item, got %d (%v)", len(sample), err)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{name: "unsupported", file: "m.csv", content: "image,expected", wantErr: "unsupported file format"},
		{name: "bad json", file: "m.jsonl", content: "{not json}", wantErr: "line 1"},
		{name: "missing image", file: "empty.jsonl", content: `{"expected":"Moso Bamboo"}`, wantErr: "no image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			os.WriteFile(path, []byte(tt.content), 0644)
			_, err := LoadManifest(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := LoadManifest(filepath.Join(dir, "missing.jsonl")); err == nil {
		t.Error("Expected error for missing manifest")
	}
}

func TestRunnerRun(t *testing.T) {
	rec := &labelRecognizer{labels: map[string]string{
		"a.jpg": "Moso Bamboo",
		"b.jpg": "Golden Bamboo",
		"c.jpg": "Phyllostachys nigra",
	}}
	items := []Item{
		{Image: "/x/a.jpg", Expected: "moso bamboo"},
		{Image: "/x/b.jpg", Expected: "Black Bamboo"},
		{Image: "/x/c.jpg", Expected: "Black Bamboo"},
		{Image: "/x/d.jpg", Expected: "Giant Bamboo"},
	}

	runner := &Runner{Recognizer: rec, Catalog: species.Default(), Concurrency: 2}
	results, err := runner.Run(context.Background(), items)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if rec.calls != 4 {
		t.Errorf("Expected 4 recognizer calls, got %d", rec.calls)
	}

	tests := []struct {
		predicted string
		correct   bool
		speciesID string
		failed    bool
	}{
		{predicted: "Moso Bamboo", correct: true, speciesID: "5"},
		{predicted: "Golden Bamboo", correct: false, speciesID: "2"},
		{predicted: "Phyllostachys nigra", correct: true, speciesID: "3"},
		{failed: true},
	}

	for i, tt := range tests {
		r := results[i]
		if r.Image != items[i].Image {
			t.Errorf("Expected results in manifest order, got %s at %d", r.Image, i)
		}
		if tt.failed {
			if !strings.Contains(r.Error, "500") {
				t.Errorf("Expected failure at %d, got %+v", i, r)
			}
			continue
		}
		if r.Predicted != tt.predicted || r.Correct != tt.correct || r.SpeciesID != tt.speciesID {
			t.Errorf("Item %d: expected (%s, %v, %s), got (%s, %v, %s)",
				i, tt.predicted, tt.correct, tt.speciesID, r.Predicted, r.Correct, r.SpeciesID)
		}
		if r.Confidence == nil || *r.Confidence != 0.8 {
			t.Errorf("Item %d: expected confidence 0.8, got %v", i, r.Confidence)
		}
	}
}

func TestRunnerResultError(t *testing.T) {
	runner := &Runner{Recognizer: rejectingRecognizer{}, Catalog: species.Default()}
	results, err := runner.Run(context.Background(), []Item{{Image: "/x/a.jpg", Expected: "Moso Bamboo"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if results[0].Error != "no bamboo detected" {
		t.Errorf("Expected result error to be recorded, got %q", results[0].Error)
	}
	if results[0].Correct {
		t.Error("Expected failed item to be incorrect")
	}

	summary := Aggregate(results)
	if summary.Failed != 1 || summary.Successful != 0 {
		t.Errorf("Expected 1 failed and 0 successful, got %d and %d", summary.Failed, summary.Successful)
	}
}

func TestRunnerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &Runner{Recognizer: &labelRecognizer{}}
	if _, err := runner.Run(ctx, []Item{{Image: "a.jpg"}}); err == nil {
		t.Error("Expected error for canceled context")
	}
}

func TestAggregate(t *testing.T) {
	high, low := 0.9, 0.5
	results := []ItemResult{
		{Expected: "Moso Bamboo", Correct: true, Confidence: &high, ProcessingTimeMS: 100},
		{Expected: "Moso Bamboo", Correct: false, Confidence: &low, ProcessingTimeMS: 200},
		{Expected: "Black Bamboo", Correct: true, ProcessingTimeMS: 300},
		{Expected: "Black Bamboo", Error: "boom", ProcessingTimeMS: 400},
	}

	s := Aggregate(results)

	if s.Total != 4 || s.Successful != 3 || s.Failed != 1 || s.Correct != 2 {
		t.Errorf("Unexpected counts: %+v", s)
	}
	if s.Accuracy != 0.5 {
		t.Errorf("Expected accuracy 0.5, got %f", s.Accuracy)
	}
	if math.Abs(s.AverageConfidence-0.7) > 1e-9 {
		t.Errorf("Expected average confidence 0.7, got %f", s.AverageConfidence)
	}
	if s.TotalTimeMS != 1000 || s.AverageTimeMS != 250 {
		t.Errorf("Expected 1000ms total and 250ms average, got %d and %f", s.TotalTimeMS, s.AverageTimeMS)
	}
	if s.AverageTime().Milliseconds() != 250 {
		t.Errorf("Expected 250ms, got %v", s.AverageTime())
	}

	moso := s.PerSpecies["Moso Bamboo"]
	if moso.Total != 2 || moso.Correct != 1 || moso.Accuracy != 0.5 {
		t.Errorf("Unexpected Moso stats: %+v", moso)
	}
	black := s.PerSpecies["Black Bamboo"]
	if black.Total != 2 || black.Correct != 1 || black.Accuracy != 0.5 {
		t.Errorf("Unexpected Black stats: %+v", black)
	}

	labels := s.Labels()
	if len(labels) != 2 || labels[0] != "Black Bamboo" || labels[1] != "Moso Bamboo" {
		t.Errorf("Expected sorted labels, got %v", labels)
	}
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)
	if s.Total != 0 || s.Accuracy != 0 || s.AverageConfidence != 0 || len(s.PerSpecies) != 0 {
		t.Errorf("Expected zero summary, got %+v", s)
	}
}

func TestReportSaveAndLoad(t *testing.T) {
	c := 0.92
	results := []ItemResult{
		{Image: "a.jpg", Expected: "Moso Bamboo", Predicted: "Moso Bamboo", Confidence: &c, Correct: true, SpeciesID: "5"},
		{Image: "b.jpg", Expected: "Black Bamboo", Error: "server error: 500 Internal Server Error"},
	}

	report := NewReport(ReportConfig{Provider: "ollama", Model: "llava:13b", Manifest: "m.jsonl", Concurrency: 2}, results)
	if report.Config.SampleSize != 2 || report.Config.Timestamp == "" {
		t.Errorf("Expected sample size and timestamp to be set, got %+v", report.Config)
	}

	dir := filepath.Join(t.TempDir(), "evals")
	path, err := report.Save(dir)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "llava_13b-") || filepath.Ext(path) != ".yaml" {
		t.Errorf("Unexpected report path %s", path)
	}

	loaded, err := LoadReport(path)
	if err != nil {
		t.Fatalf("LoadReport failed: %v", err)
	}
	if loaded.Config.Provider != "ollama" || loaded.Summary.Correct != 1 || len(loaded.Results) != 2 {
		t.Errorf("Unexpected loaded report: %+v", loaded)
	}
	if loaded.Results[0].Confidence == nil || *loaded.Results[0].Confidence != 0.92 {
		t.Errorf("Expected confidence to survive, got %v", loaded.Results[0].Confidence)
	}
	if loaded.Summary.PerSpecies["Black Bamboo"].Total != 1 {
		t.Errorf("Expected per-species stats to survive, got %+v", loaded.Summary.PerSpecies)
	}
}
