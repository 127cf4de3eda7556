package evaluation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BISU-Projects/bamboo/internal/recognition"
	"github.com/BISU-Projects/bamboo/internal/species"
	"golang.org/x/sync/errgroup"
)

// ItemResult is the outcome of recognizing one manifest item
type ItemResult struct {
	Image            string   `json:"image" yaml:"image"`
	Expected         string   `json:"expected" yaml:"expected"`
	Predicted        string   `json:"predicted" yaml:"predicted"`
	Confidence       *float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Correct          bool     `json:"correct" yaml:"correct"`
	SpeciesID        string   `json:"species_id,omitempty" yaml:"species_id,omitempty"`
	ProcessingTimeMS int64    `json:"processing_time_ms" yaml:"processing_time_ms"`
	Error            string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Runner recognizes manifest items with bounded concurrency
type Runner struct {
	Recognizer  recognition.Recognizer
	Catalog     *species.Catalog
	Concurrency int
}

// Run recognizes every item and returns results in manifest order. Per-item
// failures are recorded in the result; only context cancellation aborts.
func (r *Runner) Run(ctx context.Context, items []Item) ([]ItemResult, error) {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	slog.Info("Processing items", "items", len(items), "concurrency", concurrency)

	results := make([]ItemResult, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slog.Debug("Processing item", "image", item.Image, "progress", fmt.Sprintf("%d/%d", i+1, len(items)))
			results[i] = r.processItem(ctx, item)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluation aborted: %w", err)
	}
	return results, nil
}

func (r *Runner) processItem(ctx context.Context, item Item) ItemResult {
	result := ItemResult{
		Image:    item.Image,
		Expected: item.Expected,
	}

	start := time.Now()
	st := recognition.NewClient(r.Recognizer).Submit(ctx, item.Image)
	result.ProcessingTimeMS = time.Since(start).Milliseconds()

	if st.Error != "" {
		result.Error = st.Error
		return result
	}
	if st.Result.Failed() {
		result.Error = st.Result.Error
		return result
	}

	result.Predicted = st.Result.DisplayLabel()
	if c, ok := st.Result.DisplayConfidence(); ok {
		result.Confidence = &c
	}
	result.Correct = sameSpecies(result.Predicted, item.Expected)

	if r.Catalog != nil {
		if record, ok := r.Catalog.ByName(result.Predicted); ok {
			result.SpeciesID = record.ID
			// Common and scientific names of the same species are equivalent
			if expected, ok := r.Catalog.ByName(item.Expected); ok && expected.ID == record.ID {
				result.Correct = true
			}
		}
	}

	return result
}

func sameSpecies(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
