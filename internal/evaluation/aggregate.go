package evaluation

import (
	"slices"
	"time"
)

// Summary aggregates evaluation results
type Summary struct {
	Total             int                     `json:"total" yaml:"total"`
	Successful        int                     `json:"successful" yaml:"successful"`
	Failed            int                     `json:"failed" yaml:"failed"`
	Correct           int                     `json:"correct" yaml:"correct"`
	Accuracy          float64                 `json:"accuracy" yaml:"accuracy"`
	AverageConfidence float64                 `json:"average_confidence" yaml:"average_confidence"`
	AverageTimeMS     float64                 `json:"average_time_ms" yaml:"average_time_ms"`
	TotalTimeMS       int64                   `json:"total_time_ms" yaml:"total_time_ms"`
	PerSpecies        map[string]SpeciesStats `json:"per_species" yaml:"per_species"`
}

// SpeciesStats holds accuracy for one expected label
type SpeciesStats struct {
	Total    int     `json:"total" yaml:"total"`
	Correct  int     `json:"correct" yaml:"correct"`
	Accuracy float64 `json:"accuracy" yaml:"accuracy"`
}

// Aggregate computes summary statistics. Failed items count against
// accuracy; confidence is averaged over the items that reported one.
func Aggregate(results []ItemResult) *Summary {
	summary := &Summary{
		Total:      len(results),
		PerSpecies: make(map[string]SpeciesStats),
	}

	var confidenceTotal float64
	var confidenceCount int

	for _, r := range results {
		summary.TotalTimeMS += r.ProcessingTimeMS

		stats := summary.PerSpecies[r.Expected]
		stats.Total++

		if r.Error != "" {
			summary.Failed++
			summary.PerSpecies[r.Expected] = stats
			continue
		}

		summary.Successful++
		if r.Correct {
			summary.Correct++
			stats.Correct++
		}
		summary.PerSpecies[r.Expected] = stats

		if r.Confidence != nil {
			confidenceTotal += *r.Confidence
			confidenceCount++
		}
	}

	if summary.Total > 0 {
		summary.Accuracy = float64(summary.Correct) / float64(summary.Total)
		summary.AverageTimeMS = float64(summary.TotalTimeMS) / float64(summary.Total)
	}
	if confidenceCount > 0 {
		summary.AverageConfidence = confidenceTotal / float64(confidenceCount)
	}

	for label, stats := range summary.PerSpecies {
		stats.Accuracy = float64(stats.Correct) / float64(stats.Total)
		summary.PerSpecies[label] = stats
	}

	return summary
}

// Labels returns the expected labels of a summary in sorted order
func (s *Summary) Labels() []string {
	labels := make([]string, 0, len(s.PerSpecies))
	for label := range s.PerSpecies {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	return labels
}

// AverageTime is AverageTimeMS as a duration
func (s *Summary) AverageTime() time.Duration {
	return time.Duration(s.AverageTimeMS * float64(time.Millisecond))
}
