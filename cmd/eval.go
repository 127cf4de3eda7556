package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/BISU-Projects/bamboo/internal/evaluation"
	"github.com/spf13/cobra"
)

func newEvalCmd(opts *globalOptions) *cobra.Command {
	var manifestPath string
	var outputDir string
	var sampleSize int
	var concurrency int
	var ropts recognizerOptions

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Measure recognition accuracy against a labeled manifest",
		Long: `Runs recognition over every image in a labeled manifest and reports
accuracy overall and per expected species.

The manifest is a JSONL or Parquet file with an "image" and an "expected"
column per row. Relative image paths are resolved against the manifest's
directory. A prediction is correct when it names the expected species by
common or scientific name. The full report is saved as YAML.`,
		Example: `  # Evaluate the classification endpoint on 10 images
  bamboo eval --manifest ./testdata/manifest.jsonl --sample 10

  # Compare a vision model with 4 concurrent requests
  bamboo eval --manifest ./photos.parquet --provider openai --model gpt-4o --concurrency 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
				return fmt.Errorf("manifest file not found: %s", manifestPath)
			}

			catalog, err := opts.catalog()
			if err != nil {
				return err
			}

			recognizer, err := ropts.build(catalog)
			if err != nil {
				return err
			}

			slog.Info("Starting evaluation run", "manifest", manifestPath, "provider", ropts.provider, "model", ropts.model)

			items, err := evaluation.LoadManifestSample(manifestPath, sampleSize)
			if err != nil {
				return fmt.Errorf("failed to load manifest: %w", err)
			}

			runner := &evaluation.Runner{
				Recognizer:  recognizer,
				Catalog:     catalog,
				Concurrency: concurrency,
			}
			results, err := runner.Run(cmd.Context(), items)
			if err != nil {
				return err
			}

			report := evaluation.NewReport(evaluation.ReportConfig{
				Provider:    ropts.provider,
				Model:       ropts.model,
				Endpoint:    ropts.endpoint,
				Manifest:    manifestPath,
				Concurrency: concurrency,
			}, results)

			path, err := report.Save(outputDir)
			if err != nil {
				return fmt.Errorf("failed to save results: %w", err)
			}
			slog.Info("Evaluation results saved", "path", path)

			return render(cmd.OutOrStdout(), opts.output, report.Summary, func(w io.Writer) error {
				return writeSummary(w, report.Summary)
			})
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Path to a JSONL or Parquet manifest (required)")
	cmd.Flags().StringVar(&outputDir, "results", "evals", "Directory for the YAML report")
	cmd.Flags().IntVar(&sampleSize, "sample", -1, "Number of items to evaluate (-1 for all)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 2, "Number of concurrent recognition requests")
	addRecognizerFlags(cmd, &ropts)

	_ = cmd.MarkFlagRequired("manifest")
	return cmd
}

func writeSummary(w io.Writer, s *evaluation.Summary) error {
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "EVALUATION SUMMARY")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Total images:       %d\n", s.Total)
	fmt.Fprintf(w, "Successful:         %d\n", s.Successful)
	fmt.Fprintf(w, "Failed:             %d\n", s.Failed)
	fmt.Fprintf(w, "Accuracy:           %.1f%% (%d/%d)\n", s.Accuracy*100, s.Correct, s.Total)
	fmt.Fprintf(w, "Average confidence: %.1f%%\n", s.AverageConfidence*100)
	fmt.Fprintf(w, "Average time:       %s\n", s.AverageTime())

	if len(s.PerSpecies) == 0 {
		return nil
	}

	fmt.Fprintln(w, "\nPer species:")
	for _, label := range s.Labels() {
		stats := s.PerSpecies[label]
		fmt.Fprintf(w, "  %-28s %5.1f%% (%d/%d)\n", label, stats.Accuracy*100, stats.Correct, stats.Total)
	}
	return nil
}
