package cmd

import (
	"fmt"
	"io"

	"github.com/BISU-Projects/bamboo/internal/models"
	"github.com/BISU-Projects/bamboo/internal/recognition"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newRecognizeCmd(opts *globalOptions) *cobra.Command {
	var ropts recognizerOptions

	cmd := &cobra.Command{
		Use:   "recognize <image>",
		Short: "Identify the bamboo species in a photo",
		Long: `Identify the bamboo species in a photo.

The image is uploaded to the classification endpoint as a multipart form
(field "file"), or sent to a vision LLM when --provider is gemini, ollama or
openai. The predicted label is then looked up in the species catalog.`,
		Example: `  # Use the default classification endpoint
  bamboo recognize ./photos/culm.jpg

  # Use a self-hosted endpoint
  bamboo recognize ./photos/culm.jpg --endpoint http://localhost:8000/predict

  # Ask a local vision model instead
  bamboo recognize ./photos/culm.jpg --provider ollama --model llava:13b -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}

			recognizer, err := ropts.build(catalog)
			if err != nil {
				return err
			}

			client := recognition.NewClient(recognizer)
			st := client.Submit(cmd.Context(), args[0])

			session := models.NewRecognitionSession(uuid.NewString(), st, catalog)
			session.ImageFilename = recognition.ImageFilename(args[0])
			session.Provider = ropts.provider

			if err := render(cmd.OutOrStdout(), opts.output, session, func(w io.Writer) error {
				return writeSession(w, session)
			}); err != nil {
				return err
			}

			if session.Error != "" {
				return fmt.Errorf("recognition failed: %s", session.Error)
			}
			return nil
		},
	}

	addRecognizerFlags(cmd, &ropts)

	return cmd
}

func writeSession(w io.Writer, s *models.RecognitionSession) error {
	if s.Error != "" {
		_, err := fmt.Fprintf(w, "Error: %s\n", s.Error)
		return err
	}

	fmt.Fprintf(w, "Species:    %s\n", s.Label)
	if s.Confidence != "" {
		fmt.Fprintf(w, "Confidence: %s\n", s.Confidence)
	}
	for _, f := range s.Details {
		fmt.Fprintf(w, "  %s: %s\n", f.Label, f.Value)
	}

	if s.Species == nil {
		_, err := fmt.Fprintln(w, "\nSpecies not found in catalog")
		return err
	}

	fmt.Fprintln(w)
	return writeRecordDetail(w, *s.Species)
}
