package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/BISU-Projects/bamboo/internal/species"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	verbose     bool
	output      string
	catalogPath string
}

func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "bamboo",
		Short: "Bamboo species catalog and image recognition tool",
		Long: `Bamboo is a field guide for bamboo species.

It ships a catalog of bamboo species that can be browsed, searched and
exported, and it identifies the species in a photo by sending the image to
a recognition service or a vision-capable LLM (Gemini, Ollama or OpenAI).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			logLevel := slog.LevelInfo
			if opts.verbose {
				logLevel = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

			switch opts.output {
			case "text", "json", "yaml":
				return nil
			default:
				return fmt.Errorf("unsupported output format %q (expected text, json or yaml)", opts.output)
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Verbose logging")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "Output format (text, json or yaml)")
	cmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "Species catalog file (defaults to $BAMBOO_CATALOG, then the built-in catalog)")

	// Add subcommands
	cmd.AddCommand(newSpeciesCmd(opts))
	cmd.AddCommand(newRecognizeCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newEvalCmd(opts))

	return cmd
}

// catalog resolves the catalog to use for this invocation
func (o *globalOptions) catalog() (*species.Catalog, error) {
	path := o.catalogPath
	if path == "" {
		path = os.Getenv("BAMBOO_CATALOG")
	}
	if path == "" {
		return species.Default(), nil
	}

	slog.Debug("Loading catalog", "path", path)
	c, err := species.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return c, nil
}
