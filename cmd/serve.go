package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/BISU-Projects/bamboo/internal/handlers"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	var port string
	var uploadsDir string
	var ropts recognizerOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the species catalog and recognition API",
		Long: `Starts the Bamboo HTTP API on the specified port.

The API serves the species catalog and accepts image uploads for
recognition. Every upload is kept as a recognition session that can be
listed, fetched and deleted until the server stops.

Endpoints:
  GET    /api/species?category=&rarity=&origin=&q=
  GET    /api/species/{id}
  GET    /api/species/random?count=N
  GET    /api/species/stats
  POST   /api/recognize            (multipart field "file")
  GET    /api/sessions
  GET    /api/sessions/{id}
  DELETE /api/sessions/{id}
  GET    /healthcheck`,
		Example: `  # Start server on default port 8888
  bamboo serve

  # Start server on custom port, recognizing with Gemini
  bamboo serve --port 3000 --provider gemini`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}

			recognizer, err := ropts.build(catalog)
			if err != nil {
				return err
			}

			handler := handlers.New(handlers.Config{
				Catalog:    catalog,
				Recognizer: recognizer,
				Provider:   ropts.provider,
				UploadsDir: uploadsDir,
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: handler.Routes(),
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Bamboo API available", "addr", addr, "url", "http://localhost"+addr, "provider", ropts.provider, "species", catalog.Len())
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&uploadsDir, "uploads", "uploads", "Directory for uploaded images")
	addRecognizerFlags(cmd, &ropts)

	return cmd
}
