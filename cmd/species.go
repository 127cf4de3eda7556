package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/BISU-Projects/bamboo/internal/species"
	"github.com/spf13/cobra"
)

func newSpeciesCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "species",
		Aliases: []string{"catalog"},
		Short:   "Browse the bamboo species catalog",
		Long: `Browse, search and export the bamboo species catalog.

The built-in catalog is used unless --catalog or BAMBOO_CATALOG points at a
YAML, JSON, JSONL or Parquet file.`,
	}

	cmd.AddCommand(newSpeciesListCmd(opts))
	cmd.AddCommand(newSpeciesGetCmd(opts))
	cmd.AddCommand(newSpeciesSearchCmd(opts))
	cmd.AddCommand(newSpeciesRandomCmd(opts))
	cmd.AddCommand(newSpeciesStatsCmd(opts))
	cmd.AddCommand(newSpeciesExportCmd(opts))

	return cmd
}

func newSpeciesListCmd(opts *globalOptions) *cobra.Command {
	var category, rarity, origin, query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List species, optionally filtered",
		Example: `  # List every species
  bamboo species list

  # Clumping species from Southern China
  bamboo species list --category clumping --origin "Southern China"

  # Uncommon species mentioning screens anywhere in their description
  bamboo species list --rarity uncommon --query screen -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}

			filters := species.Filters{Origin: origin, SearchQuery: query}
			if category != "" {
				if filters.Category, err = species.ParseCategory(category); err != nil {
					return err
				}
			}
			if rarity != "" {
				if filters.Rarity, err = species.ParseRarity(rarity); err != nil {
					return err
				}
			}

			records := catalog.Filter(filters)
			slog.Debug("Filtered catalog", "matches", len(records), "total", catalog.Len())

			return render(cmd.OutOrStdout(), opts.output, records, func(w io.Writer) error {
				return writeRecordTable(w, records)
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category (Clumping, Running, Dwarf or Timber)")
	cmd.Flags().StringVar(&rarity, "rarity", "", "Rarity (Common, Uncommon or Rare)")
	cmd.Flags().StringVar(&origin, "origin", "", "Exact origin")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive text matched against names, origin, description, uses and characteristics")

	return cmd
}

func newSpeciesGetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id|name>",
		Short: "Show one species",
		Example: `  bamboo species get 5
  bamboo species get "Phyllostachys nigra"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}

			record, ok := catalog.ByID(args[0])
			if !ok {
				record, ok = catalog.ByName(args[0])
			}
			if !ok {
				return fmt.Errorf("species not found: %s", args[0])
			}

			return render(cmd.OutOrStdout(), opts.output, record, func(w io.Writer) error {
				return writeRecordDetail(w, record)
			})
		},
	}
}

func newSpeciesSearchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search species by name, scientific name, category or origin",
		Example: `  bamboo species search phyllostachys
  bamboo species search CHINA`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}

			records := catalog.Search(args[0])
			return render(cmd.OutOrStdout(), opts.output, records, func(w io.Writer) error {
				return writeRecordTable(w, records)
			})
		},
	}
}

func newSpeciesRandomCmd(opts *globalOptions) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Show randomly chosen species",
		Example: `  # Species of the day
  bamboo species random

  # Three distinct species
  bamboo species random --count 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}

			records := catalog.Random(count)
			return render(cmd.OutOrStdout(), opts.output, records, func(w io.Writer) error {
				return writeRecordTable(w, records)
			})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of species")

	return cmd
}

// catalogStats is the output of species stats
type catalogStats struct {
	Total           int                      `json:"total" yaml:"total"`
	Categories      []species.Category       `json:"categories" yaml:"categories"`
	Rarities        []species.Rarity         `json:"rarities" yaml:"rarities"`
	Origins         []string                 `json:"origins" yaml:"origins"`
	CountByCategory map[species.Category]int `json:"count_by_category" yaml:"count_by_category"`
	CountByRarity   map[species.Rarity]int   `json:"count_by_rarity" yaml:"count_by_rarity"`
}

func newSpeciesStatsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}

			stats := catalogStats{
				Total:           catalog.Len(),
				Categories:      catalog.Categories(),
				Rarities:        catalog.Rarities(),
				Origins:         catalog.Origins(),
				CountByCategory: catalog.CountByCategory(),
				CountByRarity:   catalog.CountByRarity(),
			}

			return render(cmd.OutOrStdout(), opts.output, stats, func(w io.Writer) error {
				fmt.Fprintf(w, "Species:    %d\n", stats.Total)
				fmt.Fprintf(w, "Categories: %s\n", joinStrings(stats.Categories))
				fmt.Fprintf(w, "Rarities:   %s\n", joinStrings(stats.Rarities))
				fmt.Fprintf(w, "Origins:    %s\n", joinStrings(stats.Origins))

				fmt.Fprintln(w, "\nBy category:")
				for _, c := range stats.Categories {
					fmt.Fprintf(w, "  %-10s %d\n", c, stats.CountByCategory[c])
				}
				fmt.Fprintln(w, "\nBy rarity:")
				for _, r := range stats.Rarities {
					fmt.Fprintf(w, "  %-10s %d\n", r, stats.CountByRarity[r])
				}
				return nil
			})
		},
	}
}

func newSpeciesExportCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Write the catalog to a file",
		Long: `Write the catalog to a file. The format follows the extension:
.yaml/.yml, .json, .jsonl or .parquet.

An exported file can be edited and loaded back with --catalog.`,
		Example: `  bamboo species export species.yaml
  bamboo species export species.parquet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}

			if err := catalog.WriteFile(args[0]); err != nil {
				return err
			}

			slog.Info("Catalog exported", "path", args[0], "species", catalog.Len())
			return nil
		},
	}
}
