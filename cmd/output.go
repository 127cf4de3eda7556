package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/BISU-Projects/bamboo/internal/species"
	"gopkg.in/yaml.v3"
)

// render writes v in the selected format. text is used for the default
// human readable format.
func render(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(v)
	default:
		return text(w)
	}
}

func writeRecordTable(w io.Writer, records []species.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No species found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSCIENTIFIC NAME\tCATEGORY\tRARITY\tORIGIN")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.ScientificName, r.Category, r.Rarity, r.Origin)
	}
	return tw.Flush()
}

func writeRecordDetail(w io.Writer, r species.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", r.Name)
	fmt.Fprintf(tw, "Scientific name:\t%s\n", r.ScientificName)
	fmt.Fprintf(tw, "Category:\t%s\n", r.Category)
	fmt.Fprintf(tw, "Rarity:\t%s\n", r.Rarity)
	fmt.Fprintf(tw, "Origin:\t%s\n", r.Origin)
	fmt.Fprintf(tw, "Height:\t%s\n", r.Height)
	fmt.Fprintf(tw, "Growth rate:\t%s\n", r.GrowthRate)
	fmt.Fprintf(tw, "Sunlight:\t%s\n", r.Sunlight)
	fmt.Fprintf(tw, "Water:\t%s\n", r.Water)
	fmt.Fprintf(tw, "Temperature:\t%s\n", r.Temperature)
	if r.HasBloomingPeriod() {
		fmt.Fprintf(tw, "Blooming period:\t%s\n", r.BloomingPeriod)
	}
	fmt.Fprintf(tw, "Propagation:\t%s\n", r.Propagation)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s\n", r.Description)
	writeList(w, "Characteristics", r.Characteristics)
	writeList(w, "Uses", r.Uses)
	fmt.Fprintf(w, "\nCare: %s\n", r.CareInstructions)
	return nil
}

func writeList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

func joinStrings[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
