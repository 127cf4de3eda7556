package species

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

// LoadFile builds a catalog from a YAML, JSON, JSONL or Parquet file.
// The catalog is validated the same way NewCatalog validates records.
func LoadFile(path string) (*Catalog, error) {
	var (
		records []Record
		err     error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		records, err = loadYAML(path)
	case ".json":
		records, err = loadJSON(path)
	case ".jsonl":
		records, err = loadJSONL(path)
	case ".parquet":
		records, err = loadParquet(path)
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s (supported: .yaml, .json, .jsonl, .parquet)", ext)
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("Loaded species catalog", "path", path, "records", len(records))

	return NewCatalog(records)
}

// WriteFile exports the catalog in the format implied by the path extension
func (c *Catalog) WriteFile(path string) error {
	records := c.All()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err := yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return writeFile(path, data)
	case ".json":
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return writeFile(path, append(data, '\n'))
	case ".jsonl":
		var b strings.Builder
		for _, r := range records {
			line, err := json.Marshal(r)
			if err != nil {
				return fmt.Errorf("failed to marshal species %q: %w", r.ID, err)
			}
			b.Write(line)
			b.WriteByte('\n')
		}
		return writeFile(path, []byte(b.String()))
	case ".parquet":
		if err := parquet.WriteFile(path, records); err != nil {
			return fmt.Errorf("failed to write parquet file: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported catalog format: %s (supported: .yaml, .json, .jsonl, .parquet)", ext)
	}
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

func loadYAML(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}

	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse YAML catalog: %w", err)
	}
	return records, nil
}

func loadJSON(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse JSON catalog: %w", err)
	}
	return records, nil
}

func loadJSONL(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	var records []Record
	scanner := bufio.NewScanner(file)

	// Descriptions can get long
	const maxCapacity = 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var r Record
		if err := json.Unmarshal(line, &r); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		records = append(records, r)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading catalog: %w", err)
	}

	return records, nil
}

func loadParquet(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[Record](pf)
	defer reader.Close()

	var records []Record
	rows := make([]Record, 64)
	for {
		n, err := reader.Read(rows)
		// rows is reused between reads, so detach the slices
		for _, r := range rows[:n] {
			records = append(records, r.clone())
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	return records, nil
}
