package evaluation

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
)

// Item is one labeled image in an evaluation manifest
type Item struct {
	Image    string `json:"image" parquet:"image"`
	Expected string `json:"expected" parquet:"expected"`
}

// LoadManifest reads every item from a JSON, JSONL or Parquet manifest. Relative
// image paths are resolved against the manifest's directory; URLs are kept.
func LoadManifest(path string) ([]Item, error) {
	return LoadManifestSample(path, 0)
}

// LoadManifestSample reads at most limit items; limit <= 0 reads all of them
func LoadManifestSample(path string, limit int) ([]Item, error) {
	var (
		items []Item
		err   error
	)

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".parquet":
		items, err = loadParquet(path, limit)
	case ".jsonl":
		items, err = loadJSONL(path, limit)
	case ".json":
		items, err = loadJSON(path, limit)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .parquet, .json, .jsonl)", ext)
	}
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	for i := range items {
		if items[i].Image == "" {
			return nil, fmt.Errorf("item %d has no image", i+1)
		}
		if !filepath.IsAbs(items[i].Image) && !strings.Contains(items[i].Image, "://") {
			items[i].Image = filepath.Join(dir, items[i].Image)
		}
	}

	slog.Debug("Manifest loaded", "path", path, "items", len(items))
	return items, nil
}

func loadJSON(path string, limit int) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON manifest: %w", err)
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func loadJSONL(path string, limit int) ([]Item, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer file.Close()

	var items []Item
	scanner := bufio.NewScanner(file)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var item Item
		if err := json.Unmarshal(line, &item); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		items = append(items, item)

		if limit > 0 && len(items) >= limit {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading manifest: %w", err)
	}

	return items, nil
}

func loadParquet(path string, limit int) ([]Item, error) {
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

	reader := parquet.NewGenericReader[Item](pf)
	defer reader.Close()

	var items []Item
	rows := make([]Item, 128)
	for {
		n, err := reader.Read(rows)
		items = append(items, rows[:n]...)
		if limit > 0 && len(items) >= limit {
			return items[:limit], nil
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	return items, nil
}
