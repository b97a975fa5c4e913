// Package dataset loads and prepares English-Hausa sentence pairs for
// model fine-tuning. The trainer itself is external; this package only
// produces its input corpus.
package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// Pair is one aligned English-Hausa sentence pair.
type Pair struct {
	English string `json:"english"`
	Hausa   string `json:"hausa"`
}

// Column aliases accepted in CSV headers.
var (
	englishColumns = []string{"english", "en", "source", "English"}
	hausaColumns   = []string{"hausa", "ha", "target", "Hausa"}
)

// LoadPairs reads sentence pairs from a file, dispatching on extension:
// .csv (aliased columns), .json (list of objects with english/en and
// hausa/ha keys), or .txt (tab- or pipe-separated lines).
func LoadPairs(path string) ([]Pair, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".json":
		return loadJSON(path)
	case ".txt":
		return loadText(path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", path)
	}
}

func loadCSV(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	enIdx := columnIndex(header, englishColumns)
	haIdx := columnIndex(header, hausaColumns)
	if enIdx < 0 || haIdx < 0 {
		return nil, fmt.Errorf("could not find English and Hausa columns in %s", path)
	}

	var pairs []Pair
	for {
		record, err := r.Read()
		if err != nil {
			break
		}
		if enIdx >= len(record) || haIdx >= len(record) {
			continue
		}
		english := strings.TrimSpace(record[enIdx])
		hausa := strings.TrimSpace(record[haIdx])
		if english != "" && hausa != "" {
			pairs = append(pairs, Pair{English: english, Hausa: hausa})
		}
	}

	return pairs, nil
}

func loadJSON(path string) ([]Pair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("%s: expected a JSON list of pair objects", path)
	}

	var pairs []Pair
	parsed.ForEach(func(_, item gjson.Result) bool {
		english := item.Get("english").String()
		if english == "" {
			english = item.Get("en").String()
		}
		hausa := item.Get("hausa").String()
		if hausa == "" {
			hausa = item.Get("ha").String()
		}

		english = strings.TrimSpace(english)
		hausa = strings.TrimSpace(hausa)
		if english != "" && hausa != "" {
			pairs = append(pairs, Pair{English: english, Hausa: hausa})
		}
		return true
	})

	return pairs, nil
}

func loadText(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var pairs []Pair
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var parts []string
		switch {
		case strings.Contains(line, "\t"):
			parts = strings.SplitN(line, "\t", 2)
		case strings.Contains(line, "|"):
			parts = strings.SplitN(line, "|", 2)
		default:
			continue
		}

		english := strings.TrimSpace(parts[0])
		hausa := strings.TrimSpace(parts[1])
		if english != "" && hausa != "" {
			pairs = append(pairs, Pair{English: english, Hausa: hausa})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}

	return pairs, nil
}

func columnIndex(header []string, aliases []string) int {
	for _, alias := range aliases {
		for i, col := range header {
			if strings.TrimSpace(col) == alias {
				return i
			}
		}
	}
	return -1
}
