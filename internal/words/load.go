package words

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type listFile struct {
	Words []Item `yaml:"words"`
}

// LoadFile reads a word list. Supported: .yaml/.yml/.json ({words: [{text, frequency}]})
// and .csv (text|word column plus an optional frequency|freq|weight column).
// The result is validated.
func LoadFile(path string) ([]Item, error) {
	var (
		items []Item
		err   error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
		items, err = loadYAML(path)
	case ".csv":
		items, err = loadCSV(path)
	default:
		return nil, fmt.Errorf("word list %s: unsupported extension %q: %w", path, ext, ErrInvalidArgument)
	}
	if err != nil {
		return nil, err
	}
	if err := Validate(items); err != nil {
		return nil, fmt.Errorf("word list %s: %w", path, err)
	}
	return items, nil
}

// Supported reports whether LoadFile reads a file with this name.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json", ".csv":
		return true
	}
	return false
}

func loadYAML(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	var lf listFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parse word list %s: %w", path, err)
	}
	return lf.Words, nil
}

// loadCSV detects columns from the header row. Rows without a usable
// frequency get the linear rank 1 - i/n.
func loadCSV(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse word list %s: %w", path, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("csv %s: empty: %w", path, ErrInvalidArgument)
	}
	idxText, idxFreq := -1, -1
	// weights are raw counts, normalised by the largest one
	weighted := false
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "text", "word", "term":
			if idxText == -1 {
				idxText = i
			}
		case "frequency", "freq", "weight":
			if idxFreq == -1 {
				idxFreq = i
				weighted = strings.EqualFold(strings.TrimSpace(h), "weight")
			}
		}
	}
	if idxText == -1 {
		return nil, fmt.Errorf("csv %s: text column not found: %w", path, ErrInvalidArgument)
	}
	rows := recs[1:]
	items := make([]Item, 0, len(rows))
	var unranked []int
	maxWeight := 0.0
	for _, row := range rows {
		if idxText >= len(row) || strings.TrimSpace(row[idxText]) == "" {
			continue
		}
		it := Item{Text: strings.TrimSpace(row[idxText])}
		ranked := false
		if idxFreq >= 0 && idxFreq < len(row) {
			if v, err := strconv.ParseFloat(strings.TrimSpace(row[idxFreq]), 64); err == nil {
				it.Frequency = v
				ranked = true
				maxWeight = max(maxWeight, v)
			}
		}
		if !ranked {
			unranked = append(unranked, len(items))
		}
		items = append(items, it)
	}
	if weighted && maxWeight > 0 {
		for i := range items {
			items[i].Frequency /= maxWeight
		}
	}
	for _, i := range unranked {
		items[i].Frequency = 1 - float64(i)/float64(len(items))
	}
	return items, nil
}
