package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// LoadFiles reads every catalog JSON file matching the given glob pattern
// (doublestar syntax, so data/**/*.json works) and merges their product
// lists in file-name order. Duplicate ids keep the first occurrence.
func LoadFiles(pattern string) ([]Product, error) {
	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))

	matches, err := doublestar.Glob(os.DirFS(base), rest)
	if err != nil {
		return nil, fmt.Errorf("resolving catalog glob %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no catalog files match %q", pattern)
	}
	sort.Strings(matches)

	seen := make(map[string]bool)
	var products []Product
	for _, m := range matches {
		path := filepath.Join(base, filepath.FromSlash(m))
		doc, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		for _, p := range doc.Products {
			if p.ID == "" || seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			products = append(products, p)
		}
	}
	return products, nil
}

func loadFile(path string) (*catalogDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return &doc, nil
}
