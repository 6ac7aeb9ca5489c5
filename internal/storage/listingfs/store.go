// Package listingfs implements file-based storage for scraped listing
// documents. Each dataset is one JSON file produced by the collection
// pipeline, shaped {"listings": [...]}.
package listingfs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bobmcallan/rentfolio/internal/common"
	"github.com/bobmcallan/rentfolio/internal/interfaces"
	"github.com/bobmcallan/rentfolio/internal/models"
)

// Store provides file-based JSON storage for listing datasets.
type Store struct {
	basePath string
	logger   *common.Logger
}

// NewStore creates a listing store rooted at path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create listing store path %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("Listing store opened")
	return &Store{basePath: path, logger: logger}, nil
}

// DataPath returns the base data path.
func (s *Store) DataPath() string {
	return s.basePath
}

// GetListings loads and normalizes a dataset. Listings with a non-positive
// price or no id are dropped. A property tax rate absent from the document
// picks up the default during decoding (Listing.UnmarshalJSON).
func (s *Store) GetListings(_ context.Context, dataset string) ([]models.Listing, error) {
	path := filepath.Join(s.basePath, sanitizeKey(dataset)+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("dataset '%s': %w", dataset, interfaces.ErrDatasetNotFound)
		}
		return nil, fmt.Errorf("failed to read dataset '%s': %w", dataset, err)
	}

	var doc models.ListingDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse dataset '%s': %w", dataset, err)
	}

	listings := make([]models.Listing, 0, len(doc.Listings))
	skipped := 0
	for _, l := range doc.Listings {
		if l.Price <= 0 || l.ZPID == "" {
			skipped++
			continue
		}
		listings = append(listings, l)
	}

	if skipped > 0 {
		s.logger.Debug().Str("dataset", dataset).Int("skipped", skipped).Msg("Dropped listings without price or id")
	}
	return listings, nil
}

// SaveListings writes a dataset atomically via a temp file rename.
func (s *Store) SaveListings(_ context.Context, dataset string, listings []models.Listing) error {
	doc := models.ListingDocument{Listings: listings}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset '%s': %w", dataset, err)
	}

	target := filepath.Join(s.basePath, sanitizeKey(dataset)+".json")

	tmpFile, err := os.CreateTemp(s.basePath, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	s.logger.Debug().Str("dataset", dataset).Int("listings", len(listings)).Msg("Dataset saved")
	return nil
}

// ListDatasets returns the dataset names present in the store, sorted.
func (s *Store) ListDatasets(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// sanitizeKey makes a dataset name safe to use as a file name.
func sanitizeKey(key string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", "..", "_", " ", "_")
	return replacer.Replace(key)
}
