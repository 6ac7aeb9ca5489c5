// Package interfaces defines the service and storage contracts for Rentfolio
package interfaces

import (
	"context"
	"errors"

	"github.com/bobmcallan/rentfolio/internal/models"
)

// ErrDatasetNotFound is returned by ListingStorage when the named dataset
// does not exist. Other errors are storage faults.
var ErrDatasetNotFound = errors.New("dataset not found")

// ListingStorage provides access to scraped listing documents. Datasets are
// named collections (typically one per zip code search).
type ListingStorage interface {
	GetListings(ctx context.Context, dataset string) ([]models.Listing, error)
	SaveListings(ctx context.Context, dataset string, listings []models.Listing) error
	ListDatasets(ctx context.Context) ([]string, error)
}

// SnapshotStorage persists analysis snapshots keyed by (zpid, params hash).
type SnapshotStorage interface {
	SaveSnapshot(ctx context.Context, snapshot *models.AnalysisSnapshot) error
	GetSnapshot(ctx context.Context, zpid, paramsHash string) (*models.AnalysisSnapshot, error)
	ListSnapshots(ctx context.Context, zpid string) ([]*models.AnalysisSnapshot, error)
	DeleteSnapshots(ctx context.Context, zpid string) error
}

// StorageManager composes the storage areas.
type StorageManager interface {
	ListingStorage() ListingStorage
	SnapshotStorage() SnapshotStorage
	Close() error
}
