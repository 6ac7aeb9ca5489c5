// Package storage composes the Rentfolio storage areas: file-based listing
// datasets and a BadgerHold snapshot store.
package storage

import (
	"fmt"

	"github.com/bobmcallan/rentfolio/internal/common"
	"github.com/bobmcallan/rentfolio/internal/interfaces"
	"github.com/bobmcallan/rentfolio/internal/storage/badger"
	"github.com/bobmcallan/rentfolio/internal/storage/listingfs"
)

// Manager implements interfaces.StorageManager.
type Manager struct {
	listings  interfaces.ListingStorage
	snapshots interfaces.SnapshotStorage
	badger    *badger.Store
	logger    *common.Logger
}

// NewManager opens both storage areas from config.
func NewManager(cfg *common.Config, logger *common.Logger) (*Manager, error) {
	listingStore, err := listingfs.NewStore(logger, cfg.Storage.Listings.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open listing store: %w", err)
	}

	badgerStore, err := badger.NewStore(logger, cfg.Storage.Snapshots.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}

	return &Manager{
		listings:  listingStore,
		snapshots: badger.NewSnapshotStorage(badgerStore, logger),
		badger:    badgerStore,
		logger:    logger,
	}, nil
}

// ListingStorage returns the listing storage area.
func (m *Manager) ListingStorage() interfaces.ListingStorage {
	return m.listings
}

// SnapshotStorage returns the snapshot storage area.
func (m *Manager) SnapshotStorage() interfaces.SnapshotStorage {
	return m.snapshots
}

// Close releases storage resources.
func (m *Manager) Close() error {
	if m.badger != nil {
		return m.badger.Close()
	}
	return nil
}
