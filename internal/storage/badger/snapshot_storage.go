package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/rentfolio/internal/common"
	"github.com/bobmcallan/rentfolio/internal/models"
)

type snapshotStorage struct {
	store  *Store
	logger *common.Logger
}

// NewSnapshotStorage creates a SnapshotStorage backed by BadgerHold.
func NewSnapshotStorage(store *Store, logger *common.Logger) *snapshotStorage {
	return &snapshotStorage{store: store, logger: logger}
}

func (s *snapshotStorage) SaveSnapshot(_ context.Context, snapshot *models.AnalysisSnapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = models.SnapshotKey(snapshot.ZPID, snapshot.ParamsHash)
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now()
	}

	if err := s.store.db.Upsert(snapshot.ID, snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot '%s': %w", snapshot.ID, err)
	}
	s.logger.Debug().Str("zpid", snapshot.ZPID).Str("params", snapshot.ParamsHash).Msg("Snapshot saved")
	return nil
}

func (s *snapshotStorage) GetSnapshot(_ context.Context, zpid, paramsHash string) (*models.AnalysisSnapshot, error) {
	key := models.SnapshotKey(zpid, paramsHash)

	var snapshot models.AnalysisSnapshot
	err := s.store.db.Get(key, &snapshot)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("snapshot '%s' not found", key)
		}
		return nil, fmt.Errorf("failed to get snapshot '%s': %w", key, err)
	}
	return &snapshot, nil
}

func (s *snapshotStorage) ListSnapshots(_ context.Context, zpid string) ([]*models.AnalysisSnapshot, error) {
	var snapshots []*models.AnalysisSnapshot
	if err := s.store.db.Find(&snapshots, badgerhold.Where("ZPID").Eq(zpid).Index("ZPID")); err != nil {
		return nil, fmt.Errorf("failed to list snapshots for '%s': %w", zpid, err)
	}
	return snapshots, nil
}

func (s *snapshotStorage) DeleteSnapshots(_ context.Context, zpid string) error {
	err := s.store.db.DeleteMatching(&models.AnalysisSnapshot{}, badgerhold.Where("ZPID").Eq(zpid).Index("ZPID"))
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete snapshots for '%s': %w", zpid, err)
	}
	s.logger.Debug().Str("zpid", zpid).Msg("Snapshots deleted")
	return nil
}
