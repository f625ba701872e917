package postgres

import (
	"context"
	"encoding/json"
	"time"

	"novasalud/internal/domain/entity"
	"novasalud/internal/domain/repository"
	"novasalud/internal/errors"
	"novasalud/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type snapshotStore struct {
	db  *gorm.DB
	key string
	now func() time.Time
}

// NewSnapshotStore creates the state_snapshots table if needed and returns a store bound to one row key.
func NewSnapshotStore(ctx context.Context, db *gorm.DB, key string) (repository.SnapshotStore, error) {
	if err := db.WithContext(ctx).AutoMigrate(&model.StateSnapshotModel{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate state_snapshots")
	}

	return &snapshotStore{db: db, key: key, now: time.Now}, nil
}

func (s *snapshotStore) Load(ctx context.Context) (*entity.Snapshot, error) {
	var row model.StateSnapshotModel
	if err := s.db.WithContext(ctx).Where("key = ?", s.key).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSnapshotNotFound
		}

		return nil, errors.Wrapf(err, "failed to read snapshot %q", s.key)
	}

	snapshot := new(entity.Snapshot)
	if err := json.Unmarshal(row.Payload, snapshot); err != nil {
		return nil, errors.Wrapf(err, "failed to decode snapshot %q", s.key)
	}

	return snapshot, nil
}

func (s *snapshotStore) Save(ctx context.Context, snapshot *entity.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(err, "failed to encode snapshot")
	}

	row := &model.StateSnapshotModel{
		Key:       s.key,
		Payload:   payload,
		UpdatedAt: s.now(),
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(row).Error
	if err != nil {
		return errors.Wrapf(err, "failed to write snapshot %q", s.key)
	}

	return nil
}

// Close is a no-op; the connection pool is closed by the lifecycle hook registered in New.
func (s *snapshotStore) Close() error {
	return nil
}
