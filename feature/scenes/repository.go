package scenes

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSnapshotNotFound is returned by a Repository when a room has no snapshot.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Repository persists scene snapshots, one row per room.
type Repository interface {
	// Fetch returns the snapshot of a room or ErrSnapshotNotFound.
	Fetch(ctx context.Context, roomID string) (*Snapshot, error)
	// Upsert replaces the snapshot of a room in a single statement.
	Upsert(ctx context.Context, snapshot *Snapshot) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a Repository backed by gorm.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// AutoMigrate creates or updates the scenes table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Snapshot{})
}

func (r *gormRepository) Fetch(ctx context.Context, roomID string) (*Snapshot, error) {
	var snapshot Snapshot
	err := r.db.WithContext(ctx).Where("id = ?", roomID).Take(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Upsert has no compare-and-swap guard: concurrent saves to one room are last
// writer wins. A conditional update on the expected scene_version would go here.
func (r *gormRepository) Upsert(ctx context.Context, snapshot *Snapshot) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"scene_version", "iv", "ciphertext", "updated_at"}),
	}).Create(snapshot).Error
}
