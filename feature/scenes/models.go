package scenes

import "time"

// Snapshot is the persisted, encrypted state of one room.
// IV and Ciphertext are base64 encoded.
type Snapshot struct {
	ID           string    `gorm:"column:id;primaryKey;size:255" json:"id"`
	SceneVersion int64     `gorm:"column:scene_version;not null" json:"sceneVersion"`
	IV           string    `gorm:"column:iv;size:64;not null" json:"iv"`
	Ciphertext   string    `gorm:"column:ciphertext;size:16777217;not null" json:"ciphertext"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName overrides the table name used by Snapshot.
func (Snapshot) TableName() string {
	return "scenes"
}
