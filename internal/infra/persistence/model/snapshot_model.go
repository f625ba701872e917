// Package model contains the GORM-specific table structs.
package model

import "time"

// StateSnapshotModel is the GORM-specific struct for the 'state_snapshots' table.
// Each row stores one whole state tree as JSON under a caller-chosen key.
type StateSnapshotModel struct {
	Key       string    `gorm:"type:varchar(255);primaryKey"`
	Payload   []byte    `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (StateSnapshotModel) TableName() string {
	return "state_snapshots"
}
