package models

import "time"

// StateEntry holds one persisted JSON blob keyed by its session-scoped name.
type StateEntry struct {
	Key       string    `gorm:"column:state_key;primaryKey"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (StateEntry) TableName() string { return "state_entries" }
