package models

import "time"

// StoreEntry represents the portal_store_entries table
type StoreEntry struct {
	Key       string     `json:"key" gorm:"primaryKey;column:key;size:255"`
	Value     string     `json:"value" gorm:"column:value;type:text"`
	ExpiresAt *time.Time `json:"expires_at" gorm:"column:expires_at;index"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName sets the insert table name for StoreEntry
func (StoreEntry) TableName() string {
	return "portal_store_entries"
}
