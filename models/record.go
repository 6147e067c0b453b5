package models

import "time"

// Record is one keyed catalog blob in the SQL backends.
type Record struct {
	Key       string `gorm:"primaryKey;size:191;column:record_key"`
	Value     string `gorm:"type:text;column:payload"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Record) TableName() string {
	return "catalog_records"
}
