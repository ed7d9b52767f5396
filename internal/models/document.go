package models

import "time"

// Document is one row of the SQL document store.
type Document struct {
	Collection string `gorm:"primaryKey;size:64"`
	Key        string `gorm:"column:doc_key;primaryKey;size:255"`
	Data       string `gorm:"type:text;not null"`

	UpdatedAt time.Time
}

func (Document) TableName() string {
	return "documents"
}
