package storage

import "foreclosure-scraper/models"

// Record is one row of the hosted sales table, addressed by an opaque id.
type Record struct {
	ID     string
	Fields map[string]any
}

// RecordStore is the contract the upsert logic requires of the hosted table.
type RecordStore interface {
	ListRecords() ([]Record, error)
	CreateRecord(fields map[string]any) (Record, error)
	UpdateRecord(id string, fields map[string]any) (Record, error)
}

// RecordWriter is the interface any local snapshot backend must satisfy.
type RecordWriter interface {
	Write(records []*models.PropertyRecord) error
	Close() error
}
