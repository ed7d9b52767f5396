package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/material-rental/internal/models"
)

// GormStore keeps documents in a single SQL table, one row per
// (collection, key), the JSON body stored as text.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, collection, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	var doc models.Document
	err := s.db.WithContext(ctx).
		Where("collection = ? AND doc_key = ?", collection, key).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("gorm get %s/%s: %w", collection, key, err)
	}
	return []byte(doc.Data), nil
}

func (s *GormStore) List(ctx context.Context, collection string) ([]Document, error) {
	var rows []models.Document
	if err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("doc_key ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("gorm list %s: %w", collection, err)
	}

	docs := make([]Document, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, Document{Key: r.Key, Data: []byte(r.Data)})
	}
	return docs, nil
}

func (s *GormStore) Set(ctx context.Context, collection, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := upsert(s.db.WithContext(ctx), collection, key, data); err != nil {
		return fmt.Errorf("gorm set %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, collection, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).
		Where("collection = ? AND doc_key = ?", collection, key).
		Delete(&models.Document{}).Error; err != nil {
		return fmt.Errorf("gorm delete %s/%s: %w", collection, key, err)
	}
	return nil
}

const maxUpdateAttempts = 3

var errInsertRaced = errors.New("docstore: concurrent insert")

// Update locks the row with SELECT ... FOR UPDATE for the duration of fn.
// A missing row cannot be locked: when another writer inserts it first, the
// attempt commits nothing and fn runs again against the stored row.
func (s *GormStore) Update(ctx context.Context, collection, key string, fn UpdateFunc) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		result, raced, err := s.updateOnce(ctx, collection, key, fn)
		if err != nil {
			return nil, fmt.Errorf("gorm update %s/%s: %w", collection, key, err)
		}
		if !raced {
			return result, nil
		}
		if attempt == maxUpdateAttempts {
			return nil, fmt.Errorf("gorm update %s/%s: %w", collection, key, errInsertRaced)
		}
	}
}

func (s *GormStore) updateOnce(
	ctx context.Context,
	collection, key string,
	fn UpdateFunc,
) ([]byte, bool, error) {

	var (
		result []byte
		raced  bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doc models.Document
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND doc_key = ?", collection, key).
			First(&doc).Error

		var current []byte
		switch {
		case err == nil:
			current = []byte(doc.Data)
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return err
		}

		next, err := fn(current)
		if errors.Is(err, ErrAbort) {
			result = current
			return nil
		}
		if err != nil {
			return err
		}

		if next == nil {
			result = nil
			return tx.
				Where("collection = ? AND doc_key = ?", collection, key).
				Delete(&models.Document{}).Error
		}

		result = next
		if current != nil {
			return upsert(tx, collection, key, next)
		}

		inserted, err := insertIfAbsent(tx, collection, key, next)
		if err != nil {
			return err
		}
		raced = !inserted
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return result, raced, nil
}

func newDocument(collection, key string, data []byte) models.Document {
	return models.Document{
		Collection: collection,
		Key:        key,
		Data:       string(data),
		UpdatedAt:  time.Now().UTC(),
	}
}

func upsert(tx *gorm.DB, collection, key string, data []byte) error {
	doc := newDocument(collection, key, data)
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&doc).Error
}

// insertIfAbsent reports false when the row already exists, leaving it as is.
func insertIfAbsent(tx *gorm.DB, collection, key string, data []byte) (bool, error) {
	doc := newDocument(collection, key, data)
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_key"}},
		DoNothing: true,
	}).Create(&doc)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
