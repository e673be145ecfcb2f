package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rocketscienceinc/celebration-backend/internal/repository/storage"
)

type postgresStore struct {
	db *gorm.DB
}

// NewPostgresStore keeps records as jsonb rows of the records table.
func NewPostgresStore(db *gorm.DB) Store {
	return &postgresStore{
		db: db,
	}
}

func (that *postgresStore) Find(ctx context.Context, collection, key string) (Record, error) {
	var doc storage.Document

	err := that.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, key).
		Take(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s/%s", ErrRecordNotFound, collection, key)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	return decodeRecord([]byte(doc.Data))
}

func (that *postgresStore) Insert(ctx context.Context, collection string, record Record) error {
	key, ok := record.Key()
	if !ok {
		return ErrMissingKey
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	doc := storage.Document{
		Collection: collection,
		ID:         key,
		Data:       string(data),
	}

	result := that.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&doc)
	if result.Error != nil {
		return fmt.Errorf("failed to insert record: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s/%s", ErrRecordExists, collection, key)
	}

	return nil
}

func (that *postgresStore) UpdateFields(ctx context.Context, collection, key string, fields Record) error {
	return that.modify(ctx, collection, key, func(record Record) error {
		return mergeFields(record, fields)
	})
}

func (that *postgresStore) AppendToArrayField(ctx context.Context, collection, key, field string, element any) error {
	return that.modify(ctx, collection, key, func(record Record) error {
		return appendElement(record, field, element)
	})
}

// List pushes the equality filter into SQL and sorts the rows in process.
func (that *postgresStore) List(ctx context.Context, collection string, query ListQuery) ([]Record, error) {
	stmt := that.db.WithContext(ctx).
		Model(&storage.Document{}).
		Where("collection = ?", collection).
		Order("created_at")

	for field, value := range query.Filter {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal filter %q: %w", field, err)
		}

		stmt = stmt.Where("data -> CAST(? AS text) = CAST(? AS jsonb)", field, string(encoded))
	}

	var docs []storage.Document
	if err := stmt.Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	records := make([]Record, 0, len(docs))
	for _, doc := range docs {
		record, err := decodeRecord([]byte(doc.Data))
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return applyQuery(records, query)
}

// modify runs a read-modify-write of one record inside a row-locking transaction.
func (that *postgresStore) modify(ctx context.Context, collection, key string, change func(Record) error) error {
	return that.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doc storage.Document

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND id = ?", collection, key).
			Take(&doc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, collection, key)
		}

		if err != nil {
			return fmt.Errorf("failed to lock record: %w", err)
		}

		record, err := decodeRecord([]byte(doc.Data))
		if err != nil {
			return err
		}

		if err = change(record); err != nil {
			return err
		}

		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}

		err = tx.Model(&storage.Document{}).
			Where("collection = ? AND id = ?", collection, key).
			Update("data", string(data)).Error
		if err != nil {
			return fmt.Errorf("failed to update record: %w", err)
		}

		return nil
	})
}
