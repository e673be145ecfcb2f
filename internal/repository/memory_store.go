package repository

import (
	"context"
	"fmt"
	"sync"
)

type memoryCollection struct {
	records map[string]Record
	order   []string
}

type memoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

// NewMemoryStore returns a process-local Store. Records are copied on the way in
// and out, so callers never share maps with the store.
func NewMemoryStore() Store {
	return &memoryStore{
		collections: make(map[string]*memoryCollection),
	}
}

func (that *memoryStore) collection(name string) *memoryCollection {
	coll, ok := that.collections[name]
	if !ok {
		coll = &memoryCollection{records: make(map[string]Record)}
		that.collections[name] = coll
	}

	return coll
}

// lookup never creates a collection, so it is safe under the read lock.
func (that *memoryStore) lookup(collection, key string) (Record, bool) {
	coll, ok := that.collections[collection]
	if !ok {
		return nil, false
	}

	record, ok := coll.records[key]

	return record, ok
}

func (that *memoryStore) Find(_ context.Context, collection, key string) (Record, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	record, ok := that.lookup(collection, key)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrRecordNotFound, collection, key)
	}

	return copyRecord(record)
}

func (that *memoryStore) Insert(_ context.Context, collection string, record Record) error {
	key, ok := record.Key()
	if !ok {
		return ErrMissingKey
	}

	stored, err := copyRecord(record)
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	coll := that.collection(collection)
	if _, exists := coll.records[key]; exists {
		return fmt.Errorf("%w: %s/%s", ErrRecordExists, collection, key)
	}

	coll.records[key] = stored
	coll.order = append(coll.order, key)

	return nil
}

func (that *memoryStore) UpdateFields(_ context.Context, collection, key string, fields Record) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	record, ok := that.lookup(collection, key)
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, collection, key)
	}

	return mergeFields(record, fields)
}

func (that *memoryStore) AppendToArrayField(_ context.Context, collection, key, field string, element any) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	record, ok := that.lookup(collection, key)
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, collection, key)
	}

	return appendElement(record, field, element)
}

func (that *memoryStore) List(_ context.Context, collection string, query ListQuery) ([]Record, error) {
	that.mu.RLock()
	coll, ok := that.collections[collection]
	if !ok {
		that.mu.RUnlock()
		return []Record{}, nil
	}

	records := make([]Record, 0, len(coll.order))
	for _, key := range coll.order {
		record, err := copyRecord(coll.records[key])
		if err != nil {
			that.mu.RUnlock()
			return nil, err
		}

		records = append(records, record)
	}
	that.mu.RUnlock()

	return applyQuery(records, query)
}
