package repository

import (
	"context"
	"fmt"
)

const (
	UserCollection         = "users"
	PhotoCollection        = "photos"
	VideoCollection        = "videos"
	WishCollection         = "birthday_wishes"
	WatchSessionCollection = "watch_sessions"
	VideoCallCollection    = "video_calls"
)

// Collection is a typed view of one store collection. T must marshal to a JSON
// object with an "id" field.
type Collection[T any] struct {
	store Store
	name  string
}

func NewCollection[T any](store Store, name string) *Collection[T] {
	return &Collection[T]{
		store: store,
		name:  name,
	}
}

func (that *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	record, err := that.store.Find(ctx, that.name, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", that.name, err)
	}

	var item T
	if err = FromRecord(record, &item); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", that.name, err)
	}

	return &item, nil
}

func (that *Collection[T]) Insert(ctx context.Context, item *T) error {
	record, err := ToRecord(item)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", that.name, err)
	}

	if err = that.store.Insert(ctx, that.name, record); err != nil {
		return fmt.Errorf("failed to insert %s: %w", that.name, err)
	}

	return nil
}

func (that *Collection[T]) Update(ctx context.Context, id string, fields Record) error {
	if err := that.store.UpdateFields(ctx, that.name, id, fields); err != nil {
		return fmt.Errorf("failed to update %s: %w", that.name, err)
	}

	return nil
}

func (that *Collection[T]) Push(ctx context.Context, id, field string, element any) error {
	if err := that.store.AppendToArrayField(ctx, that.name, id, field, element); err != nil {
		return fmt.Errorf("failed to append to %s.%s: %w", that.name, field, err)
	}

	return nil
}

func (that *Collection[T]) List(ctx context.Context, query ListQuery) ([]*T, error) {
	records, err := that.store.List(ctx, that.name, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", that.name, err)
	}

	items := make([]*T, 0, len(records))
	for _, record := range records {
		var item T
		if err = FromRecord(record, &item); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", that.name, err)
		}

		items = append(items, &item)
	}

	return items, nil
}
