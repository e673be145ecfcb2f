package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const maxTxRetries = 10

var errTxRetriesExceeded = errors.New("redis transaction retries exceeded")

type redisStore struct {
	client *redis.Client
}

// NewRedisStore keeps every record as a JSON string under "{collection}:{id}"
// and the insertion order of a collection in the sorted set "{collection}:index".
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{
		client: client,
	}
}

func recordKey(collection, key string) string {
	return collection + ":" + key
}

func indexKey(collection string) string {
	return collection + ":index"
}

func (that *redisStore) Find(ctx context.Context, collection, key string) (Record, error) {
	response, err := that.client.Get(ctx, recordKey(collection, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s/%s", ErrRecordNotFound, collection, key)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	return decodeRecord(response)
}

func (that *redisStore) Insert(ctx context.Context, collection string, record Record) error {
	key, ok := record.Key()
	if !ok {
		return ErrMissingKey
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	docKey := recordKey(collection, key)

	return that.transaction(ctx, docKey, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, docKey).Result()
		if err != nil {
			return fmt.Errorf("failed to check record: %w", err)
		}

		if exists > 0 {
			return fmt.Errorf("%w: %s/%s", ErrRecordExists, collection, key)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, docKey, data, 0)
			pipe.ZAdd(ctx, indexKey(collection), redis.Z{
				Score:  float64(time.Now().UnixMicro()),
				Member: key,
			})

			return nil
		})

		return err
	})
}

func (that *redisStore) UpdateFields(ctx context.Context, collection, key string, fields Record) error {
	return that.modify(ctx, collection, key, func(record Record) error {
		return mergeFields(record, fields)
	})
}

func (that *redisStore) AppendToArrayField(ctx context.Context, collection, key, field string, element any) error {
	return that.modify(ctx, collection, key, func(record Record) error {
		return appendElement(record, field, element)
	})
}

func (that *redisStore) List(ctx context.Context, collection string, query ListQuery) ([]Record, error) {
	keys, err := that.client.ZRange(ctx, indexKey(collection), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	if len(keys) == 0 {
		return []Record{}, nil
	}

	docKeys := make([]string, 0, len(keys))
	for _, key := range keys {
		docKeys = append(docKeys, recordKey(collection, key))
	}

	values, err := that.client.MGet(ctx, docKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get records: %w", err)
	}

	records := make([]Record, 0, len(values))
	for _, value := range values {
		data, ok := value.(string)
		if !ok {
			continue
		}

		record, err := decodeRecord([]byte(data))
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return applyQuery(records, query)
}

// modify runs a read-modify-write of one record under WATCH.
func (that *redisStore) modify(ctx context.Context, collection, key string, change func(Record) error) error {
	docKey := recordKey(collection, key)

	return that.transaction(ctx, docKey, func(tx *redis.Tx) error {
		response, err := tx.Get(ctx, docKey).Bytes()
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, collection, key)
		}

		if err != nil {
			return fmt.Errorf("failed to get record: %w", err)
		}

		record, err := decodeRecord(response)
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

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, docKey, data, 0)
			return nil
		})

		return err
	})
}

func (that *redisStore) transaction(ctx context.Context, docKey string, fn func(tx *redis.Tx) error) error {
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := that.client.Watch(ctx, fn, docKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		if err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}

		return nil
	}

	return fmt.Errorf("%w: %s", errTxRetriesExceeded, docKey)
}
