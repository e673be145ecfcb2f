package repository

import (
	"cmp"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"time"
)

// normalize round-trips a value through JSON so every backend compares and
// returns the same shapes (float64 numbers, string times, map[string]any objects).
func normalize(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}

	var normalized any
	if err = json.Unmarshal(data, &normalized); err != nil {
		return nil, fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return normalized, nil
}

// ToRecord converts a struct or map into a normalized Record.
func ToRecord(value any) (Record, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	return decodeRecord(data)
}

// FromRecord decodes a record into target.
func FromRecord(record Record, target any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if err = json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return nil
}

func decodeRecord(data []byte) (Record, error) {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	if record == nil {
		return nil, ErrRecordNotFound
	}

	return record, nil
}

func copyRecord(record Record) (Record, error) {
	return ToRecord(record)
}

func matches(record Record, filter map[string]any) bool {
	for field, want := range filter {
		if !reflect.DeepEqual(record[field], want) {
			return false
		}
	}

	return true
}

func normalizeFilter(filter map[string]any) (map[string]any, error) {
	normalized := make(map[string]any, len(filter))

	for field, value := range filter {
		converted, err := normalize(value)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize filter %q: %w", field, err)
		}

		normalized[field] = converted
	}

	return normalized, nil
}

// applyQuery filters, sorts and pages records in memory. Sorting is stable so
// records without SortBy keep their incoming order.
func applyQuery(records []Record, query ListQuery) ([]Record, error) {
	filter, err := normalizeFilter(query.Filter)
	if err != nil {
		return nil, err
	}

	selected := make([]Record, 0, len(records))
	for _, record := range records {
		if matches(record, filter) {
			selected = append(selected, record)
		}
	}

	if query.SortBy != "" {
		slices.SortStableFunc(selected, func(a, b Record) int {
			result := compareValues(a[query.SortBy], b[query.SortBy])
			if query.Descending {
				return -result
			}

			return result
		})
	}

	return paginate(selected, query.Skip, query.Limit), nil
}

func paginate(records []Record, skip, limit int) []Record {
	if skip >= len(records) {
		return []Record{}
	}

	if skip > 0 {
		records = records[skip:]
	}

	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}

	return records
}

// compareValues orders nil first, then numbers, then times, then other strings.
func compareValues(a, b any) int {
	rankA, rankB := valueRank(a), valueRank(b)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch typed := a.(type) {
	case float64:
		return cmp.Compare(typed, b.(float64)) //nolint: forcetypeassert // same rank
	case bool:
		return compareBool(typed, b.(bool)) //nolint: forcetypeassert // same rank
	case string:
		other := b.(string) //nolint: forcetypeassert // same rank

		timeA, errA := time.Parse(time.RFC3339Nano, typed)
		timeB, errB := time.Parse(time.RFC3339Nano, other)
		if errA == nil && errB == nil {
			return timeA.Compare(timeB)
		}

		return cmp.Compare(typed, other)
	default:
		return 0
	}
}

func valueRank(value any) int {
	switch value.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case float64:
		return 2
	case string:
		return 3
	default:
		return 4
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func appendElement(record Record, field string, element any) error {
	normalized, err := normalize(element)
	if err != nil {
		return err
	}

	switch current := record[field].(type) {
	case nil:
		record[field] = []any{normalized}
	case []any:
		record[field] = append(current, normalized)
	default:
		return fmt.Errorf("%w: %s", ErrNotAnArray, field)
	}

	return nil
}

// mergeFields sets fields on record. The key field is never overwritten and
// nothing is written unless every value normalizes.
func mergeFields(record Record, fields Record) error {
	normalized := make(Record, len(fields))

	for field, value := range fields {
		if field == KeyField {
			continue
		}

		converted, err := normalize(value)
		if err != nil {
			return fmt.Errorf("failed to normalize field %q: %w", field, err)
		}

		normalized[field] = converted
	}

	for field, value := range normalized {
		record[field] = value
	}

	return nil
}
