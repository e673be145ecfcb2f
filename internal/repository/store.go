package repository

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/celebration-backend/internal/apperror"
)

// KeyField is the record field every store indexes by.
const KeyField = "id"

var (
	ErrRecordNotFound = fmt.Errorf("record %w", apperror.ErrNotFound)
	ErrRecordExists   = fmt.Errorf("record %w", apperror.ErrAlreadyExists)
	ErrNotAnArray     = fmt.Errorf("%w: field is not an array", apperror.ErrInvalidArgument)
	ErrMissingKey     = fmt.Errorf("%w: record has no %q", apperror.ErrInvalidArgument, KeyField)
)

// Record is a JSON document keyed by its "id" field.
type Record map[string]any

func (that Record) Key() (string, bool) {
	key, ok := that[KeyField].(string)
	return key, ok && key != ""
}

type ListQuery struct {
	// Filter matches records whose fields equal every given value.
	Filter     map[string]any
	SortBy     string
	Descending bool
	Skip       int
	// Limit of 0 means no limit.
	Limit int
}

// Store is the document persistence collaborator. Implementations must be safe
// for concurrent use; each verb is atomic on its own.
type Store interface {
	Find(ctx context.Context, collection, key string) (Record, error)
	Insert(ctx context.Context, collection string, record Record) error
	UpdateFields(ctx context.Context, collection, key string, fields Record) error
	AppendToArrayField(ctx context.Context, collection, key, field string, element any) error
	List(ctx context.Context, collection string, query ListQuery) ([]Record, error)
}
