package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/celebration-backend/internal/apperror"
	"github.com/rocketscienceinc/celebration-backend/testing/suite"
)

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) (context.Context, Store) {
		t.Helper()
		return context.Background(), NewMemoryStore()
	})
}

func TestRedisStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) (context.Context, Store) {
		t.Helper()
		ctx, st := suite.New(t)
		return ctx, NewRedisStore(st.Storage)
	})
}

func TestPostgresStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) (context.Context, Store) {
		t.Helper()
		ctx, st := suite.NewPostgres(t)
		return ctx, NewPostgresStore(st.DB)
	})
}

// runStoreContract checks the behavior every Store backend shares.
func runStoreContract(t *testing.T, newStore func(t *testing.T) (context.Context, Store)) {
	t.Helper()

	t.Run("Insert_Find", func(t *testing.T) {
		ctx, store := newStore(t)

		// Given: a stored record
		err := store.Insert(ctx, "photos", Record{"id": "p1", "title": "cake", "likes": []string{}})
		require.NoError(t, err)

		// When: it is looked up by key
		record, err := store.Find(ctx, "photos", "p1")

		// Then: the normalized record is returned
		require.NoError(t, err)
		assert.Equal(t, Record{"id": "p1", "title": "cake", "likes": []any{}}, record)
	})

	t.Run("Insert_Duplicate", func(t *testing.T) {
		ctx, store := newStore(t)

		// Given: a stored record
		require.NoError(t, store.Insert(ctx, "photos", Record{"id": "p1"}))

		// When: a record with the same key is inserted
		err := store.Insert(ctx, "photos", Record{"id": "p1"})

		// Then: ErrAlreadyExists is returned
		require.ErrorIs(t, err, apperror.ErrAlreadyExists)
	})

	t.Run("Insert_MissingKey", func(t *testing.T) {
		ctx, store := newStore(t)

		// When: a record without id is inserted
		err := store.Insert(ctx, "photos", Record{"title": "cake"})

		// Then: ErrInvalidArgument is returned
		require.ErrorIs(t, err, apperror.ErrInvalidArgument)
	})

	t.Run("Find_NotFound", func(t *testing.T) {
		ctx, store := newStore(t)

		// When: a missing key is looked up
		record, err := store.Find(ctx, "photos", "missing")

		// Then: ErrNotFound is returned
		require.ErrorIs(t, err, apperror.ErrNotFound)
		require.ErrorIs(t, err, ErrRecordNotFound)
		assert.Nil(t, record)
	})

	t.Run("UpdateFields", func(t *testing.T) {
		ctx, store := newStore(t)

		// Given: a stored record
		require.NoError(t, store.Insert(ctx, "users", Record{"id": "u1", "name": "alice", "is_online": false}))

		// When: some fields are updated, including an attempt to change the key
		err := store.UpdateFields(ctx, "users", "u1", Record{"id": "u2", "is_online": true, "views": 3})
		require.NoError(t, err)

		// Then: only the given fields change
		record, err := store.Find(ctx, "users", "u1")
		require.NoError(t, err)
		assert.Equal(t, Record{"id": "u1", "name": "alice", "is_online": true, "views": float64(3)}, record)
	})

	t.Run("UpdateFields_NotFound", func(t *testing.T) {
		ctx, store := newStore(t)

		// When: a missing record is updated
		err := store.UpdateFields(ctx, "users", "missing", Record{"is_online": true})

		// Then: ErrNotFound is returned
		require.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("AppendToArrayField", func(t *testing.T) {
		ctx, store := newStore(t)

		// Given: a record with one element in players and no comments
		require.NoError(t, store.Insert(ctx, "games", Record{"id": "g1", "players": []string{"alice"}}))

		// When: elements are appended to an existing and a missing array
		require.NoError(t, store.AppendToArrayField(ctx, "games", "g1", "players", "bob"))
		require.NoError(t, store.AppendToArrayField(ctx, "games", "g1", "comments", map[string]string{"text": "hi"}))

		// Then: both arrays hold the appended elements in order
		record, err := store.Find(ctx, "games", "g1")
		require.NoError(t, err)
		assert.Equal(t, []any{"alice", "bob"}, record["players"])
		assert.Equal(t, []any{map[string]any{"text": "hi"}}, record["comments"])
	})

	t.Run("AppendToArrayField_NotAnArray", func(t *testing.T) {
		ctx, store := newStore(t)

		// Given: a record whose field is a string
		require.NoError(t, store.Insert(ctx, "games", Record{"id": "g1", "status": "waiting"}))

		// When: an element is appended to it
		err := store.AppendToArrayField(ctx, "games", "g1", "status", "x")

		// Then: ErrInvalidArgument is returned and the record is unchanged
		require.ErrorIs(t, err, apperror.ErrInvalidArgument)

		record, err := store.Find(ctx, "games", "g1")
		require.NoError(t, err)
		assert.Equal(t, "waiting", record["status"])
	})

	t.Run("List", func(t *testing.T) {
		ctx, store := newStore(t)

		// Given: records with different statuses and creation times
		records := []Record{
			{"id": "g1", "status": "active", "created_at": "2025-01-01T10:00:00Z"},
			{"id": "g2", "status": "waiting", "created_at": "2025-01-01T11:00:00Z"},
			{"id": "g3", "status": "active", "created_at": "2025-01-01T12:00:00Z"},
			{"id": "g4", "status": "active", "created_at": "2025-01-01T09:00:00Z"},
		}
		for _, record := range records {
			require.NoError(t, store.Insert(ctx, "games", record))
		}

		// When: active records are listed newest first
		listed, err := store.List(ctx, "games", ListQuery{
			Filter:     map[string]any{"status": "active"},
			SortBy:     "created_at",
			Descending: true,
		})

		// Then: only active records are returned in descending order
		require.NoError(t, err)
		assert.Equal(t, []string{"g3", "g1", "g4"}, keysOf(listed))

		// When: the same query is paged
		paged, err := store.List(ctx, "games", ListQuery{
			Filter:     map[string]any{"status": "active"},
			SortBy:     "created_at",
			Descending: true,
			Skip:       1,
			Limit:      1,
		})

		// Then: the second record alone is returned
		require.NoError(t, err)
		assert.Equal(t, []string{"g1"}, keysOf(paged))
	})

	t.Run("List_BoolFilter", func(t *testing.T) {
		ctx, store := newStore(t)

		// Given: approved and pending wishes
		require.NoError(t, store.Insert(ctx, "wishes", Record{"id": "w1", "is_approved": true}))
		require.NoError(t, store.Insert(ctx, "wishes", Record{"id": "w2", "is_approved": false}))

		// When: approved wishes are listed
		listed, err := store.List(ctx, "wishes", ListQuery{Filter: map[string]any{"is_approved": true}})

		// Then: only w1 is returned
		require.NoError(t, err)
		assert.Equal(t, []string{"w1"}, keysOf(listed))
	})

	t.Run("List_EmptyCollection", func(t *testing.T) {
		ctx, store := newStore(t)

		// When: a collection without records is listed
		listed, err := store.List(ctx, "nothing", ListQuery{})

		// Then: an empty slice is returned
		require.NoError(t, err)
		assert.Empty(t, listed)
	})
}

func keysOf(records []Record) []string {
	keys := make([]string, 0, len(records))
	for _, record := range records {
		key, _ := record.Key()
		keys = append(keys, key)
	}

	return keys
}
