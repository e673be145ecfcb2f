package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/celebration-backend/internal/entity"
	"github.com/rocketscienceinc/celebration-backend/internal/notify"
	"github.com/rocketscienceinc/celebration-backend/internal/repository"
	"github.com/rocketscienceinc/celebration-backend/internal/service"
	"github.com/rocketscienceinc/celebration-backend/internal/usecase"
)

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewMemoryStore()
	hub := notify.NewHub(logger, nil)

	users := repository.NewCollection[entity.User](store, repository.UserCollection)

	handlers := NewHandlers(logger, Services{
		Games:  usecase.NewGameManager(logger, repository.NewGameRepository(store), hub, false),
		Users:  service.NewUserService(users),
		Photos: service.NewPhotoService(repository.NewCollection[entity.Photo](store, repository.PhotoCollection), hub),
		Videos: service.NewVideoService(repository.NewCollection[entity.Video](store, repository.VideoCollection), hub),
		Wishes: service.NewWishService(logger, repository.NewCollection[entity.BirthdayWish](store, repository.WishCollection), users, hub),
		Watch:  service.NewWatchService(repository.NewCollection[entity.WatchSession](store, repository.WatchSessionCollection), hub),
		Calls:  service.NewCallService(repository.NewCollection[entity.VideoCall](store, repository.VideoCallCollection), hub),
	})

	server := httptest.NewServer(NewRouter(handlers, nil))
	t.Cleanup(server.Close)

	return server
}

// call sends a request and decodes the JSON answer into a generic map or slice.
func call(t *testing.T, server *httptest.Server, method, path string, body any) (int, any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, server.URL+path, reader)
	require.NoError(t, err)

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))

	return resp.StatusCode, decoded
}

func object(t *testing.T, value any) map[string]any {
	t.Helper()

	result, ok := value.(map[string]any)
	require.True(t, ok, "expected a JSON object, got %T", value)

	return result
}

func TestAPI_Ping(t *testing.T) {
	server := newTestAPI(t)

	status, body := call(t, server, http.MethodGet, "/api/", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apiVersion, object(t, body)["version"])
}

func TestAPI_Liveness(t *testing.T) {
	server := newTestAPI(t)

	resp, err := server.Client().Get(server.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
}

func TestAPI_GameFlow(t *testing.T) {
	// Given: alice creates a tic-tac-hearts game and bob joins
	server := newTestAPI(t)

	status, body := call(t, server, http.MethodPost, "/api/games/create?game_type=tic_tac_hearts&player_id=alice", nil)
	require.Equal(t, http.StatusOK, status)

	game := object(t, body)
	gameID, _ := game["id"].(string)
	require.NotEmpty(t, gameID)
	assert.Equal(t, entity.StatusWaiting, game["status"])

	status, body = call(t, server, http.MethodPost, "/api/games/"+gameID+"/join?player_id=bob", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"status": "joined", "game_status": entity.StatusActive}, body)

	// When: alice plays the center cell
	status, body = call(t, server, http.MethodPost, "/api/games/"+gameID+"/move", map[string]any{
		"game_id":   gameID,
		"player_id": "alice",
		"move_data": map[string]any{"row": 1, "col": 1},
	})

	// Then: the move lands and nobody has won yet
	require.Equal(t, http.StatusOK, status)

	move := object(t, body)
	assert.Equal(t, "success", move["status"])
	assert.Equal(t, entity.StatusActive, move["game_status"])
	assert.Nil(t, move["winner"])

	state := object(t, move["game_state"])
	board, ok := state["board"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"", "❤️", ""}, board[1])

	// When: the game is read back and listed
	status, body = call(t, server, http.MethodGet, "/api/games/"+gameID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"alice", "bob"}, object(t, body)["players"])

	status, body = call(t, server, http.MethodGet, "/api/games", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body, 1)
}

func TestAPI_GameErrors(t *testing.T) {
	server := newTestAPI(t)

	t.Run("Unknown game type", func(t *testing.T) {
		status, _ := call(t, server, http.MethodPost, "/api/games/create?game_type=chess&player_id=alice", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Missing player", func(t *testing.T) {
		status, _ := call(t, server, http.MethodPost, "/api/games/create?game_type=tic_tac_hearts", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Unknown game", func(t *testing.T) {
		status, body := call(t, server, http.MethodGet, "/api/games/missing", nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.NotEmpty(t, object(t, body)["detail"])
	})

	t.Run("Move by an outsider", func(t *testing.T) {
		_, body := call(t, server, http.MethodPost, "/api/games/create?game_type=tic_tac_hearts&player_id=alice", nil)
		gameID, _ := object(t, body)["id"].(string)

		status, _ := call(t, server, http.MethodPost, "/api/games/"+gameID+"/move", map[string]any{
			"player_id": "mallory",
			"move_data": map[string]any{"row": 0, "col": 0},
		})
		assert.Equal(t, http.StatusForbidden, status)
	})
}

func TestAPI_Users(t *testing.T) {
	// Given: a registered user
	server := newTestAPI(t)

	status, body := call(t, server, http.MethodPost, "/api/users", map[string]any{
		"email":        "anna@example.com",
		"display_name": "Anna",
		"role":         entity.RoleWife,
	})
	require.Equal(t, http.StatusOK, status)
	userID, _ := object(t, body)["id"].(string)

	// When: the same email registers again
	status, _ = call(t, server, http.MethodPost, "/api/users", map[string]any{
		"email":        "anna@example.com",
		"display_name": "Anna",
	})

	// Then: it conflicts
	assert.Equal(t, http.StatusConflict, status)

	// When: the user is renamed
	status, body = call(t, server, http.MethodPut, "/api/users/"+userID, map[string]any{"display_name": "Annie"})

	// Then: the new name is returned
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Annie", object(t, body)["display_name"])

	status, body = call(t, server, http.MethodGet, "/api/users/online", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body)
}

func TestAPI_Photos(t *testing.T) {
	// Given: an uploaded photo
	server := newTestAPI(t)

	status, body := call(t, server, http.MethodPost, "/api/photos/upload?user_id=anna", map[string]any{
		"title":      "Beach",
		"image_data": "aGVsbG8=",
		"mime_type":  "image/png",
	})
	require.Equal(t, http.StatusOK, status)
	photoID, _ := object(t, body)["id"].(string)

	// When: it is liked and commented
	status, body = call(t, server, http.MethodPost, "/api/photos/"+photoID+"/like?user_id=ben", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"status": entity.LikeStatusLiked, "total_likes": float64(1)}, body)

	status, _ = call(t, server, http.MethodPost, "/api/photos/"+photoID+"/comment?user_id=ben", map[string]any{"comment": "lovely"})
	require.Equal(t, http.StatusOK, status)

	// Then: the photo carries both
	status, body = call(t, server, http.MethodGet, "/api/photos/"+photoID, nil)
	require.Equal(t, http.StatusOK, status)

	photo := object(t, body)
	assert.Equal(t, []any{"ben"}, photo["likes"])
	assert.Len(t, photo["comments"], 1)

	status, _ = call(t, server, http.MethodPost, "/api/photos/missing/comment?user_id=ben", map[string]any{"comment": "hi"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, server, http.MethodGet, "/api/photos?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_VideoCall(t *testing.T) {
	// Given: anna calls ben
	server := newTestAPI(t)

	status, body := call(t, server, http.MethodPost, "/api/video-call/initiate?caller_id=anna&callee_id=ben", nil)
	require.Equal(t, http.StatusOK, status)
	callID, _ := object(t, body)["id"].(string)

	// When: anna tries to answer her own call
	status, _ = call(t, server, http.MethodPost, "/api/video-call/"+callID+"/answer?user_id=anna&accept=true", nil)

	// Then: it is forbidden
	assert.Equal(t, http.StatusForbidden, status)

	// When: ben accepts and then hangs up
	status, body = call(t, server, http.MethodPost, "/api/video-call/"+callID+"/answer?user_id=ben&accept=true", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.CallStatusActive, object(t, body)["status"])

	status, body = call(t, server, http.MethodPost, "/api/video-call/"+callID+"/end?user_id=ben", nil)

	// Then: the call is over
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.CallStatusEnded, object(t, body)["status"])
}
