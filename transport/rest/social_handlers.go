package rest

import (
	"net/http"

	"github.com/rocketscienceinc/celebration-backend/internal/entity"
)

type commentRequest struct {
	Comment string `json:"comment"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (that *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "CreateUser")

	var req entity.UserCreate
	if err := decodeBody(r, &req); err != nil {
		respondError(w, log, err)
		return
	}

	user, err := that.Users.CreateUser(r.Context(), req)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (that *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GetUser")

	user, err := that.Users.GetUser(r.Context(), pathID(r))
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (that *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "UpdateUser")

	var update entity.UserUpdate
	if err := decodeBody(r, &update); err != nil {
		respondError(w, log, err)
		return
	}

	user, err := that.Users.UpdateUser(r.Context(), pathID(r), update)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (that *Handlers) ListOnlineUsers(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ListOnlineUsers")

	users, err := that.Users.ListOnline(r.Context())
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, users)
}

func (that *Handlers) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "UploadPhoto")

	userID, err := requiredQuery(r, "user_id")
	if err != nil {
		respondError(w, log, err)
		return
	}

	var req entity.PhotoCreate
	if err = decodeBody(r, &req); err != nil {
		respondError(w, log, err)
		return
	}

	photo, err := that.Photos.UploadPhoto(r.Context(), userID, req)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, photo)
}

// ListPhotos handles GET /api/photos?skip=&limit=&featured_only=.
func (that *Handlers) ListPhotos(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ListPhotos")

	skip, limit, err := paging(r)
	if err != nil {
		respondError(w, log, err)
		return
	}

	featuredOnly, err := boolQuery(r, "featured_only")
	if err != nil {
		respondError(w, log, err)
		return
	}

	photos, err := that.Photos.ListPhotos(r.Context(), skip, limit, featuredOnly)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, photos)
}

func (that *Handlers) GetPhoto(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GetPhoto")

	photo, err := that.Photos.GetPhoto(r.Context(), pathID(r))
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, photo)
}

func (that *Handlers) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "UpdatePhoto")

	var update entity.PhotoUpdate
	if err := decodeBody(r, &update); err != nil {
		respondError(w, log, err)
		return
	}

	photo, err := that.Photos.UpdatePhoto(r.Context(), pathID(r), update)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, photo)
}

func (that *Handlers) LikePhoto(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "LikePhoto")

	userID, err := requiredQuery(r, "user_id")
	if err != nil {
		respondError(w, log, err)
		return
	}

	result, err := that.Photos.ToggleLike(r.Context(), pathID(r), userID)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (that *Handlers) CommentPhoto(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "CommentPhoto")

	userID, err := requiredQuery(r, "user_id")
	if err != nil {
		respondError(w, log, err)
		return
	}

	var req commentRequest
	if err = decodeBody(r, &req); err != nil {
		respondError(w, log, err)
		return
	}

	comment, err := that.Photos.AddComment(r.Context(), pathID(r), userID, req.Comment)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, comment)
}

func (that *Handlers) UploadVideo(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "UploadVideo")

	userID, err := requiredQuery(r, "user_id")
	if err != nil {
		respondError(w, log, err)
		return
	}

	var req entity.VideoCreate
	if err = decodeBody(r, &req); err != nil {
		respondError(w, log, err)
		return
	}

	video, err := that.Videos.UploadVideo(r.Context(), userID, req)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, video)
}

func (that *Handlers) ListVideos(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ListVideos")

	skip, limit, err := paging(r)
	if err != nil {
		respondError(w, log, err)
		return
	}

	videos, err := that.Videos.ListVideos(r.Context(), skip, limit)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, videos)
}

func (that *Handlers) GetVideo(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GetVideo")

	video, err := that.Videos.WatchVideo(r.Context(), pathID(r))
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, video)
}

func (that *Handlers) LikeVideo(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "LikeVideo")

	userID, err := requiredQuery(r, "user_id")
	if err != nil {
		respondError(w, log, err)
		return
	}

	result, err := that.Videos.ToggleLike(r.Context(), pathID(r), userID)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (that *Handlers) CreateWish(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "CreateWish")

	userID, err := requiredQuery(r, "user_id")
	if err != nil {
		respondError(w, log, err)
		return
	}

	var req entity.WishCreate
	if err = decodeBody(r, &req); err != nil {
		respondError(w, log, err)
		return
	}

	wish, err := that.Wishes.CreateWish(r.Context(), userID, req)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, wish)
}

func (that *Handlers) ListWishes(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ListWishes")

	skip, limit, err := paging(r)
	if err != nil {
		respondError(w, log, err)
		return
	}

	wishes, err := that.Wishes.ListWishes(r.Context(), skip, limit)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, wishes)
}

func (that *Handlers) LikeWish(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "LikeWish")

	userID, err := requiredQuery(r, "user_id")
	if err != nil {
		respondError(w, log, err)
		return
	}

	result, err := that.Wishes.ToggleLike(r.Context(), pathID(r), userID)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (that *Handlers) CreateWatchSession(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "CreateWatchSession")

	hostID, err := requiredQuery(r, "host_id")
	if err != nil {
		respondError(w, log, err)
		return
	}

	var req entity.WatchSessionCreate
	if err = decodeBody(r, &req); err != nil {
		respondError(w, log, err)
		return
	}

	session, err := that.Watch.CreateSession(r.Context(), hostID, req)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (that *Handlers) GetWatchSession(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GetWatchSession")

	session, err := that.Watch.GetSession(r.Context(), pathID(r))
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (that *Handlers) JoinWatchSession(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "JoinWatchSession")

	userID, err := requiredQuery(r, "user_id")
	if err != nil {
		respondError(w, log, err)
		return
	}

	status, err := that.Watch.JoinSession(r.Context(), pathID(r), userID)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, statusResponse{Status: status})
}

func (that *Handlers) ControlWatchSession(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ControlWatchSession")

	userID, err := requiredQuery(r, "user_id")
	if err != nil {
		respondError(w, log, err)
		return
	}

	var control entity.WatchControl
	if err = decodeBody(r, &control); err != nil {
		respondError(w, log, err)
		return
	}

	session, err := that.Watch.Control(r.Context(), pathID(r), userID, control)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (that *Handlers) ChatWatchSession(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ChatWatchSession")

	userID, err := requiredQuery(r, "user_id")
	if err != nil {
		respondError(w, log, err)
		return
	}

	var req chatRequest
	if err = decodeBody(r, &req); err != nil {
		respondError(w, log, err)
		return
	}

	message, err := that.Watch.Chat(r.Context(), pathID(r), userID, req.Message)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, message)
}

// InitiateCall handles POST /api/video-call/initiate?caller_id=&callee_id=.
func (that *Handlers) InitiateCall(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "InitiateCall")

	callerID, err := requiredQuery(r, "caller_id")
	if err != nil {
		respondError(w, log, err)
		return
	}

	calleeID, err := requiredQuery(r, "callee_id")
	if err != nil {
		respondError(w, log, err)
		return
	}

	call, err := that.Calls.InitiateCall(r.Context(), callerID, calleeID)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, call)
}

func (that *Handlers) AnswerCall(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "AnswerCall")

	userID, err := requiredQuery(r, "user_id")
	if err != nil {
		respondError(w, log, err)
		return
	}

	accept, err := boolQuery(r, "accept")
	if err != nil {
		respondError(w, log, err)
		return
	}

	call, err := that.Calls.AnswerCall(r.Context(), pathID(r), userID, accept)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, call)
}

func (that *Handlers) EndCall(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "EndCall")

	userID, err := requiredQuery(r, "user_id")
	if err != nil {
		respondError(w, log, err)
		return
	}

	call, err := that.Calls.EndCall(r.Context(), pathID(r), userID)
	if err != nil {
		respondError(w, log, err)
		return
	}

	respondJSON(w, http.StatusOK, call)
}
