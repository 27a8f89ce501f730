package handlers

import (
	"net/http"

	"github.com/baechuer/vidshare/internal/application/tweet"
	"github.com/baechuer/vidshare/internal/transport/http/dto"
	"github.com/baechuer/vidshare/internal/transport/http/middleware"
	"github.com/baechuer/vidshare/internal/transport/http/response"
	"github.com/baechuer/vidshare/internal/transport/http/validate"
)

type TweetsHandler struct {
	svc TweetService
}

func NewTweetsHandler(svc TweetService) *TweetsHandler {
	return &TweetsHandler{svc: svc}
}

func (h *TweetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTweetReq
	if err := validate.Body(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	t, err := h.svc.Create(r.Context(), tweet.CreateCmd{
		ActorID: middleware.ActorID(r),
		Content: req.Content,
		Image:   req.Image,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.Tweet(t))
}

func (h *TweetsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "tweetId")
	if !ok {
		return
	}
	t, err := h.svc.Get(r.Context(), id, middleware.Viewer(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.TweetView(*t))
}

func (h *TweetsHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	page, err := h.svc.ListByUser(r.Context(), ownerID, middleware.Viewer(r), validate.Page(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToPage(page, dto.TweetView))
}

func (h *TweetsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "tweetId")
	if !ok {
		return
	}
	var req dto.ContentReq
	if err := validate.Body(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	t, err := h.svc.Update(r.Context(), middleware.ActorID(r), id, req.Content)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.Tweet(t))
}

func (h *TweetsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "tweetId")
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), middleware.ActorID(r), id); err != nil {
		response.Err(w, r, err)
		return
	}
	response.DataMsg(w, http.StatusOK, nil, "tweet deleted")
}
