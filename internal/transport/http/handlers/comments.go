package handlers

import (
	"net/http"

	"github.com/baechuer/vidshare/internal/transport/http/dto"
	"github.com/baechuer/vidshare/internal/transport/http/middleware"
	"github.com/baechuer/vidshare/internal/transport/http/response"
	"github.com/baechuer/vidshare/internal/transport/http/validate"
)

type CommentsHandler struct {
	svc CommentService
}

func NewCommentsHandler(svc CommentService) *CommentsHandler {
	return &CommentsHandler{svc: svc}
}

func (h *CommentsHandler) List(w http.ResponseWriter, r *http.Request) {
	videoID, ok := pathID(w, r, "videoId")
	if !ok {
		return
	}
	page, err := h.svc.List(r.Context(), videoID, middleware.Viewer(r), validate.Page(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToPage(page, dto.CommentView))
}

func (h *CommentsHandler) Add(w http.ResponseWriter, r *http.Request) {
	videoID, ok := pathID(w, r, "videoId")
	if !ok {
		return
	}
	var req dto.ContentReq
	if err := validate.Body(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	c, err := h.svc.Add(r.Context(), middleware.ActorID(r), videoID, req.Content)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.Comment(c))
}

func (h *CommentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(w, r, "commentId")
	if !ok {
		return
	}
	var req dto.ContentReq
	if err := validate.Body(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	c, err := h.svc.Update(r.Context(), middleware.ActorID(r), commentID, req.Content)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.Comment(c))
}

func (h *CommentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(w, r, "commentId")
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), middleware.ActorID(r), commentID); err != nil {
		response.Err(w, r, err)
		return
	}
	response.DataMsg(w, http.StatusOK, nil, "comment deleted")
}
