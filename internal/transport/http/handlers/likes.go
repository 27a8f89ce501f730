package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/domain"
	"github.com/baechuer/vidshare/internal/transport/http/dto"
	"github.com/baechuer/vidshare/internal/transport/http/middleware"
	"github.com/baechuer/vidshare/internal/transport/http/response"
	"github.com/baechuer/vidshare/internal/transport/http/validate"
)

type LikesHandler struct {
	svc EngagementService
}

func NewLikesHandler(svc EngagementService) *LikesHandler {
	return &LikesHandler{svc: svc}
}

type toggleFunc func(ctx context.Context, actorID, targetID uuid.UUID) (domain.ToggleState, error)

func (h *LikesHandler) toggle(param string, fn toggleFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target, ok := pathID(w, r, param)
		if !ok {
			return
		}
		state, err := fn(r.Context(), middleware.ActorID(r), target)
		if err != nil {
			response.Err(w, r, err)
			return
		}
		response.Data(w, http.StatusOK, dto.LikeToggleResp{IsLiked: state.Active()})
	}
}

func (h *LikesHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	h.toggle("videoId", h.svc.ToggleVideoLike)(w, r)
}

func (h *LikesHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	h.toggle("commentId", h.svc.ToggleCommentLike)(w, r)
}

func (h *LikesHandler) ToggleTweet(w http.ResponseWriter, r *http.Request) {
	h.toggle("tweetId", h.svc.ToggleTweetLike)(w, r)
}

func (h *LikesHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.LikedVideos(r.Context(), middleware.ActorID(r), validate.Page(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToPage(page, dto.LikedVideo))
}

// Status: GET /likes/status/{kind}/{targetId}. kind also accepts v, c, t and s.
func (h *LikesHandler) Status(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseRelationKind(chi.URLParam(r, "kind"))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	target, ok := pathID(w, r, "targetId")
	if !ok {
		return
	}
	sum, err := h.svc.Summary(r.Context(), kind, target, middleware.Viewer(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.RelationStatus(sum))
}
