package handlers

import (
	"net/http"
	"strings"

	"github.com/baechuer/vidshare/internal/application/video"
	"github.com/baechuer/vidshare/internal/domain"
	"github.com/baechuer/vidshare/internal/transport/http/dto"
	"github.com/baechuer/vidshare/internal/transport/http/middleware"
	"github.com/baechuer/vidshare/internal/transport/http/response"
	"github.com/baechuer/vidshare/internal/transport/http/validate"
)

type VideosHandler struct {
	svc VideoService
}

func NewVideosHandler(svc VideoService) *VideosHandler {
	return &VideosHandler{svc: svc}
}

// List: GET /videos?query=&userId=&page=&limit=&sortBy=&sortType=
func (h *VideosHandler) List(w http.ResponseWriter, r *http.Request) {
	q := video.ListQuery{Query: strings.TrimSpace(r.URL.Query().Get("query"))}
	if raw := r.URL.Query().Get("userId"); raw != "" {
		id, err := domain.ParseID("userId", raw)
		if err != nil {
			response.Err(w, r, err)
			return
		}
		q.OwnerID = domain.Viewer(id)
	}

	page, err := h.svc.List(r.Context(), q, middleware.Viewer(r), validate.Page(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToPage(page, dto.VideoCard))
}

func (h *VideosHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateVideoReq
	if err := validate.Body(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}

	v, err := h.svc.Create(r.Context(), video.CreateCmd{
		ActorID:     middleware.ActorID(r),
		VideoFile:   req.VideoFile,
		Thumbnail:   req.Thumbnail,
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.DataMsg(w, http.StatusCreated, dto.Video(v), "video published")
}

func (h *VideosHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "videoId")
	if !ok {
		return
	}
	d, err := h.svc.Get(r.Context(), id, middleware.Viewer(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.VideoDetail(d))
}

func (h *VideosHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "videoId")
	if !ok {
		return
	}
	var req dto.UpdateVideoReq
	if err := validate.Body(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}

	v, err := h.svc.Update(r.Context(), video.UpdateCmd{
		ActorID:     middleware.ActorID(r),
		VideoID:     id,
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.Video(v))
}

func (h *VideosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "videoId")
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), middleware.ActorID(r), id); err != nil {
		response.Err(w, r, err)
		return
	}
	response.DataMsg(w, http.StatusOK, nil, "video deleted")
}

func (h *VideosHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "videoId")
	if !ok {
		return
	}
	v, err := h.svc.TogglePublish(r.Context(), middleware.ActorID(r), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.Video(v))
}

// RecordView returns the viewer's watch history after the move-to-front.
func (h *VideosHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "videoId")
	if !ok {
		return
	}
	history, err := h.svc.RecordView(r.Context(), middleware.ActorID(r), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.WatchHistory(history))
}

func (h *VideosHandler) History(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.History(r.Context(), middleware.ActorID(r), validate.Page(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToPage(page, dto.VideoCard))
}
