package handlers

import (
	"net/http"

	"github.com/baechuer/vidshare/internal/application/playlist"
	"github.com/baechuer/vidshare/internal/transport/http/dto"
	"github.com/baechuer/vidshare/internal/transport/http/middleware"
	"github.com/baechuer/vidshare/internal/transport/http/response"
	"github.com/baechuer/vidshare/internal/transport/http/validate"
)

type PlaylistsHandler struct {
	svc PlaylistService
}

func NewPlaylistsHandler(svc PlaylistService) *PlaylistsHandler {
	return &PlaylistsHandler{svc: svc}
}

func (h *PlaylistsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePlaylistReq
	if err := validate.Body(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	p, err := h.svc.Create(r.Context(), playlist.CreateCmd{
		ActorID:     middleware.ActorID(r),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.Playlist(p))
}

func (h *PlaylistsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "playlistId")
	if !ok {
		return
	}
	d, err := h.svc.Get(r.Context(), id, middleware.Viewer(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.PlaylistDetail(d))
}

func (h *PlaylistsHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	page, err := h.svc.ListByUser(r.Context(), ownerID, validate.Page(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToPage(page, dto.PlaylistSummary))
}

func (h *PlaylistsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "playlistId")
	if !ok {
		return
	}
	var req dto.UpdatePlaylistReq
	if err := validate.Body(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	p, err := h.svc.Update(r.Context(), playlist.UpdateCmd{
		ActorID:     middleware.ActorID(r),
		PlaylistID:  id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.Playlist(p))
}

func (h *PlaylistsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "playlistId")
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), middleware.ActorID(r), id); err != nil {
		response.Err(w, r, err)
		return
	}
	response.DataMsg(w, http.StatusOK, nil, "playlist deleted")
}

// AddVideo: PATCH /playlist/add/{videoId}/{playlistId}
func (h *PlaylistsHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "playlistId", "videoId")
	if !ok {
		return
	}
	if err := h.svc.AddVideo(r.Context(), middleware.ActorID(r), ids[0], ids[1]); err != nil {
		response.Err(w, r, err)
		return
	}
	response.DataMsg(w, http.StatusOK, nil, "video added to playlist")
}

func (h *PlaylistsHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "playlistId", "videoId")
	if !ok {
		return
	}
	if err := h.svc.RemoveVideo(r.Context(), middleware.ActorID(r), ids[0], ids[1]); err != nil {
		response.Err(w, r, err)
		return
	}
	response.DataMsg(w, http.StatusOK, nil, "video removed from playlist")
}

func (h *PlaylistsHandler) Contains(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathIDs(w, r, "playlistId", "videoId")
	if !ok {
		return
	}
	exists, err := h.svc.Contains(r.Context(), ids[0], ids[1])
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ExistsResp{Exists: exists})
}
