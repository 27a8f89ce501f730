package handlers

import (
	"net/http"

	"github.com/baechuer/vidshare/internal/transport/http/dto"
	"github.com/baechuer/vidshare/internal/transport/http/middleware"
	"github.com/baechuer/vidshare/internal/transport/http/response"
	"github.com/baechuer/vidshare/internal/transport/http/validate"
)

type DashboardHandler struct {
	videos VideoService
}

func NewDashboardHandler(videos VideoService) *DashboardHandler {
	return &DashboardHandler{videos: videos}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "channelId")
	if !ok {
		return
	}
	stats, err := h.videos.ChannelStats(r.Context(), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ChannelStats(stats))
}

// Videos includes unpublished videos only when the viewer owns the channel.
func (h *DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "channelId")
	if !ok {
		return
	}
	page, err := h.videos.ChannelVideos(r.Context(), id, middleware.Viewer(r), validate.Page(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToPage(page, dto.VideoCard))
}
