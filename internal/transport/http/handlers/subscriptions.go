package handlers

import (
	"net/http"

	"github.com/baechuer/vidshare/internal/transport/http/dto"
	"github.com/baechuer/vidshare/internal/transport/http/middleware"
	"github.com/baechuer/vidshare/internal/transport/http/response"
	"github.com/baechuer/vidshare/internal/transport/http/validate"
)

type SubscriptionsHandler struct {
	svc EngagementService
}

func NewSubscriptionsHandler(svc EngagementService) *SubscriptionsHandler {
	return &SubscriptionsHandler{svc: svc}
}

func (h *SubscriptionsHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	channelID, ok := pathID(w, r, "channelId")
	if !ok {
		return
	}
	state, err := h.svc.ToggleSubscription(r.Context(), middleware.ActorID(r), channelID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.SubscribeToggleResp{IsSubscribed: state.Active()})
}

func (h *SubscriptionsHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	channelID, ok := pathID(w, r, "channelId")
	if !ok {
		return
	}
	page, err := h.svc.Subscribers(r.Context(), channelID, middleware.Viewer(r), validate.Page(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToPage(page, dto.Subscription))
}

func (h *SubscriptionsHandler) Subscriptions(w http.ResponseWriter, r *http.Request) {
	subscriberID, ok := pathID(w, r, "subscriberId")
	if !ok {
		return
	}
	page, err := h.svc.Subscriptions(r.Context(), subscriberID, middleware.Viewer(r), validate.Page(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToPage(page, dto.Subscription))
}
