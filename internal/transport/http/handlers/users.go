package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/vidshare/internal/application/user"
	"github.com/baechuer/vidshare/internal/domain"
	"github.com/baechuer/vidshare/internal/transport/http/dto"
	"github.com/baechuer/vidshare/internal/transport/http/middleware"
	"github.com/baechuer/vidshare/internal/transport/http/response"
	"github.com/baechuer/vidshare/internal/transport/http/validate"
)

type UsersHandler struct {
	svc UserService
}

func NewUsersHandler(svc UserService) *UsersHandler {
	return &UsersHandler{svc: svc}
}

// Register creates the profile for the identity carried by the token.
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserReq
	if err := validate.Body(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	u, err := h.svc.Register(r.Context(), user.RegisterCmd{
		ActorID:    middleware.ActorID(r),
		Username:   req.Username,
		Email:      req.Email,
		Fullname:   req.Fullname,
		Avatar:     req.Avatar,
		CoverImage: req.CoverImage,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.DataMsg(w, http.StatusCreated, dto.User(u), "user registered")
}

func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Me(r.Context(), middleware.ActorID(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.User(u))
}

func (h *UsersHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateUserReq
	if err := validate.Body(w, r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	u, err := h.svc.UpdateAccount(r.Context(), user.UpdateCmd{
		ActorID:    middleware.ActorID(r),
		Fullname:   req.Fullname,
		Email:      req.Email,
		Avatar:     req.Avatar,
		CoverImage: req.CoverImage,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.User(u))
}

func (h *UsersHandler) Channel(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(chi.URLParam(r, "username"))
	if username == "" {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{"username": "required"}))
		return
	}
	p, err := h.svc.ChannelProfile(r.Context(), username, middleware.Viewer(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ChannelProfile(p))
}
