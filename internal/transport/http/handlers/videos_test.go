package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/baechuer/vidshare/internal/application/video"
	"github.com/baechuer/vidshare/internal/domain"
	"github.com/baechuer/vidshare/internal/transport/http/dto"
)

func TestVideosHandler_List(t *testing.T) {
	owner := uuid.New()

	t.Run("forwards_filters_and_page", func(t *testing.T) {
		svc := new(MockVideoService)
		h := NewVideosHandler(svc)
		wantReq := domain.NewPageRequest(2, 5, "views", "asc")
		wantQ := video.ListQuery{Query: "cats", OwnerID: domain.Viewer(owner)}
		card := domain.VideoCard{Video: domain.Video{ID: uuid.New(), Title: "cats"}, ViewsCount: 3}
		svc.On("List", mock.Anything, wantQ, domain.Anonymous(), wantReq).
			Return(domain.NewPage([]domain.VideoCard{card}, wantReq, 6), nil)

		rr := httptest.NewRecorder()
		h.List(rr, newReq(http.MethodGet, "/videos?query=cats&userId="+owner.String()+"&page=2&limit=5&sortBy=views&sortType=asc", "", nil, uuid.Nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var page dto.PageResp[dto.VideoCardResp]
		decodeData(t, rr, &page)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 5, page.PageSize)
		assert.Equal(t, 6, page.TotalItems)
		assert.Equal(t, 2, page.TotalPages)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, 3, page.Items[0].ViewsCount)
		svc.AssertExpectations(t)
	})

	t.Run("bad_user_id", func(t *testing.T) {
		svc := new(MockVideoService)
		rr := httptest.NewRecorder()
		NewVideosHandler(svc).List(rr, newReq(http.MethodGet, "/videos?userId=nope", "", nil, uuid.Nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "must be uuid", decode(t, rr).Meta["userId"])
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown_sort_is_400", func(t *testing.T) {
		svc := new(MockVideoService)
		svc.On("List", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(domain.Page[domain.VideoCard]{}, domain.ErrValidationMeta("invalid query param", map[string]string{"sortBy": "bad"}))
		rr := httptest.NewRecorder()
		NewVideosHandler(svc).List(rr, newReq(http.MethodGet, "/videos?sortBy=likes", "", nil, uuid.Nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "validation_error", decode(t, rr).Code)
	})
}

func TestVideosHandler_Create(t *testing.T) {
	actor := uuid.New()

	t.Run("created", func(t *testing.T) {
		svc := new(MockVideoService)
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		svc.On("Create", mock.Anything, mock.MatchedBy(func(c video.CreateCmd) bool {
			return c.ActorID == actor && c.Title == "hello" && c.Duration == 12.5 && c.IsPublished == nil
		})).Return(&domain.Video{ID: uuid.New(), OwnerID: actor, Title: "hello", IsPublished: true, CreatedAt: now}, nil)

		rr := httptest.NewRecorder()
		body := `{"videoFile":"v.mp4","thumbnail":"t.png","title":"hello","duration":12.5}`
		NewVideosHandler(svc).Create(rr, newReq(http.MethodPost, "/videos", body, nil, actor))

		assert.Equal(t, http.StatusCreated, rr.Code)
		env := decode(t, rr)
		assert.True(t, env.Success)
		assert.Equal(t, "video published", env.Message)
		svc.AssertExpectations(t)
	})

	t.Run("missing_fields", func(t *testing.T) {
		svc := new(MockVideoService)
		rr := httptest.NewRecorder()
		NewVideosHandler(svc).Create(rr, newReq(http.MethodPost, "/videos", `{"title":""}`, nil, actor))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		meta := decode(t, rr).Meta
		assert.Equal(t, "required", meta["videoFile"])
		assert.Equal(t, "required", meta["title"])
	})
}

func TestVideosHandler_Get(t *testing.T) {
	id := uuid.New()
	viewer := uuid.New()

	t.Run("invalid_uuid", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewVideosHandler(new(MockVideoService)).Get(rr, newReq(http.MethodGet, "/videos/x", "", map[string]string{"videoId": "x"}, uuid.Nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "validation_error")
	})

	t.Run("passes_viewer", func(t *testing.T) {
		svc := new(MockVideoService)
		svc.On("Get", mock.Anything, id, domain.Viewer(viewer)).
			Return(&domain.VideoDetail{Video: domain.Video{ID: id}, IsLiked: true, LikesCount: 1}, nil)

		rr := httptest.NewRecorder()
		NewVideosHandler(svc).Get(rr, newReq(http.MethodGet, "/videos/"+id.String(), "", map[string]string{"videoId": id.String()}, viewer))

		assert.Equal(t, http.StatusOK, rr.Code)
		var d dto.VideoDetailResp
		decodeData(t, rr, &d)
		assert.True(t, d.IsLiked)
		assert.Equal(t, 1, d.LikesCount)
	})

	t.Run("not_found", func(t *testing.T) {
		svc := new(MockVideoService)
		svc.On("Get", mock.Anything, id, domain.Anonymous()).Return(nil, domain.ErrNotFound("video not found"))

		rr := httptest.NewRecorder()
		NewVideosHandler(svc).Get(rr, newReq(http.MethodGet, "/", "", map[string]string{"videoId": id.String()}, uuid.Nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "video not found", decode(t, rr).Message)
	})
}

func TestVideosHandler_OwnerOps(t *testing.T) {
	actor := uuid.New()
	id := uuid.New()
	params := map[string]string{"videoId": id.String()}

	t.Run("update_forbidden", func(t *testing.T) {
		svc := new(MockVideoService)
		title := "new"
		svc.On("Update", mock.Anything, video.UpdateCmd{ActorID: actor, VideoID: id, Title: &title}).
			Return(nil, domain.ErrUnauthorized("only the owner can modify this video"))

		rr := httptest.NewRecorder()
		NewVideosHandler(svc).Update(rr, newReq(http.MethodPatch, "/", `{"title":"new"}`, params, actor))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("toggle_publish", func(t *testing.T) {
		svc := new(MockVideoService)
		svc.On("TogglePublish", mock.Anything, actor, id).Return(&domain.Video{ID: id, IsPublished: false}, nil)

		rr := httptest.NewRecorder()
		NewVideosHandler(svc).TogglePublish(rr, newReq(http.MethodPatch, "/", "", params, actor))

		assert.Equal(t, http.StatusOK, rr.Code)
		var v dto.VideoResp
		decodeData(t, rr, &v)
		assert.False(t, v.IsPublished)
	})

	t.Run("delete", func(t *testing.T) {
		svc := new(MockVideoService)
		svc.On("Delete", mock.Anything, actor, id).Return(nil)

		rr := httptest.NewRecorder()
		NewVideosHandler(svc).Delete(rr, newReq(http.MethodDelete, "/", "", params, actor))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "video deleted", decode(t, rr).Message)
	})
}

func TestVideosHandler_RecordViewAndHistory(t *testing.T) {
	actor := uuid.New()
	id := uuid.New()
	older := uuid.New()

	svc := new(MockVideoService)
	svc.On("RecordView", mock.Anything, actor, id).Return([]uuid.UUID{id, older}, nil)
	req := domain.NewPageRequest(1, 10, "", "")
	svc.On("History", mock.Anything, actor, req).Return(domain.NewPage[domain.VideoCard](nil, req, 0), nil)
	h := NewVideosHandler(svc)

	rr := httptest.NewRecorder()
	h.RecordView(rr, newReq(http.MethodPost, "/", "", map[string]string{"videoId": id.String()}, actor))
	assert.Equal(t, http.StatusOK, rr.Code)
	var hist dto.WatchHistoryResp
	decodeData(t, rr, &hist)
	assert.Equal(t, []uuid.UUID{id, older}, hist.WatchHistory)

	rr = httptest.NewRecorder()
	h.History(rr, newReq(http.MethodGet, "/users/me/history", "", nil, actor))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"items":[],"page":1,"pageSize":10,"totalItems":0,"totalPages":0}`, string(decode(t, rr).Data))
}

func TestDashboardHandler(t *testing.T) {
	channel := uuid.New()
	svc := new(MockVideoService)
	svc.On("ChannelStats", mock.Anything, channel).Return(domain.ChannelStats{ChannelID: channel, TotalViews: 7, TotalLikes: 2}, nil)
	req := domain.NewPageRequest(1, 10, "", "")
	svc.On("ChannelVideos", mock.Anything, channel, domain.Viewer(channel), req).Return(domain.NewPage[domain.VideoCard](nil, req, 0), nil)
	h := NewDashboardHandler(svc)
	params := map[string]string{"channelId": channel.String()}

	rr := httptest.NewRecorder()
	h.Stats(rr, newReq(http.MethodGet, "/", "", params, uuid.Nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	var stats dto.ChannelStatsResp
	decodeData(t, rr, &stats)
	assert.Equal(t, 7, stats.TotalViews)
	assert.Equal(t, 2, stats.TotalLikes)

	rr = httptest.NewRecorder()
	h.Videos(rr, newReq(http.MethodGet, "/", "", params, channel))
	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}
