package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/vidshare/internal/application/playlist"
	"github.com/baechuer/vidshare/internal/application/tweet"
	"github.com/baechuer/vidshare/internal/application/user"
	"github.com/baechuer/vidshare/internal/application/video"
	"github.com/baechuer/vidshare/internal/domain"
	"github.com/baechuer/vidshare/internal/transport/http/middleware"
)

// newReq builds a request with chi path params and an optional actor.
func newReq(method, target, body string, params map[string]string, actor uuid.UUID) *http.Request {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if actor != uuid.Nil {
		ctx = middleware.WithActor(ctx, actor)
	}
	return req.WithContext(ctx)
}

type envelope struct {
	StatusCode int               `json:"statusCode"`
	Data       json.RawMessage   `json:"data"`
	Message    string            `json:"message"`
	Success    bool              `json:"success"`
	Code       string            `json:"code"`
	Meta       map[string]string `json:"meta"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, dst))
}

type MockVideoService struct{ mock.Mock }

func (m *MockVideoService) Create(ctx context.Context, cmd video.CreateCmd) (*domain.Video, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Video), args.Error(1)
}

func (m *MockVideoService) Get(ctx context.Context, id uuid.UUID, viewer uuid.NullUUID) (*domain.VideoDetail, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VideoDetail), args.Error(1)
}

func (m *MockVideoService) List(ctx context.Context, q video.ListQuery, viewer uuid.NullUUID, req domain.PageRequest) (domain.Page[domain.VideoCard], error) {
	args := m.Called(ctx, q, viewer, req)
	return args.Get(0).(domain.Page[domain.VideoCard]), args.Error(1)
}

func (m *MockVideoService) Update(ctx context.Context, cmd video.UpdateCmd) (*domain.Video, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Video), args.Error(1)
}

func (m *MockVideoService) TogglePublish(ctx context.Context, actorID, videoID uuid.UUID) (*domain.Video, error) {
	args := m.Called(ctx, actorID, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Video), args.Error(1)
}

func (m *MockVideoService) Delete(ctx context.Context, actorID, videoID uuid.UUID) error {
	return m.Called(ctx, actorID, videoID).Error(0)
}

func (m *MockVideoService) RecordView(ctx context.Context, actorID, videoID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, actorID, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockVideoService) History(ctx context.Context, actorID uuid.UUID, req domain.PageRequest) (domain.Page[domain.VideoCard], error) {
	args := m.Called(ctx, actorID, req)
	return args.Get(0).(domain.Page[domain.VideoCard]), args.Error(1)
}

func (m *MockVideoService) ChannelVideos(ctx context.Context, channelID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) (domain.Page[domain.VideoCard], error) {
	args := m.Called(ctx, channelID, viewer, req)
	return args.Get(0).(domain.Page[domain.VideoCard]), args.Error(1)
}

func (m *MockVideoService) ChannelStats(ctx context.Context, channelID uuid.UUID) (domain.ChannelStats, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(domain.ChannelStats), args.Error(1)
}

type MockEngagementService struct{ mock.Mock }

func (m *MockEngagementService) ToggleVideoLike(ctx context.Context, actorID, videoID uuid.UUID) (domain.ToggleState, error) {
	args := m.Called(ctx, actorID, videoID)
	return args.Get(0).(domain.ToggleState), args.Error(1)
}

func (m *MockEngagementService) ToggleCommentLike(ctx context.Context, actorID, commentID uuid.UUID) (domain.ToggleState, error) {
	args := m.Called(ctx, actorID, commentID)
	return args.Get(0).(domain.ToggleState), args.Error(1)
}

func (m *MockEngagementService) ToggleTweetLike(ctx context.Context, actorID, tweetID uuid.UUID) (domain.ToggleState, error) {
	args := m.Called(ctx, actorID, tweetID)
	return args.Get(0).(domain.ToggleState), args.Error(1)
}

func (m *MockEngagementService) ToggleSubscription(ctx context.Context, subscriberID, channelID uuid.UUID) (domain.ToggleState, error) {
	args := m.Called(ctx, subscriberID, channelID)
	return args.Get(0).(domain.ToggleState), args.Error(1)
}

func (m *MockEngagementService) Summary(ctx context.Context, kind domain.RelationKind, targetID uuid.UUID, viewer uuid.NullUUID) (domain.RelationSummary, error) {
	args := m.Called(ctx, kind, targetID, viewer)
	return args.Get(0).(domain.RelationSummary), args.Error(1)
}

func (m *MockEngagementService) LikedVideos(ctx context.Context, actorID uuid.UUID, req domain.PageRequest) (domain.Page[domain.LikedVideo], error) {
	args := m.Called(ctx, actorID, req)
	return args.Get(0).(domain.Page[domain.LikedVideo]), args.Error(1)
}

func (m *MockEngagementService) Subscribers(ctx context.Context, channelID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) (domain.Page[domain.SubscriptionEntry], error) {
	args := m.Called(ctx, channelID, viewer, req)
	return args.Get(0).(domain.Page[domain.SubscriptionEntry]), args.Error(1)
}

func (m *MockEngagementService) Subscriptions(ctx context.Context, subscriberID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) (domain.Page[domain.SubscriptionEntry], error) {
	args := m.Called(ctx, subscriberID, viewer, req)
	return args.Get(0).(domain.Page[domain.SubscriptionEntry]), args.Error(1)
}

type MockCommentService struct{ mock.Mock }

func (m *MockCommentService) List(ctx context.Context, videoID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) (domain.Page[domain.CommentView], error) {
	args := m.Called(ctx, videoID, viewer, req)
	return args.Get(0).(domain.Page[domain.CommentView]), args.Error(1)
}

func (m *MockCommentService) Add(ctx context.Context, actorID, videoID uuid.UUID, content string) (*domain.Comment, error) {
	args := m.Called(ctx, actorID, videoID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, actorID, commentID uuid.UUID, content string) (*domain.Comment, error) {
	args := m.Called(ctx, actorID, commentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, actorID, commentID uuid.UUID) error {
	return m.Called(ctx, actorID, commentID).Error(0)
}

type MockTweetService struct{ mock.Mock }

func (m *MockTweetService) Create(ctx context.Context, cmd tweet.CreateCmd) (*domain.Tweet, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tweet), args.Error(1)
}

func (m *MockTweetService) Get(ctx context.Context, id uuid.UUID, viewer uuid.NullUUID) (*domain.TweetView, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TweetView), args.Error(1)
}

func (m *MockTweetService) ListByUser(ctx context.Context, ownerID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) (domain.Page[domain.TweetView], error) {
	args := m.Called(ctx, ownerID, viewer, req)
	return args.Get(0).(domain.Page[domain.TweetView]), args.Error(1)
}

func (m *MockTweetService) Update(ctx context.Context, actorID, tweetID uuid.UUID, content string) (*domain.Tweet, error) {
	args := m.Called(ctx, actorID, tweetID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tweet), args.Error(1)
}

func (m *MockTweetService) Delete(ctx context.Context, actorID, tweetID uuid.UUID) error {
	return m.Called(ctx, actorID, tweetID).Error(0)
}

type MockPlaylistService struct{ mock.Mock }

func (m *MockPlaylistService) Create(ctx context.Context, cmd playlist.CreateCmd) (*domain.Playlist, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Playlist), args.Error(1)
}

func (m *MockPlaylistService) Get(ctx context.Context, id uuid.UUID, viewer uuid.NullUUID) (*domain.PlaylistDetail, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlaylistDetail), args.Error(1)
}

func (m *MockPlaylistService) ListByUser(ctx context.Context, ownerID uuid.UUID, req domain.PageRequest) (domain.Page[domain.PlaylistSummary], error) {
	args := m.Called(ctx, ownerID, req)
	return args.Get(0).(domain.Page[domain.PlaylistSummary]), args.Error(1)
}

func (m *MockPlaylistService) Update(ctx context.Context, cmd playlist.UpdateCmd) (*domain.Playlist, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Playlist), args.Error(1)
}

func (m *MockPlaylistService) Delete(ctx context.Context, actorID, playlistID uuid.UUID) error {
	return m.Called(ctx, actorID, playlistID).Error(0)
}

func (m *MockPlaylistService) AddVideo(ctx context.Context, actorID, playlistID, videoID uuid.UUID) error {
	return m.Called(ctx, actorID, playlistID, videoID).Error(0)
}

func (m *MockPlaylistService) RemoveVideo(ctx context.Context, actorID, playlistID, videoID uuid.UUID) error {
	return m.Called(ctx, actorID, playlistID, videoID).Error(0)
}

func (m *MockPlaylistService) Contains(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	args := m.Called(ctx, playlistID, videoID)
	return args.Bool(0), args.Error(1)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Register(ctx context.Context, cmd user.RegisterCmd) (*domain.User, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Me(ctx context.Context, actorID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateAccount(ctx context.Context, cmd user.UpdateCmd) (*domain.User, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ChannelProfile(ctx context.Context, username string, viewer uuid.NullUUID) (*domain.ChannelProfile, error) {
	args := m.Called(ctx, username, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChannelProfile), args.Error(1)
}
