package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/application/playlist"
	"github.com/baechuer/vidshare/internal/application/tweet"
	"github.com/baechuer/vidshare/internal/application/user"
	"github.com/baechuer/vidshare/internal/application/video"
	"github.com/baechuer/vidshare/internal/domain"
)

// The handlers depend on these narrow views of the application services.

type VideoService interface {
	Create(ctx context.Context, cmd video.CreateCmd) (*domain.Video, error)
	Get(ctx context.Context, id uuid.UUID, viewer uuid.NullUUID) (*domain.VideoDetail, error)
	List(ctx context.Context, q video.ListQuery, viewer uuid.NullUUID, req domain.PageRequest) (domain.Page[domain.VideoCard], error)
	Update(ctx context.Context, cmd video.UpdateCmd) (*domain.Video, error)
	TogglePublish(ctx context.Context, actorID, videoID uuid.UUID) (*domain.Video, error)
	Delete(ctx context.Context, actorID, videoID uuid.UUID) error
	RecordView(ctx context.Context, actorID, videoID uuid.UUID) ([]uuid.UUID, error)
	History(ctx context.Context, actorID uuid.UUID, req domain.PageRequest) (domain.Page[domain.VideoCard], error)
	ChannelVideos(ctx context.Context, channelID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) (domain.Page[domain.VideoCard], error)
	ChannelStats(ctx context.Context, channelID uuid.UUID) (domain.ChannelStats, error)
}

type EngagementService interface {
	ToggleVideoLike(ctx context.Context, actorID, videoID uuid.UUID) (domain.ToggleState, error)
	ToggleCommentLike(ctx context.Context, actorID, commentID uuid.UUID) (domain.ToggleState, error)
	ToggleTweetLike(ctx context.Context, actorID, tweetID uuid.UUID) (domain.ToggleState, error)
	ToggleSubscription(ctx context.Context, subscriberID, channelID uuid.UUID) (domain.ToggleState, error)
	Summary(ctx context.Context, kind domain.RelationKind, targetID uuid.UUID, viewer uuid.NullUUID) (domain.RelationSummary, error)
	LikedVideos(ctx context.Context, actorID uuid.UUID, req domain.PageRequest) (domain.Page[domain.LikedVideo], error)
	Subscribers(ctx context.Context, channelID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) (domain.Page[domain.SubscriptionEntry], error)
	Subscriptions(ctx context.Context, subscriberID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) (domain.Page[domain.SubscriptionEntry], error)
}

type CommentService interface {
	List(ctx context.Context, videoID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) (domain.Page[domain.CommentView], error)
	Add(ctx context.Context, actorID, videoID uuid.UUID, content string) (*domain.Comment, error)
	Update(ctx context.Context, actorID, commentID uuid.UUID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, actorID, commentID uuid.UUID) error
}

type TweetService interface {
	Create(ctx context.Context, cmd tweet.CreateCmd) (*domain.Tweet, error)
	Get(ctx context.Context, id uuid.UUID, viewer uuid.NullUUID) (*domain.TweetView, error)
	ListByUser(ctx context.Context, ownerID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) (domain.Page[domain.TweetView], error)
	Update(ctx context.Context, actorID, tweetID uuid.UUID, content string) (*domain.Tweet, error)
	Delete(ctx context.Context, actorID, tweetID uuid.UUID) error
}

type PlaylistService interface {
	Create(ctx context.Context, cmd playlist.CreateCmd) (*domain.Playlist, error)
	Get(ctx context.Context, id uuid.UUID, viewer uuid.NullUUID) (*domain.PlaylistDetail, error)
	ListByUser(ctx context.Context, ownerID uuid.UUID, req domain.PageRequest) (domain.Page[domain.PlaylistSummary], error)
	Update(ctx context.Context, cmd playlist.UpdateCmd) (*domain.Playlist, error)
	Delete(ctx context.Context, actorID, playlistID uuid.UUID) error
	AddVideo(ctx context.Context, actorID, playlistID, videoID uuid.UUID) error
	RemoveVideo(ctx context.Context, actorID, playlistID, videoID uuid.UUID) error
	Contains(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error)
}

type UserService interface {
	Register(ctx context.Context, cmd user.RegisterCmd) (*domain.User, error)
	Me(ctx context.Context, actorID uuid.UUID) (*domain.User, error)
	UpdateAccount(ctx context.Context, cmd user.UpdateCmd) (*domain.User, error)
	ChannelProfile(ctx context.Context, username string, viewer uuid.NullUUID) (*domain.ChannelProfile, error)
}
