package domain

import (
	"time"

	"github.com/google/uuid"
)

// Read-side projections built by the aggregation queries. Counts are never stored;
// every field here is computed per request.

// OwnerSummary is the public projection of an actor. It never carries credentials.
type OwnerSummary struct {
	ID       uuid.UUID
	Username string
	Fullname string
	Avatar   string
}

type ChannelSummary struct {
	OwnerSummary
	SubscribersCount int
	IsSubscribed     bool
}

type ChannelProfile struct {
	ChannelSummary
	Email             string
	CoverImage        string
	SubscribedToCount int
	CreatedAt         time.Time
}

type VideoCard struct {
	Video
	Owner         OwnerSummary
	LikesCount    int
	ViewsCount    int
	CommentsCount int
}

type VideoDetail struct {
	Video
	Owner         ChannelSummary
	LikesCount    int
	IsLiked       bool
	ViewsCount    int
	CommentsCount int
}

type LikedVideo struct {
	VideoCard
	LikedAt time.Time
}

type CommentView struct {
	Comment
	Owner      OwnerSummary
	LikesCount int
	IsLiked    bool
}

type TweetView struct {
	Tweet
	Owner      OwnerSummary
	LikesCount int
	IsLiked    bool
}

// SubscriptionEntry is one row of a subscriber or subscribed-channel list.
type SubscriptionEntry struct {
	Channel      ChannelSummary
	SubscribedAt time.Time
}

type PlaylistVideo struct {
	ID          uuid.UUID
	Title       string
	Thumbnail   string
	Duration    float64
	IsPublished bool
	Owner       OwnerSummary
	CreatedAt   time.Time
	AddedAt     time.Time
}

type PlaylistDetail struct {
	Playlist
	Owner       OwnerSummary
	Videos      []PlaylistVideo
	TotalVideos int
}

type PlaylistSummary struct {
	Playlist
	TotalVideos int
	Thumbnail   string
}

type ChannelStats struct {
	ChannelID          uuid.UUID
	TotalSubscribers   int
	SubscribedChannels int
	TotalViews         int
	TotalVideos        int
	TotalLikes         int
}
