package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/domain"
)

type PageResp[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// ToPage maps a domain page item by item. Items is never null on the wire.
func ToPage[S, T any](p domain.Page[S], f func(S) T) PageResp[T] {
	items := make([]T, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, f(it))
	}
	return PageResp[T]{
		Items:      items,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}

type OwnerResp struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Fullname string    `json:"fullname"`
	Avatar   string    `json:"avatar"`
}

type ChannelResp struct {
	OwnerResp
	SubscribersCount int  `json:"subscribersCount"`
	IsSubscribed     bool `json:"isSubscribed"`
}

type UserResp struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Fullname   string    `json:"fullname"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ChannelProfileResp omits email unless the viewer owns the channel.
type ChannelProfileResp struct {
	ChannelResp
	Email             string    `json:"email,omitempty"`
	CoverImage        string    `json:"coverImage"`
	SubscribedToCount int       `json:"subscribedToCount"`
	CreatedAt         time.Time `json:"createdAt"`
}

type VideoResp struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type VideoCardResp struct {
	VideoResp
	Owner         OwnerResp `json:"owner"`
	LikesCount    int       `json:"likesCount"`
	ViewsCount    int       `json:"viewsCount"`
	CommentsCount int       `json:"commentsCount"`
}

type VideoDetailResp struct {
	VideoResp
	Owner         ChannelResp `json:"owner"`
	LikesCount    int         `json:"likesCount"`
	IsLiked       bool        `json:"isLiked"`
	ViewsCount    int         `json:"viewsCount"`
	CommentsCount int         `json:"commentsCount"`
}

type LikedVideoResp struct {
	VideoCardResp
	LikedAt time.Time `json:"likedAt"`
}

type CommentResp struct {
	ID        uuid.UUID `json:"id"`
	VideoID   uuid.UUID `json:"videoId"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CommentViewResp struct {
	CommentResp
	Owner      OwnerResp `json:"owner"`
	LikesCount int       `json:"likesCount"`
	IsLiked    bool      `json:"isLiked"`
}

type TweetResp struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TweetViewResp struct {
	TweetResp
	Owner      OwnerResp `json:"owner"`
	LikesCount int       `json:"likesCount"`
	IsLiked    bool      `json:"isLiked"`
}

type SubscriptionResp struct {
	Channel      ChannelResp `json:"channel"`
	SubscribedAt time.Time   `json:"subscribedAt"`
}

type PlaylistResp struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PlaylistVideoResp struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    float64   `json:"duration"`
	IsPublished bool      `json:"isPublished"`
	Owner       OwnerResp `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
	AddedAt     time.Time `json:"addedAt"`
}

type PlaylistDetailResp struct {
	PlaylistResp
	Owner       OwnerResp           `json:"owner"`
	Videos      []PlaylistVideoResp `json:"videos"`
	TotalVideos int                 `json:"totalVideos"`
}

type PlaylistSummaryResp struct {
	PlaylistResp
	TotalVideos int    `json:"totalVideos"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

type ChannelStatsResp struct {
	ChannelID          uuid.UUID `json:"channelId"`
	TotalSubscribers   int       `json:"totalSubscribers"`
	SubscribedChannels int       `json:"subscribedChannels"`
	TotalViews         int       `json:"totalViews"`
	TotalVideos        int       `json:"totalVideos"`
	TotalLikes         int       `json:"totalLikes"`
}

type RelationStatusResp struct {
	Kind     domain.RelationKind `json:"kind"`
	TargetID uuid.UUID           `json:"targetId"`
	Count    int                 `json:"count"`
	IsActive bool                `json:"isActive"`
}

type LikeToggleResp struct {
	IsLiked bool `json:"isLiked"`
}

type SubscribeToggleResp struct {
	IsSubscribed bool `json:"isSubscribed"`
}

type WatchHistoryResp struct {
	WatchHistory []uuid.UUID `json:"watchHistory"`
}

type ExistsResp struct {
	Exists bool `json:"exists"`
}

type StatusResp struct {
	Status string `json:"status"`
}
