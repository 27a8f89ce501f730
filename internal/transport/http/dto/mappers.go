package dto

import (
	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/domain"
)

func Owner(o domain.OwnerSummary) OwnerResp {
	return OwnerResp{ID: o.ID, Username: o.Username, Fullname: o.Fullname, Avatar: o.Avatar}
}

func Channel(c domain.ChannelSummary) ChannelResp {
	return ChannelResp{
		OwnerResp:        Owner(c.OwnerSummary),
		SubscribersCount: c.SubscribersCount,
		IsSubscribed:     c.IsSubscribed,
	}
}

func User(u *domain.User) UserResp {
	return UserResp{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Fullname:   u.Fullname,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func ChannelProfile(p *domain.ChannelProfile) ChannelProfileResp {
	return ChannelProfileResp{
		ChannelResp:       Channel(p.ChannelSummary),
		Email:             p.Email,
		CoverImage:        p.CoverImage,
		SubscribedToCount: p.SubscribedToCount,
		CreatedAt:         p.CreatedAt,
	}
}

func Video(v *domain.Video) VideoResp {
	return VideoResp{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Title:       v.Title,
		Description: v.Description,
		Duration:    v.Duration,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func VideoCard(c domain.VideoCard) VideoCardResp {
	return VideoCardResp{
		VideoResp:     Video(&c.Video),
		Owner:         Owner(c.Owner),
		LikesCount:    c.LikesCount,
		ViewsCount:    c.ViewsCount,
		CommentsCount: c.CommentsCount,
	}
}

func VideoDetail(d *domain.VideoDetail) VideoDetailResp {
	return VideoDetailResp{
		VideoResp:     Video(&d.Video),
		Owner:         Channel(d.Owner),
		LikesCount:    d.LikesCount,
		IsLiked:       d.IsLiked,
		ViewsCount:    d.ViewsCount,
		CommentsCount: d.CommentsCount,
	}
}

func LikedVideo(l domain.LikedVideo) LikedVideoResp {
	return LikedVideoResp{VideoCardResp: VideoCard(l.VideoCard), LikedAt: l.LikedAt}
}

func Comment(c *domain.Comment) CommentResp {
	return CommentResp{
		ID:        c.ID,
		VideoID:   c.VideoID,
		OwnerID:   c.OwnerID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func CommentView(c domain.CommentView) CommentViewResp {
	return CommentViewResp{
		CommentResp: Comment(&c.Comment),
		Owner:       Owner(c.Owner),
		LikesCount:  c.LikesCount,
		IsLiked:     c.IsLiked,
	}
}

func Tweet(t *domain.Tweet) TweetResp {
	return TweetResp{
		ID:        t.ID,
		OwnerID:   t.OwnerID,
		Content:   t.Content,
		Image:     t.Image,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func TweetView(t domain.TweetView) TweetViewResp {
	return TweetViewResp{
		TweetResp:  Tweet(&t.Tweet),
		Owner:      Owner(t.Owner),
		LikesCount: t.LikesCount,
		IsLiked:    t.IsLiked,
	}
}

func Subscription(s domain.SubscriptionEntry) SubscriptionResp {
	return SubscriptionResp{Channel: Channel(s.Channel), SubscribedAt: s.SubscribedAt}
}

func Playlist(p *domain.Playlist) PlaylistResp {
	return PlaylistResp{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func PlaylistDetail(d *domain.PlaylistDetail) PlaylistDetailResp {
	videos := make([]PlaylistVideoResp, 0, len(d.Videos))
	for _, v := range d.Videos {
		videos = append(videos, PlaylistVideoResp{
			ID:          v.ID,
			Title:       v.Title,
			Thumbnail:   v.Thumbnail,
			Duration:    v.Duration,
			IsPublished: v.IsPublished,
			Owner:       Owner(v.Owner),
			CreatedAt:   v.CreatedAt,
			AddedAt:     v.AddedAt,
		})
	}
	return PlaylistDetailResp{
		PlaylistResp: Playlist(&d.Playlist),
		Owner:        Owner(d.Owner),
		Videos:       videos,
		TotalVideos:  d.TotalVideos,
	}
}

func PlaylistSummary(s domain.PlaylistSummary) PlaylistSummaryResp {
	return PlaylistSummaryResp{
		PlaylistResp: Playlist(&s.Playlist),
		TotalVideos:  s.TotalVideos,
		Thumbnail:    s.Thumbnail,
	}
}

func ChannelStats(s domain.ChannelStats) ChannelStatsResp {
	return ChannelStatsResp(s)
}

func RelationStatus(s domain.RelationSummary) RelationStatusResp {
	return RelationStatusResp{Kind: s.Kind, TargetID: s.TargetID, Count: s.Count, IsActive: s.IsActive}
}

func WatchHistory(ids []uuid.UUID) WatchHistoryResp {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return WatchHistoryResp{WatchHistory: ids}
}
