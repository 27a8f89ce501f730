package video

import (
	"context"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/domain"
)

// Get returns the aggregated view of a video. Unpublished videos exist only for their owner.
func (s *Service) Get(ctx context.Context, id uuid.UUID, viewer uuid.NullUUID) (*domain.VideoDetail, error) {
	d, err := s.repo.GetDetail(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	if !d.Video.VisibleTo(viewer) {
		return nil, domain.ErrNotFound("video not found")
	}
	if !viewer.Valid {
		d.IsLiked = false
		d.Owner.IsSubscribed = false
	}
	return d, nil
}

type ListQuery struct {
	Query   string
	OwnerID uuid.NullUUID
}

func (s *Service) List(ctx context.Context, q ListQuery, viewer uuid.NullUUID, req domain.PageRequest) (domain.Page[domain.VideoCard], error) {
	if err := req.RequireSort(domain.VideoSortFields...); err != nil {
		return domain.Page[domain.VideoCard]{}, err
	}
	f := ListFilter{
		Query:              q.Query,
		OwnerID:            q.OwnerID,
		IncludeUnpublished: q.OwnerID.Valid && domain.IsViewer(viewer, q.OwnerID.UUID),
	}
	items, total, err := s.repo.List(ctx, f, req)
	if err != nil {
		return domain.Page[domain.VideoCard]{}, err
	}
	return domain.NewPage(items, req, total), nil
}

// ChannelVideos lists one channel's videos, unpublished included when the viewer owns it.
func (s *Service) ChannelVideos(ctx context.Context, channelID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) (domain.Page[domain.VideoCard], error) {
	if err := s.requireUser(ctx, channelID, "channel not found"); err != nil {
		return domain.Page[domain.VideoCard]{}, err
	}
	return s.List(ctx, ListQuery{OwnerID: uuid.NullUUID{UUID: channelID, Valid: true}}, viewer, req)
}

func (s *Service) ChannelStats(ctx context.Context, channelID uuid.UUID) (domain.ChannelStats, error) {
	if err := s.requireUser(ctx, channelID, "channel not found"); err != nil {
		return domain.ChannelStats{}, err
	}
	return s.repo.ChannelStats(ctx, channelID)
}
