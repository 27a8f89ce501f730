package engagement

import (
	"context"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/domain"
)

// Summary returns count and is-active for one (kind, target). An absent viewer is never active.
func (s *Service) Summary(ctx context.Context, kind domain.RelationKind, targetID uuid.UUID, viewer uuid.NullUUID) (domain.RelationSummary, error) {
	if !kind.Valid() {
		return domain.RelationSummary{}, domain.ErrValidationMeta("invalid relation kind", map[string]string{"kind": string(kind)})
	}
	ok, err := s.store.TargetVisible(ctx, kind, targetID, viewer)
	if err != nil {
		return domain.RelationSummary{}, err
	}
	if !ok {
		return domain.RelationSummary{}, domain.ErrNotFound(kind.Target() + " not found")
	}
	sum, err := s.store.Summary(ctx, kind, targetID, viewer)
	if err != nil {
		return domain.RelationSummary{}, err
	}
	if !viewer.Valid {
		sum.IsActive = false
	}
	return sum, nil
}

func (s *Service) LikedVideos(ctx context.Context, actorID uuid.UUID, req domain.PageRequest) (domain.Page[domain.LikedVideo], error) {
	if err := req.RequireSort("createdAt"); err != nil {
		return domain.Page[domain.LikedVideo]{}, err
	}
	items, total, err := s.store.ListLikedVideos(ctx, actorID, req)
	if err != nil {
		return domain.Page[domain.LikedVideo]{}, err
	}
	return domain.NewPage(items, req, total), nil
}

func (s *Service) Subscribers(ctx context.Context, channelID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) (domain.Page[domain.SubscriptionEntry], error) {
	if err := s.requireChannel(ctx, channelID, req); err != nil {
		return domain.Page[domain.SubscriptionEntry]{}, err
	}
	items, total, err := s.store.ListSubscribers(ctx, channelID, viewer, req)
	if err != nil {
		return domain.Page[domain.SubscriptionEntry]{}, err
	}
	return domain.NewPage(items, req, total), nil
}

func (s *Service) Subscriptions(ctx context.Context, subscriberID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) (domain.Page[domain.SubscriptionEntry], error) {
	if err := s.requireChannel(ctx, subscriberID, req); err != nil {
		return domain.Page[domain.SubscriptionEntry]{}, err
	}
	items, total, err := s.store.ListSubscriptions(ctx, subscriberID, viewer, req)
	if err != nil {
		return domain.Page[domain.SubscriptionEntry]{}, err
	}
	return domain.NewPage(items, req, total), nil
}

func (s *Service) requireChannel(ctx context.Context, userID uuid.UUID, req domain.PageRequest) error {
	if err := req.RequireSort(domain.ChannelSortFields...); err != nil {
		return err
	}
	ok, err := s.store.TargetVisible(ctx, domain.KindSubscribes, userID, domain.Anonymous())
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound("channel not found")
	}
	return nil
}
