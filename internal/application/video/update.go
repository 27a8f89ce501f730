package video

import (
	"context"
	"strings"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/vidshare/internal/domain"
)

type UpdateCmd struct {
	ActorID     uuid.UUID
	VideoID     uuid.UUID
	Title       *string
	Description *string
	Thumbnail   *string
}

func (s *Service) Update(ctx context.Context, cmd UpdateCmd) (*domain.Video, error) {
	if cmd.Title == nil && cmd.Description == nil && cmd.Thumbnail == nil {
		return nil, domain.ErrValidation("nothing to update")
	}
	v, err := s.loadOwned(ctx, cmd.ActorID, cmd.VideoID)
	if err != nil {
		return nil, err
	}

	if cmd.Title != nil {
		t := strings.TrimSpace(*cmd.Title)
		if t == "" {
			return nil, domain.ErrValidationMeta("invalid video", map[string]string{"title": "must not be empty"})
		}
		v.Title = t
	}
	if cmd.Description != nil {
		v.Description = strings.TrimSpace(*cmd.Description)
	}
	var replaced string
	if cmd.Thumbnail != nil {
		th := strings.TrimSpace(*cmd.Thumbnail)
		if th == "" {
			return nil, domain.ErrValidationMeta("invalid video", map[string]string{"thumbnail": "must not be empty"})
		}
		if th != v.Thumbnail {
			replaced = v.Thumbnail
		}
		v.Thumbnail = th
	}

	now := s.clock.Now().UTC()
	v.UpdatedAt = now
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	// the row no longer references the old thumbnail, so a failure only leaves an orphan
	if replaced != "" && s.assets != nil {
		if err := s.assets.DeleteAsset(ctx, replaced); err != nil {
			zlog.Warn().Err(err).Str("video_id", v.ID.String()).Msg("delete replaced thumbnail failed")
		}
	}

	publish(ctx, s.pub, RoutingVideoUpdated, now, VideoChangedPayload{
		VideoID:     v.ID.String(),
		OwnerID:     v.OwnerID.String(),
		Title:       v.Title,
		IsPublished: v.IsPublished,
	})
	return v, nil
}

func (s *Service) TogglePublish(ctx context.Context, actorID, videoID uuid.UUID) (*domain.Video, error) {
	v, err := s.loadOwned(ctx, actorID, videoID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	v.IsPublished = !v.IsPublished
	v.UpdatedAt = now
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	publish(ctx, s.pub, RoutingVideoUpdated, now, VideoChangedPayload{
		VideoID:     v.ID.String(),
		OwnerID:     v.OwnerID.String(),
		Title:       v.Title,
		IsPublished: v.IsPublished,
	})
	return v, nil
}
