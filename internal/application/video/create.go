package video

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/domain"
)

type CreateCmd struct {
	ActorID     uuid.UUID
	VideoFile   string
	Thumbnail   string
	Title       string
	Description string
	Duration    float64
	// nil publishes immediately
	IsPublished *bool
}

func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.Video, error) {
	meta := map[string]string{}
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		meta["title"] = "required"
	}
	if strings.TrimSpace(cmd.VideoFile) == "" {
		meta["videoFile"] = "required"
	}
	if strings.TrimSpace(cmd.Thumbnail) == "" {
		meta["thumbnail"] = "required"
	}
	if cmd.Duration < 0 {
		meta["duration"] = "must be >= 0"
	}
	if len(meta) > 0 {
		return nil, domain.ErrValidationMeta("invalid video", meta)
	}
	if err := s.requireUser(ctx, cmd.ActorID, "user profile not found"); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	published := true
	if cmd.IsPublished != nil {
		published = *cmd.IsPublished
	}
	v := &domain.Video{
		ID:          uuid.New(),
		OwnerID:     cmd.ActorID,
		VideoFile:   strings.TrimSpace(cmd.VideoFile),
		Thumbnail:   strings.TrimSpace(cmd.Thumbnail),
		Title:       title,
		Description: strings.TrimSpace(cmd.Description),
		Duration:    cmd.Duration,
		IsPublished: published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	publish(ctx, s.pub, RoutingVideoCreated, now, VideoChangedPayload{
		VideoID:     v.ID.String(),
		OwnerID:     v.OwnerID.String(),
		Title:       v.Title,
		IsPublished: v.IsPublished,
	})
	return v, nil
}
