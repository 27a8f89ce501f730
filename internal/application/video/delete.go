package video

import (
	"context"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/domain"
)

// Delete removes the media assets first and the row second. Asset deletion is
// idempotent, so a failed attempt leaves the video intact and can simply be retried.
func (s *Service) Delete(ctx context.Context, actorID, videoID uuid.UUID) error {
	v, err := s.loadOwned(ctx, actorID, videoID)
	if err != nil {
		return err
	}

	if s.assets != nil {
		for _, ref := range v.MediaRefs() {
			if err := s.assets.DeleteAsset(ctx, ref); err != nil {
				return domain.ErrInternal("failed to delete video assets", err)
			}
		}
	}

	if err := s.repo.Delete(ctx, v.ID); err != nil {
		return err
	}
	s.audit.EntityDeleted(ctx, actorID, "video", v.ID)

	publish(ctx, s.pub, RoutingVideoDeleted, s.clock.Now().UTC(), VideoChangedPayload{
		VideoID: v.ID.String(),
		OwnerID: v.OwnerID.String(),
	})
	return nil
}
