package video

import (
	"context"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/domain"
	"github.com/baechuer/vidshare/internal/metrics"
)

// RecordView adds the actor to the video's view set and moves the video to the
// front of the actor's watch history. Missing or hidden videos fail before any write.
func (s *Service) RecordView(ctx context.Context, actorID, videoID uuid.UUID) ([]uuid.UUID, error) {
	v, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !v.VisibleTo(domain.Viewer(actorID)) {
		return nil, domain.ErrNotFound("video not found")
	}

	now := s.clock.Now().UTC()
	added, history, err := s.repo.RecordView(ctx, v.ID, actorID, now, func(h []uuid.UUID) []uuid.UUID {
		return domain.MoveToFront(h, v.ID)
	})
	if err != nil {
		metrics.HistoryUpdatesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.HistoryUpdatesTotal.WithLabelValues("ok").Inc()
	s.audit.ViewRecorded(ctx, actorID, v.ID, len(history))

	publish(ctx, s.pub, RoutingVideoViewed, now, VideoViewedPayload{
		VideoID:  v.ID.String(),
		ViewerID: actorID.String(),
		NewView:  added,
	})
	return history, nil
}

// History lists the actor's watch history, most recent first. Entries whose video
// was deleted or hidden are skipped.
func (s *Service) History(ctx context.Context, actorID uuid.UUID, req domain.PageRequest) (domain.Page[domain.VideoCard], error) {
	items, total, err := s.repo.ListHistory(ctx, actorID, req)
	if err != nil {
		return domain.Page[domain.VideoCard]{}, err
	}
	return domain.NewPage(items, req, total), nil
}
