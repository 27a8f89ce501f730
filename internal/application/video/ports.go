package video

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/domain"
)

type Clock interface{ Now() time.Time }

type ListFilter struct {
	// Query is a case-insensitive substring match on the title.
	Query              string
	OwnerID            uuid.NullUUID
	IncludeUnpublished bool
}

type Repo interface {
	Create(ctx context.Context, v *domain.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	Update(ctx context.Context, v *domain.Video) error
	// Delete removes the video with its comments, views and every relation targeting them.
	Delete(ctx context.Context, id uuid.UUID) error

	GetDetail(ctx context.Context, id uuid.UUID, viewer uuid.NullUUID) (*domain.VideoDetail, error)
	List(ctx context.Context, f ListFilter, req domain.PageRequest) ([]domain.VideoCard, int, error)

	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
	// RecordView atomically adds actorID to the video's view set and applies fn to the
	// actor's watch history under a per-actor lock. added is false when the view already
	// existed. Nothing is written when any step fails.
	RecordView(ctx context.Context, videoID, actorID uuid.UUID, at time.Time, fn func([]uuid.UUID) []uuid.UUID) (added bool, history []uuid.UUID, err error)
	ListHistory(ctx context.Context, actorID uuid.UUID, req domain.PageRequest) ([]domain.VideoCard, int, error)

	ChannelStats(ctx context.Context, channelID uuid.UUID) (domain.ChannelStats, error)
}

// AssetStore deletes media referenced by an entity. Deleting a missing asset succeeds.
type AssetStore interface {
	DeleteAsset(ctx context.Context, ref string) error
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, routingKey string, payload any) error
}

type NoopPublisher struct{}

func (NoopPublisher) PublishEvent(ctx context.Context, routingKey string, payload any) error {
	return nil
}
