package engagement

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/domain"
)

type Clock interface{ Now() time.Time }

// RelationTx is the relation table seen from inside one storage transaction.
// InsertRelation must return a Conflict AppError when the (actor, kind, target)
// tuple already exists.
type RelationTx interface {
	RelationExists(ctx context.Context, actorID uuid.UUID, kind domain.RelationKind, targetID uuid.UUID) (bool, error)
	InsertRelation(ctx context.Context, rel domain.Relation) error
	DeleteRelation(ctx context.Context, actorID uuid.UUID, kind domain.RelationKind, targetID uuid.UUID) (bool, error)
}

type Store interface {
	// TargetVisible reports whether the target implied by kind exists and viewer may see
	// it. Unpublished videos, and comments on them, are visible to the video owner only.
	TargetVisible(ctx context.Context, kind domain.RelationKind, targetID uuid.UUID, viewer uuid.NullUUID) (bool, error)
	WithRelationTx(ctx context.Context, fn func(tx RelationTx) error) error

	Summary(ctx context.Context, kind domain.RelationKind, targetID uuid.UUID, viewer uuid.NullUUID) (domain.RelationSummary, error)

	ListLikedVideos(ctx context.Context, actorID uuid.UUID, req domain.PageRequest) ([]domain.LikedVideo, int, error)
	ListSubscribers(ctx context.Context, channelID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) ([]domain.SubscriptionEntry, int, error)
	ListSubscriptions(ctx context.Context, subscriberID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) ([]domain.SubscriptionEntry, int, error)
}
