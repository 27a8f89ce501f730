package tweet

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/domain"
)

type Clock interface{ Now() time.Time }

type Repo interface {
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, t *domain.Tweet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error)
	GetView(ctx context.Context, id uuid.UUID, viewer uuid.NullUUID) (*domain.TweetView, error)
	Update(ctx context.Context, t *domain.Tweet) error
	// Delete removes the tweet and the likes targeting it.
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) ([]domain.TweetView, int, error)
}

type AssetStore interface {
	DeleteAsset(ctx context.Context, ref string) error
}
