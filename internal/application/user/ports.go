package user

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/domain"
)

type Clock interface{ Now() time.Time }

type Repo interface {
	// Create returns a Conflict AppError when the id, username or email is taken.
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	ChannelProfile(ctx context.Context, username string, viewer uuid.NullUUID) (*domain.ChannelProfile, error)
}

type AssetStore interface {
	DeleteAsset(ctx context.Context, ref string) error
}
