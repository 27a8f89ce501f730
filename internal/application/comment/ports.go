package comment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/domain"
)

type Clock interface{ Now() time.Time }

type Repo interface {
	// VideoVisible reports whether the video exists and viewer may see it.
	VideoVisible(ctx context.Context, videoID uuid.UUID, viewer uuid.NullUUID) (bool, error)
	Create(ctx context.Context, c *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	Update(ctx context.Context, c *domain.Comment) error
	// Delete removes the comment and the likes targeting it.
	Delete(ctx context.Context, id uuid.UUID) error
	ListByVideo(ctx context.Context, videoID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) ([]domain.CommentView, int, error)
}
