package playlist

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/domain"
)

type Clock interface{ Now() time.Time }

type Repo interface {
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
	VideoExists(ctx context.Context, id uuid.UUID) (bool, error)

	Create(ctx context.Context, p *domain.Playlist) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error)
	// GetDetail embeds member videos in insertion order, each with its owner.
	GetDetail(ctx context.Context, id uuid.UUID) (*domain.PlaylistDetail, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, req domain.PageRequest) ([]domain.PlaylistSummary, int, error)
	Update(ctx context.Context, p *domain.Playlist) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AddVideo returns a Conflict AppError when the video is already a member.
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID, at time.Time) error
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error)
	ContainsVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error)
}
