package video

import (
	"context"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/audit"
	"github.com/baechuer/vidshare/internal/domain"
)

type Service struct {
	repo   Repo
	assets AssetStore
	pub    EventPublisher
	clock  Clock
	audit  *audit.Logger
}

func New(repo Repo, assets AssetStore, pub EventPublisher, clock Clock, auditLog *audit.Logger) *Service {
	if pub == nil {
		pub = NoopPublisher{}
	}
	if auditLog == nil {
		auditLog = audit.Nop()
	}
	return &Service{repo: repo, assets: assets, pub: pub, clock: clock, audit: auditLog}
}

// loadOwned fetches a video and checks that actorID owns it.
func (s *Service) loadOwned(ctx context.Context, actorID, videoID uuid.UUID) (*domain.Video, error) {
	v, err := s.repo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManage(v.OwnerID, actorID) {
		return nil, domain.ErrUnauthorized("only the owner can modify this video")
	}
	return v, nil
}

func (s *Service) requireUser(ctx context.Context, id uuid.UUID, msg string) error {
	ok, err := s.repo.UserExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound(msg)
	}
	return nil
}
